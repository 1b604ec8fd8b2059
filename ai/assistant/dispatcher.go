// Package assistant implements the conversational turn loop: session
// handling, the propose/confirm/execute protocol and the dispatch of model
// tool calls against the registry.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quilicura/micondominio/ai/llm"
	"github.com/quilicura/micondominio/ai/metrics"
	"github.com/quilicura/micondominio/ai/tools"
	"github.com/quilicura/micondominio/store"
)

// historyLimit bounds how many prior messages are replayed to the model.
const historyLimit = 20

const cancelledNotice = "❌ Operación cancelada."

// TurnResult is the single user-facing outcome of one turn.
type TurnResult struct {
	Success    bool   `json:"success"`
	Reply      string `json:"reply,omitempty"`
	Error      string `json:"error,omitempty"`
	SessionUID string `json:"session_uid"`
	TokensUsed int    `json:"tokens_used,omitempty"`
}

// Dispatcher orchestrates one turn per incoming user message. It owns no
// state of its own; everything durable lives in the session log.
type Dispatcher struct {
	gateway  llm.Service
	registry *tools.Registry
	sessions *Sessions
	exporter *metrics.Exporter
	provider string
}

// NewDispatcher wires the turn loop. exporter may be nil.
func NewDispatcher(gateway llm.Service, registry *tools.Registry, sessions *Sessions, exporter *metrics.Exporter, provider string) *Dispatcher {
	return &Dispatcher{
		gateway:  gateway,
		registry: registry,
		sessions: sessions,
		exporter: exporter,
		provider: provider,
	}
}

// Sessions exposes the session manager for the HTTP layer.
func (d *Dispatcher) Sessions() *Sessions {
	return d.sessions
}

// HandleMessage runs one full turn. Gateway failures come back as a
// failure-shaped TurnResult with the user message retained in the log;
// a non-nil error means the store itself failed.
func (d *Dispatcher) HandleMessage(ctx context.Context, principal *store.User, text string) (*TurnResult, error) {
	startTime := time.Now()

	session, err := d.sessions.GetOrCreateActive(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	if _, err := d.sessions.Append(ctx, session.ID, store.MessageRoleUser, text, nil, nil); err != nil {
		return nil, err
	}

	history, err := d.sessions.History(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	// The pending proposal, if any, rides on the last assistant message
	// before the message just appended.
	pending := DecodePending(lastAssistantMessage(history))
	if pending != nil {
		switch Classify(text) {
		case ReplyConfirm:
			return d.resolveConfirm(ctx, session, principal, pending, startTime)
		case ReplyCancel:
			if _, err := d.sessions.Append(ctx, session.ID, store.MessageRoleAssistant, cancelledNotice, nil, nil); err != nil {
				return nil, err
			}
			d.recordTurn(metrics.OutcomeCancelled, startTime)
			return &TurnResult{Success: true, Reply: cancelledNotice, SessionUID: session.UID}, nil
		case ReplyNeither:
			// Stale proposal is dropped implicitly; the turn proceeds fresh.
			slog.Debug("assistant: pending proposal dropped", "action", pending.Action, "session", session.UID)
		}
	}

	return d.runModelTurn(ctx, session, principal, history, startTime)
}

func (d *Dispatcher) resolveConfirm(ctx context.Context, session *store.ChatSession, principal *store.User, pending *tools.Proposal, startTime time.Time) (*TurnResult, error) {
	inv := &tools.Invocation{Principal: principal}

	var content string
	executor, ok := d.registry.Executor(pending.Action)
	if !ok {
		slog.Warn("assistant: pending proposal references unknown action", "action", pending.Action)
		content = fmt.Sprintf("❌ Error: acción desconocida '%s'.", pending.Action)
	} else {
		result := executor(ctx, inv, pending.Args)
		if result.Err != "" {
			content = fmt.Sprintf("❌ Error: %s", result.Err)
		} else {
			content = fmt.Sprintf("✅ %s", result.Message)
		}
	}

	if _, err := d.sessions.Append(ctx, session.ID, store.MessageRoleAssistant, content, nil, nil); err != nil {
		return nil, err
	}
	d.recordTurn(metrics.OutcomeExecuted, startTime)
	return &TurnResult{Success: true, Reply: content, SessionUID: session.UID}, nil
}

func (d *Dispatcher) runModelTurn(ctx context.Context, session *store.ChatSession, principal *store.User, history []*store.ChatMessage, startTime time.Time) (*TurnResult, error) {
	msgs := buildModelContext(history)
	inv := &tools.Invocation{Principal: principal}
	totalTokens := 0

	response, stats, err := d.chatWithTools(ctx, msgs, llm.ToolChoiceAuto)
	if err != nil {
		return d.failTurn(session, err, startTime), nil
	}
	totalTokens += stats.TotalTokens

	if len(response.ToolCalls) == 0 {
		return d.finishTurn(ctx, session, response.Content, totalTokens, metrics.OutcomeAnswered, startTime)
	}

	// Execute the batch sequentially; a confirmation request stops it cold.
	msgs = append(msgs, llm.Message{
		Role:      "assistant",
		Content:   response.Content,
		ToolCalls: response.ToolCalls,
	})

	for _, call := range response.ToolCalls {
		tool, ok := d.registry.Get(call.Function.Name)
		if !ok {
			slog.Warn("assistant: model requested unknown tool", "tool", call.Function.Name)
			d.recordToolCall(call.Function.Name, metrics.ToolResultUnknown)
			msgs = append(msgs, llm.ToolResultMessage(call.ID, call.Function.Name,
				fmt.Sprintf(`{"error": "unknown tool %q"}`, call.Function.Name)))
			continue
		}

		result := tool.Run(ctx, inv, []byte(call.Function.Arguments))

		if result.RequiresConfirmation() {
			d.recordToolCall(call.Function.Name, metrics.ToolResultConfirmation)
			msgs = append(msgs, llm.ToolResultMessage(call.ID, call.Function.Name, result.Render()))
			return d.askConfirmation(ctx, session, msgs, result.Proposal, totalTokens, startTime)
		}

		if result.Err != "" {
			d.recordToolCall(call.Function.Name, metrics.ToolResultError)
		} else {
			d.recordToolCall(call.Function.Name, metrics.ToolResultOK)
		}
		msgs = append(msgs, llm.ToolResultMessage(call.ID, call.Function.Name, result.Render()))
	}

	// One extra round to phrase the final answer; tool calls are not
	// honored past this point.
	response, stats, err = d.chatWithTools(ctx, msgs, llm.ToolChoiceNone)
	if err != nil {
		return d.failTurn(session, err, startTime), nil
	}
	totalTokens += stats.TotalTokens

	return d.finishTurn(ctx, session, response.Content, totalTokens, metrics.OutcomeAnswered, startTime)
}

func (d *Dispatcher) askConfirmation(ctx context.Context, session *store.ChatSession, msgs []llm.Message, proposal *tools.Proposal, totalTokens int, startTime time.Time) (*TurnResult, error) {
	msgs = append(msgs, llm.SystemPrompt(confirmationInstruction))

	response, stats, err := d.chatWithTools(ctx, msgs, llm.ToolChoiceNone)
	if err != nil {
		return d.failTurn(session, err, startTime), nil
	}
	totalTokens += stats.TotalTokens

	question := response.Content
	if question == "" {
		question = proposal.Summary
	}

	encoded, err := EncodePending(proposal)
	if err != nil {
		return nil, err
	}

	tokens := int32(totalTokens)
	if _, err := d.sessions.Append(ctx, session.ID, store.MessageRoleAssistant, question, &tokens, encoded); err != nil {
		return nil, err
	}

	d.recordTurn(metrics.OutcomeConfirmAsked, startTime)
	return &TurnResult{Success: true, Reply: question, SessionUID: session.UID, TokensUsed: totalTokens}, nil
}

func (d *Dispatcher) finishTurn(ctx context.Context, session *store.ChatSession, reply string, totalTokens int, outcome string, startTime time.Time) (*TurnResult, error) {
	tokens := int32(totalTokens)
	if _, err := d.sessions.Append(ctx, session.ID, store.MessageRoleAssistant, reply, &tokens, nil); err != nil {
		return nil, err
	}
	d.recordTurn(outcome, startTime)
	return &TurnResult{Success: true, Reply: reply, SessionUID: session.UID, TokensUsed: totalTokens}, nil
}

func (d *Dispatcher) failTurn(session *store.ChatSession, err error, startTime time.Time) *TurnResult {
	slog.Error("assistant: gateway call failed", "session", session.UID, "error", err)
	d.recordTurn(metrics.OutcomeFailed, startTime)
	return &TurnResult{Success: false, Error: err.Error(), SessionUID: session.UID}
}

func (d *Dispatcher) chatWithTools(ctx context.Context, msgs []llm.Message, choice llm.ToolChoice) (*llm.ChatResponse, *llm.LLMCallStats, error) {
	callStart := time.Now()
	response, stats, err := d.gateway.ChatWithTools(ctx, msgs, d.registry.Descriptors(), choice)
	if err != nil {
		return nil, nil, err
	}
	if d.exporter != nil {
		d.exporter.RecordLLMCall(d.provider, stats.PromptTokens, stats.CompletionTokens, time.Since(callStart))
	}
	return response, stats, nil
}

// buildModelContext converts the bounded tail of the session log into the
// gateway message list, prefixed with the fixed system prompt.
func buildModelContext(history []*store.ChatMessage) []llm.Message {
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	msgs := make([]llm.Message, 0, len(history)+1)
	msgs = append(msgs, llm.SystemPrompt(systemPrompt))
	for _, message := range history {
		msgs = append(msgs, llm.Message{
			Role:    string(message.Role),
			Content: message.Content,
		})
	}
	return msgs
}

// lastAssistantMessage returns the most recent assistant message before the
// just-appended user message, or nil.
func lastAssistantMessage(history []*store.ChatMessage) *store.ChatMessage {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == store.MessageRoleAssistant {
			return history[i]
		}
	}
	return nil
}

func (d *Dispatcher) recordTurn(outcome string, startTime time.Time) {
	if d.exporter != nil {
		d.exporter.RecordTurn(outcome, time.Since(startTime))
	}
}

func (d *Dispatcher) recordToolCall(toolName, result string) {
	if d.exporter != nil {
		d.exporter.RecordToolCall(toolName, result)
	}
}
