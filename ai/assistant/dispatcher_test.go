package assistant

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quilicura/micondominio/ai/llm"
	"github.com/quilicura/micondominio/ai/tools"
	"github.com/quilicura/micondominio/store"
)

func newTestDispatcher(gateway *fakeGateway, domain *domainStoreStub, sessionStore *memSessionStore) *Dispatcher {
	registry := tools.NewRegistry(domain)
	sessions := NewSessions(sessionStore)
	return NewDispatcher(gateway, registry, sessions, nil, "test")
}

func testPrincipal() *store.User {
	return &store.User{ID: 1, FirstNames: "Carolina", LastName: "Fuentes", Role: store.UserRoleAdmin}
}

func TestHandleMessage_PlainAnswer(t *testing.T) {
	gateway := &fakeGateway{script: []scriptedResponse{textResponse("Hola, ¿en qué te ayudo?")}}
	sessionStore := newMemSessionStore()
	d := newTestDispatcher(gateway, &domainStoreStub{}, sessionStore)

	result, err := d.HandleMessage(context.Background(), testPrincipal(), "hola")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Hola, ¿en qué te ayudo?", result.Reply)
	assert.NotEmpty(t, result.SessionUID)

	require.Len(t, gateway.calls, 1)
	assert.Equal(t, llm.ToolChoiceAuto, gateway.calls[0].toolChoice)
	require.NotEmpty(t, gateway.calls[0].messages)
	assert.Equal(t, "system", gateway.calls[0].messages[0].Role)

	require.Len(t, sessionStore.messages, 2)
	assert.Equal(t, store.MessageRoleUser, sessionStore.messages[0].Role)
	assert.Equal(t, store.MessageRoleAssistant, sessionStore.messages[1].Role)
}

func TestHandleMessage_ToolLoopThenPhrasing(t *testing.T) {
	gateway := &fakeGateway{script: []scriptedResponse{
		toolCallResponse("list_categories", `{}`),
		textResponse("No hay categorías registradas."),
	}}
	sessionStore := newMemSessionStore()
	d := newTestDispatcher(gateway, &domainStoreStub{}, sessionStore)

	result, err := d.HandleMessage(context.Background(), testPrincipal(), "lista las categorías")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "No hay categorías registradas.", result.Reply)

	require.Len(t, gateway.calls, 2)
	assert.Equal(t, llm.ToolChoiceAuto, gateway.calls[0].toolChoice)
	assert.Equal(t, llm.ToolChoiceNone, gateway.calls[1].toolChoice, "tool calls are not honored after the batch")

	// The second round sees the assistant tool-call message and the tool result.
	second := gateway.calls[1].messages
	last := second[len(second)-1]
	assert.Equal(t, "tool", last.Role)
	assert.Equal(t, "list_categories", last.Name)
	assert.Equal(t, "call_1", last.ToolCallID)
}

func TestHandleMessage_UnknownToolIsReportedToModel(t *testing.T) {
	gateway := &fakeGateway{script: []scriptedResponse{
		toolCallResponse("make_coffee", `{}`),
		textResponse("No puedo hacer eso."),
	}}
	sessionStore := newMemSessionStore()
	d := newTestDispatcher(gateway, &domainStoreStub{}, sessionStore)

	result, err := d.HandleMessage(context.Background(), testPrincipal(), "haz café")
	require.NoError(t, err)
	assert.True(t, result.Success)

	second := gateway.calls[1].messages
	last := second[len(second)-1]
	assert.Equal(t, "tool", last.Role)
	assert.Contains(t, last.Content, "unknown tool")
}

func TestHandleMessage_BatchStopsAtConfirmationRequest(t *testing.T) {
	gateway := &fakeGateway{script: []scriptedResponse{
		toolCallBatchResponse(
			namedToolCall("call_1", "list_categories", `{}`),
			namedToolCall("call_2", "propose_create_category", `{"name": "Jardines"}`),
			namedToolCall("call_3", "list_categories", `{}`),
		),
		textResponse("¿Confirmas crear la categoría 'Jardines'? (sí/no)"),
	}}
	domain := &domainStoreStub{}
	sessionStore := newMemSessionStore()
	d := newTestDispatcher(gateway, domain, sessionStore)

	result, err := d.HandleMessage(context.Background(), testPrincipal(), "lista las categorías y crea Jardines")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Contains(t, result.Reply, "Confirmas")

	// Call #1 plus the proposal's duplicate check; the third call never runs.
	assert.Equal(t, 2, domain.listCategoryCalls)
	assert.Equal(t, 0, domain.writes)

	// The phrasing round sees the batch cut off right after the proposal's
	// tool result, followed by the injected instruction.
	require.Len(t, gateway.calls, 2)
	phrasing := gateway.calls[1].messages
	require.GreaterOrEqual(t, len(phrasing), 2)
	assert.Equal(t, "system", phrasing[len(phrasing)-1].Role)
	assert.Equal(t, "tool", phrasing[len(phrasing)-2].Role)
	assert.Equal(t, "call_2", phrasing[len(phrasing)-2].ToolCallID)

	pending := DecodePending(sessionStore.messages[len(sessionStore.messages)-1])
	require.NotNil(t, pending)
	assert.Equal(t, tools.ActionCreateCategory, pending.Action)
}

func TestHandleMessage_ProposalConfirmExecute(t *testing.T) {
	gateway := &fakeGateway{script: []scriptedResponse{
		toolCallResponse("propose_create_category", `{"name": "Jardines"}`),
		textResponse("¿Confirmas crear la categoría 'Jardines'? (sí/no)"),
	}}
	domain := &domainStoreStub{}
	sessionStore := newMemSessionStore()
	d := newTestDispatcher(gateway, domain, sessionStore)
	ctx := context.Background()

	result, err := d.HandleMessage(ctx, testPrincipal(), "crea la categoría Jardines")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Contains(t, result.Reply, "Confirmas")
	assert.Equal(t, 0, domain.writes, "nothing is written before confirmation")

	// The phrasing round carries the injected confirmation instruction.
	require.Len(t, gateway.calls, 2)
	phrasing := gateway.calls[1].messages
	assert.Equal(t, "system", phrasing[len(phrasing)-1].Role)
	assert.Equal(t, llm.ToolChoiceNone, gateway.calls[1].toolChoice)

	// The proposal rides on the last assistant message.
	last := sessionStore.messages[len(sessionStore.messages)-1]
	require.Equal(t, store.MessageRoleAssistant, last.Role)
	pending := DecodePending(last)
	require.NotNil(t, pending)
	assert.Equal(t, tools.ActionCreateCategory, pending.Action)

	// Confirming executes without another gateway round.
	result, err = d.HandleMessage(ctx, testPrincipal(), "sí")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Contains(t, result.Reply, "✅")
	assert.Contains(t, result.Reply, "Jardines")
	assert.Equal(t, 1, domain.writes, "confirmation creates exactly one row")
	assert.Len(t, gateway.calls, 2, "the confirm turn never reaches the model")

	// Confirming again does nothing: the pending payload was consumed.
	gateway.script = []scriptedResponse{textResponse("Ya está creada.")}
	result, err = d.HandleMessage(ctx, testPrincipal(), "sí")
	require.NoError(t, err)
	assert.Equal(t, 1, domain.writes)
}

func TestHandleMessage_ProposalCancel(t *testing.T) {
	gateway := &fakeGateway{script: []scriptedResponse{
		toolCallResponse("propose_create_category", `{"name": "Jardines"}`),
		textResponse("¿Confirmas? (sí/no)"),
	}}
	domain := &domainStoreStub{}
	sessionStore := newMemSessionStore()
	d := newTestDispatcher(gateway, domain, sessionStore)
	ctx := context.Background()

	_, err := d.HandleMessage(ctx, testPrincipal(), "crea la categoría Jardines")
	require.NoError(t, err)

	result, err := d.HandleMessage(ctx, testPrincipal(), "no")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "❌ Operación cancelada.", result.Reply)
	assert.Equal(t, 0, domain.writes)

	last := sessionStore.messages[len(sessionStore.messages)-1]
	assert.Nil(t, DecodePending(last), "cancellation clears the pending proposal")
}

func TestHandleMessage_UnrelatedReplyDropsProposal(t *testing.T) {
	gateway := &fakeGateway{script: []scriptedResponse{
		toolCallResponse("propose_create_category", `{"name": "Jardines"}`),
		textResponse("¿Confirmas? (sí/no)"),
	}}
	domain := &domainStoreStub{}
	sessionStore := newMemSessionStore()
	d := newTestDispatcher(gateway, domain, sessionStore)
	ctx := context.Background()

	_, err := d.HandleMessage(ctx, testPrincipal(), "crea la categoría Jardines")
	require.NoError(t, err)

	gateway.script = []scriptedResponse{textResponse("Hay 0 incidencias abiertas.")}
	result, err := d.HandleMessage(ctx, testPrincipal(), "¿cuántas incidencias hay abiertas?")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Hay 0 incidencias abiertas.", result.Reply)
	assert.Equal(t, 0, domain.writes, "a dropped proposal is never executed")
}

func TestHandleMessage_GatewayFailure(t *testing.T) {
	gateway := &fakeGateway{script: []scriptedResponse{{err: fmt.Errorf("upstream timeout")}}}
	sessionStore := newMemSessionStore()
	d := newTestDispatcher(gateway, &domainStoreStub{}, sessionStore)

	result, err := d.HandleMessage(context.Background(), testPrincipal(), "hola")
	require.NoError(t, err, "gateway failures are a result, not an error")
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "upstream timeout")

	// The user message survives so the conversation can resume.
	require.Len(t, sessionStore.messages, 1)
	assert.Equal(t, store.MessageRoleUser, sessionStore.messages[0].Role)
}

func TestHandleMessage_HistoryIsBounded(t *testing.T) {
	gateway := &fakeGateway{script: []scriptedResponse{textResponse("ok")}}
	sessionStore := newMemSessionStore()
	d := newTestDispatcher(gateway, &domainStoreStub{}, sessionStore)
	ctx := context.Background()

	session, err := d.Sessions().GetOrCreateActive(ctx, 1)
	require.NoError(t, err)
	for i := 0; i < 30; i++ {
		role := store.MessageRoleUser
		if i%2 == 1 {
			role = store.MessageRoleAssistant
		}
		_, err := d.Sessions().Append(ctx, session.ID, role, fmt.Sprintf("mensaje %d", i), nil, nil)
		require.NoError(t, err)
	}

	_, err = d.HandleMessage(ctx, testPrincipal(), "resumen")
	require.NoError(t, err)

	require.Len(t, gateway.calls, 1)
	// System prompt plus the 20 most recent messages.
	require.Len(t, gateway.calls[0].messages, 21)
	assert.Equal(t, "system", gateway.calls[0].messages[0].Role)
	assert.Equal(t, "resumen", gateway.calls[0].messages[20].Content)
}
