package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"github.com/quilicura/micondominio/store"
)

// SessionStore is the slice of the store the session manager consumes.
// *store.Store satisfies it.
type SessionStore interface {
	CreateChatSession(ctx context.Context, create *store.ChatSession) (*store.ChatSession, error)
	ListChatSessions(ctx context.Context, find *store.FindChatSession) ([]*store.ChatSession, error)
	UpdateChatSession(ctx context.Context, update *store.UpdateChatSession) (*store.ChatSession, error)
	CreateChatMessage(ctx context.Context, create *store.ChatMessage) (*store.ChatMessage, error)
	ListChatMessages(ctx context.Context, find *store.FindChatMessage) ([]*store.ChatMessage, error)
}

// Sessions manages the append-only conversation log. At most one session per
// principal is active; the invariant is enforced by read-then-create, which
// is racy under concurrent first requests from the same principal but
// within-principal concurrent turns are not a supported usage pattern.
type Sessions struct {
	store SessionStore
}

// NewSessions creates a session manager.
func NewSessions(s SessionStore) *Sessions {
	return &Sessions{store: s}
}

// GetOrCreateActive returns the principal's active session, creating one with
// an auto-numbered title when none exists.
func (s *Sessions) GetOrCreateActive(ctx context.Context, userID int32) (*store.ChatSession, error) {
	active := true
	sessions, err := s.store.ListChatSessions(ctx, &store.FindChatSession{UserID: &userID, Active: &active})
	if err != nil {
		return nil, fmt.Errorf("failed to list active sessions: %w", err)
	}
	if len(sessions) > 0 {
		return sessions[0], nil
	}

	all, err := s.store.ListChatSessions(ctx, &store.FindChatSession{UserID: &userID})
	if err != nil {
		return nil, fmt.Errorf("failed to count sessions: %w", err)
	}

	now := time.Now().Unix()
	session, err := s.store.CreateChatSession(ctx, &store.ChatSession{
		UID:       shortuuid.New(),
		UserID:    userID,
		Title:     fmt.Sprintf("Chat %d", len(all)+1),
		Active:    true,
		CreatedTs: now,
		UpdatedTs: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// DeactivateAll flips every active session for the principal to inactive and
// returns how many were affected. Idempotent; sessions are never deleted.
func (s *Sessions) DeactivateAll(ctx context.Context, userID int32) (int, error) {
	active := true
	sessions, err := s.store.ListChatSessions(ctx, &store.FindChatSession{UserID: &userID, Active: &active})
	if err != nil {
		return 0, fmt.Errorf("failed to list active sessions: %w", err)
	}

	inactive := false
	now := time.Now().Unix()
	for _, session := range sessions {
		if _, err := s.store.UpdateChatSession(ctx, &store.UpdateChatSession{
			ID:        session.ID,
			Active:    &inactive,
			UpdatedTs: &now,
		}); err != nil {
			return 0, fmt.Errorf("failed to deactivate session %d: %w", session.ID, err)
		}
	}
	return len(sessions), nil
}

// Append writes one message to the session log. Messages are immutable once
// written; there is no update or delete path.
func (s *Sessions) Append(ctx context.Context, sessionID int32, role store.MessageRole, content string, tokensUsed *int32, pending json.RawMessage) (*store.ChatMessage, error) {
	message, err := s.store.CreateChatMessage(ctx, &store.ChatMessage{
		SessionID:     sessionID,
		Role:          role,
		Content:       content,
		TokensUsed:    tokensUsed,
		PendingAction: pending,
		CreatedTs:     time.Now().Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to append message: %w", err)
	}
	return message, nil
}

// History returns the session's messages in insertion order.
func (s *Sessions) History(ctx context.Context, sessionID int32) ([]*store.ChatMessage, error) {
	messages, err := s.store.ListChatMessages(ctx, &store.FindChatMessage{SessionID: &sessionID})
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}
