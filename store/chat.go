package store

import "encoding/json"

// MessageRole is the author of a chat message.
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
)

// ChatSession is one conversation between a user and the assistant.
// At most one session per user is active at any instant; starting a new
// conversation deactivates the prior one, it is never deleted.
type ChatSession struct {
	ID        int32
	UID       string
	UserID    int32
	Title     string
	Active    bool
	CreatedTs int64
	UpdatedTs int64
}

type FindChatSession struct {
	ID     *int32
	UID    *string
	UserID *int32
	Active *bool
}

type UpdateChatSession struct {
	ID        int32
	Title     *string
	Active    *bool
	UpdatedTs *int64
}

// ChatMessage is one entry in a session's append-only message log.
// Messages are immutable once written; insertion order is the total order.
//
// PendingAction is an opaque JSON payload present only on assistant messages
// that ended their turn with an unconfirmed mutation proposal.
type ChatMessage struct {
	ID            int32
	SessionID     int32
	Role          MessageRole
	Content       string
	TokensUsed    *int32
	PendingAction json.RawMessage
	CreatedTs     int64
}

type FindChatMessage struct {
	SessionID *int32
	Role      *MessageRole
}
