package assistant

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/quilicura/micondominio/ai/tools"
	"github.com/quilicura/micondominio/store"
)

// Reply is the classification of a user message against a pending proposal.
type Reply int

const (
	ReplyNeither Reply = iota
	ReplyConfirm
	ReplyCancel
)

var confirmTokens = map[string]bool{
	"sí": true, "si": true, "confirmar": true, "confirmo": true,
	"ok": true, "vale": true, "adelante": true, "proceder": true,
	"yes": true, "confirm": true, "proceed": true,
}

var cancelTokens = map[string]bool{
	"no": true, "cancelar": true, "cancelo": true,
	"negar": true, "rechazar": true, "cancel": true,
}

// Classify matches the message against the fixed confirm/cancel vocabularies.
// Matching is token-based, so "notifica a los vecinos" does not read as a
// cancellation. Cancellation wins when both vocabularies match ("no, cancela").
// Anything else is Neither and the turn proceeds as a fresh request.
func Classify(message string) Reply {
	tokens := strings.FieldsFunc(strings.ToLower(message), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	confirm, cancel := false, false
	for _, token := range tokens {
		if confirmTokens[token] {
			confirm = true
		}
		if cancelTokens[token] {
			cancel = true
		}
	}

	switch {
	case cancel:
		return ReplyCancel
	case confirm:
		return ReplyConfirm
	default:
		return ReplyNeither
	}
}

// EncodePending serializes a proposal for the assistant message that ends the
// turn. The payload rides on the message's pending-action column and survives
// exactly one round trip.
func EncodePending(proposal *tools.Proposal) (json.RawMessage, error) {
	return json.Marshal(proposal)
}

// DecodePending recovers the proposal carried by an assistant message.
// A missing, malformed or incomplete payload means "no pending proposal";
// decode failures are never surfaced.
func DecodePending(message *store.ChatMessage) *tools.Proposal {
	if message == nil || message.Role != store.MessageRoleAssistant || len(message.PendingAction) == 0 {
		return nil
	}
	var proposal tools.Proposal
	if err := json.Unmarshal(message.PendingAction, &proposal); err != nil {
		return nil
	}
	if proposal.Action == "" {
		return nil
	}
	return &proposal
}
