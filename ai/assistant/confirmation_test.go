package assistant

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quilicura/micondominio/ai/tools"
	"github.com/quilicura/micondominio/store"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name    string
		message string
		expect  Reply
	}{
		{"plain yes", "sí", ReplyConfirm},
		{"yes without accent", "si", ReplyConfirm},
		{"confirm verb", "Confirmo", ReplyConfirm},
		{"ok with punctuation", "ok!", ReplyConfirm},
		{"vale", "vale, adelante", ReplyConfirm},
		{"english yes", "yes", ReplyConfirm},
		{"plain no", "no", ReplyCancel},
		{"cancel verb", "Cancelar", ReplyCancel},
		{"reject", "rechazar", ReplyCancel},
		{"cancel wins over confirm", "no, cancela eso... mejor sí no", ReplyCancel},
		{"unrelated text", "¿cuántas incidencias hay abiertas?", ReplyNeither},
		{"token must match whole word", "noticia sobre simulacros", ReplyNeither},
		{"empty", "", ReplyNeither},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, Classify(tc.message))
		})
	}
}

func TestPendingCodec(t *testing.T) {
	proposal := &tools.Proposal{
		Action:  "create_category",
		Args:    json.RawMessage(`{"name": "Jardines"}`),
		Summary: "¿Confirmas crear la categoría 'Jardines'?",
	}

	encoded, err := EncodePending(proposal)
	require.NoError(t, err)

	message := &store.ChatMessage{
		Role:          store.MessageRoleAssistant,
		PendingAction: encoded,
	}
	decoded := DecodePending(message)
	require.NotNil(t, decoded)
	assert.Equal(t, proposal.Action, decoded.Action)
	assert.Equal(t, proposal.Summary, decoded.Summary)
	assert.JSONEq(t, string(proposal.Args), string(decoded.Args))

	// Decoding does not consume the message; a second pass yields the same
	// proposal.
	again := DecodePending(message)
	require.NotNil(t, again)
	assert.Equal(t, decoded.Action, again.Action)
	assert.Equal(t, decoded.Summary, again.Summary)
	assert.JSONEq(t, string(decoded.Args), string(again.Args))
}

func TestDecodePending_Defensive(t *testing.T) {
	testCases := []struct {
		name    string
		message *store.ChatMessage
	}{
		{"nil message", nil},
		{"user message", &store.ChatMessage{Role: store.MessageRoleUser, PendingAction: json.RawMessage(`{"action":"x"}`)}},
		{"no payload", &store.ChatMessage{Role: store.MessageRoleAssistant}},
		{"malformed payload", &store.ChatMessage{Role: store.MessageRoleAssistant, PendingAction: json.RawMessage(`{broken`)}},
		{"missing action", &store.ChatMessage{Role: store.MessageRoleAssistant, PendingAction: json.RawMessage(`{"summary":"?"}`)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Nil(t, DecodePending(tc.message))
		})
	}
}
