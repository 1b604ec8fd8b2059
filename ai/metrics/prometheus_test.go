package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporter_RecordAndServe(t *testing.T) {
	exporter := NewExporter()

	exporter.RecordTurn(OutcomeAnswered, 120*time.Millisecond)
	exporter.RecordTurn(OutcomeConfirmAsked, 300*time.Millisecond)
	exporter.RecordToolCall("list_open_incidents", ToolResultOK)
	exporter.RecordToolCall("propose_create_category", ToolResultConfirmation)
	exporter.RecordLLMCall("openai", 120, 45, 800*time.Millisecond)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/metrics", nil)
	exporter.Handler().ServeHTTP(recorder, request)

	require.Equal(t, 200, recorder.Code)
	body, err := io.ReadAll(recorder.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, "micondominio_assistant_turns_total")
	assert.Contains(t, text, `outcome="answered"`)
	assert.Contains(t, text, "micondominio_assistant_tool_calls_total")
	assert.Contains(t, text, `tool_name="list_open_incidents"`)
	assert.Contains(t, text, "micondominio_assistant_llm_tokens_total")
	assert.Contains(t, text, `token_type="prompt"`)
	assert.Contains(t, text, "micondominio_assistant_llm_latency_seconds")
	assert.Contains(t, text, `provider="openai"`)
}

func TestExporter_IsolatedRegistry(t *testing.T) {
	// Two exporters must not collide on metric registration.
	first := NewExporter()
	second := NewExporter()
	first.RecordTurn(OutcomeFailed, time.Millisecond)
	second.RecordTurn(OutcomeFailed, time.Millisecond)
}
