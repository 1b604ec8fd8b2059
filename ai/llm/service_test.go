package llm

import (
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertMessages(t *testing.T) {
	messages := []Message{
		SystemPrompt("instrucciones"),
		UserMessage("hola"),
		{
			Role:    "assistant",
			Content: "",
			ToolCalls: []ToolCall{{
				ID:       "call_1",
				Type:     "function",
				Function: FunctionCall{Name: "list_categories", Arguments: "{}"},
			}},
		},
		ToolResultMessage("call_1", "list_categories", `{"count": 0}`),
	}

	converted := convertMessages(messages)
	require.Len(t, converted, 4)

	assert.Equal(t, openai.ChatMessageRoleSystem, converted[0].Role)
	assert.Equal(t, openai.ChatMessageRoleUser, converted[1].Role)

	assert.Equal(t, openai.ChatMessageRoleAssistant, converted[2].Role)
	require.Len(t, converted[2].ToolCalls, 1)
	assert.Equal(t, "call_1", converted[2].ToolCalls[0].ID)
	assert.Equal(t, "list_categories", converted[2].ToolCalls[0].Function.Name)

	assert.Equal(t, openai.ChatMessageRoleTool, converted[3].Role)
	assert.Equal(t, "call_1", converted[3].ToolCallID)
	assert.Equal(t, "list_categories", converted[3].Name)
}

func TestNewService_Defaults(t *testing.T) {
	svc, err := NewService(&Config{
		Provider: "openai",
		Model:    "gpt-4o",
		APIKey:   "test-key",
	})
	require.NoError(t, err)

	impl, ok := svc.(*service)
	require.True(t, ok)
	assert.Equal(t, 120, impl.timeout)
	assert.Equal(t, 2048, impl.maxTokens)
	assert.InDelta(t, 0.7, float64(impl.temperature), 0.001)
}

func TestDefaultBaseURL(t *testing.T) {
	assert.Equal(t, "https://custom.example.com/v1", defaultBaseURL("https://custom.example.com/v1", "https://api.deepseek.com"))
	assert.Equal(t, "https://api.deepseek.com", defaultBaseURL("", "https://api.deepseek.com"))
}
