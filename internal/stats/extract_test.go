package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-claude-history/internal/core/model"
)

func u32(v uint32) *uint32 { return &v }

func TestExtractTokenUsageMessageLevelWins(t *testing.T) {
	message := &model.ClaudeMessage{
		Type:  "assistant",
		Usage: &model.TokenUsage{InputTokens: u32(100), OutputTokens: u32(50)},
		// Nested usage must be ignored once message-level usage exists
		Content: map[string]any{
			"usage": map[string]any{"input_tokens": float64(999), "output_tokens": float64(999)},
		},
	}

	usage := ExtractTokenUsage(message)

	assert.Equal(t, uint32(100), *usage.InputTokens)
	assert.Equal(t, uint32(50), *usage.OutputTokens)
}

func TestExtractTokenUsageFromContent(t *testing.T) {
	message := &model.ClaudeMessage{
		Type: "assistant",
		Content: map[string]any{
			"usage": map[string]any{
				"input_tokens":                float64(200),
				"output_tokens":               float64(80),
				"cache_creation_input_tokens": float64(10),
				"cache_read_input_tokens":     float64(5),
				"service_tier":                "default",
			},
		},
	}

	usage := ExtractTokenUsage(message)

	assert.Equal(t, uint32(200), *usage.InputTokens)
	assert.Equal(t, uint32(80), *usage.OutputTokens)
	assert.Equal(t, uint32(10), *usage.CacheCreationInputTokens)
	assert.Equal(t, uint32(5), *usage.CacheReadInputTokens)
	require.NotNil(t, usage.ServiceTier)
	assert.Equal(t, "default", *usage.ServiceTier)
}

func TestExtractTokenUsageToolResultOverridesContent(t *testing.T) {
	message := &model.ClaudeMessage{
		Type: "user",
		Content: map[string]any{
			"usage": map[string]any{"input_tokens": float64(100), "output_tokens": float64(40)},
		},
		ToolUseResult: map[string]any{
			"usage": map[string]any{"input_tokens": float64(300), "output_tokens": float64(120)},
		},
	}

	usage := ExtractTokenUsage(message)

	assert.Equal(t, uint32(300), *usage.InputTokens, "tool result usage is more authoritative")
	assert.Equal(t, uint32(120), *usage.OutputTokens)
}

func TestExtractTokenUsageTotalTokensFallback(t *testing.T) {
	tests := []struct {
		name        string
		messageType string
		wantInput   *uint32
		wantOutput  *uint32
	}{
		{
			name:        "assistant attributes to output",
			messageType: "assistant",
			wantOutput:  u32(500),
		},
		{
			name:        "user attributes to input",
			messageType: "user",
			wantInput:   u32(500),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message := &model.ClaudeMessage{
				Type:          tt.messageType,
				ToolUseResult: map[string]any{"totalTokens": float64(500)},
			}

			usage := ExtractTokenUsage(message)

			assert.Equal(t, tt.wantInput, usage.InputTokens)
			assert.Equal(t, tt.wantOutput, usage.OutputTokens)
		})
	}
}

func TestExtractTokenUsageTotalTokensSkippedWhenResolved(t *testing.T) {
	message := &model.ClaudeMessage{
		Type: "assistant",
		Content: map[string]any{
			"usage": map[string]any{"input_tokens": float64(100)},
		},
		ToolUseResult: map[string]any{"totalTokens": float64(500)},
	}

	usage := ExtractTokenUsage(message)

	assert.Equal(t, uint32(100), *usage.InputTokens)
	assert.Nil(t, usage.OutputTokens, "totalTokens only applies when both input and output are unresolved")
}

func TestExtractTokenUsageNothingPresent(t *testing.T) {
	message := &model.ClaudeMessage{Type: "user", Content: "plain text"}

	usage := ExtractTokenUsage(message)

	assert.True(t, usage.IsEmpty())
	assert.Equal(t, uint64(0), usage.Total())
}
