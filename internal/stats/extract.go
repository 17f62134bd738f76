package stats

import (
	"github.com/penwyp/go-claude-history/internal/core/model"
	"github.com/penwyp/go-claude-history/internal/util"
)

// ExtractTokenUsage resolves the usage tuple of one message. Sources are
// checked in order: the message-level usage object wins outright when
// present; otherwise a usage object nested in the content value seeds the
// fields, a usage object on the tool result overwrites them (tool-run usage
// is more authoritative), and a bare totalTokens on the tool result is
// attributed to output for assistant messages and input otherwise, but only
// when neither input nor output was resolved above. The override order is
// load-bearing: different tool integrations report usage at different
// levels and the totals change if it is reordered.
func ExtractTokenUsage(message *model.ClaudeMessage) model.TokenUsage {
	if message.Usage != nil {
		return *message.Usage
	}

	var usage model.TokenUsage

	if usageObj, ok := util.ObjValue(message.Content, "usage"); ok {
		if input, ok := util.ObjUint32(usageObj, "input_tokens"); ok {
			usage.InputTokens = &input
		}
		if output, ok := util.ObjUint32(usageObj, "output_tokens"); ok {
			usage.OutputTokens = &output
		}
		if tier, ok := util.ObjString(usageObj, "service_tier"); ok {
			usage.ServiceTier = &tier
		}
		if cacheCreation, ok := util.ObjUint32(usageObj, "cache_creation_input_tokens"); ok {
			usage.CacheCreationInputTokens = &cacheCreation
		}
		if cacheRead, ok := util.ObjUint32(usageObj, "cache_read_input_tokens"); ok {
			usage.CacheReadInputTokens = &cacheRead
		}
	}

	if message.ToolUseResult != nil {
		if usageObj, ok := util.ObjValue(message.ToolUseResult, "usage"); ok {
			if input, ok := util.ObjUint32(usageObj, "input_tokens"); ok {
				usage.InputTokens = &input
			}
			if output, ok := util.ObjUint32(usageObj, "output_tokens"); ok {
				usage.OutputTokens = &output
			}
			if cacheCreation, ok := util.ObjUint32(usageObj, "cache_creation_input_tokens"); ok {
				usage.CacheCreationInputTokens = &cacheCreation
			}
			if cacheRead, ok := util.ObjUint32(usageObj, "cache_read_input_tokens"); ok {
				usage.CacheReadInputTokens = &cacheRead
			}
		}

		if totalTokens, ok := util.ObjUint32(message.ToolUseResult, "totalTokens"); ok {
			if usage.InputTokens == nil && usage.OutputTokens == nil {
				if message.Type == "assistant" {
					usage.OutputTokens = &totalTokens
				} else {
					usage.InputTokens = &totalTokens
				}
			}
		}
	}

	return usage
}
