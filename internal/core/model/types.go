package model

// RawLogEntry is the tolerant schema-on-read view of one JSONL line.
// Session logs carry heterogeneous entry kinds (user, assistant, summary,
// system, progress, queue-operation, file-history-snapshot, ...) in a single
// flat shape; which fields are present depends on Type. Absence is normal
// and unknown fields are ignored.
type RawLogEntry struct {
	Uuid       string  `json:"uuid,omitempty"`
	ParentUuid *string `json:"parentUuid,omitempty"`
	SessionId  string  `json:"sessionId,omitempty"`
	Timestamp  string  `json:"timestamp,omitempty"`
	Type       string  `json:"type"`

	// Summary entries
	Summary  string `json:"summary,omitempty"`
	LeafUuid string `json:"leafUuid,omitempty"`

	// Regular message entries
	Message       *MessageContent `json:"message,omitempty"`
	ToolUse       any             `json:"toolUse,omitempty"`
	ToolUseResult any             `json:"toolUseResult,omitempty"`
	IsSidechain   *bool           `json:"isSidechain,omitempty"`
	Cwd           string          `json:"cwd,omitempty"`

	// Cost and performance metrics
	CostUSD    *float64 `json:"costUSD,omitempty"`
	DurationMs *uint64  `json:"durationMs,omitempty"`

	// File history snapshot entries
	MessageId        string `json:"messageId,omitempty"`
	Snapshot         any    `json:"snapshot,omitempty"`
	IsSnapshotUpdate *bool  `json:"isSnapshotUpdate,omitempty"`

	// Progress entries
	Data            any    `json:"data,omitempty"`
	ToolUseID       string `json:"toolUseID,omitempty"`
	ParentToolUseID string `json:"parentToolUseID,omitempty"`

	// Queue operation entries
	Operation string `json:"operation,omitempty"`

	// System entries
	Subtype   string `json:"subtype,omitempty"`
	Level     string `json:"level,omitempty"`
	HookCount *uint32 `json:"hookCount,omitempty"`
	HookInfos any    `json:"hookInfos,omitempty"`

	UserType  string `json:"userType,omitempty"`
	GitBranch string `json:"gitBranch,omitempty"`
	Version   string `json:"version,omitempty"`
}

// MessageContent is the embedded payload of a user/assistant entry.
// Content is kept as a parsed JSON value: producers emit either a plain
// string or an array of typed content items, and downstream consumers
// (search, tool-use scan, nested usage extraction) traverse it generically.
type MessageContent struct {
	Role       string      `json:"role,omitempty"`
	Content    any         `json:"content,omitempty"`
	Id         string      `json:"id,omitempty"`
	Model      string      `json:"model,omitempty"`
	StopReason *string     `json:"stop_reason,omitempty"`
	Usage      *TokenUsage `json:"usage,omitempty"`
}

// TokenUsage holds the four usage counters of one model invocation.
// All fields are optional pointers: absent is distinct from zero, and an
// all-absent usage is valid (it contributes nothing to sums).
type TokenUsage struct {
	InputTokens              *uint32 `json:"input_tokens,omitempty"`
	OutputTokens             *uint32 `json:"output_tokens,omitempty"`
	CacheCreationInputTokens *uint32 `json:"cache_creation_input_tokens,omitempty"`
	CacheReadInputTokens     *uint32 `json:"cache_read_input_tokens,omitempty"`
	ServiceTier              *string `json:"service_tier,omitempty"`
}

// Total sums the present counters.
func (u *TokenUsage) Total() uint64 {
	if u == nil {
		return 0
	}
	var total uint64
	for _, v := range []*uint32{u.InputTokens, u.OutputTokens, u.CacheCreationInputTokens, u.CacheReadInputTokens} {
		if v != nil {
			total += uint64(*v)
		}
	}
	return total
}

// IsEmpty reports whether no counter is present.
func (u *TokenUsage) IsEmpty() bool {
	return u == nil || (u.InputTokens == nil && u.OutputTokens == nil &&
		u.CacheCreationInputTokens == nil && u.CacheReadInputTokens == nil)
}
