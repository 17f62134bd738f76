package model

// ClaudeMessage is the canonical, identity-complete view of a user/assistant
// log entry. Uuid, SessionId and Timestamp are guaranteed non-empty after
// canonicalization; everything else is carried through as-is.
type ClaudeMessage struct {
	Uuid          string      `json:"uuid"`
	ParentUuid    *string     `json:"parentUuid,omitempty"`
	SessionId     string      `json:"sessionId"`
	Timestamp     string      `json:"timestamp"`
	Type          string      `json:"type"`
	Content       any         `json:"content,omitempty"`
	ToolUse       any         `json:"toolUse,omitempty"`
	ToolUseResult any         `json:"toolUseResult,omitempty"`
	IsSidechain   *bool       `json:"isSidechain,omitempty"`
	Usage         *TokenUsage `json:"usage,omitempty"`
	Role          string      `json:"role,omitempty"`
	MessageId     string      `json:"message_id,omitempty"`
	Model         string      `json:"model,omitempty"`
	StopReason    *string     `json:"stop_reason,omitempty"`
	Cwd           string      `json:"cwd,omitempty"`
}

// MessagePage is one slice of a session's messages.
type MessagePage struct {
	Messages   []ClaudeMessage `json:"messages"`
	TotalCount int             `json:"total_count"`
	HasMore    bool            `json:"has_more"`
	NextOffset int             `json:"next_offset"`
}
