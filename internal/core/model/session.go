package model

// ClaudeProject describes one project directory under the log root.
type ClaudeProject struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	SessionCount int    `json:"session_count"`
	MessageCount int    `json:"message_count"`
	LastModified string `json:"last_modified"`
}

// ClaudeSession describes one session file. SessionId is derived from the
// file path (stable, unique); ActualSessionId is recovered from message
// content and may differ when files are renamed or copied.
type ClaudeSession struct {
	SessionId        string  `json:"session_id"`
	ActualSessionId  string  `json:"actual_session_id"`
	FilePath         string  `json:"file_path"`
	ProjectName      string  `json:"project_name"`
	MessageCount     int     `json:"message_count"`
	FirstMessageTime string  `json:"first_message_time"`
	LastMessageTime  string  `json:"last_message_time"`
	LastModified     string  `json:"last_modified"`
	HasToolUse       bool    `json:"has_tool_use"`
	HasErrors        bool    `json:"has_errors"`
	Summary          *string `json:"summary"`
}

// FileEvent is a change notification for a watched session file.
type FileEvent struct {
	Path      string
	Operation string
}
