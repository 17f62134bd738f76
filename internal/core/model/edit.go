package model

// RecentFileEdit is one reconstructed edit/write event recovered from a
// session log. Many may exist per file path during a scan; only the
// latest-by-timestamp instance per path survives into the final result.
type RecentFileEdit struct {
	FilePath           string  `json:"file_path"`
	Timestamp          string  `json:"timestamp"`
	SessionId          string  `json:"session_id"`
	OperationType      string  `json:"operation_type"` // "edit" or "write"
	ContentAfterChange string  `json:"content_after_change"`
	OriginalContent    *string `json:"original_content"`
	LinesAdded         int     `json:"lines_added"`
	LinesRemoved       int     `json:"lines_removed"`
	Cwd                *string `json:"cwd"`
}

// PaginatedRecentEdits is one page of deduplicated recent edits.
// TotalEditsCount counts all matching edit events before deduplication;
// UniqueFilesCount counts distinct file paths after it.
type PaginatedRecentEdits struct {
	Files            []RecentFileEdit `json:"files"`
	TotalEditsCount  int              `json:"total_edits_count"`
	UniqueFilesCount int              `json:"unique_files_count"`
	ProjectCwd       *string          `json:"project_cwd"`
	Offset           int              `json:"offset"`
	Limit            int              `json:"limit"`
	HasMore          bool             `json:"has_more"`
}
