package model

// SessionTokenStats summarizes one session file.
type SessionTokenStats struct {
	SessionId                string `json:"session_id"`
	ProjectName              string `json:"project_name"`
	TotalInputTokens         uint32 `json:"total_input_tokens"`
	TotalOutputTokens        uint32 `json:"total_output_tokens"`
	TotalCacheCreationTokens uint32 `json:"total_cache_creation_tokens"`
	TotalCacheReadTokens     uint32 `json:"total_cache_read_tokens"`
	TotalTokens              uint32 `json:"total_tokens"`
	MessageCount             int    `json:"message_count"`
	FirstMessageTime         string `json:"first_message_time"`
	LastMessageTime          string `json:"last_message_time"`
}

// DailyStats accumulates per-calendar-date activity (UTC buckets).
type DailyStats struct {
	Date         string `json:"date"`
	TotalTokens  uint64 `json:"total_tokens"`
	InputTokens  uint64 `json:"input_tokens"`
	OutputTokens uint64 `json:"output_tokens"`
	MessageCount int    `json:"message_count"`
	SessionCount int    `json:"session_count"`
	ActiveHours  int    `json:"active_hours"`
}

// ToolUsageStats counts invocations of one tool.
type ToolUsageStats struct {
	ToolName         string   `json:"tool_name"`
	UsageCount       uint32   `json:"usage_count"`
	SuccessRate      float32  `json:"success_rate"`
	AvgExecutionTime *float32 `json:"avg_execution_time"`
}

// ActivityHeatmap is one hour-by-weekday activity cell.
// Day is days from Sunday (0..6), Hour is 0..23.
type ActivityHeatmap struct {
	Hour          uint8  `json:"hour"`
	Day           uint8  `json:"day"`
	ActivityCount uint32 `json:"activity_count"`
	TokensUsed    uint64 `json:"tokens_used"`
}

// TokenDistribution splits a token total by kind.
type TokenDistribution struct {
	Input         uint64 `json:"input"`
	Output        uint64 `json:"output"`
	CacheCreation uint64 `json:"cache_creation"`
	CacheRead     uint64 `json:"cache_read"`
}

// ProjectStatsSummary is the full aggregate for one project directory.
type ProjectStatsSummary struct {
	ProjectName          string            `json:"project_name"`
	TotalSessions        int               `json:"total_sessions"`
	TotalMessages        int               `json:"total_messages"`
	TotalTokens          uint64            `json:"total_tokens"`
	AvgTokensPerSession  uint64            `json:"avg_tokens_per_session"`
	AvgSessionDuration   uint32            `json:"avg_session_duration"`
	TotalSessionDuration uint32            `json:"total_session_duration"`
	MostActiveHour       uint8             `json:"most_active_hour"`
	MostUsedTools        []ToolUsageStats  `json:"most_used_tools"`
	DailyStats           []DailyStats      `json:"daily_stats"`
	ActivityHeatmap      []ActivityHeatmap `json:"activity_heatmap"`
	TokenDistribution    TokenDistribution `json:"token_distribution"`
}

// SessionComparison positions one session against its project.
type SessionComparison struct {
	SessionId                   string  `json:"session_id"`
	PercentageOfProjectTokens   float32 `json:"percentage_of_project_tokens"`
	PercentageOfProjectMessages float32 `json:"percentage_of_project_messages"`
	RankByTokens                int     `json:"rank_by_tokens"`
	RankByDuration              int     `json:"rank_by_duration"`
	IsAboveAverage              bool    `json:"is_above_average"`
}

// DateRange spans the first and last observed message timestamps.
type DateRange struct {
	FirstMessage *string `json:"first_message"`
	LastMessage  *string `json:"last_message"`
	DaysSpan     uint32  `json:"days_span"`
}

// ModelStats rolls up usage per model name.
type ModelStats struct {
	ModelName           string `json:"model_name"`
	MessageCount        uint32 `json:"message_count"`
	TokenCount          uint64 `json:"token_count"`
	InputTokens         uint64 `json:"input_tokens"`
	OutputTokens        uint64 `json:"output_tokens"`
	CacheCreationTokens uint64 `json:"cache_creation_tokens"`
	CacheReadTokens     uint64 `json:"cache_read_tokens"`
}

// ProjectRanking is one row of the global top-projects table.
type ProjectRanking struct {
	ProjectName string `json:"project_name"`
	Sessions    uint32 `json:"sessions"`
	Messages    uint32 `json:"messages"`
	Tokens      uint64 `json:"tokens"`
}

// GlobalStatsSummary is the aggregate over the whole log root.
type GlobalStatsSummary struct {
	TotalProjects               uint32            `json:"total_projects"`
	TotalSessions               uint32            `json:"total_sessions"`
	TotalMessages               uint32            `json:"total_messages"`
	TotalTokens                 uint64            `json:"total_tokens"`
	TotalSessionDurationMinutes uint64            `json:"total_session_duration_minutes"`
	DateRange                   DateRange         `json:"date_range"`
	TokenDistribution           TokenDistribution `json:"token_distribution"`
	DailyStats                  []DailyStats      `json:"daily_stats"`
	ActivityHeatmap             []ActivityHeatmap `json:"activity_heatmap"`
	MostUsedTools               []ToolUsageStats  `json:"most_used_tools"`
	ModelDistribution           []ModelStats      `json:"model_distribution"`
	TopProjects                 []ProjectRanking  `json:"top_projects"`
}
