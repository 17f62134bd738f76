package stats

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/penwyp/go-claude-history/internal/core/model"
	"github.com/penwyp/go-claude-history/internal/data/parser"
	"github.com/penwyp/go-claude-history/internal/data/scanner"
	"github.com/penwyp/go-claude-history/internal/data/walker"
	"github.com/penwyp/go-claude-history/internal/util"
)

type heatKey struct {
	hour uint8
	day  uint8
}

type heatAccum struct {
	count  uint32
	tokens uint64
}

type toolAccum struct {
	usage   uint32
	success uint32
}

type modelAccum struct {
	messages      uint32
	tokens        uint64
	input         uint64
	output        uint64
	cacheCreation uint64
	cacheRead     uint64
}

type dailyAccum struct {
	tokens   uint64
	input    uint64
	output   uint64
	messages int
}

// sessionAggregate is the per-file partial result of a stats scan. Workers
// fill one each; the reduction step merges them with plain sums, so the
// merge is associative and worker order cannot change the final numbers.
type sessionAggregate struct {
	messages   int
	timestamps []time.Time
	daily      map[string]*dailyAccum
	activity   map[heatKey]*heatAccum
	tools      map[string]*toolAccum
	models     map[string]*modelAccum
	dist       model.TokenDistribution
	first      time.Time
	last       time.Time
}

func newSessionAggregate() *sessionAggregate {
	return &sessionAggregate{
		daily:    make(map[string]*dailyAccum),
		activity: make(map[heatKey]*heatAccum),
		tools:    make(map[string]*toolAccum),
		models:   make(map[string]*modelAccum),
	}
}

// scanSessionFile runs the full normalize+extract pass over one session file.
func scanSessionFile(path string) (*sessionAggregate, error) {
	agg := newSessionAggregate()

	err := parser.ForEachEntry(path, func(lineNum int, entry *model.RawLogEntry) {
		message, ok := parser.Canonicalize(entry, lineNum)
		if !ok {
			return
		}
		agg.messages++

		if ts, err := time.Parse(time.RFC3339, message.Timestamp); err == nil {
			ts = ts.UTC()
			agg.timestamps = append(agg.timestamps, ts)

			if agg.first.IsZero() || ts.Before(agg.first) {
				agg.first = ts
			}
			if agg.last.IsZero() || ts.After(agg.last) {
				agg.last = ts
			}

			usage := ExtractTokenUsage(message)
			input := uint64(deref(usage.InputTokens))
			output := uint64(deref(usage.OutputTokens))
			cacheCreation := uint64(deref(usage.CacheCreationInputTokens))
			cacheRead := uint64(deref(usage.CacheReadInputTokens))
			tokens := input + output + cacheCreation + cacheRead

			key := heatKey{hour: uint8(ts.Hour()), day: uint8(ts.Weekday())}
			cell := agg.activity[key]
			if cell == nil {
				cell = &heatAccum{}
				agg.activity[key] = cell
			}
			cell.count++
			cell.tokens += tokens

			date := ts.Format("2006-01-02")
			day := agg.daily[date]
			if day == nil {
				day = &dailyAccum{}
				agg.daily[date] = day
			}
			day.tokens += tokens
			day.input += input
			day.output += output
			day.messages++

			agg.dist.Input += input
			agg.dist.Output += output
			agg.dist.CacheCreation += cacheCreation
			agg.dist.CacheRead += cacheRead

			if message.Model != "" {
				m := agg.models[message.Model]
				if m == nil {
					m = &modelAccum{}
					agg.models[message.Model] = m
				}
				m.messages++
				m.tokens += tokens
				m.input += input
				m.output += output
				m.cacheCreation += cacheCreation
				m.cacheRead += cacheRead
			}
		}

		// Tool invocations inside assistant content arrays carry no error
		// signal, so this path counts every sighting as a success. The
		// top-level toolUse path below does see the result's error flag and
		// counts success conditionally.
		if message.Type == "assistant" {
			if contentArr, ok := util.AsArray(message.Content); ok {
				for _, item := range contentArr {
					if itemType, _ := util.ObjString(item, "type"); itemType == "tool_use" {
						if name, ok := util.ObjString(item, "name"); ok {
							tool := agg.tool(name)
							tool.usage++
							tool.success++
						}
					}
				}
			}
		}

		if message.ToolUse != nil {
			if name, ok := util.ObjString(message.ToolUse, "name"); ok {
				tool := agg.tool(name)
				tool.usage++
				if message.ToolUseResult != nil {
					isError, _ := util.ObjBool(message.ToolUseResult, "is_error")
					if !isError {
						tool.success++
					}
				}
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return agg, nil
}

func (a *sessionAggregate) tool(name string) *toolAccum {
	t := a.tools[name]
	if t == nil {
		t = &toolAccum{}
		a.tools[name] = t
	}
	return t
}

func deref(v *uint32) uint32 {
	if v == nil {
		return 0
	}
	return *v
}

// GetSessionTokenStats sums the token usage of one session file.
func GetSessionTokenStats(sessionPath string) (*model.SessionTokenStats, error) {
	messages, err := parser.LoadMessages(sessionPath)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("no valid messages found in session %s", sessionPath)
	}

	stats := &model.SessionTokenStats{
		SessionId:   messages[0].SessionId,
		ProjectName: filepath.Base(filepath.Dir(sessionPath)),
	}

	for i := range messages {
		usage := ExtractTokenUsage(&messages[i])

		stats.TotalInputTokens += deref(usage.InputTokens)
		stats.TotalOutputTokens += deref(usage.OutputTokens)
		stats.TotalCacheCreationTokens += deref(usage.CacheCreationInputTokens)
		stats.TotalCacheReadTokens += deref(usage.CacheReadInputTokens)

		ts := messages[i].Timestamp
		if stats.FirstMessageTime == "" || ts < stats.FirstMessageTime {
			stats.FirstMessageTime = ts
		}
		if ts > stats.LastMessageTime {
			stats.LastMessageTime = ts
		}
	}

	stats.TotalTokens = stats.TotalInputTokens + stats.TotalOutputTokens +
		stats.TotalCacheCreationTokens + stats.TotalCacheReadTokens
	stats.MessageCount = len(messages)
	return stats, nil
}

// GetProjectTokenStats sums every session of a project, largest first.
// Unreadable or empty session files are skipped.
func GetProjectTokenStats(projectPath string, concurrency int) ([]model.SessionTokenStats, error) {
	files, err := scanner.NewFileScanner(projectPath).Scan()
	if err != nil {
		return nil, fmt.Errorf("scan project %s: %w", projectPath, err)
	}

	stats := walker.Collect(walker.Process(files, concurrency, func(file string) (model.SessionTokenStats, error) {
		s, err := GetSessionTokenStats(file)
		if err != nil {
			return model.SessionTokenStats{}, err
		}
		return *s, nil
	}))

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalTokens > stats[j].TotalTokens
	})
	return stats, nil
}

// GetProjectStatsSummary aggregates one project directory: daily stats,
// activity heatmap, tool usage, token distribution and active-duration
// totals across all of its sessions.
func GetProjectStatsSummary(projectPath string, concurrency int) (*model.ProjectStatsSummary, error) {
	if _, err := os.Stat(projectPath); err != nil {
		return nil, fmt.Errorf("project directory not found: %w", err)
	}

	files, err := scanner.NewFileScanner(projectPath).Scan()
	if err != nil {
		return nil, fmt.Errorf("scan project %s: %w", projectPath, err)
	}

	summary := &model.ProjectStatsSummary{
		ProjectName: filepath.Base(projectPath),
	}
	summary.TotalSessions = len(files)

	aggregates := walker.Collect(walker.Process(files, concurrency, scanSessionFile))

	daily := make(map[string]*dailyAccum)
	activity := make(map[heatKey]*heatAccum)
	tools := make(map[string]*toolAccum)
	sessionDates := make(map[string]struct{})
	var durations []int

	for _, agg := range aggregates {
		summary.TotalMessages += agg.messages
		summary.TokenDistribution.Input += agg.dist.Input
		summary.TokenDistribution.Output += agg.dist.Output
		summary.TokenDistribution.CacheCreation += agg.dist.CacheCreation
		summary.TokenDistribution.CacheRead += agg.dist.CacheRead

		mergeDaily(daily, agg.daily)
		mergeActivity(activity, agg.activity)
		mergeTools(tools, agg.tools)

		for date := range agg.daily {
			sessionDates[date] = struct{}{}
		}
		if len(agg.timestamps) > 0 {
			durations = append(durations, ActiveMinutes(agg.timestamps))
			sessionDates[agg.timestamps[0].Format("2006-01-02")] = struct{}{}
		}
	}

	summary.DailyStats = finalizeDaily(daily, sessionDates)
	summary.ActivityHeatmap = finalizeActivity(activity)
	summary.MostUsedTools = finalizeTools(tools)

	summary.TotalTokens = summary.TokenDistribution.Input + summary.TokenDistribution.Output +
		summary.TokenDistribution.CacheCreation + summary.TokenDistribution.CacheRead
	if summary.TotalSessions > 0 {
		summary.AvgTokensPerSession = summary.TotalTokens / uint64(summary.TotalSessions)
	}
	for _, d := range durations {
		summary.TotalSessionDuration += uint32(d)
	}
	if len(durations) > 0 {
		summary.AvgSessionDuration = summary.TotalSessionDuration / uint32(len(durations))
	}

	if len(summary.ActivityHeatmap) > 0 {
		top := lo.MaxBy(summary.ActivityHeatmap, func(a, b model.ActivityHeatmap) bool {
			return a.ActivityCount > b.ActivityCount
		})
		summary.MostActiveHour = top.Hour
	}

	return summary, nil
}

// GetSessionComparison positions one session against the other sessions of
// its project.
func GetSessionComparison(sessionId, projectPath string, concurrency int) (*model.SessionComparison, error) {
	allSessions, err := GetProjectTokenStats(projectPath, concurrency)
	if err != nil {
		return nil, err
	}

	target, found := lo.Find(allSessions, func(s model.SessionTokenStats) bool {
		return s.SessionId == sessionId
	})
	if !found {
		return nil, fmt.Errorf("session %s not found in project", sessionId)
	}

	var totalTokens uint64
	totalMessages := 0
	for _, s := range allSessions {
		totalTokens += uint64(s.TotalTokens)
		totalMessages += s.MessageCount
	}

	comparison := &model.SessionComparison{SessionId: sessionId}
	if totalTokens > 0 {
		comparison.PercentageOfProjectTokens = float32(target.TotalTokens) / float32(totalTokens) * 100.0
	}
	if totalMessages > 0 {
		comparison.PercentageOfProjectMessages = float32(target.MessageCount) / float32(totalMessages) * 100.0
	}

	// allSessions is already sorted by tokens descending
	for i, s := range allSessions {
		if s.SessionId == sessionId {
			comparison.RankByTokens = i + 1
			break
		}
	}

	byDuration := append([]model.SessionTokenStats{}, allSessions...)
	sort.SliceStable(byDuration, func(i, j int) bool {
		return wallClockSeconds(byDuration[i]) > wallClockSeconds(byDuration[j])
	})
	for i, s := range byDuration {
		if s.SessionId == sessionId {
			comparison.RankByDuration = i + 1
			break
		}
	}

	avgTokens := uint64(0)
	if len(allSessions) > 0 {
		avgTokens = totalTokens / uint64(len(allSessions))
	}
	comparison.IsAboveAverage = uint64(target.TotalTokens) > avgTokens

	return comparison, nil
}

func wallClockSeconds(s model.SessionTokenStats) int64 {
	start, err1 := time.Parse(time.RFC3339, s.FirstMessageTime)
	end, err2 := time.Parse(time.RFC3339, s.LastMessageTime)
	if err1 != nil || err2 != nil {
		return 0
	}
	return int64(end.Sub(start).Seconds())
}

// GetGlobalStatsSummary aggregates every project under the log root. The
// projects directory must exist; everything below it is best-effort.
func GetGlobalStatsSummary(claudePath string, concurrency int) (*model.GlobalStatsSummary, error) {
	projectsPath := filepath.Join(claudePath, "projects")
	if _, err := os.Stat(projectsPath); err != nil {
		return nil, fmt.Errorf("projects directory not found: %w", err)
	}

	projectDirs, err := scanner.NewFileScanner(projectsPath).ScanProjects()
	if err != nil {
		return nil, err
	}

	summary := &model.GlobalStatsSummary{}
	daily := make(map[string]*dailyAccum)
	activity := make(map[heatKey]*heatAccum)
	tools := make(map[string]*toolAccum)
	models := make(map[string]*modelAccum)
	sessionDates := make(map[string]struct{})
	var globalFirst, globalLast time.Time

	type projectTotals struct {
		sessions uint32
		messages uint32
		tokens   uint64
	}
	projectStats := make(map[string]*projectTotals)

	for _, projectDir := range projectDirs {
		projectName := filepath.Base(projectDir)
		summary.TotalProjects++

		files, err := scanner.NewFileScanner(projectDir).Scan()
		if err != nil {
			util.LogDebug(fmt.Sprintf("Skip project (scan error): %s - %v", projectDir, err))
			continue
		}

		totals := &projectTotals{sessions: uint32(len(files))}
		projectStats[projectName] = totals
		summary.TotalSessions += uint32(len(files))

		aggregates := walker.Collect(walker.Process(files, concurrency, scanSessionFile))

		for _, agg := range aggregates {
			summary.TotalMessages += uint32(agg.messages)
			totals.messages += uint32(agg.messages)

			tokens := agg.dist.Input + agg.dist.Output + agg.dist.CacheCreation + agg.dist.CacheRead
			summary.TotalTokens += tokens
			totals.tokens += tokens

			summary.TokenDistribution.Input += agg.dist.Input
			summary.TokenDistribution.Output += agg.dist.Output
			summary.TokenDistribution.CacheCreation += agg.dist.CacheCreation
			summary.TokenDistribution.CacheRead += agg.dist.CacheRead

			mergeDaily(daily, agg.daily)
			mergeActivity(activity, agg.activity)
			mergeTools(tools, agg.tools)
			mergeModels(models, agg.models)

			for date := range agg.daily {
				sessionDates[date] = struct{}{}
			}
			if len(agg.timestamps) > 0 {
				summary.TotalSessionDurationMinutes += uint64(ActiveMinutes(agg.timestamps))
			}
			if !agg.first.IsZero() && (globalFirst.IsZero() || agg.first.Before(globalFirst)) {
				globalFirst = agg.first
			}
			if !agg.last.IsZero() && (globalLast.IsZero() || agg.last.After(globalLast)) {
				globalLast = agg.last
			}
		}
	}

	summary.DailyStats = finalizeDaily(daily, sessionDates)
	summary.ActivityHeatmap = finalizeActivity(activity)
	summary.MostUsedTools = finalizeTools(tools)

	summary.ModelDistribution = lo.MapToSlice(models, func(name string, m *modelAccum) model.ModelStats {
		return model.ModelStats{
			ModelName:           name,
			MessageCount:        m.messages,
			TokenCount:          m.tokens,
			InputTokens:         m.input,
			OutputTokens:        m.output,
			CacheCreationTokens: m.cacheCreation,
			CacheReadTokens:     m.cacheRead,
		}
	})
	sort.SliceStable(summary.ModelDistribution, func(i, j int) bool {
		return summary.ModelDistribution[i].TokenCount > summary.ModelDistribution[j].TokenCount
	})

	summary.TopProjects = lo.MapToSlice(projectStats, func(name string, t *projectTotals) model.ProjectRanking {
		return model.ProjectRanking{
			ProjectName: name,
			Sessions:    t.sessions,
			Messages:    t.messages,
			Tokens:      t.tokens,
		}
	})
	sort.SliceStable(summary.TopProjects, func(i, j int) bool {
		return summary.TopProjects[i].Tokens > summary.TopProjects[j].Tokens
	})
	if len(summary.TopProjects) > 10 {
		summary.TopProjects = summary.TopProjects[:10]
	}

	if !globalFirst.IsZero() && !globalLast.IsZero() {
		first := globalFirst.Format(time.RFC3339)
		last := globalLast.Format(time.RFC3339)
		summary.DateRange.FirstMessage = &first
		summary.DateRange.LastMessage = &last
		summary.DateRange.DaysSpan = uint32(globalLast.Sub(globalFirst).Hours() / 24)
	}

	return summary, nil
}

func mergeDaily(dst map[string]*dailyAccum, src map[string]*dailyAccum) {
	for date, s := range src {
		d := dst[date]
		if d == nil {
			d = &dailyAccum{}
			dst[date] = d
		}
		d.tokens += s.tokens
		d.input += s.input
		d.output += s.output
		d.messages += s.messages
	}
}

func mergeActivity(dst map[heatKey]*heatAccum, src map[heatKey]*heatAccum) {
	for key, s := range src {
		d := dst[key]
		if d == nil {
			d = &heatAccum{}
			dst[key] = d
		}
		d.count += s.count
		d.tokens += s.tokens
	}
}

func mergeTools(dst map[string]*toolAccum, src map[string]*toolAccum) {
	for name, s := range src {
		d := dst[name]
		if d == nil {
			d = &toolAccum{}
			dst[name] = d
		}
		d.usage += s.usage
		d.success += s.success
	}
}

func mergeModels(dst map[string]*modelAccum, src map[string]*modelAccum) {
	for name, s := range src {
		d := dst[name]
		if d == nil {
			d = &modelAccum{}
			dst[name] = d
		}
		d.messages += s.messages
		d.tokens += s.tokens
		d.input += s.input
		d.output += s.output
		d.cacheCreation += s.cacheCreation
		d.cacheRead += s.cacheRead
	}
}

// finalizeDaily sorts daily buckets by date and derives the per-day fields
// that only make sense once accumulation is done. ActiveHours is a coarse
// proxy (one hour per ten messages, clamped to [1,24]), not a measurement.
func finalizeDaily(daily map[string]*dailyAccum, sessionDates map[string]struct{}) []model.DailyStats {
	result := lo.MapToSlice(daily, func(date string, d *dailyAccum) model.DailyStats {
		stats := model.DailyStats{
			Date:         date,
			TotalTokens:  d.tokens,
			InputTokens:  d.input,
			OutputTokens: d.output,
			MessageCount: d.messages,
		}
		if _, ok := sessionDates[date]; ok {
			stats.SessionCount = 1
		}
		if d.messages > 0 {
			stats.ActiveHours = min(24, max(1, d.messages/10))
		}
		return stats
	})
	sort.SliceStable(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result
}

func finalizeActivity(activity map[heatKey]*heatAccum) []model.ActivityHeatmap {
	result := lo.MapToSlice(activity, func(key heatKey, cell *heatAccum) model.ActivityHeatmap {
		return model.ActivityHeatmap{
			Hour:          key.hour,
			Day:           key.day,
			ActivityCount: cell.count,
			TokensUsed:    cell.tokens,
		}
	})
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Day != result[j].Day {
			return result[i].Day < result[j].Day
		}
		return result[i].Hour < result[j].Hour
	})
	return result
}

func finalizeTools(tools map[string]*toolAccum) []model.ToolUsageStats {
	result := lo.MapToSlice(tools, func(name string, t *toolAccum) model.ToolUsageStats {
		stats := model.ToolUsageStats{
			ToolName:   name,
			UsageCount: t.usage,
		}
		if t.usage > 0 {
			stats.SuccessRate = float32(t.success) / float32(t.usage) * 100.0
		}
		return stats
	})
	sort.SliceStable(result, func(i, j int) bool { return result[i].UsageCount > result[j].UsageCount })
	return result
}
