package session

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/penwyp/go-claude-history/internal/core/model"
	"github.com/penwyp/go-claude-history/internal/data/parser"
	"github.com/penwyp/go-claude-history/internal/data/scanner"
	"github.com/penwyp/go-claude-history/internal/data/walker"
	"github.com/penwyp/go-claude-history/internal/util"
)

const (
	defaultEditsLimit = 20
)

// sessionEdits is the per-file partial result of the edit scan.
type sessionEdits struct {
	edits     []model.RecentFileEdit
	cwdCounts map[string]int
}

// scanFileForEdits replays the edit/write tool events recorded in one
// session file. The detection branches are not mutually exclusive: a record
// carrying both a create-type result and an edits array emits both events.
func scanFileForEdits(path string) (sessionEdits, error) {
	result := sessionEdits{
		edits:     make([]model.RecentFileEdit, 0, 16),
		cwdCounts: make(map[string]int),
	}

	err := parser.ForEachEntry(path, func(lineNum int, entry *model.RawLogEntry) {
		timestamp := entry.Timestamp
		sessionId := entry.SessionId
		if sessionId == "" {
			sessionId = "unknown"
		}
		var cwd *string
		if entry.Cwd != "" {
			c := entry.Cwd
			cwd = &c
			result.cwdCounts[c]++
		}

		if entry.ToolUseResult != nil {
			toolResult := entry.ToolUseResult

			// Write/Create tool results (type: "create")
			if kind, _ := util.ObjString(toolResult, "type"); kind == "create" {
				filePath, okPath := util.ObjString(toolResult, "filePath")
				content, okContent := util.ObjString(toolResult, "content")
				if okPath && okContent {
					result.edits = append(result.edits, model.RecentFileEdit{
						FilePath:           filePath,
						Timestamp:          timestamp,
						SessionId:          sessionId,
						OperationType:      "write",
						ContentAfterChange: content,
						LinesAdded:         util.CountLines(content),
						Cwd:                cwd,
					})
				}
			}

			// Edit tool results
			if filePath, ok := util.ObjString(toolResult, "filePath"); ok {
				if editsVal, hasEdits := util.ObjValue(toolResult, "edits"); hasEdits {
					// Multi-edit format: replay each substitution in order
					if original, okOrig := util.ObjString(toolResult, "originalFile"); okOrig {
						content := original
						linesAdded := 0
						linesRemoved := 0

						if editsArr, okArr := util.AsArray(editsVal); okArr {
							for _, edit := range editsArr {
								oldStr, okOld := util.ObjString(edit, "old_string")
								newStr, okNew := util.ObjString(edit, "new_string")
								if okOld && okNew {
									content = strings.Replace(content, oldStr, newStr, 1)
									linesRemoved += util.CountLines(oldStr)
									linesAdded += util.CountLines(newStr)
								}
							}
						}

						orig := original
						result.edits = append(result.edits, model.RecentFileEdit{
							FilePath:           filePath,
							Timestamp:          timestamp,
							SessionId:          sessionId,
							OperationType:      "edit",
							ContentAfterChange: content,
							OriginalContent:    &orig,
							LinesAdded:         linesAdded,
							LinesRemoved:       linesRemoved,
							Cwd:                cwd,
						})
					}
				} else {
					// Single edit format
					oldStr, okOld := util.ObjString(toolResult, "oldString")
					newStr, okNew := util.ObjString(toolResult, "newString")
					if okOld && okNew {
						if original, okOrig := util.ObjString(toolResult, "originalFile"); okOrig {
							content := strings.Replace(original, oldStr, newStr, 1)

							orig := original
							result.edits = append(result.edits, model.RecentFileEdit{
								FilePath:           filePath,
								Timestamp:          timestamp,
								SessionId:          sessionId,
								OperationType:      "edit",
								ContentAfterChange: content,
								OriginalContent:    &orig,
								LinesAdded:         util.CountLines(newStr),
								LinesRemoved:       util.CountLines(oldStr),
								Cwd:                cwd,
							})
						}
					}
				}
			}
		}

		// Write tool invocations carry the content in their input payload
		if entry.ToolUse != nil {
			if name, _ := util.ObjString(entry.ToolUse, "name"); name == "Write" {
				if input, ok := util.ObjValue(entry.ToolUse, "input"); ok {
					filePath, okPath := util.ObjString(input, "file_path")
					content, okContent := util.ObjString(input, "content")
					if okPath && okContent {
						result.edits = append(result.edits, model.RecentFileEdit{
							FilePath:           filePath,
							Timestamp:          timestamp,
							SessionId:          sessionId,
							OperationType:      "write",
							ContentAfterChange: content,
							LinesAdded:         util.CountLines(content),
							Cwd:                cwd,
						})
					}
				}
			}
		}
	})
	if err != nil {
		return sessionEdits{}, err
	}
	return result, nil
}

// GetRecentEdits reconstructs the latest content of every file touched
// during a project's sessions. Edits are filtered to the project's most
// frequent working directory, deduplicated latest-wins per file path and
// paginated newest first. TotalEditsCount is pre-dedup, post-filter.
func GetRecentEdits(projectPath string, offset, limit, concurrency int) (*model.PaginatedRecentEdits, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultEditsLimit
	}

	files, err := scanner.NewFileScanner(projectPath).Scan()
	if err != nil {
		return nil, fmt.Errorf("scan project %s: %w", projectPath, err)
	}

	start := time.Now()
	partials := walker.Collect(walker.Process(files, concurrency, scanFileForEdits))

	var allEdits []model.RecentFileEdit
	cwdCounts := make(map[string]int)
	for _, partial := range partials {
		allEdits = append(allEdits, partial.edits...)
		for cwd, count := range partial.cwdCounts {
			cwdCounts[cwd] += count
		}
	}

	// The most frequent cwd across all sessions is the project directory.
	// Ties are broken by map iteration order, which is unspecified.
	var projectCwd *string
	if len(cwdCounts) > 0 {
		top := lo.MaxBy(lo.Entries(cwdCounts), func(a, b lo.Entry[string, int]) bool {
			return a.Value > b.Value
		})
		projectCwd = &top.Key
	}

	filtered := allEdits
	if projectCwd != nil {
		cwdNorm := normalizePath(*projectCwd)
		filtered = lo.Filter(allEdits, func(edit model.RecentFileEdit, _ int) bool {
			return strings.HasPrefix(normalizePath(edit.FilePath), cwdNorm)
		})
	}

	totalEditsCount := len(filtered)

	// Newest first, then keep the first occurrence per file path
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp > filtered[j].Timestamp
	})

	latestByFile := make(map[string]model.RecentFileEdit)
	for _, edit := range filtered {
		if _, seen := latestByFile[edit.FilePath]; !seen {
			latestByFile[edit.FilePath] = edit
		}
	}

	uniqueFiles := lo.Values(latestByFile)
	sort.SliceStable(uniqueFiles, func(i, j int) bool {
		return uniqueFiles[i].Timestamp > uniqueFiles[j].Timestamp
	})

	page := uniqueFiles
	if offset >= len(page) {
		page = nil
	} else {
		page = page[offset:]
	}
	if len(page) > limit {
		page = page[:limit]
	}

	util.LogDebug(fmt.Sprintf("Recent edits for %s: %d files, %d edits, %d unique, duration %v",
		projectPath, len(files), totalEditsCount, len(uniqueFiles), time.Since(start)))

	return &model.PaginatedRecentEdits{
		Files:            append([]model.RecentFileEdit{}, page...),
		TotalEditsCount:  totalEditsCount,
		UniqueFilesCount: len(uniqueFiles),
		ProjectCwd:       projectCwd,
		Offset:           offset,
		Limit:            limit,
		HasMore:          offset+len(page) < len(uniqueFiles),
	}, nil
}

// normalizePath lowercases paths on case-insensitive filesystems so the
// project-cwd prefix filter matches the platform's path semantics.
func normalizePath(p string) string {
	if runtime.GOOS == "windows" {
		return strings.ToLower(p)
	}
	return p
}
