package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/penwyp/go-claude-history/internal/core/model"
	"github.com/penwyp/go-claude-history/internal/data/parser"
	"github.com/penwyp/go-claude-history/internal/data/scanner"
	"github.com/penwyp/go-claude-history/internal/data/walker"
	"github.com/penwyp/go-claude-history/internal/util"
)

// searchInValue walks a parsed JSON value looking for a lowercased substring.
// String leaves match on containment, containers match if any child matches,
// other scalars never match. Traversing the value tree directly avoids
// reserializing every message just to grep it.
func searchInValue(value any, queryLower string) bool {
	switch v := value.(type) {
	case string:
		return strings.Contains(strings.ToLower(v), queryLower)
	case []any:
		for _, item := range v {
			if searchInValue(item, queryLower) {
				return true
			}
		}
	case map[string]any:
		for _, item := range v {
			if searchInValue(item, queryLower) {
				return true
			}
		}
	}
	return false
}

// searchInFile scans one session file for user/assistant messages whose
// content contains the query. Unreadable files yield no results.
func searchInFile(path string, queryLower string) []model.ClaudeMessage {
	mf, err := util.OpenMapped(path)
	if err != nil {
		return nil
	}
	defer mf.Close()

	var results []model.ClaudeMessage

	for lineNum, r := range util.FindLineRanges(mf.Data) {
		entry, err := parser.ParseLine(mf.Data[r.Start:r.End])
		if err != nil {
			continue
		}

		if entry.Type != "user" && entry.Type != "assistant" {
			continue
		}
		if entry.Message == nil {
			continue
		}
		if !searchInValue(entry.Message.Content, queryLower) {
			continue
		}

		msg := model.ClaudeMessage{
			Uuid:          entry.Uuid,
			ParentUuid:    entry.ParentUuid,
			SessionId:     entry.SessionId,
			Timestamp:     entry.Timestamp,
			Type:          entry.Type,
			Content:       entry.Message.Content,
			ToolUse:       entry.ToolUse,
			ToolUseResult: entry.ToolUseResult,
			IsSidechain:   entry.IsSidechain,
			Usage:         entry.Message.Usage,
			Role:          entry.Message.Role,
			MessageId:     entry.Message.Id,
			Model:         entry.Message.Model,
			StopReason:    entry.Message.StopReason,
			Cwd:           entry.Cwd,
		}
		if msg.Uuid == "" {
			msg.Uuid = fmt.Sprintf("%s-line-%d", uuid.New(), lineNum+1)
		}
		if msg.SessionId == "" {
			msg.SessionId = "unknown-session"
		}
		if msg.Timestamp == "" {
			msg.Timestamp = time.Now().UTC().Format(time.RFC3339)
		}
		results = append(results, msg)
	}

	return results
}

// SearchMessages searches every session under the log root for a
// case-insensitive substring. A missing projects tree yields an empty
// result, not an error. Per-file line order is preserved; cross-file order
// depends on worker completion and is unspecified.
func SearchMessages(claudePath, query string, concurrency int) ([]model.ClaudeMessage, error) {
	projectsPath := filepath.Join(claudePath, "projects")
	if _, err := os.Stat(projectsPath); err != nil {
		return []model.ClaudeMessage{}, nil
	}

	files, err := scanner.NewFileScanner(projectsPath).Scan()
	if err != nil {
		return nil, err
	}

	queryLower := strings.ToLower(query)
	start := time.Now()

	results := walker.Process(files, concurrency, func(file string) ([]model.ClaudeMessage, error) {
		return searchInFile(file, queryLower), nil
	})

	var all []model.ClaudeMessage
	for _, matches := range walker.Collect(results) {
		all = append(all, matches...)
	}

	util.LogDebug(fmt.Sprintf("Search for %q: %d files, %d results, duration %v",
		query, len(files), len(all), time.Since(start)))

	return all, nil
}
