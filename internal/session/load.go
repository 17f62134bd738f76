package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/penwyp/go-claude-history/internal/core/model"
	"github.com/penwyp/go-claude-history/internal/data/parser"
	"github.com/penwyp/go-claude-history/internal/data/scanner"
	"github.com/penwyp/go-claude-history/internal/data/walker"
	"github.com/penwyp/go-claude-history/internal/util"
)

// loadSessionInfo builds the metadata for one session file without
// materializing its messages.
func loadSessionInfo(path, projectName string) (model.ClaudeSession, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.ClaudeSession{}, err
	}

	session := model.ClaudeSession{
		SessionId:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		FilePath:    path,
		ProjectName: projectName,
		LastModified: info.ModTime().UTC().Format(time.RFC3339),
	}

	err = parser.ForEachEntry(path, func(lineNum int, entry *model.RawLogEntry) {
		if entry.Type == "summary" {
			if entry.Summary != "" {
				s := entry.Summary
				session.Summary = &s
			}
			return
		}
		if entry.SessionId == "" && entry.Timestamp == "" {
			return
		}

		session.MessageCount++
		if session.ActualSessionId == "" && entry.SessionId != "" {
			session.ActualSessionId = entry.SessionId
		}
		if entry.Timestamp != "" {
			if session.FirstMessageTime == "" || entry.Timestamp < session.FirstMessageTime {
				session.FirstMessageTime = entry.Timestamp
			}
			if entry.Timestamp > session.LastMessageTime {
				session.LastMessageTime = entry.Timestamp
			}
		}
		if entry.ToolUse != nil || entry.ToolUseResult != nil {
			session.HasToolUse = true
		}
		if entry.Level == "error" {
			session.HasErrors = true
		}
		if isError, ok := util.ObjBool(entry.ToolUseResult, "is_error"); ok && isError {
			session.HasErrors = true
		}
	})
	if err != nil {
		return model.ClaudeSession{}, err
	}

	if session.ActualSessionId == "" {
		session.ActualSessionId = session.SessionId
	}
	return session, nil
}

// LoadProjectSessions lists the sessions of one project directory, newest
// activity first. Unreadable session files are skipped.
func LoadProjectSessions(projectPath string, concurrency int) ([]model.ClaudeSession, error) {
	files, err := scanner.NewFileScanner(projectPath).Scan()
	if err != nil {
		return nil, fmt.Errorf("scan project %s: %w", projectPath, err)
	}

	projectName := util.ExtractProjectName(filepath.Base(projectPath))

	sessions := walker.Collect(walker.Process(files, concurrency, func(file string) (model.ClaudeSession, error) {
		return loadSessionInfo(file, projectName)
	}))

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].LastMessageTime > sessions[j].LastMessageTime
	})
	return sessions, nil
}

// ListProjects enumerates project directories under the log root. Message
// counts are estimated from file sizes rather than parsed, so listing stays
// cheap even for very large histories.
func ListProjects(claudePath string) ([]model.ClaudeProject, error) {
	projectsPath := filepath.Join(claudePath, "projects")
	entries, err := os.ReadDir(projectsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.ClaudeProject{}, nil
		}
		return nil, err
	}

	var projects []model.ClaudeProject
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dirPath := filepath.Join(projectsPath, entry.Name())

		files, err := scanner.NewFileScanner(dirPath).Scan()
		if err != nil {
			continue
		}

		project := model.ClaudeProject{
			Name:         util.ExtractProjectName(entry.Name()),
			Path:         dirPath,
			SessionCount: len(files),
		}
		for _, file := range files {
			if info, err := os.Stat(file); err == nil {
				project.MessageCount += util.EstimateMessageCount(info.Size())
			}
		}
		if info, err := entry.Info(); err == nil {
			project.LastModified = info.ModTime().UTC().Format(time.RFC3339)
		}
		projects = append(projects, project)
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].LastModified > projects[j].LastModified
	})
	return projects, nil
}
