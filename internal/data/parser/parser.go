package parser

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/penwyp/go-claude-history/internal/core/model"
	"github.com/penwyp/go-claude-history/internal/util"
)

// ParseLine parses one JSONL line into a tolerant raw entry. Unknown fields
// are ignored. A structurally invalid line yields an error the caller is
// expected to skip, never a fatal failure for the whole file.
func ParseLine(line []byte) (*model.RawLogEntry, error) {
	var entry model.RawLogEntry
	if err := sonic.Unmarshal(util.TrimLine(line), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Canonicalize derives an identity-complete message from a raw entry.
// Summary entries are rejected, as are entries missing both session id and
// timestamp. All other missing identity fields are synthesized: uuid from a
// generated value plus the line number, session id from a sentinel, and
// timestamp from the current time.
func Canonicalize(entry *model.RawLogEntry, lineNum int) (*model.ClaudeMessage, bool) {
	if entry.Type == "summary" {
		return nil, false
	}
	if entry.SessionId == "" && entry.Timestamp == "" {
		return nil, false
	}

	msg := &model.ClaudeMessage{
		Uuid:          entry.Uuid,
		ParentUuid:    entry.ParentUuid,
		SessionId:     entry.SessionId,
		Timestamp:     entry.Timestamp,
		Type:          entry.Type,
		ToolUse:       entry.ToolUse,
		ToolUseResult: entry.ToolUseResult,
		IsSidechain:   entry.IsSidechain,
		Cwd:           entry.Cwd,
	}
	if entry.Message != nil {
		msg.Content = entry.Message.Content
		msg.Usage = entry.Message.Usage
		msg.Role = entry.Message.Role
		msg.MessageId = entry.Message.Id
		msg.Model = entry.Message.Model
		msg.StopReason = entry.Message.StopReason
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
	return msg, true
}

// ForEachEntry maps the session file at path, splits it into lines and calls
// fn once per parseable raw entry. Invalid lines are skipped.
func ForEachEntry(path string, fn func(lineNum int, entry *model.RawLogEntry)) error {
	mf, err := util.OpenMapped(path)
	if err != nil {
		return err
	}
	defer mf.Close()

	ranges := util.FindLineRanges(mf.Data)
	skipped := 0
	for i, r := range ranges {
		entry, err := ParseLine(mf.Data[r.Start:r.End])
		if err != nil {
			skipped++
			continue
		}
		fn(i, entry)
	}
	if skipped > 0 {
		util.LogDebug(fmt.Sprintf("Skipped %d invalid lines in %s", skipped, path))
	}
	return nil
}

// LoadMessages loads every canonical message from one session file.
func LoadMessages(path string) ([]model.ClaudeMessage, error) {
	messages := make([]model.ClaudeMessage, 0, 64)
	err := ForEachEntry(path, func(lineNum int, entry *model.RawLogEntry) {
		if msg, ok := Canonicalize(entry, lineNum); ok {
			messages = append(messages, *msg)
		}
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// CountMessages counts canonical messages without materializing them.
func CountMessages(path string) (int, error) {
	count := 0
	err := ForEachEntry(path, func(lineNum int, entry *model.RawLogEntry) {
		if entry.Type == "summary" {
			return
		}
		if entry.SessionId == "" && entry.Timestamp == "" {
			return
		}
		count++
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// LoadMessagesPage loads one offset/limit slice of a session's messages.
// TotalCount always reflects the full set; offsets beyond it yield an empty
// page with HasMore false.
func LoadMessagesPage(path string, offset, limit int) (*model.MessagePage, error) {
	if offset < 0 {
		return nil, fmt.Errorf("offset must be non-negative, got %d", offset)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	page := &model.MessagePage{Messages: make([]model.ClaudeMessage, 0, limit)}
	total := 0
	err := ForEachEntry(path, func(lineNum int, entry *model.RawLogEntry) {
		msg, ok := Canonicalize(entry, lineNum)
		if !ok {
			return
		}
		if total >= offset && len(page.Messages) < limit {
			page.Messages = append(page.Messages, *msg)
		}
		total++
	})
	if err != nil {
		return nil, err
	}

	page.TotalCount = total
	page.HasMore = offset+len(page.Messages) < total
	page.NextOffset = offset + len(page.Messages)
	return page, nil
}
