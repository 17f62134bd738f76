package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
)

// Entry is one raw session log line in Claude Code format. Loosely typed
// payloads (tool use, tool results) are plain maps so tests can shape them
// freely.
type Entry struct {
	Timestamp     string   `json:"timestamp,omitempty"`
	Type          string   `json:"type,omitempty"`
	Uuid          string   `json:"uuid,omitempty"`
	SessionId     string   `json:"sessionId,omitempty"`
	Summary       string   `json:"summary,omitempty"`
	Cwd           string   `json:"cwd,omitempty"`
	Level         string   `json:"level,omitempty"`
	Message       *Message `json:"message,omitempty"`
	ToolUse       any      `json:"toolUse,omitempty"`
	ToolUseResult any      `json:"toolUseResult,omitempty"`
}

// Message mirrors the nested message payload.
type Message struct {
	Role    string `json:"role,omitempty"`
	Content any    `json:"content,omitempty"`
	Model   string `json:"model,omitempty"`
	Usage   *Usage `json:"usage,omitempty"`
}

// Usage mirrors the token usage payload.
type Usage struct {
	InputTokens              uint32 `json:"input_tokens"`
	OutputTokens             uint32 `json:"output_tokens"`
	CacheCreationInputTokens uint32 `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     uint32 `json:"cache_read_input_tokens"`
	ServiceTier              string `json:"service_tier,omitempty"`
}

// TestDataGenerator writes session fixtures under a base directory laid out
// like a Claude data root (<base>/projects/<project>/<session>.jsonl).
type TestDataGenerator struct {
	baseDir string
}

func NewTestDataGenerator(baseDir string) *TestDataGenerator {
	return &TestDataGenerator{baseDir: baseDir}
}

func (g *TestDataGenerator) GetBaseDir() string {
	return g.baseDir
}

func (g *TestDataGenerator) projectDir(projectName string) (string, error) {
	dir := filepath.Join(g.baseDir, "projects", projectName)
	return dir, os.MkdirAll(dir, 0755)
}

// UserMessage builds a user entry with string content.
func UserMessage(uuid, sessionId string, ts time.Time, content string) Entry {
	return Entry{
		Timestamp: ts.UTC().Format(time.RFC3339),
		Type:      "user",
		Uuid:      uuid,
		SessionId: sessionId,
		Message:   &Message{Role: "user", Content: content},
	}
}

// AssistantMessage builds an assistant entry carrying model and usage.
func AssistantMessage(uuid, sessionId string, ts time.Time, model string, usage *Usage) Entry {
	return Entry{
		Timestamp: ts.UTC().Format(time.RFC3339),
		Type:      "assistant",
		Uuid:      uuid,
		SessionId: sessionId,
		Message:   &Message{Role: "assistant", Content: "Test assistant response", Model: model, Usage: usage},
	}
}

// EditResult builds a user entry carrying an Edit tool result, the shape the
// recent-edits reconstruction consumes.
func EditResult(uuid, sessionId string, ts time.Time, cwd, filePath, original, oldStr, newStr string) Entry {
	return Entry{
		Timestamp: ts.UTC().Format(time.RFC3339),
		Type:      "user",
		Uuid:      uuid,
		SessionId: sessionId,
		Cwd:       cwd,
		ToolUseResult: map[string]any{
			"filePath":     filePath,
			"originalFile": original,
			"oldString":    oldStr,
			"newString":    newStr,
		},
	}
}

// GenerateSimpleSession writes one session with a pair of user/assistant
// exchanges thirty minutes apart.
func (g *TestDataGenerator) GenerateSimpleSession(projectName, sessionId string, startTime time.Time) error {
	dir, err := g.projectDir(projectName)
	if err != nil {
		return err
	}

	entries := []Entry{
		UserMessage("uuid-user-1", sessionId, startTime, "Test user message"),
		AssistantMessage("uuid-assistant-1", sessionId, startTime.Add(5*time.Second), "claude-3-5-sonnet-20241022", &Usage{
			InputTokens:              1000,
			OutputTokens:             500,
			CacheCreationInputTokens: 50,
			CacheReadInputTokens:     100,
			ServiceTier:              "default",
		}),
		UserMessage("uuid-user-2", sessionId, startTime.Add(30*time.Minute), "Another test message"),
		AssistantMessage("uuid-assistant-2", sessionId, startTime.Add(30*time.Minute+5*time.Second), "claude-3-5-sonnet-20241022", &Usage{
			InputTokens:              2000,
			OutputTokens:             1000,
			CacheCreationInputTokens: 100,
			CacheReadInputTokens:     200,
			ServiceTier:              "default",
		}),
	}

	return g.WriteJSONL(filepath.Join(dir, sessionId+".jsonl"), entries)
}

// GenerateMultiModelSession writes a session alternating between models.
func (g *TestDataGenerator) GenerateMultiModelSession(projectName, sessionId string, startTime time.Time) error {
	dir, err := g.projectDir(projectName)
	if err != nil {
		return err
	}

	models := []string{"claude-3-5-sonnet-20241022", "claude-opus-4-20250514", "claude-3-5-haiku-20241022"}
	var entries []Entry
	for i := 0; i < 10; i++ {
		ts := startTime.Add(time.Duration(i*15) * time.Minute)
		entries = append(entries, AssistantMessage(
			fmt.Sprintf("uuid-%d", i), sessionId, ts, models[i%len(models)], &Usage{
				InputTokens:  uint32(1000 + i*100),
				OutputTokens: uint32(500 + i*50),
			}))
	}

	return g.WriteJSONL(filepath.Join(dir, sessionId+".jsonl"), entries)
}

// GenerateEditSession writes a session containing file edit tool results.
func (g *TestDataGenerator) GenerateEditSession(projectName, sessionId string, startTime time.Time, cwd string) error {
	dir, err := g.projectDir(projectName)
	if err != nil {
		return err
	}

	entries := []Entry{
		UserMessage("uuid-user-1", sessionId, startTime, "Edit the file"),
		EditResult("uuid-edit-1", sessionId, startTime.Add(time.Minute), cwd,
			filepath.Join(cwd, "main.go"), "package main\n\nfunc old() {}\n", "old", "renamed"),
		EditResult("uuid-edit-2", sessionId, startTime.Add(2*time.Minute), cwd,
			filepath.Join(cwd, "util.go"), "package main\n\nvar x = 1\n", "1", "2"),
	}

	return g.WriteJSONL(filepath.Join(dir, sessionId+".jsonl"), entries)
}

// CreateEmptyProject creates a project directory holding one empty session.
func (g *TestDataGenerator) CreateEmptyProject(projectName string) error {
	dir, err := g.projectDir(projectName)
	if err != nil {
		return err
	}
	file, err := os.Create(filepath.Join(dir, "empty.jsonl"))
	if err != nil {
		return err
	}
	return file.Close()
}

// WriteJSONL writes entries to a JSONL file, one JSON document per line.
func (g *TestDataGenerator) WriteJSONL(filename string, entries []Entry) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, entry := range entries {
		data, err := sonic.Marshal(entry)
		if err != nil {
			return err
		}
		if _, err := file.Write(append(data, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// CleanupTestData removes all generated test data.
func (g *TestDataGenerator) CleanupTestData() error {
	return os.RemoveAll(g.baseDir)
}
