package preset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/penwyp/go-claude-history/internal/util"
)

// Summary is the precomputed digest of one preset's payloads.
type Summary struct {
	SettingsCount  int      `json:"settings_count"`
	Model          *string  `json:"model,omitempty"`
	McpServerCount int      `json:"mcp_server_count"`
	McpServerNames []string `json:"mcp_server_names"`
	HasPermissions bool     `json:"has_permissions"`
	HasHooks       bool     `json:"has_hooks"`
	HasEnvVars     bool     `json:"has_env_vars"`
}

// Preset is one stored configuration preset. Settings and McpServers hold
// raw JSON object text; the store validates but does not interpret them
// beyond the summary.
type Preset struct {
	Id          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
	Settings    string  `json:"settings"`
	McpServers  string  `json:"mcp_servers"`
	Summary     Summary `json:"summary"`
}

// Input is the payload for creating or updating a preset. A nil Id creates
// a new preset with a generated identifier.
type Input struct {
	Id          *string `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Settings    string  `json:"settings"`
	McpServers  string  `json:"mcp_servers"`
}

// Store persists presets as JSON files under a base directory. The base
// directory is injected so callers own where auxiliary config lives.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// validateId rejects identifiers that could escape the store directory.
func validateId(id string) error {
	if id == "" {
		return fmt.Errorf("preset id cannot be empty")
	}
	if len(id) > 64 {
		return fmt.Errorf("preset id too long (max 64 characters)")
	}
	for _, c := range id {
		if !isAlphanumeric(c) && c != '-' {
			return fmt.Errorf("preset id must contain only alphanumeric characters and hyphens")
		}
	}
	return nil
}

func isAlphanumeric(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (s *Store) presetPath(id string) (string, error) {
	if err := validateId(id); err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, id+".json"), nil
}

// checkPathSafety refuses to operate on symlinks or non-regular files.
// Returns false without error when the file simply does not exist.
func checkPathSafety(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("check path safety: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return false, fmt.Errorf("refusing to operate on symlink")
	}
	if !info.Mode().IsRegular() {
		return false, fmt.Errorf("path is not a regular file")
	}
	return true, nil
}

func validateInput(input *Input) error {
	var settings any
	if err := sonic.UnmarshalString(input.Settings, &settings); err != nil {
		return fmt.Errorf("invalid settings JSON: %w", err)
	}
	if _, ok := settings.(map[string]any); !ok {
		return fmt.Errorf("settings must be a JSON object")
	}

	var mcp any
	if err := sonic.UnmarshalString(input.McpServers, &mcp); err != nil {
		return fmt.Errorf("invalid mcp_servers JSON: %w", err)
	}
	if _, ok := mcp.(map[string]any); !ok {
		return fmt.Errorf("mcp servers must be a JSON object")
	}
	return nil
}

var summarizedSettings = []string{
	"model", "language", "permissions", "hooks", "env",
	"alwaysThinkingEnabled", "autoUpdatesChannel", "attribution",
}

// ComputeSummary digests the settings and MCP payloads. Malformed JSON
// yields an empty summary rather than an error.
func ComputeSummary(settingsJSON, mcpJSON string) Summary {
	var settings, mcp any
	sonic.UnmarshalString(settingsJSON, &settings)
	sonic.UnmarshalString(mcpJSON, &mcp)

	var summary Summary

	for _, key := range summarizedSettings {
		if _, ok := util.ObjValue(settings, key); ok {
			summary.SettingsCount++
		}
	}

	if m, ok := util.ObjString(settings, "model"); ok {
		summary.Model = &m
	}

	if mcpObj, ok := util.AsObject(mcp); ok {
		summary.McpServerCount = len(mcpObj)
		names := make([]string, 0, len(mcpObj))
		for name := range mcpObj {
			names = append(names, name)
		}
		sort.Strings(names)
		if len(names) > 5 {
			names = names[:5]
		}
		summary.McpServerNames = names
	}

	if perms, ok := util.ObjValue(settings, "permissions"); ok {
		for _, key := range []string{"allow", "deny", "ask"} {
			if arr, ok := util.ObjValue(perms, key); ok {
				if items, ok := util.AsArray(arr); ok && len(items) > 0 {
					summary.HasPermissions = true
					break
				}
			}
		}
	}
	if hooks, ok := util.ObjValue(settings, "hooks"); ok {
		if obj, ok := util.AsObject(hooks); ok && len(obj) > 0 {
			summary.HasHooks = true
		}
	}
	if env, ok := util.ObjValue(settings, "env"); ok {
		if obj, ok := util.AsObject(env); ok && len(obj) > 0 {
			summary.HasEnvVars = true
		}
	}

	return summary
}

// List loads every preset, most recently updated first. A missing store
// directory means no presets, not an error.
func (s *Store) List() ([]Preset, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Preset{}, nil
		}
		return nil, fmt.Errorf("read presets folder: %w", err)
	}

	var presets []Preset
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.baseDir, entry.Name())
		if safe, err := checkPathSafety(path); err != nil || !safe {
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var preset Preset
		if err := sonic.Unmarshal(content, &preset); err != nil {
			continue
		}
		presets = append(presets, preset)
	}

	sort.SliceStable(presets, func(i, j int) bool {
		return presets[i].UpdatedAt > presets[j].UpdatedAt
	})
	return presets, nil
}

// Get loads one preset by id, or nil when it does not exist.
func (s *Store) Get(id string) (*Preset, error) {
	path, err := s.presetPath(id)
	if err != nil {
		return nil, err
	}

	safe, err := checkPathSafety(path)
	if err != nil {
		return nil, err
	}
	if !safe {
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	var preset Preset
	if err := sonic.Unmarshal(content, &preset); err != nil {
		return nil, fmt.Errorf("parse preset: %w", err)
	}
	return &preset, nil
}

// Save creates or updates a preset and writes it atomically.
func (s *Store) Save(input Input) (*Preset, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	summary := ComputeSummary(input.Settings, input.McpServers)

	var preset Preset
	if input.Id != nil {
		existing, err := s.Get(*input.Id)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("preset %s not found", *input.Id)
		}
		preset = Preset{
			Id:          *input.Id,
			Name:        input.Name,
			Description: input.Description,
			CreatedAt:   existing.CreatedAt,
			UpdatedAt:   now,
			Settings:    input.Settings,
			McpServers:  input.McpServers,
			Summary:     summary,
		}
	} else {
		preset = Preset{
			Id:          uuid.New().String(),
			Name:        input.Name,
			Description: input.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
			Settings:    input.Settings,
			McpServers:  input.McpServers,
			Summary:     summary,
		}
	}

	path, err := s.presetPath(preset.Id)
	if err != nil {
		return nil, err
	}
	data, err := sonic.MarshalIndent(preset, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize preset: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0644); err != nil {
		return nil, err
	}
	return &preset, nil
}

// Delete removes a preset. Deleting a nonexistent preset is a no-op.
func (s *Store) Delete(id string) error {
	path, err := s.presetPath(id)
	if err != nil {
		return err
	}

	safe, err := checkPathSafety(path)
	if err != nil {
		return err
	}
	if !safe {
		return nil
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete preset: %w", err)
	}
	return nil
}
