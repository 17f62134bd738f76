package session

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-claude-history/internal/testing/fixtures"
)

func mustParseTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

func editLine(uuid, ts, cwd, filePath, original, oldStr, newStr string) string {
	return fmt.Sprintf(
		`{"type":"user","uuid":"%s","sessionId":"s1","timestamp":"%s","cwd":"%s","toolUseResult":{"filePath":"%s","originalFile":%q,"oldString":%q,"newString":%q}}`,
		uuid, ts, cwd, filePath, original, oldStr, newStr)
}

func TestScanFileForEditsSingleEdit(t *testing.T) {
	claudePath := t.TempDir()
	path := writeProjectSession(t, claudePath, "proj", "s1",
		editLine("u1", "2024-01-15T10:00:00Z", "/work/proj", "/work/proj/main.go",
			"package main\n\nfunc old() {}\n", "old", "renamed"))

	result, err := scanFileForEdits(path)

	require.NoError(t, err)
	require.Len(t, result.edits, 1)
	edit := result.edits[0]
	assert.Equal(t, "/work/proj/main.go", edit.FilePath)
	assert.Equal(t, "edit", edit.OperationType)
	assert.Equal(t, "package main\n\nfunc renamed() {}\n", edit.ContentAfterChange)
	require.NotNil(t, edit.OriginalContent)
	assert.Equal(t, "package main\n\nfunc old() {}\n", *edit.OriginalContent)
	assert.Equal(t, 1, edit.LinesAdded)
	assert.Equal(t, 1, edit.LinesRemoved)
	assert.Equal(t, 1, result.cwdCounts["/work/proj"])
}

func TestScanFileForEditsMultiEditReplay(t *testing.T) {
	claudePath := t.TempDir()
	content := `{"type":"user","uuid":"u1","sessionId":"s1","timestamp":"2024-01-15T10:00:00Z","cwd":"/work/proj","toolUseResult":{"filePath":"/work/proj/main.go","originalFile":"a b a\n","edits":[{"old_string":"a","new_string":"b"},{"old_string":"b","new_string":"c"}]}}`
	path := writeProjectSession(t, claudePath, "proj", "s1", content)

	result, err := scanFileForEdits(path)

	require.NoError(t, err)
	require.Len(t, result.edits, 1)
	// Each substitution replaces only the first occurrence, in order
	assert.Equal(t, "c b a\n", result.edits[0].ContentAfterChange)
	assert.Equal(t, 2, result.edits[0].LinesAdded)
	assert.Equal(t, 2, result.edits[0].LinesRemoved)
}

func TestScanFileForEditsCreateResult(t *testing.T) {
	claudePath := t.TempDir()
	content := `{"type":"user","uuid":"u1","sessionId":"s1","timestamp":"2024-01-15T10:00:00Z","cwd":"/work/proj","toolUseResult":{"type":"create","filePath":"/work/proj/new.go","content":"line1\nline2\nline3"}}`
	path := writeProjectSession(t, claudePath, "proj", "s1", content)

	result, err := scanFileForEdits(path)

	require.NoError(t, err)
	require.Len(t, result.edits, 1)
	assert.Equal(t, "write", result.edits[0].OperationType)
	assert.Equal(t, 3, result.edits[0].LinesAdded)
	assert.Nil(t, result.edits[0].OriginalContent)
}

func TestScanFileForEditsWriteToolUse(t *testing.T) {
	claudePath := t.TempDir()
	content := `{"type":"assistant","uuid":"u1","sessionId":"s1","timestamp":"2024-01-15T10:00:00Z","toolUse":{"name":"Write","input":{"file_path":"/work/proj/gen.go","content":"package main\n"}}}`
	path := writeProjectSession(t, claudePath, "proj", "s1", content)

	result, err := scanFileForEdits(path)

	require.NoError(t, err)
	require.Len(t, result.edits, 1)
	assert.Equal(t, "write", result.edits[0].OperationType)
	assert.Equal(t, "/work/proj/gen.go", result.edits[0].FilePath)
	assert.Equal(t, "s1", result.edits[0].SessionId)
}

func TestScanFileForEditsSessionIdFallback(t *testing.T) {
	claudePath := t.TempDir()
	content := `{"type":"user","timestamp":"2024-01-15T10:00:00Z","toolUseResult":{"type":"create","filePath":"/work/f.go","content":"x"}}`
	path := writeProjectSession(t, claudePath, "proj", "s1", content)

	result, err := scanFileForEdits(path)

	require.NoError(t, err)
	require.Len(t, result.edits, 1)
	assert.Equal(t, "unknown", result.edits[0].SessionId)
}

func TestGetRecentEditsDedupAndOrder(t *testing.T) {
	claudePath := t.TempDir()
	lines := editLine("u1", "2024-01-15T10:00:00Z", "/work/proj", "/work/proj/a.go", "v1", "v1", "v2") + "\n" +
		editLine("u2", "2024-01-15T11:00:00Z", "/work/proj", "/work/proj/a.go", "v2", "v2", "v3") + "\n" +
		editLine("u3", "2024-01-15T10:30:00Z", "/work/proj", "/work/proj/b.go", "b1", "b1", "b2")
	projectDir := filepath.Dir(writeProjectSession(t, claudePath, "proj", "s1", lines))

	result, err := GetRecentEdits(projectDir, 0, 20, 2)

	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalEditsCount, "pre-dedup count includes both edits of a.go")
	assert.Equal(t, 2, result.UniqueFilesCount)
	require.Len(t, result.Files, 2)
	// Newest first, and a.go keeps only its latest edit
	assert.Equal(t, "/work/proj/a.go", result.Files[0].FilePath)
	assert.Equal(t, "v3", result.Files[0].ContentAfterChange)
	assert.Equal(t, "/work/proj/b.go", result.Files[1].FilePath)
	assert.False(t, result.HasMore)
	require.NotNil(t, result.ProjectCwd)
	assert.Equal(t, "/work/proj", *result.ProjectCwd)
}

func TestGetRecentEditsCwdFilter(t *testing.T) {
	claudePath := t.TempDir()
	// Two edits under the dominant cwd, one outside it
	lines := editLine("u1", "2024-01-15T10:00:00Z", "/work/proj", "/work/proj/a.go", "x", "x", "y") + "\n" +
		editLine("u2", "2024-01-15T10:01:00Z", "/work/proj", "/work/proj/b.go", "x", "x", "y") + "\n" +
		editLine("u3", "2024-01-15T10:02:00Z", "/elsewhere", "/elsewhere/c.go", "x", "x", "y")
	projectDir := filepath.Dir(writeProjectSession(t, claudePath, "proj", "s1", lines))

	result, err := GetRecentEdits(projectDir, 0, 20, 1)

	require.NoError(t, err)
	require.NotNil(t, result.ProjectCwd)
	assert.Equal(t, "/work/proj", *result.ProjectCwd)
	assert.Equal(t, 2, result.TotalEditsCount, "edits outside the project cwd are filtered out")
	for _, edit := range result.Files {
		assert.Contains(t, edit.FilePath, "/work/proj/")
	}
}

func TestGetRecentEditsPagination(t *testing.T) {
	claudePath := t.TempDir()
	var lines string
	for i := 0; i < 5; i++ {
		if i > 0 {
			lines += "\n"
		}
		lines += editLine(
			fmt.Sprintf("u%d", i),
			fmt.Sprintf("2024-01-15T10:0%d:00Z", i),
			"/work/proj",
			fmt.Sprintf("/work/proj/f%d.go", i),
			"x", "x", "y")
	}
	projectDir := filepath.Dir(writeProjectSession(t, claudePath, "proj", "s1", lines))

	page1, err := GetRecentEdits(projectDir, 0, 2, 1)
	require.NoError(t, err)
	require.Len(t, page1.Files, 2)
	assert.Equal(t, "/work/proj/f4.go", page1.Files[0].FilePath)
	assert.True(t, page1.HasMore)

	page2, err := GetRecentEdits(projectDir, 2, 2, 1)
	require.NoError(t, err)
	require.Len(t, page2.Files, 2)
	assert.Equal(t, "/work/proj/f2.go", page2.Files[0].FilePath)
	assert.True(t, page2.HasMore)

	page3, err := GetRecentEdits(projectDir, 4, 2, 1)
	require.NoError(t, err)
	require.Len(t, page3.Files, 1)
	assert.False(t, page3.HasMore)

	past, err := GetRecentEdits(projectDir, 100, 2, 1)
	require.NoError(t, err)
	assert.Empty(t, past.Files)
	assert.False(t, past.HasMore)
}

func TestGetRecentEditsDefaults(t *testing.T) {
	claudePath := t.TempDir()
	projectDir := filepath.Dir(writeProjectSession(t, claudePath, "proj", "s1",
		editLine("u1", "2024-01-15T10:00:00Z", "/work/proj", "/work/proj/a.go", "x", "x", "y")))

	result, err := GetRecentEdits(projectDir, -5, 0, 1)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Offset)
	assert.Equal(t, 20, result.Limit)
}

func TestGetRecentEditsEmptyProject(t *testing.T) {
	gen := fixtures.NewTestDataGenerator(t.TempDir())
	require.NoError(t, gen.CreateEmptyProject("empty-proj"))
	projectDir := filepath.Join(gen.GetBaseDir(), "projects", "empty-proj")

	result, err := GetRecentEdits(projectDir, 0, 20, 1)

	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Equal(t, 0, result.TotalEditsCount)
	assert.Nil(t, result.ProjectCwd)
}

func TestGetRecentEditsFromFixtures(t *testing.T) {
	gen := fixtures.NewTestDataGenerator(t.TempDir())
	cwd := "/work/myproj"
	require.NoError(t, gen.GenerateEditSession("myproj", "s1", mustParseTime(t, "2024-01-15T10:00:00Z"), cwd))
	projectDir := filepath.Join(gen.GetBaseDir(), "projects", "myproj")

	result, err := GetRecentEdits(projectDir, 0, 20, 2)

	require.NoError(t, err)
	assert.Equal(t, 2, result.UniqueFilesCount)
	require.NotNil(t, result.ProjectCwd)
	assert.Equal(t, cwd, *result.ProjectCwd)
}
