package util

import (
	"regexp"
	"strings"
)

var modelNamePattern = regexp.MustCompile(`^claude-(.+)-(\d{8})$`)

// SimplifyModelName shortens a full model identifier for display:
// "claude-opus-4-20250514" becomes "Opus-4". Names that do not follow the
// claude-{name}-{date} pattern are returned unchanged.
func SimplifyModelName(modelName string) string {
	if modelName == "synthetic" {
		return "synthetic"
	}

	matches := modelNamePattern.FindStringSubmatch(modelName)
	if len(matches) != 3 || matches[1] == "" {
		return modelName
	}
	name := matches[1]
	return strings.ToUpper(name[:1]) + name[1:]
}
