package util

import (
	"bytes"
	"math"
	"strings"
)

// LineRange is a [start,end) byte range of one non-empty line.
type LineRange struct {
	Start int
	End   int
}

// FindLineRanges splits a buffer into logical line ranges without copying.
// Zero-length lines from consecutive delimiters are skipped and a final
// unterminated line is included. Any byte sequence is accepted.
func FindLineRanges(buf []byte) []LineRange {
	ranges := make([]LineRange, 0, estimateLineCount(len(buf)))
	start := 0
	for start < len(buf) {
		end := bytes.IndexByte(buf[start:], '\n')
		if end < 0 {
			end = len(buf)
		} else {
			end += start
		}
		if end > start {
			ranges = append(ranges, LineRange{Start: start, End: end})
		}
		start = end + 1
	}
	return ranges
}

func estimateLineCount(size int) int {
	n := size / 256
	if n < 16 {
		n = 16
	}
	return n
}

// TrimLine strips a trailing carriage return left over from CRLF input.
func TrimLine(line []byte) []byte {
	if len(line) > 0 && line[len(line)-1] == '\r' {
		return line[:len(line)-1]
	}
	return line
}

// ExtractProjectName decodes a dash-encoded project directory name
// ("-Users-alice-myproject") to its trailing segment. Names with fewer than
// four dash segments are returned unchanged.
func ExtractProjectName(name string) string {
	if !strings.HasPrefix(name, "-") {
		return name
	}
	parts := strings.SplitN(name, "-", 4)
	if len(parts) == 4 {
		return parts[3]
	}
	return name
}

// EstimateMessageCount guesses how many records a session file holds from
// its size, assuming roughly 1000 bytes per line. Always at least 1.
func EstimateMessageCount(sizeBytes int64) int {
	n := int(math.Ceil(float64(sizeBytes) / 1000.0))
	if n < 1 {
		return 1
	}
	return n
}

// CountLines counts newline-separated lines in a string the way the edit
// replay accounts for added/removed lines. A trailing newline does not
// start a new line; the empty string has zero lines.
func CountLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
