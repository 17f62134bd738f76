package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad timestamp %q: %v", value, err)
	}
	return parsed
}

func TestActiveMinutes(t *testing.T) {
	tests := []struct {
		name       string
		timestamps []string
		want       int
	}{
		{
			name:       "empty",
			timestamps: nil,
			want:       0,
		},
		{
			name:       "single timestamp counts one minute",
			timestamps: []string{"2024-01-15T10:00:00Z"},
			want:       1,
		},
		{
			name:       "continuous period",
			timestamps: []string{"2024-01-15T10:00:00Z", "2024-01-15T10:30:00Z", "2024-01-15T11:00:00Z"},
			want:       60,
		},
		{
			name:       "gap over threshold splits periods",
			timestamps: []string{"2024-01-15T10:00:00Z", "2024-01-15T10:30:00Z", "2024-01-15T14:00:00Z", "2024-01-15T14:20:00Z"},
			want:       50,
		},
		{
			name:       "gap of exactly 120 minutes does not split",
			timestamps: []string{"2024-01-15T10:00:00Z", "2024-01-15T12:00:00Z"},
			want:       120,
		},
		{
			name:       "gap just over two hours splits into two one-minute periods",
			timestamps: []string{"2024-01-15T10:00:00Z", "2024-01-15T12:01:00Z"},
			want:       2,
		},
		{
			name:       "sub-minute gap fraction is truncated before comparison",
			timestamps: []string{"2024-01-15T10:00:00Z", "2024-01-15T12:00:30Z"},
			want:       120,
		},
		{
			name:       "unsorted input",
			timestamps: []string{"2024-01-15T11:00:00Z", "2024-01-15T10:00:00Z", "2024-01-15T10:30:00Z"},
			want:       60,
		},
		{
			name:       "overnight break excluded",
			timestamps: []string{"2024-01-15T22:00:00Z", "2024-01-15T23:00:00Z", "2024-01-16T09:00:00Z", "2024-01-16T09:30:00Z"},
			want:       90,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var timestamps []time.Time
			for _, v := range tt.timestamps {
				timestamps = append(timestamps, ts(t, v))
			}
			assert.Equal(t, tt.want, ActiveMinutes(timestamps))
		})
	}
}

func TestActiveMinutesDoesNotMutateInput(t *testing.T) {
	input := []time.Time{
		ts(t, "2024-01-15T11:00:00Z"),
		ts(t, "2024-01-15T10:00:00Z"),
	}

	ActiveMinutes(input)

	assert.Equal(t, ts(t, "2024-01-15T11:00:00Z"), input[0], "input order must be preserved")
}
