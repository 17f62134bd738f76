package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected string
	}{
		{
			name:     "zero",
			input:    0,
			expected: "0",
		},
		{
			name:     "small number",
			input:    42,
			expected: "42",
		},
		{
			name:     "hundreds",
			input:    999,
			expected: "999",
		},
		{
			name:     "exactly 1000",
			input:    1000,
			expected: "1.0K",
		},
		{
			name:     "thousands",
			input:    1500,
			expected: "1.5K",
		},
		{
			name:     "tens of thousands",
			input:    25000,
			expected: "25.0K",
		},
		{
			name:     "hundreds of thousands",
			input:    999999,
			expected: "1000.0K",
		},
		{
			name:     "exactly 1 million",
			input:    1000000,
			expected: "1.0M",
		},
		{
			name:     "millions",
			input:    2500000,
			expected: "2.5M",
		},
		{
			name:     "tens of millions",
			input:    50000000,
			expected: "50.0M",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatNumber(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected string
	}{
		{
			name:     "zero",
			input:    0,
			expected: "0m",
		},
		{
			name:     "minutes only",
			input:    5,
			expected: "5m",
		},
		{
			name:     "59 minutes",
			input:    59,
			expected: "59m",
		},
		{
			name:     "exactly 1 hour",
			input:    60,
			expected: "1h 0m",
		},
		{
			name:     "1 hour 30 minutes",
			input:    90,
			expected: "1h 30m",
		},
		{
			name:     "2 hours 15 minutes",
			input:    135,
			expected: "2h 15m",
		},
		{
			name:     "24 hours",
			input:    1440,
			expected: "24h 0m",
		},
		{
			name:     "very long total",
			input:    6000,
			expected: "100h 0m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatMinutes(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFormatWithCommas(t *testing.T) {
	tests := []struct {
		name     string
		input    uint64
		expected string
	}{
		{
			name:     "zero",
			input:    0,
			expected: "0",
		},
		{
			name:     "three digits",
			input:    999,
			expected: "999",
		},
		{
			name:     "four digits",
			input:    1000,
			expected: "1,000",
		},
		{
			name:     "six digits",
			input:    123456,
			expected: "123,456",
		},
		{
			name:     "seven digits",
			input:    1234567,
			expected: "1,234,567",
		},
		{
			name:     "billion",
			input:    1000000000,
			expected: "1,000,000,000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWithCommas(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFormatTokens(t *testing.T) {
	assert.Equal(t, "0", FormatTokens(0))
	assert.Equal(t, "500", FormatTokens(500))
	assert.Equal(t, "12.3K", FormatTokens(12345))
	assert.Equal(t, "3.5M", FormatTokens(3500000))
}
