package util

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetTimeProvider() {
	timeProviderMu.Lock()
	globalTimeProvider = nil
	timeProviderMu.Unlock()
}

func TestInitializeTimeProvider(t *testing.T) {
	resetTimeProvider()

	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{"local timezone", "Local", false},
		{"UTC timezone", "UTC", false},
		{"named timezone", "Asia/Shanghai", false},
		{"empty defaults to Local", "", false},
		{"invalid timezone", "Invalid/Timezone", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InitializeTimeProvider(tt.timezone)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "invalid timezone")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInitializeTimeProviderKeepsPreviousOnError(t *testing.T) {
	resetTimeProvider()

	require.NoError(t, InitializeTimeProvider("UTC"))
	before := GetTimeProvider()

	require.Error(t, InitializeTimeProvider("Not/A/Zone"))
	assert.Same(t, before, GetTimeProvider())
}

func TestGetTimeProviderDefaults(t *testing.T) {
	resetTimeProvider()

	provider := GetTimeProvider()
	require.NotNil(t, provider)
	assert.Same(t, provider, GetTimeProvider())
}

func TestTimeProviderIn(t *testing.T) {
	provider := &TimeProvider{}
	require.NoError(t, provider.SetTimezone("Asia/Shanghai"))

	utcTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	converted := provider.In(utcTime)

	assert.True(t, utcTime.Equal(converted), "same instant, different zone")
	assert.Equal(t, "Asia/Shanghai", converted.Location().String())
	assert.Equal(t, 20, converted.Hour())
}

func TestTimeProviderFormat(t *testing.T) {
	provider := &TimeProvider{}
	require.NoError(t, provider.SetTimezone("UTC"))

	testTime := time.Date(2024, 3, 15, 14, 30, 45, 0, time.UTC)

	assert.Equal(t, "2024-03-15T14:30:45Z", provider.Format(testTime, time.RFC3339))
	assert.Equal(t, "2024-03-15", provider.Format(testTime, "2006-01-02"))
	assert.Equal(t, "14:30:45", provider.Format(testTime, "15:04:05"))
}

func TestTimeProviderNow(t *testing.T) {
	provider := &TimeProvider{}
	require.NoError(t, provider.SetTimezone("UTC"))

	before := time.Now().UTC()
	now := provider.Now()
	after := time.Now().UTC()

	assert.False(t, now.Before(before))
	assert.False(t, now.After(after))
	assert.Equal(t, "UTC", now.Location().String())
}

func TestTimeProviderConcurrentAccess(t *testing.T) {
	provider := &TimeProvider{}
	require.NoError(t, provider.SetTimezone("UTC"))

	timezones := []string{"UTC", "Asia/Shanghai", "America/New_York", "Europe/London"}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_ = provider.Now()
			_ = provider.Format(time.Now(), time.RFC3339)
			if idx%5 == 0 {
				_ = provider.SetTimezone(timezones[idx%len(timezones)])
			}
		}(i)
	}
	wg.Wait()
}
