package util

import (
	"fmt"
	"sync"
	"time"
)

// TimeProvider renders times in the user-selected timezone. Aggregation
// always buckets in UTC; the provider only affects display.
type TimeProvider struct {
	location *time.Location
	mu       sync.RWMutex
}

var (
	globalTimeProvider *TimeProvider
	timeProviderMu     sync.Mutex
)

// InitializeTimeProvider sets the global provider's timezone. An invalid
// timezone leaves any previous provider in place.
func InitializeTimeProvider(timezone string) error {
	timeProviderMu.Lock()
	defer timeProviderMu.Unlock()

	provider := &TimeProvider{}
	if err := provider.SetTimezone(timezone); err != nil {
		return err
	}
	globalTimeProvider = provider
	return nil
}

// GetTimeProvider returns the global provider, defaulting to Local when
// nothing initialized it.
func GetTimeProvider() *TimeProvider {
	timeProviderMu.Lock()
	if globalTimeProvider == nil {
		provider := &TimeProvider{}
		provider.SetTimezone("Local")
		globalTimeProvider = provider
	}
	p := globalTimeProvider
	timeProviderMu.Unlock()
	return p
}

// SetTimezone switches the provider's display timezone. "Local" and the
// empty string select the system timezone.
func (tp *TimeProvider) SetTimezone(timezone string) error {
	loc := time.Local
	if timezone != "" && timezone != "Local" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w\nValid examples: Local, UTC, America/New_York, Asia/Shanghai, Europe/London, Australia/Sydney", timezone, err)
		}
		loc = l
	}

	tp.mu.Lock()
	tp.location = loc
	tp.mu.Unlock()
	return nil
}

func (tp *TimeProvider) Now() time.Time {
	return tp.In(time.Now())
}

// In converts t to the configured timezone.
func (tp *TimeProvider) In(t time.Time) time.Time {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return t.In(tp.location)
}

// Format renders t with the given layout in the configured timezone.
func (tp *TimeProvider) Format(t time.Time, layout string) string {
	return tp.In(t).Format(layout)
}
