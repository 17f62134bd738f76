package stats

import (
	"sort"
	"time"
)

// sessionBreakThresholdMinutes separates active periods: a gap of more than
// two hours between consecutive messages ends the current period rather
// than inflating the session with overnight or multi-day idle time.
const sessionBreakThresholdMinutes = 120

// ActiveMinutes converts a session's message timestamps into total active
// minutes by splitting at gaps over the break threshold. Each period counts
// at least one minute, so a single-timestamp session yields exactly 1.
// The result is a lower bound on wall-clock engagement.
func ActiveMinutes(timestamps []time.Time) int {
	if len(timestamps) == 0 {
		return 0
	}
	if len(timestamps) == 1 {
		return 1
	}

	sorted := append([]time.Time{}, timestamps...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	periodStart := sorted[0]
	total := 0

	for i := 0; i < len(sorted)-1; i++ {
		current := sorted[i]
		next := sorted[i+1]

		gapMinutes := int(next.Sub(current).Minutes())
		if gapMinutes > sessionBreakThresholdMinutes {
			total += periodMinutes(periodStart, current)
			periodStart = next
		}
	}

	total += periodMinutes(periodStart, sorted[len(sorted)-1])
	return total
}

func periodMinutes(start, end time.Time) int {
	minutes := int(end.Sub(start).Minutes())
	if minutes < 1 {
		return 1
	}
	return minutes
}
