// Package analytics derives yearly high/low week statistics and dashboard
// views from stored weekly hour records.
package analytics

// DefaultHighThreshold is the weekly hours above which a week is high.
const DefaultHighThreshold = 35.0

// WeekClass buckets a week by its worked hours.
type WeekClass int

const (
	// Other covers weeks with no worked hours.
	Other WeekClass = iota
	// Low is 0 < hours <= threshold.
	Low
	// High is hours > threshold.
	High
)

func (c WeekClass) String() string {
	switch c {
	case High:
		return "high"
	case Low:
		return "low"
	default:
		return "other"
	}
}

// ClassifyWeek buckets hours against threshold. A week at exactly the
// threshold is low.
func ClassifyWeek(hours, threshold float64) WeekClass {
	switch {
	case hours > threshold:
		return High
	case hours > 0:
		return Low
	default:
		return Other
	}
}
