package schedule

import (
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// DurationHours returns the length of the slot start-end in hours. An end
// earlier than the start wraps past midnight. Malformed times yield 0.
func DurationHours(start, end string) float64 {
	s, ok := minutesOfDay(start)
	if !ok {
		return 0
	}
	e, ok := minutesOfDay(end)
	if !ok {
		return 0
	}
	diff := e - s
	if diff < 0 {
		diff += minutesPerDay
	}
	return float64(diff) / 60
}

func minutesOfDay(hhmm string) (int, bool) {
	h, m, found := strings.Cut(strings.TrimSpace(hhmm), ":")
	if !found {
		return 0, false
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 24 {
		return 0, false
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}
