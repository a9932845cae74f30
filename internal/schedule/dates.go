package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// monthIndex maps French month names and the abbreviations found in exported
// plannings to a calendar month.
var monthIndex = map[string]time.Month{
	"janvier":   time.January,
	"janv":      time.January,
	"février":   time.February,
	"fevrier":   time.February,
	"févr":      time.February,
	"fevr":      time.February,
	"mars":      time.March,
	"avril":     time.April,
	"avr":       time.April,
	"mai":       time.May,
	"juin":      time.June,
	"juillet":   time.July,
	"juil":      time.July,
	"août":      time.August,
	"aout":      time.August,
	"septembre": time.September,
	"sept":      time.September,
	"octobre":   time.October,
	"oct":       time.October,
	"novembre":  time.November,
	"nov":       time.November,
	"décembre":  time.December,
	"decembre":  time.December,
	"déc":       time.December,
	"dec":       time.December,
}

var dateFragmentPattern = regexp.MustCompile(`(?i)^(\d{1,2})(?:er)?\s*\.?\s*(\p{L}+)\s*\.?\s*(\d{4})$`)

// LookupMonth resolves a French month name or abbreviation, ignoring case and a
// trailing period.
func LookupMonth(name string) (time.Month, bool) {
	key := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(norm.NFC.String(name))), ".")
	m, ok := monthIndex[key]
	return m, ok
}

// ParseDate parses a date fragment such as "1er. janvier 2024" or
// "15 févr. 2024". It reports false when the fragment cannot be resolved to a
// real calendar day.
func ParseDate(fragment string) (time.Time, bool) {
	cleaned := strings.Join(strings.Fields(norm.NFC.String(fragment)), " ")
	cleaned = strings.ReplaceAll(cleaned, " .", ".")

	m := dateFragmentPattern.FindStringSubmatch(cleaned)
	if m == nil {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return time.Time{}, false
	}
	month, ok := LookupMonth(m[2])
	if !ok {
		return time.Time{}, false
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || t.Month() != month {
		// time.Date normalises overflow; "31 février" must not become March.
		return time.Time{}, false
	}
	return t, true
}
