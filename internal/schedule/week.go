package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// WeekID is an ISO-8601 week identifier formatted as "YYYY-Www".
type WeekID string

var weekIDPattern = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

// ISOWeekID returns the ISO week containing t. The week-year is the year of the
// week's Thursday, so early January dates may belong to the previous year.
func ISOWeekID(t time.Time) WeekID {
	year, week := t.ISOWeek()
	return WeekID(fmt.Sprintf("%d-W%02d", year, week))
}

// ParseWeekID splits an identifier into its ISO week-year and week number.
func ParseWeekID(s string) (year, week int, err error) {
	m := weekIDPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid week identifier %q", s)
	}
	year, _ = strconv.Atoi(m[1])
	week, _ = strconv.Atoi(m[2])
	if week < 1 || week > 53 {
		return 0, 0, fmt.Errorf("week number out of range in %q", s)
	}
	return year, week, nil
}

// Year returns the ISO week-year, or 0 for a malformed identifier.
func (w WeekID) Year() int {
	year, _, err := ParseWeekID(string(w))
	if err != nil {
		return 0
	}
	return year
}

// Valid reports whether w is a well-formed identifier.
func (w WeekID) Valid() bool {
	_, _, err := ParseWeekID(string(w))
	return err == nil
}

// Thursday returns the Thursday of the week, which fixes the week's year and
// is used to attribute a week to a calendar month.
func (w WeekID) Thursday() (time.Time, error) {
	year, week, err := ParseWeekID(string(w))
	if err != nil {
		return time.Time{}, err
	}
	// January 4th always falls in ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := int(jan4.Weekday()+6) % 7
	monday := jan4.AddDate(0, 0, -offset+(week-1)*7)
	return monday.AddDate(0, 0, 3), nil
}

func (w WeekID) String() string {
	return string(w)
}
