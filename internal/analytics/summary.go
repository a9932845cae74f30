package analytics

import (
	"sort"

	"github.com/a3tai/mcp-planning-hours/internal/store"
)

// PersonYear holds one person's statistics for one ISO week-year.
type PersonYear struct {
	Person      string  `json:"person"`
	HighWeeks   int     `json:"high_weeks"`
	LowWeeks    int     `json:"low_weeks"`
	OtherWeeks  int     `json:"other_weeks"`
	ActiveWeeks int     `json:"active_weeks"`
	TotalHours  float64 `json:"total_hours"`
	// Longest runs of consecutive recorded weeks in the same class. A week
	// with no hours breaks both runs.
	MaxHighStreak int `json:"max_high_streak"`
	MaxLowStreak  int `json:"max_low_streak"`
}

// YearSummary aggregates every person recorded in a year.
type YearSummary struct {
	Year          int          `json:"year"`
	Persons       []PersonYear `json:"persons"`
	HighWeeks     int          `json:"high_weeks"`
	LowWeeks      int          `json:"low_weeks"`
	OtherWeeks    int          `json:"other_weeks"`
	ActiveWeeks   int          `json:"active_weeks"`
	MaxHighStreak int          `json:"max_high_streak"`
	MaxLowStreak  int          `json:"max_low_streak"`
}

type personYearKey struct {
	person string
	year   int
}

// YearlySummaries computes per-year statistics, most recent year first,
// persons sorted by name. Records with a malformed week are skipped. Streaks
// never span two years.
func YearlySummaries(records []store.Record, threshold float64) []YearSummary {
	sorted := make([]store.Record, 0, len(records))
	for _, r := range records {
		if r.Week.Valid() {
			sorted = append(sorted, r)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Person != sorted[j].Person {
			return sorted[i].Person < sorted[j].Person
		}
		return sorted[i].Week < sorted[j].Week
	})

	stats := make(map[personYearKey]*PersonYear)
	var (
		current         personYearKey
		highRun, lowRun int
	)
	for _, r := range sorted {
		key := personYearKey{person: r.Person, year: r.Year()}
		if key != current {
			current = key
			highRun, lowRun = 0, 0
		}

		py, ok := stats[key]
		if !ok {
			py = &PersonYear{Person: r.Person}
			stats[key] = py
		}
		py.ActiveWeeks++
		py.TotalHours += r.Hours

		switch ClassifyWeek(r.Hours, threshold) {
		case High:
			py.HighWeeks++
			highRun++
			lowRun = 0
		case Low:
			py.LowWeeks++
			lowRun++
			highRun = 0
		default:
			py.OtherWeeks++
			highRun, lowRun = 0, 0
		}
		py.MaxHighStreak = max(py.MaxHighStreak, highRun)
		py.MaxLowStreak = max(py.MaxLowStreak, lowRun)
	}

	byYear := make(map[int]*YearSummary)
	for key, py := range stats {
		ys, ok := byYear[key.year]
		if !ok {
			ys = &YearSummary{Year: key.year}
			byYear[key.year] = ys
		}
		ys.Persons = append(ys.Persons, *py)
		ys.HighWeeks += py.HighWeeks
		ys.LowWeeks += py.LowWeeks
		ys.OtherWeeks += py.OtherWeeks
		ys.ActiveWeeks += py.ActiveWeeks
		ys.MaxHighStreak = max(ys.MaxHighStreak, py.MaxHighStreak)
		ys.MaxLowStreak = max(ys.MaxLowStreak, py.MaxLowStreak)
	}

	summaries := make([]YearSummary, 0, len(byYear))
	for _, ys := range byYear {
		sort.Slice(ys.Persons, func(i, j int) bool { return ys.Persons[i].Person < ys.Persons[j].Person })
		summaries = append(summaries, *ys)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Year > summaries[j].Year })
	return summaries
}
