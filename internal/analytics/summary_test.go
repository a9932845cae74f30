package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-planning-hours/internal/schedule"
	"github.com/a3tai/mcp-planning-hours/internal/store"
)

func rec(person string, week schedule.WeekID, hours float64) store.Record {
	return store.Record{
		ID:     store.RecordID(person, week),
		Person: person,
		Week:   week,
		Hours:  hours,
	}
}

func TestClassifyWeek(t *testing.T) {
	tests := []struct {
		hours float64
		want  WeekClass
	}{
		{0, Other},
		{0.5, Low},
		{35, Low},
		{35.01, High},
		{48, High},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyWeek(tt.hours, DefaultHighThreshold), "hours %g", tt.hours)
	}
	assert.Equal(t, "high", High.String())
	assert.Equal(t, "low", Low.String())
	assert.Equal(t, "other", Other.String())
}

func TestYearlySummaries(t *testing.T) {
	records := []store.Record{
		rec("Jean", "2024-W01", 36),
		rec("Jean", "2024-W02", 38),
		rec("Jean", "2024-W03", 0),
		rec("Jean", "2024-W04", 40),
		rec("Jean", "2024-W05", 20),
		rec("Jean", "2024-W06", 35),
		rec("Jean", "2024-W07", 10),
		rec("Marie", "2024-W01", 42),
		rec("Jean", "2023-W51", 37),
		rec("Jean", "2023-W52", 39),
		rec("Jean", "bogus", 50),
	}

	summaries := YearlySummaries(records, DefaultHighThreshold)
	require.Len(t, summaries, 2)

	y2024 := summaries[0]
	assert.Equal(t, 2024, y2024.Year)
	require.Len(t, y2024.Persons, 2)

	jean := y2024.Persons[0]
	assert.Equal(t, "Jean", jean.Person)
	assert.Equal(t, 3, jean.HighWeeks)
	assert.Equal(t, 3, jean.LowWeeks)
	assert.Equal(t, 1, jean.OtherWeeks)
	assert.Equal(t, 7, jean.ActiveWeeks)
	assert.Equal(t, 2, jean.MaxHighStreak)
	assert.Equal(t, 3, jean.MaxLowStreak)
	assert.InDelta(t, 179.0, jean.TotalHours, 1e-9)

	assert.Equal(t, 4, y2024.HighWeeks)
	assert.Equal(t, 8, y2024.ActiveWeeks)
	assert.Equal(t, 3, y2024.MaxLowStreak)

	y2023 := summaries[1]
	assert.Equal(t, 2023, y2023.Year)
	require.Len(t, y2023.Persons, 1)
	assert.Equal(t, 2, y2023.Persons[0].MaxHighStreak)
}

func TestYearlySummaries_StreakResetsAtYearChange(t *testing.T) {
	records := []store.Record{
		rec("Jean", "2023-W52", 40),
		rec("Jean", "2024-W01", 40),
		rec("Jean", "2024-W02", 40),
	}

	summaries := YearlySummaries(records, DefaultHighThreshold)
	require.Len(t, summaries, 2)
	assert.Equal(t, 2, summaries[0].Persons[0].MaxHighStreak)
	assert.Equal(t, 1, summaries[1].Persons[0].MaxHighStreak)
}

func TestYearlySummaries_Empty(t *testing.T) {
	assert.Empty(t, YearlySummaries(nil, DefaultHighThreshold))
}

func TestYearlySummaries_CustomThreshold(t *testing.T) {
	summaries := YearlySummaries([]store.Record{rec("Jean", "2024-W01", 36)}, 39)
	require.Len(t, summaries, 1)
	assert.Equal(t, 0, summaries[0].HighWeeks)
	assert.Equal(t, 1, summaries[0].LowWeeks)
}

func TestRecordYear(t *testing.T) {
	r := store.Record{Week: "2022-W52", RecordedAt: time.Now()}
	assert.Equal(t, 2022, r.Year())
}
