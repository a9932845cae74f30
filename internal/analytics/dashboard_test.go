package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-planning-hours/internal/schedule"
	"github.com/a3tai/mcp-planning-hours/internal/store"
)

func dashboardRecords() []store.Record {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	records := []store.Record{
		rec("Jean Dupont", "2024-W05", 36.5),
		rec("Jean Dupont", "2024-W06", 12),
		rec("Hélène Martin", "2024-W05", 40),
		rec("Hélène Martin", "2023-W52", 7),
		rec("Alan Turing", "2024-W14", 35),
	}
	for i := range records {
		records[i].RecordedAt = base.Add(time.Duration(i) * time.Hour)
	}
	return records
}

func TestDashboard_Filters(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{"no filter", Query{Sort: SortByWeek}, []string{
			"Hélène_Martin_2023-W52", "Jean_Dupont_2024-W05", "Hélène_Martin_2024-W05",
			"Jean_Dupont_2024-W06", "Alan_Turing_2024-W14",
		}},
		{"person", Query{Person: "Jean Dupont", Sort: SortByWeek}, []string{
			"Jean_Dupont_2024-W05", "Jean_Dupont_2024-W06",
		}},
		{"year", Query{Year: 2023}, []string{"Hélène_Martin_2023-W52"}},
		// 2024-W14 runs from April 1st; its Thursday is April 4th.
		{"month", Query{Month: 4}, []string{"Alan_Turing_2024-W14"}},
		{"month of week spanning years", Query{Month: 12}, []string{"Hélène_Martin_2023-W52"}},
		{"fuzzy accent-insensitive person", Query{Search: "helene", Sort: SortByWeek}, []string{
			"Hélène_Martin_2023-W52", "Hélène_Martin_2024-W05",
		}},
		{"search week", Query{Search: "w14"}, []string{"Alan_Turing_2024-W14"}},
		{"search hours", Query{Search: "36.50"}, []string{"Jean_Dupont_2024-W05"}},
		{"nothing", Query{Person: "Nobody"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Dashboard(dashboardRecords(), tt.query)
			var ids []string
			for _, r := range page.Records {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, len(tt.want), page.TotalItems)
		})
	}
}

func TestDashboard_Sort(t *testing.T) {
	records := dashboardRecords()

	byHoursDesc := Dashboard(records, Query{Sort: SortByHours, Desc: true})
	assert.Equal(t, 40.0, byHoursDesc.Records[0].Hours)
	assert.Equal(t, 7.0, byHoursDesc.Records[4].Hours)

	byPerson := Dashboard(records, Query{Sort: SortByPerson})
	assert.Equal(t, "Alan Turing", byPerson.Records[0].Person)
	assert.Equal(t, "Jean Dupont", byPerson.Records[4].Person)

	// Default order is most recently recorded first.
	latest := Dashboard(records, Query{})
	assert.Equal(t, "Alan_Turing_2024-W14", latest.Records[0].ID)
}

func TestDashboard_Pagination(t *testing.T) {
	var records []store.Record
	for w := 1; w <= 40; w++ {
		records = append(records, rec("Jean", schedule.WeekID(fmt.Sprintf("2024-W%02d", w)), 1))
	}

	first := Dashboard(records, Query{Sort: SortByWeek})
	assert.Equal(t, 1, first.Page)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, 40, first.TotalItems)
	assert.Len(t, first.Records, DefaultPageSize)
	assert.Equal(t, 40.0, first.TotalHours)

	last := Dashboard(records, Query{Sort: SortByWeek, Page: 3})
	require.Len(t, last.Records, 10)
	assert.Equal(t, schedule.WeekID("2024-W31"), last.Records[0].Week)

	clamped := Dashboard(records, Query{Sort: SortByWeek, Page: 99, PageSize: 25})
	assert.Equal(t, 2, clamped.Page)
	assert.Len(t, clamped.Records, 15)

	empty := Dashboard(nil, Query{Page: 2})
	assert.Equal(t, 1, empty.Page)
	assert.Zero(t, empty.TotalPages)
	assert.Empty(t, empty.Records)
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("Hours")
	require.NoError(t, err)
	assert.Equal(t, SortByHours, k)

	k, err = ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortByRecordedAt, k)

	_, err = ParseSortKey("salary")
	assert.Error(t, err)
}
