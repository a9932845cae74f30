package analytics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/a3tai/mcp-planning-hours/internal/schedule"
	"github.com/a3tai/mcp-planning-hours/internal/store"
)

// DefaultPageSize is the number of rows per dashboard page.
const DefaultPageSize = 15

// SortKey selects the dashboard column to sort on.
type SortKey string

const (
	SortByRecordedAt SortKey = "recorded_at"
	SortByPerson     SortKey = "person"
	SortByWeek       SortKey = "week"
	SortByHours      SortKey = "hours"
)

// ParseSortKey accepts the column names above; empty means SortByRecordedAt.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortByRecordedAt, nil
	case SortByRecordedAt, SortByPerson, SortByWeek, SortByHours:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sort key %q (want person, week, hours or recorded_at)", s)
	}
}

// Query filters, sorts and pages dashboard rows. Zero values mean no filter.
type Query struct {
	Person string
	Year   int
	// Month (1-12) is the month holding the Thursday of the ISO week.
	Month  int
	Search string
	Sort   SortKey
	Desc   bool
	// Page is 1-based and clamped to the available pages.
	Page     int
	PageSize int
}

// Page is one page of dashboard rows.
type Page struct {
	Records    []store.Record `json:"records"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	TotalItems int            `json:"total_items"`
	TotalHours float64        `json:"total_hours"`
}

// Dashboard applies q to records. TotalHours sums every matching record,
// not only the returned page.
func Dashboard(records []store.Record, q Query) Page {
	matched := make([]store.Record, 0, len(records))
	for _, r := range records {
		if q.matches(r) {
			matched = append(matched, r)
		}
	}
	sortRecords(matched, q.Sort, q.Desc)

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	totalPages := (len(matched) + pageSize - 1) / pageSize

	page := q.Page
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	var total float64
	for _, r := range matched {
		total += r.Hours
	}

	start := min((page-1)*pageSize, len(matched))
	end := min(start+pageSize, len(matched))
	return Page{
		Records:    matched[start:end],
		Page:       page,
		TotalPages: totalPages,
		TotalItems: len(matched),
		TotalHours: schedule.Round2(total),
	}
}

func (q Query) matches(r store.Record) bool {
	if q.Person != "" && r.Person != q.Person {
		return false
	}
	if q.Year != 0 && r.Year() != q.Year {
		return false
	}
	if q.Month != 0 {
		thursday, err := r.Week.Thursday()
		if err != nil || int(thursday.Month()) != q.Month {
			return false
		}
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		return matchesSearch(r, search)
	}
	return true
}

// matchesSearch looks for term in the person's name (fuzzy, accent and case
// insensitive), in the week identifier and in the formatted hours.
func matchesSearch(r store.Record, term string) bool {
	if fuzzy.MatchNormalizedFold(term, r.Person) {
		return true
	}
	lower := strings.ToLower(term)
	return strings.Contains(strings.ToLower(string(r.Week)), lower) ||
		strings.Contains(schedule.FormatHours(r.Hours), lower)
}

func sortRecords(records []store.Record, key SortKey, desc bool) {
	less := func(a, b store.Record) bool {
		switch key {
		case SortByPerson:
			return strings.ToLower(a.Person) < strings.ToLower(b.Person)
		case SortByWeek:
			return a.Week < b.Week
		case SortByHours:
			return a.Hours < b.Hours
		default:
			return a.RecordedAt.Before(b.RecordedAt)
		}
	}
	// Most recent imports first unless another column is asked for.
	if key == "" {
		key, desc = SortByRecordedAt, true
	}
	sort.SliceStable(records, func(i, j int) bool {
		if desc {
			return less(records[j], records[i])
		}
		return less(records[i], records[j])
	})
}
