package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/a3tai/mcp-planning-hours/internal/analytics"
	"github.com/a3tai/mcp-planning-hours/internal/schedule"
)

// ErrNoWeeks is returned by exports given an empty result.
var ErrNoWeeks = errors.New("no weeks to export")

// FormatWeeks renders a parse result the way it is shown after an upload.
func FormatWeeks(person string, weeks schedule.WeeklyHours) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Heures de travail pour %s par semaine :\n", person)
	b.WriteString("(inclut les semaines avec 0h de travail si présentes dans le planning)\n\n")

	if len(weeks) == 0 {
		b.WriteString("Aucune semaine traitée ou aucune heure de travail calculée.\n")
		return b.String()
	}
	for _, week := range weeks.Weeks() {
		fmt.Fprintf(&b, "Semaine %s: %s heures\n", week, schedule.FormatHours(weeks[week]))
	}
	return b.String()
}

// WriteSummaries prints the yearly high/low analysis as plain text.
func WriteSummaries(w io.Writer, summaries []analytics.YearSummary, threshold float64) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "Pas de données pour analyse.")
		return err
	}

	for _, ys := range summaries {
		fmt.Fprintf(w, "=== Année %d ===\n", ys.Year)
		fmt.Fprintf(w, "Hautes (> %gh): %d | Basses (0 < h <= %gh): %d | Autres: %d | Actives: %d\n",
			threshold, ys.HighWeeks, threshold, ys.LowWeeks, ys.OtherWeeks, ys.ActiveWeeks)
		fmt.Fprintf(w, "Max Hautes: %d sem. | Max Basses: %d sem.\n", ys.MaxHighStreak, ys.MaxLowStreak)
		for _, p := range ys.Persons {
			fmt.Fprintf(w, "  %s: %d hautes, %d basses, %d autres, séries %d/%d, total %s h\n",
				p.Person, p.HighWeeks, p.LowWeeks, p.OtherWeeks,
				p.MaxHighStreak, p.MaxLowStreak, schedule.FormatHours(p.TotalHours))
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
