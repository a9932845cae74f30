// Package report renders weekly hours as text, CSV and Excel workbooks.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/a3tai/mcp-planning-hours/internal/schedule"
)

// csvRow is one line of the weekly hours export.
type csvRow struct {
	Person string `csv:"Personne"`
	Week   string `csv:"Semaine"`
	Hours  string `csv:"HeuresTravaillees"`
}

// WriteCSV writes person's weekly hours in week order, hours with two
// decimals and CRLF line endings.
func WriteCSV(w io.Writer, person string, weeks schedule.WeeklyHours) error {
	if len(weeks) == 0 {
		return ErrNoWeeks
	}

	rows := make([]*csvRow, 0, len(weeks))
	for _, week := range weeks.Weeks() {
		rows = append(rows, &csvRow{
			Person: person,
			Week:   string(week),
			Hours:  schedule.FormatHours(weeks[week]),
		})
	}

	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(cw)); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

var fileNameUnsafe = regexp.MustCompile(`[^a-z0-9_]`)

// CSVFileName returns the download name of a person's export, for example
// "heures_jean_dupont_20240131.csv".
func CSVFileName(person string, on time.Time) string {
	safe := fileNameUnsafe.ReplaceAllString(strings.ToLower(person), "_")
	if safe == "" {
		safe = "planning"
	}
	return fmt.Sprintf("heures_%s_%s.csv", safe, on.Format("20060102"))
}
