package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/a3tai/mcp-planning-hours/internal/analytics"
	"github.com/a3tai/mcp-planning-hours/internal/schedule"
	"github.com/a3tai/mcp-planning-hours/internal/store"
)

const weeksSheet = "Semaines"

var (
	weeksHeader   = []any{"Personne", "Semaine", "Heures", "Classe", "Enregistré le"}
	summaryHeader = []any{
		"Personne", "Semaines hautes", "Semaines basses", "Autres", "Actives",
		"Série max hautes", "Série max basses", "Total heures",
	}
)

// WriteWorkbook writes an xlsx workbook with every record on a "Semaines"
// sheet and one sheet per year holding the high/low analysis and its chart.
func WriteWorkbook(w io.Writer, records []store.Record, summaries []analytics.YearSummary, threshold float64) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", weeksSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if err := writeWeeksSheet(f, records, threshold, bold); err != nil {
		return err
	}

	for _, ys := range summaries {
		if err := writeYearSheet(f, ys, threshold, bold); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeWeeksSheet(f *excelize.File, records []store.Record, threshold float64, headerStyle int) error {
	if err := writeHeader(f, weeksSheet, weeksHeader, headerStyle); err != nil {
		return err
	}
	for i, r := range records {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{
			r.Person,
			string(r.Week),
			schedule.Round2(r.Hours),
			analytics.ClassifyWeek(r.Hours, threshold).String(),
			r.RecordedAt.Format("02/01/2006 15:04"),
		}
		if err := f.SetSheetRow(weeksSheet, cell, &row); err != nil {
			return fmt.Errorf("writing week row %d: %w", i+2, err)
		}
	}
	return nil
}

func writeYearSheet(f *excelize.File, ys analytics.YearSummary, threshold float64, headerStyle int) error {
	sheet := fmt.Sprintf("Année %d", ys.Year)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("creating sheet %s: %w", sheet, err)
	}
	if err := writeHeader(f, sheet, summaryHeader, headerStyle); err != nil {
		return err
	}

	for i, p := range ys.Persons {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{
			p.Person, p.HighWeeks, p.LowWeeks, p.OtherWeeks, p.ActiveWeeks,
			p.MaxHighStreak, p.MaxLowStreak, schedule.Round2(p.TotalHours),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+2, err)
		}
	}
	if len(ys.Persons) == 0 {
		return nil
	}

	last := len(ys.Persons) + 1
	series := func(col string) excelize.ChartSeries {
		return excelize.ChartSeries{
			Name:       fmt.Sprintf("'%s'!$%s$1", sheet, col),
			Categories: fmt.Sprintf("'%s'!$A$2:$A$%d", sheet, last),
			Values:     fmt.Sprintf("'%s'!$%s$2:$%s$%d", sheet, col, col, last),
		}
	}
	chart := &excelize.Chart{
		Type:   excelize.Col,
		Series: []excelize.ChartSeries{series("B"), series("C")},
		Title: []excelize.RichTextRun{{
			Text: fmt.Sprintf("Semaines > %gh et <= %gh (%d)", threshold, threshold, ys.Year),
		}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	}
	if err := f.AddChart(sheet, "J2", chart); err != nil {
		return fmt.Errorf("adding chart to %s: %w", sheet, err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, header []any, style int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing %s header: %w", sheet, err)
	}
	end, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", end, style); err != nil {
		return fmt.Errorf("styling %s header: %w", sheet, err)
	}
	return nil
}
