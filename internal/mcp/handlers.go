package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/a3tai/mcp-planning-hours/internal/analytics"
	"github.com/a3tai/mcp-planning-hours/internal/pdf"
	"github.com/a3tai/mcp-planning-hours/internal/report"
	"github.com/a3tai/mcp-planning-hours/internal/schedule"
	"github.com/a3tai/mcp-planning-hours/internal/store"
)

func (s *Server) handleParseFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.ParseFile(ctx, pdf.ScheduleParseRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatScheduleResult(result)), nil
}

func (s *Server) handleExportCSV(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	export, err := s.pdfService.ExportCSV(ctx, pdf.ScheduleParseRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := fmt.Sprintf("File name: %s\n\n%s", export.FileName, export.Content)
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleSave(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.Import(ctx, pdf.ScheduleParseRequest{Path: path})
	if err != nil {
		s.logger.Error("save failed", zap.String("path", path), zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := formatScheduleResult(result.ScheduleResult)
	text += fmt.Sprintf("\nSaved %d weeks for %s (import %s)\n", result.Written, result.Person, result.ImportID)
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleValidateFile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.ValidateFile(pdf.ValidateFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !result.Valid {
		return mcp.NewToolResultText(fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("PDF file %s is valid and readable (%d pages, PDF %s)",
		result.Path, result.Pages, result.Version)), nil
}

func (s *Server) handleSearchDirectory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := pdf.SearchDirectoryRequest{
		Directory: request.GetString("directory", ""),
		Query:     request.GetString("query", ""),
	}

	result, err := s.pdfService.SearchDirectory(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := fmt.Sprintf("Found %d planning PDF files in %s", result.TotalCount, result.Directory)
	if result.SearchQuery != "" {
		text += fmt.Sprintf(" matching '%s'", result.SearchQuery)
	}
	text += ":\n\n"
	for _, file := range result.Files {
		text += fmt.Sprintf("• %s (%d bytes, modified %s)\n  Path: %s\n", file.Name, file.Size, file.ModifiedTime, file.Path)
	}

	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleDashboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, errResult := s.requireStore()
	if errResult != nil {
		return errResult, nil
	}

	q, err := dashboardQuery(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	records, err := st.List(ctx, store.Filter{Person: q.Person, Year: q.Year})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatDashboardPage(analytics.Dashboard(records, q))), nil
}

func (s *Server) handleYearlySummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, errResult := s.requireStore()
	if errResult != nil {
		return errResult, nil
	}

	threshold := request.GetFloat("threshold", s.config.HighThreshold)
	if threshold <= 0 {
		return mcp.NewToolResultError("threshold must be positive"), nil
	}

	filter := store.Filter{
		Person: request.GetString("person", ""),
		Year:   request.GetInt("year", 0),
	}
	records, err := st.List(ctx, filter)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var buf bytes.Buffer
	if err := report.WriteSummaries(&buf, analytics.YearlySummaries(records, threshold), threshold); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) handleListPersons(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, errResult := s.requireStore()
	if errResult != nil {
		return errResult, nil
	}

	persons, err := st.Persons(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(persons) == 0 {
		return mcp.NewToolResultText("Aucune personne enregistrée."), nil
	}

	text := fmt.Sprintf("%d persons:\n", len(persons))
	for _, p := range persons {
		text += "• " + p + "\n"
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleDeletePerson(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, errResult := s.requireStore()
	if errResult != nil {
		return errResult, nil
	}

	person, err := request.RequireString("person")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	deleted, err := st.DeletePerson(ctx, person)
	if errors.Is(err, store.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("no stored weeks for %q", person)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.logger.Info("person deleted", zap.String("person", person), zap.Int("weeks", deleted))
	return mcp.NewToolResultText(fmt.Sprintf("Deleted %d weeks for %s", deleted, person)), nil
}

func (s *Server) handleExportXLSX(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, errResult := s.requireStore()
	if errResult != nil {
		return errResult, nil
	}

	name := request.GetString("file_name", "")
	if name == "" {
		name = fmt.Sprintf("heures_%s.xlsx", s.now().Format("20060102"))
	}
	if !strings.EqualFold(filepath.Ext(name), ".xlsx") {
		return mcp.NewToolResultError("file_name must end with .xlsx"), nil
	}
	path, err := s.pdfService.ResolvePath(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	records, err := st.List(ctx, store.Filter{})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(records) == 0 {
		return mcp.NewToolResultError(report.ErrNoWeeks.Error()), nil
	}

	threshold := s.config.HighThreshold
	var buf bytes.Buffer
	if err := report.WriteWorkbook(&buf, records, analytics.YearlySummaries(records, threshold), threshold); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to write workbook: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Workbook written to %s (%d weeks)", path, len(records))), nil
}

func (s *Server) handleServerInfo(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.serverInfo.GetServerInfo(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatServerInfoResult(result)), nil
}

// dashboardQuery reads the dashboard arguments. Without sort or order the
// most recent imports come first.
func dashboardQuery(request mcp.CallToolRequest) (analytics.Query, error) {
	q := analytics.Query{
		Person:   request.GetString("person", ""),
		Year:     request.GetInt("year", 0),
		Month:    request.GetInt("month", 0),
		Search:   request.GetString("search", ""),
		Page:     request.GetInt("page", 1),
		PageSize: request.GetInt("page_size", analytics.DefaultPageSize),
	}
	if q.Month < 0 || q.Month > 12 {
		return q, fmt.Errorf("month must be between 1 and 12")
	}

	sortArg := request.GetString("sort", "")
	order := strings.ToLower(request.GetString("order", ""))
	if order != "" && order != "asc" && order != "desc" {
		return q, fmt.Errorf("order must be asc or desc")
	}
	if sortArg == "" && order == "" {
		return q, nil
	}

	key, err := analytics.ParseSortKey(sortArg)
	if err != nil {
		return q, err
	}
	q.Sort = key
	q.Desc = order == "desc" || (order == "" && key == analytics.SortByRecordedAt)
	return q, nil
}

func formatScheduleResult(result *pdf.ScheduleResult) string {
	text := fmt.Sprintf("Planning: %s\n", result.Path)
	text += fmt.Sprintf("Pages: %d\n", result.Pages)
	text += fmt.Sprintf("Total: %s heures\n", schedule.FormatHours(result.TotalHours))
	if result.Cached {
		text += "(from cache)\n"
	}
	text += "\n" + report.FormatWeeks(result.Person, result.Weeks)
	return text
}

func formatDashboardPage(page analytics.Page) string {
	if page.TotalItems == 0 {
		return "Aucune donnée pour ces filtres."
	}

	text := fmt.Sprintf("Page %d/%d, %d weeks, %s heures au total\n\n",
		page.Page, page.TotalPages, page.TotalItems, schedule.FormatHours(page.TotalHours))
	for _, r := range page.Records {
		text += fmt.Sprintf("%s | %s | %s h | %s\n",
			r.Person, r.Week, schedule.FormatHours(r.Hours), r.RecordedAt.Format("02/01/2006 15:04"))
	}
	return text
}

func formatServerInfoResult(result *pdf.ServerInfoResult) string {
	text := fmt.Sprintf("📋 %s v%s - Server Information\n", result.ServerName, result.Version)
	text += fmt.Sprintf("📁 Planning Directory: %s\n", result.DefaultDirectory)
	text += fmt.Sprintf("📏 Max File Size: %d MB\n", result.MaxFileSize/(1024*1024))
	text += fmt.Sprintf("📈 High Week Threshold: %s h\n", schedule.FormatHours(result.HighThreshold))
	text += fmt.Sprintf("🗄️  Store: %s\n\n", result.StoreBackend)

	if len(result.DirectoryContents) > 0 {
		text += fmt.Sprintf("📂 Directory Contents (%d PDF files found):\n", len(result.DirectoryContents))
		for i, file := range result.DirectoryContents {
			if i >= 10 {
				text += fmt.Sprintf("   ... and %d more files\n", len(result.DirectoryContents)-10)
				break
			}
			text += fmt.Sprintf("   %d. %s (%d bytes)\n", i+1, file.Name, file.Size)
		}
		text += "\n"
	} else {
		text += "📂 Directory Contents: No PDF files found in planning directory\n\n"
	}

	text += "🛠️  Available Tools:\n"
	for _, tool := range result.AvailableTools {
		text += fmt.Sprintf("\n• %s\n", tool.Name)
		text += fmt.Sprintf("  Usage: %s\n", tool.Usage)
		text += fmt.Sprintf("  Parameters: %s\n", tool.Parameters)
	}

	text += "\n" + result.UsageGuidance
	return text
}
