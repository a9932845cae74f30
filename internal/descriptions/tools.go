package descriptions

import "sort"

// Tool names exposed over MCP
const (
	ToolParseFile       = "schedule_parse_file"
	ToolExportCSV       = "schedule_export_csv"
	ToolSave            = "schedule_save"
	ToolValidateFile    = "schedule_validate_file"
	ToolSearchDirectory = "schedule_search_directory"
	ToolServerInfo      = "schedule_server_info"
	ToolDashboard       = "hours_dashboard"
	ToolYearlySummary   = "hours_yearly_summary"
	ToolListPersons     = "hours_list_persons"
	ToolDeletePerson    = "hours_delete_person"
	ToolExportXLSX      = "hours_export_xlsx"
)

const (
	ParseFileDescription = `Compute the hours worked per ISO week from a work planning PDF.

**When to use:** A planning export ("Planning de travail pour ...") needs to be turned into weekly totals.

**How it works:** Each day is read as a day name, a date, then either a "Journée entière <CODE>" line or
"HH:MM - HH:MM <CODE>" slots. Work codes (VAL_, REU_, FOR_, PRD_, ZZZ_) count, absences, leave, sickness
and meal breaks (PAU_REPAS) do not. Slots crossing midnight are handled.

**Examples:**
• "How many hours did Dupont work per week in planning_dupont.pdf?"
• "Parse 2024/planning_martin.pdf and list the weeks"

**Best practices:** Nothing is stored. Use schedule_save to keep the result, schedule_export_csv for a file.`

	ExportCSVDescription = `Render the weekly hours of a planning PDF as CSV.

**When to use:** A spreadsheet-ready export of one planning is needed.

**Output:** Columns Personne, Semaine, HeuresTravaillees sorted by week, plus a suggested file name
heures_<person>_<YYYYMMDD>.csv.`

	SaveDescription = `Parse a planning PDF and store its weekly hours.

**When to use:** The totals should feed the dashboard and the yearly summaries.

**Behavior:** Records are keyed by person and week, so saving a newer planning for the same weeks
overwrites the older totals. Every save gets an import id.`

	ValidateFileDescription = `Check that a file is a readable PDF before parsing it.

**Output:** valid flag, page count and PDF version, or the reason the file was rejected.`

	SearchDirectoryDescription = `Find planning PDFs in the planning directory.

**When to use:** Locate a person's planning by file name before parsing it.

**Matching:** Every word of the query must appear in the file name, ignoring case and accents.`

	ServerInfoDescription = `Describe the server: planning directory, limits, week classification threshold,
storage backend, available tools and the plannings currently on disk.

**When to use:** First call in a session, to discover what can be done.`

	DashboardDescription = `Browse stored weekly hours with filters, search, sorting and pagination.

**Filters:** person, year, month (the month of the Thursday of the ISO week), free-text search over
person, week and hours.

**Sorting:** recorded_at (default, newest first), person, week or hours; 15 rows per page by default.`

	YearlySummaryDescription = `Summarize stored weeks per year and per person.

**Classification:** a week is high when its hours exceed the threshold (35h by default), low when it
has some hours but not more than the threshold, other when it has none.

**Output:** counts of high, low and other weeks, active weeks, total hours, and the longest run of
consecutive stored high or low weeks.`

	ListPersonsDescription = `List the persons with stored weekly hours, sorted by name.`

	DeletePersonDescription = `Delete every stored week of one person.

**Caution:** This cannot be undone. Re-import the plannings to restore the data.`

	ExportXLSXDescription = `Export the stored weeks and yearly summaries to an Excel workbook.

**Output:** a "Semaines" sheet with every stored week and one sheet per year with the high/low
counts per person and a column chart. The workbook is written to the planning directory.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	ToolParseFile:       ParseFileDescription,
	ToolExportCSV:       ExportCSVDescription,
	ToolSave:            SaveDescription,
	ToolValidateFile:    ValidateFileDescription,
	ToolSearchDirectory: SearchDirectoryDescription,
	ToolServerInfo:      ServerInfoDescription,
	ToolDashboard:       DashboardDescription,
	ToolYearlySummary:   YearlySummaryDescription,
	ToolListPersons:     ListPersonsDescription,
	ToolDeletePerson:    DeletePersonDescription,
	ToolExportXLSX:      ExportXLSXDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns the available tool names in sorted order
func GetAllToolNames() []string {
	names := make([]string, 0, len(ToolDescriptions))
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
