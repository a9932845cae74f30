package pdf

import (
	"github.com/google/uuid"

	"github.com/a3tai/mcp-planning-hours/internal/schedule"
)

// FileInfo represents information about a planning PDF file
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// ScheduleParseRequest represents a request to parse a planning PDF
type ScheduleParseRequest struct {
	Path string `json:"path"`
}

// ScheduleResult is the outcome of parsing a planning PDF.
type ScheduleResult struct {
	Path       string               `json:"path"`
	Pages      int                  `json:"pages"`
	Size       int64                `json:"size"`
	Person     string               `json:"person"`
	Weeks      schedule.WeeklyHours `json:"weeks"`
	TotalHours float64              `json:"total_hours"`
	Digest     string               `json:"digest"`
	Cached     bool                 `json:"cached"`
}

// ImportResult reports a planning parsed and written to the store
type ImportResult struct {
	*ScheduleResult
	ImportID uuid.UUID `json:"import_id"`
	Written  int       `json:"written"`
}

// CSVExport is a planning rendered as CSV
type CSVExport struct {
	FileName string `json:"file_name"`
	Person   string `json:"person"`
	Content  string `json:"content"`
}

// ExtractResult holds the text layer of a PDF
type ExtractResult struct {
	Text  string `json:"text"`
	Pages int    `json:"pages"`
	Title string `json:"title,omitempty"`
}

// ValidateFileRequest represents a request to validate a PDF file
type ValidateFileRequest struct {
	Path string `json:"path"`
}

// ValidateFileResult represents the result of validating a PDF file
type ValidateFileResult struct {
	Path    string `json:"path"`
	Valid   bool   `json:"valid"`
	Pages   int    `json:"pages,omitempty"`
	Version string `json:"version,omitempty"`
	Message string `json:"message,omitempty"`
}

// SearchDirectoryRequest represents a request to search for planning PDFs
type SearchDirectoryRequest struct {
	Directory string `json:"directory"`
	Query     string `json:"query,omitempty"`
}

// SearchDirectoryResult represents the result of searching for planning PDFs
type SearchDirectoryResult struct {
	Files       []FileInfo `json:"files"`
	TotalCount  int        `json:"total_count"`
	Directory   string     `json:"directory"`
	SearchQuery string     `json:"search_query,omitempty"`
}

// ServerInfoResult represents server information and status
type ServerInfoResult struct {
	ServerName        string     `json:"server_name"`
	Version           string     `json:"version"`
	DefaultDirectory  string     `json:"default_directory"`
	MaxFileSize       int64      `json:"max_file_size"`
	HighThreshold     float64    `json:"high_threshold"`
	StoreBackend      string     `json:"store_backend"`
	AvailableTools    []ToolInfo `json:"available_tools"`
	DirectoryContents []FileInfo `json:"directory_contents"`
	UsageGuidance     string     `json:"usage_guidance"`
}

// ToolInfo represents information about an available tool
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
	Parameters  string `json:"parameters"`
}
