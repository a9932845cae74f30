package pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/a3tai/mcp-planning-hours/internal/descriptions"
)

const (
	scanFileLimit = 100
	scanTimeout   = 5 * time.Second
)

// ServerInfoOptions carries the settings reported by ServerInfo
type ServerInfoOptions struct {
	ServerName    string
	Version       string
	HighThreshold float64
	StoreBackend  string
}

// ServerInfo reports server capabilities and the plannings on disk.
// Directory listings are cached for a few minutes.
type ServerInfo struct {
	service *Service
	options ServerInfoOptions
	cache   *expirable.LRU[string, []FileInfo]
}

// NewServerInfo creates a new server info handler
func NewServerInfo(service *Service, options ServerInfoOptions) *ServerInfo {
	return &ServerInfo{
		service: service,
		options: options,
		cache:   expirable.NewLRU[string, []FileInfo](16, nil, 5*time.Minute),
	}
}

// GetServerInfo returns server information and the planning directory contents
func (p *ServerInfo) GetServerInfo(ctx context.Context) (*ServerInfoResult, error) {
	dir := p.service.Directory()

	files, ok := p.cache.Get(dir)
	if !ok {
		files = p.scan(ctx, dir)
		p.cache.Add(dir, files)
	}

	return &ServerInfoResult{
		ServerName:        p.options.ServerName,
		Version:           p.options.Version,
		DefaultDirectory:  dir,
		MaxFileSize:       p.service.GetMaxFileSize(),
		HighThreshold:     p.options.HighThreshold,
		StoreBackend:      p.options.StoreBackend,
		AvailableTools:    p.getAvailableTools(),
		DirectoryContents: files,
		UsageGuidance:     p.getUsageGuidance(),
	}, nil
}

// ClearCache drops the cached directory listings
func (p *ServerInfo) ClearCache() {
	p.cache.Purge()
}

// scan lists the directory with a timeout; failures yield an empty listing
func (p *ServerInfo) scan(ctx context.Context, dir string) []FileInfo {
	ctx, cancel := context.WithTimeout(ctx, scanTimeout)
	defer cancel()

	resultChan := make(chan []FileInfo, 1)
	go func() {
		files, err := p.service.search.FindPDFsInDirectoryLimited(dir, scanFileLimit)
		if err != nil {
			files = nil
		}
		resultChan <- files
	}()

	select {
	case files := <-resultChan:
		if files == nil {
			return []FileInfo{}
		}
		return files
	case <-ctx.Done():
		return []FileInfo{}
	}
}

// getAvailableTools returns the list of available tools
func (p *ServerInfo) getAvailableTools() []ToolInfo {
	pathParam := "path (required): planning PDF, absolute or relative to the planning directory"

	return []ToolInfo{
		{
			Name:        descriptions.ToolParseFile,
			Description: descriptions.GetToolDescription(descriptions.ToolParseFile),
			Usage:       "Compute hours per ISO week from a planning without storing them.",
			Parameters:  pathParam,
		},
		{
			Name:        descriptions.ToolExportCSV,
			Description: descriptions.GetToolDescription(descriptions.ToolExportCSV),
			Usage:       "Get the weekly hours of a planning as CSV text.",
			Parameters:  pathParam,
		},
		{
			Name:        descriptions.ToolSave,
			Description: descriptions.GetToolDescription(descriptions.ToolSave),
			Usage:       "Parse a planning and store its weeks for the dashboard and summaries.",
			Parameters:  pathParam,
		},
		{
			Name:        descriptions.ToolValidateFile,
			Description: descriptions.GetToolDescription(descriptions.ToolValidateFile),
			Usage:       "Check a PDF before parsing it.",
			Parameters:  pathParam,
		},
		{
			Name:        descriptions.ToolSearchDirectory,
			Description: descriptions.GetToolDescription(descriptions.ToolSearchDirectory),
			Usage:       "Find plannings by file name.",
			Parameters: "directory (optional): directory to search (defaults to the planning directory), " +
				"query (optional): words to find in the file name",
		},
		{
			Name:        descriptions.ToolDashboard,
			Description: descriptions.GetToolDescription(descriptions.ToolDashboard),
			Usage:       "Browse stored weeks.",
			Parameters: "person, year, month, search, sort (recorded_at|person|week|hours), " +
				"order (asc|desc), page, page_size: all optional",
		},
		{
			Name:        descriptions.ToolYearlySummary,
			Description: descriptions.GetToolDescription(descriptions.ToolYearlySummary),
			Usage:       "High and low weeks per person and year.",
			Parameters:  "year (optional), person (optional), threshold (optional, hours)",
		},
		{
			Name:        descriptions.ToolListPersons,
			Description: descriptions.GetToolDescription(descriptions.ToolListPersons),
			Usage:       "See whose weeks are stored.",
			Parameters:  "none",
		},
		{
			Name:        descriptions.ToolDeletePerson,
			Description: descriptions.GetToolDescription(descriptions.ToolDeletePerson),
			Usage:       "Remove a person and all their weeks.",
			Parameters:  "person (required): exact stored name",
		},
		{
			Name:        descriptions.ToolExportXLSX,
			Description: descriptions.GetToolDescription(descriptions.ToolExportXLSX),
			Usage:       "Write the stored weeks and yearly summaries to an Excel file.",
			Parameters:  "file_name (optional): workbook name inside the planning directory",
		},
		{
			Name:        descriptions.ToolServerInfo,
			Description: descriptions.GetToolDescription(descriptions.ToolServerInfo),
			Usage:       "Discover the server configuration and plannings on disk.",
			Parameters:  "none",
		},
	}
}

// getUsageGuidance returns usage guidance
func (p *ServerInfo) getUsageGuidance() string {
	maxFileSizeMB := p.service.GetMaxFileSize() / (1024 * 1024)

	return fmt.Sprintf(`Planning Hours MCP Server Usage Guide:

1. FIND PLANNINGS:
   - Use '%s' to list the plannings in the planning directory

2. READ A PLANNING:
   - Use '%s' to get the hours per ISO week (YYYY-Www)
   - Use '%s' to get the same result as CSV

3. STORE AND ANALYZE:
   - Use '%s' to store the weeks of a planning (re-saving overwrites the same weeks)
   - Use '%s' to browse stored weeks
   - Use '%s' for high (> %.2fh) and low weeks per year

IMPORTANT NOTES:
- Paths may be absolute or relative to the planning directory
- The server can handle files up to %dMB
- Only text PDFs are supported; scanned plannings have no text to parse`,
		descriptions.ToolSearchDirectory,
		descriptions.ToolParseFile, descriptions.ToolExportCSV,
		descriptions.ToolSave, descriptions.ToolDashboard, descriptions.ToolYearlySummary,
		p.options.HighThreshold, maxFileSizeMB)
}
