package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/a3tai/mcp-planning-hours/internal/config"
	"github.com/a3tai/mcp-planning-hours/internal/descriptions"
	"github.com/a3tai/mcp-planning-hours/internal/metrics"
	"github.com/a3tai/mcp-planning-hours/internal/pdf"
	"github.com/a3tai/mcp-planning-hours/internal/store"
)

const shutdownTimeout = 5 * time.Second

// Option configures a Server
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics exposes m on /metrics in server mode.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	pdfService *pdf.Service
	serverInfo *pdf.ServerInfo
	metrics    *metrics.Metrics
	logger     *zap.Logger
	mcpServer  *server.MCPServer
	now        func() time.Time
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, pdfService *pdf.Service, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s := &Server{
		config:     cfg,
		pdfService: pdfService,
		logger:     zap.NewNop(),
		mcpServer:  mcpServer,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.serverInfo = pdf.NewServerInfo(pdfService, pdf.ServerInfoOptions{
		ServerName:    cfg.ServerName,
		Version:       cfg.Version,
		HighThreshold: cfg.HighThreshold,
		StoreBackend:  storeBackend(cfg),
	})

	s.registerTools()

	return s, nil
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	pathOption := mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Planning PDF, absolute or relative to the planning directory"),
	)

	s.mcpServer.AddTool(mcp.NewTool(descriptions.ToolParseFile,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolParseFile)),
		pathOption,
	), s.handleParseFile)

	s.mcpServer.AddTool(mcp.NewTool(descriptions.ToolExportCSV,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolExportCSV)),
		pathOption,
	), s.handleExportCSV)

	s.mcpServer.AddTool(mcp.NewTool(descriptions.ToolSave,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolSave)),
		pathOption,
	), s.handleSave)

	s.mcpServer.AddTool(mcp.NewTool(descriptions.ToolValidateFile,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolValidateFile)),
		pathOption,
	), s.handleValidateFile)

	s.mcpServer.AddTool(mcp.NewTool(descriptions.ToolSearchDirectory,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolSearchDirectory)),
		mcp.WithString("directory",
			mcp.Description("Directory path to search (uses the planning directory if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Words to find in the file name"),
		),
	), s.handleSearchDirectory)

	s.mcpServer.AddTool(mcp.NewTool(descriptions.ToolDashboard,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolDashboard)),
		mcp.WithString("person", mcp.Description("Exact person name")),
		mcp.WithNumber("year", mcp.Description("ISO week-year, e.g. 2024")),
		mcp.WithNumber("month", mcp.Description("Month 1-12 of the Thursday of the week")),
		mcp.WithString("search", mcp.Description("Free text over person, week and hours")),
		mcp.WithString("sort",
			mcp.Description("Column to sort on"),
			mcp.Enum("recorded_at", "person", "week", "hours"),
		),
		mcp.WithString("order", mcp.Description("Sort order"), mcp.Enum("asc", "desc")),
		mcp.WithNumber("page", mcp.Description("1-based page number")),
		mcp.WithNumber("page_size", mcp.Description("Rows per page (default 15)")),
	), s.handleDashboard)

	s.mcpServer.AddTool(mcp.NewTool(descriptions.ToolYearlySummary,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolYearlySummary)),
		mcp.WithNumber("year", mcp.Description("Restrict to one ISO week-year")),
		mcp.WithString("person", mcp.Description("Restrict to one person")),
		mcp.WithNumber("threshold", mcp.Description("High week threshold in hours")),
	), s.handleYearlySummary)

	s.mcpServer.AddTool(mcp.NewTool(descriptions.ToolListPersons,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolListPersons)),
	), s.handleListPersons)

	s.mcpServer.AddTool(mcp.NewTool(descriptions.ToolDeletePerson,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolDeletePerson)),
		mcp.WithString("person", mcp.Required(), mcp.Description("Exact stored person name")),
	), s.handleDeletePerson)

	s.mcpServer.AddTool(mcp.NewTool(descriptions.ToolExportXLSX,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolExportXLSX)),
		mcp.WithString("file_name", mcp.Description("Workbook name inside the planning directory")),
	), s.handleExportXLSX)

	s.mcpServer.AddTool(mcp.NewTool(descriptions.ToolServerInfo,
		mcp.WithDescription(descriptions.GetToolDescription(descriptions.ToolServerInfo)),
	), s.handleServerInfo)
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode serves MCP over stdin/stdout until ctx is cancelled
func (s *Server) runStdioMode(ctx context.Context) error {
	s.logger.Info("starting planning MCP server in stdio mode",
		zap.String("directory", s.config.PDFDirectory))

	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(zap.NewStdLog(s.logger))

	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode serves MCP over SSE, plus /metrics, until ctx is cancelled
func (s *Server) runServerMode(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.config.Address(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting planning MCP server in server mode",
			zap.String("address", httpServer.Addr),
			zap.String("directory", s.config.PDFDirectory))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve http: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down http server: %w", err)
		}
		return nil
	}
}

// Handler routes the SSE transport, health check and metrics.
func (s *Server) Handler() http.Handler {
	sse := server.NewSSEServer(s.mcpServer,
		server.WithBaseURL("http://"+s.config.Address()),
	)

	mux := http.NewServeMux()
	mux.Handle("/sse", sse.SSEHandler())
	mux.Handle("/message", sse.MessageHandler())
	mux.Handle("/metrics", s.metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// requireStore returns the configured store or a tool error
func (s *Server) requireStore() (store.Store, *mcp.CallToolResult) {
	st := s.pdfService.Store()
	if st == nil {
		return nil, mcp.NewToolResultError(pdf.ErrNoStore.Error())
	}
	return st, nil
}

func storeBackend(cfg *config.Config) string {
	if cfg.HasDatabase() {
		return "postgres"
	}
	return "memory"
}
