package pdf

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"maps"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/a3tai/mcp-planning-hours/internal/metrics"
	"github.com/a3tai/mcp-planning-hours/internal/pdf/security"
	"github.com/a3tai/mcp-planning-hours/internal/report"
	"github.com/a3tai/mcp-planning-hours/internal/schedule"
	"github.com/a3tai/mcp-planning-hours/internal/store"
)

const (
	defaultCacheSize = 256
	defaultCacheTTL  = 10 * time.Minute
)

// ErrNoStore is returned by operations that need a store when none is configured.
var ErrNoStore = errors.New("no store configured")

// Option configures a Service
type Option func(*Service)

// WithStore sets the store used by Import.
func WithStore(s store.Store) Option {
	return func(svc *Service) { svc.store = s }
}

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(svc *Service) {
		if logger != nil {
			svc.logger = logger
		}
	}
}

// WithMetrics sets the counters updated on parse and import.
func WithMetrics(m *metrics.Metrics) Option {
	return func(svc *Service) { svc.metrics = m }
}

// WithParser replaces the default schedule parser.
func WithParser(p *schedule.Parser) Option {
	return func(svc *Service) {
		if p != nil {
			svc.parser = p
		}
	}
}

// WithCacheTTL sets how long parse results are kept. Zero disables the cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(svc *Service) { svc.cacheTTL = ttl }
}

// Service handles planning PDFs by orchestrating extraction, parsing and storage
type Service struct {
	maxFileSize   int64
	extractor     *Extractor
	validator     *Validator
	search        *Search
	parser        *schedule.Parser
	pathValidator *security.PathValidator
	store         store.Store
	metrics       *metrics.Metrics
	logger        *zap.Logger
	cacheTTL      time.Duration
	cache         *expirable.LRU[string, *ScheduleResult]
	now           func() time.Time
}

// NewService creates a new planning service confined to configuredDirectory
func NewService(maxFileSize int64, configuredDirectory string, opts ...Option) (*Service, error) {
	pathValidator, err := security.NewPathValidator(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	s := &Service{
		maxFileSize:   maxFileSize,
		extractor:     NewExtractor(maxFileSize),
		validator:     NewValidator(maxFileSize),
		search:        NewSearch(maxFileSize),
		pathValidator: pathValidator,
		logger:        zap.NewNop(),
		cacheTTL:      defaultCacheTTL,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.parser == nil {
		s.parser = schedule.NewParser(schedule.WithLogger(s.logger))
	}
	if s.cacheTTL > 0 {
		s.cache = expirable.NewLRU[string, *ScheduleResult](defaultCacheSize, nil, s.cacheTTL)
	}

	return s, nil
}

// ParseFile extracts the person and the weekly hours of a planning PDF.
// Identical files are served from the cache.
func (s *Service) ParseFile(ctx context.Context, req ScheduleParseRequest) (*ScheduleResult, error) {
	path, err := s.pathValidator.NormalizePath(req.Path)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, size, err := s.readPlanning(path)
	if err != nil {
		s.metrics.ObserveParseFailure()
		return nil, err
	}

	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])

	if s.cache != nil {
		if cached, ok := s.cache.Get(digest); ok {
			res := *cached
			res.Path = path
			res.Cached = true
			res.Weeks = maps.Clone(cached.Weeks)
			s.metrics.ObserveParse(len(res.Weeks), true)
			s.logger.Debug("planning served from cache",
				zap.String("path", path),
				zap.String("digest", digest))
			return &res, nil
		}
	}

	extracted, err := s.extractor.Extract(data)
	if err != nil {
		s.metrics.ObserveParseFailure()
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc := s.parser.ParseDocument(extracted.Text)
	result := &ScheduleResult{
		Path:       path,
		Pages:      extracted.Pages,
		Size:       size,
		Person:     doc.Person,
		Weeks:      doc.Weeks,
		TotalHours: schedule.Round2(doc.Weeks.Total()),
		Digest:     digest,
	}

	if s.cache != nil {
		entry := *result
		entry.Weeks = maps.Clone(result.Weeks)
		s.cache.Add(digest, &entry)
	}
	s.metrics.ObserveParse(len(doc.Weeks), false)
	s.logger.Info("planning parsed",
		zap.String("path", path),
		zap.String("person", doc.Person),
		zap.Int("pages", extracted.Pages),
		zap.Int("weeks", len(doc.Weeks)))

	return result, nil
}

// Import parses a planning PDF and upserts its weeks into the store.
func (s *Service) Import(ctx context.Context, req ScheduleParseRequest) (*ImportResult, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}

	parsed, err := s.ParseFile(ctx, req)
	if err != nil {
		return nil, err
	}

	importID := uuid.New()
	written, err := s.store.UpsertWeeks(ctx, parsed.Person, importID, parsed.Weeks)
	s.metrics.ObserveStore(written, err)
	if err != nil {
		return nil, fmt.Errorf("failed to store weeks for %s: %w", parsed.Person, err)
	}

	s.logger.Info("planning imported",
		zap.String("path", parsed.Path),
		zap.String("person", parsed.Person),
		zap.Stringer("import_id", importID),
		zap.Int("written", written))

	return &ImportResult{
		ScheduleResult: parsed,
		ImportID:       importID,
		Written:        written,
	}, nil
}

// ExportCSV parses a planning PDF and renders its weeks as CSV.
func (s *Service) ExportCSV(ctx context.Context, req ScheduleParseRequest) (*CSVExport, error) {
	parsed, err := s.ParseFile(ctx, req)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, parsed.Person, parsed.Weeks); err != nil {
		return nil, err
	}

	return &CSVExport{
		FileName: report.CSVFileName(parsed.Person, s.now()),
		Person:   parsed.Person,
		Content:  buf.String(),
	}, nil
}

// ValidateFile performs validation on a PDF file
func (s *Service) ValidateFile(req ValidateFileRequest) (*ValidateFileResult, error) {
	path, err := s.pathValidator.NormalizePath(req.Path)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	req.Path = path
	return s.validator.ValidateFile(req)
}

// SearchDirectory searches for planning PDFs in a directory
func (s *Service) SearchDirectory(req SearchDirectoryRequest) (*SearchDirectoryResult, error) {
	if req.Directory == "" {
		req.Directory = s.pathValidator.GetConfiguredDirectory()
	}

	if err := s.pathValidator.ValidateDirectory(req.Directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	return s.search.SearchDirectory(req)
}

// Store returns the configured store, or nil.
func (s *Service) Store() store.Store {
	return s.store
}

// Directory returns the planning directory.
func (s *Service) Directory() string {
	return s.pathValidator.GetConfiguredDirectory()
}

// ResolvePath returns the absolute form of a path inside the planning directory.
func (s *Service) ResolvePath(path string) (string, error) {
	return s.pathValidator.NormalizePath(path)
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}

// readPlanning reads a PDF after the cheap file checks
func (s *Service) readPlanning(path string) ([]byte, int64, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, 0, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("cannot access file: %w", err)
	}
	if err := checkFileInfo(path, info, s.maxFileSize); err != nil {
		return nil, 0, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read file: %w", err)
	}
	return data, info.Size(), nil
}
