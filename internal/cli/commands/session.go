// Package commands implements the planning subcommands.
package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/a3tai/mcp-planning-hours/internal/logging"
	"github.com/a3tai/mcp-planning-hours/internal/pdf"
	"github.com/a3tai/mcp-planning-hours/internal/store"
)

// GlobalOptions holds the persistent flags of the root command.
type GlobalOptions struct {
	DatabaseURL string
	LogLevel    string
	Threshold   float64
	MaxFileSize int64
}

// session carries what a single command invocation needs.
type session struct {
	opts   *GlobalOptions
	logger *zap.Logger
	store  store.Store
	close  func()
}

func openSession(ctx context.Context, opts *GlobalOptions, withStore bool) (*session, error) {
	logger, err := logging.New(logging.ZapConfig{Level: opts.LogLevel, Encoding: logging.EncodingConsole})
	if err != nil {
		return nil, err
	}

	s := &session{opts: opts, logger: logger, close: func() {}}
	if withStore {
		st, closeStore, err := store.Open(ctx, opts.DatabaseURL, logger)
		if err != nil {
			_ = logger.Sync()
			return nil, err
		}
		s.store = st
		s.close = closeStore
	}
	return s, nil
}

func (s *session) Close() {
	s.close()
	_ = s.logger.Sync()
}

// service returns a service confined to the directory holding path, along
// with the absolute path to pass to it.
func (s *session) service(path string) (*pdf.Service, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", fmt.Errorf("invalid path %s: %w", path, err)
	}

	opts := []pdf.Option{pdf.WithLogger(s.logger), pdf.WithCacheTTL(0)}
	if s.store != nil {
		opts = append(opts, pdf.WithStore(s.store))
	}
	svc, err := pdf.NewService(s.opts.MaxFileSize, filepath.Dir(abs), opts...)
	if err != nil {
		return nil, "", err
	}
	return svc, abs, nil
}

// importFiles parses every planning into the session store.
func (s *session) importFiles(ctx context.Context, paths []string) ([]*pdf.ImportResult, error) {
	results := make([]*pdf.ImportResult, 0, len(paths))
	for _, path := range paths {
		svc, abs, err := s.service(path)
		if err != nil {
			return results, err
		}
		res, err := svc.Import(ctx, pdf.ScheduleParseRequest{Path: abs})
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
