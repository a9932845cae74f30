// Package ingest imports planning PDFs dropped into a watched directory.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/a3tai/mcp-planning-hours/internal/pdf"
)

const defaultDebounce = 500 * time.Millisecond

// Importer parses a planning and stores its weeks.
type Importer interface {
	Import(ctx context.Context, req pdf.ScheduleParseRequest) (*pdf.ImportResult, error)
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the watcher logger.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithDebounce sets how long a file must stay quiet before it is imported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithExisting imports the PDFs already in the directory on start.
func WithExisting(enabled bool) Option {
	return func(w *Watcher) { w.existing = enabled }
}

// WithOnImport registers a callback run after every import attempt.
func WithOnImport(fn func(path string, res *pdf.ImportResult, err error)) Option {
	return func(w *Watcher) { w.onImport = fn }
}

// Watcher imports PDFs created or rewritten in a directory.
type Watcher struct {
	dir      string
	importer Importer
	logger   *zap.Logger
	debounce time.Duration
	existing bool
	onImport func(path string, res *pdf.ImportResult, err error)
	ready    chan struct{}
}

// NewWatcher creates a watcher over dir. Subdirectories are not watched.
func NewWatcher(dir string, importer Importer, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		importer: importer,
		logger:   zap.NewNop(),
		debounce: defaultDebounce,
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Ready is closed once the directory is being watched.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches the directory until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.logger.Info("watching planning directory", zap.String("dir", w.dir))
	close(w.ready)

	if w.existing {
		w.importExisting(ctx)
	}

	files := newDebouncer(w.debounce)
	defer files.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			files.touch(ctx, ev.Name)

		case p := <-files.due:
			if files.take(p) {
				w.importFile(ctx, p.path)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// pendingFile is one armed debounce timer for a path.
type pendingFile struct {
	path  string
	timer *time.Timer
}

// debouncer delays a path until it has been quiet for delay. It is owned by
// the Run loop; only the timers touch due.
type debouncer struct {
	delay   time.Duration
	due     chan *pendingFile
	pending map[string]*pendingFile
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		due:     make(chan *pendingFile, 16),
		pending: make(map[string]*pendingFile),
	}
}

// touch (re)arms the timer of path. A timer that already fired is replaced,
// which supersedes the entry it queued on due.
func (d *debouncer) touch(ctx context.Context, path string) {
	if p, ok := d.pending[path]; ok && p.timer.Stop() {
		p.timer.Reset(d.delay)
		return
	}
	p := &pendingFile{path: path}
	p.timer = time.AfterFunc(d.delay, func() {
		select {
		case d.due <- p:
		case <-ctx.Done():
		}
	})
	d.pending[path] = p
}

// take reports whether p is still the latest entry for its path, and forgets
// it if so.
func (d *debouncer) take(p *pendingFile) bool {
	if d.pending[p.path] != p {
		return false
	}
	delete(d.pending, p.path)
	return true
}

func (d *debouncer) stop() {
	for _, p := range d.pending {
		p.timer.Stop()
	}
}

func (w *Watcher) importExisting(ctx context.Context) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		w.logger.Warn("cannot list planning directory", zap.String("dir", w.dir), zap.Error(err))
		return
	}
	for _, e := range entries {
		if ctx.Err() != nil {
			return
		}
		if e.IsDir() || !isPDF(e.Name()) {
			continue
		}
		w.importFile(ctx, filepath.Join(w.dir, e.Name()))
	}
}

func (w *Watcher) importFile(ctx context.Context, path string) {
	res, err := w.importer.Import(ctx, pdf.ScheduleParseRequest{Path: path})
	switch {
	case err == nil:
		w.logger.Info("planning imported from inbox",
			zap.String("path", path),
			zap.String("person", res.Person),
			zap.Int("weeks", res.Written))
	case errors.Is(err, context.Canceled):
	default:
		w.logger.Error("planning import failed", zap.String("path", path), zap.Error(err))
	}

	if w.onImport != nil {
		w.onImport(path, res, err)
	}
}

func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return false
	}
	name := filepath.Base(ev.Name)
	return isPDF(name) && !strings.HasPrefix(name, ".")
}

func isPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
