package main

import (
	"bytes"
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/a3tai/mcp-planning-hours/internal/config"
)

func TestPrintVersion(t *testing.T) {
	oldVersion, oldBuildTime, oldGitCommit := version, buildTime, gitCommit
	t.Cleanup(func() { version, buildTime, gitCommit = oldVersion, oldBuildTime, oldGitCommit })

	version = "1.2.3"
	buildTime = "2024-12-01_10:30:00"
	gitCommit = "abc123"

	var buf bytes.Buffer
	printVersion(&buf)

	out := buf.String()
	assert.Contains(t, out, "MCP Planning Hours")
	assert.Contains(t, out, "Version: 1.2.3")
	assert.Contains(t, out, "Build Time: 2024-12-01_10:30:00")
	assert.Contains(t, out, "Git Commit: abc123")
	assert.Contains(t, out, runtime.Version())
}

func TestRunServerModeStops(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Mode = config.ModeServer
	cfg.Port = 0
	cfg.PDFDirectory = t.TempDir()
	cfg.Watch = true

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, zap.NewNop()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestRunInvalidDatabase(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.PDFDirectory = t.TempDir()
	cfg.DatabaseURL = "not a url ::"

	err := run(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "failed to open store")
}
