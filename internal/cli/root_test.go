package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-planning-hours/internal/pdf/pdftest"
)

func TestNewRootCommand(t *testing.T) {
	root := NewRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{
		"parse", "text", "export", "save", "summary", "dashboard", "persons", "delete", "version",
	}, names)

	for _, flag := range []string{"database-url", "loglevel", "high-threshold", "maxfilesize"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestRootParse(t *testing.T) {
	path := pdftest.Write(t, t.TempDir(), "planning.pdf", "", pdftest.Planning("Dupont"))

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--database-url", "", "parse", path})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "Semaine 2024-W49: 14.50 heures")
}

func TestRootUnknownCommand(t *testing.T) {
	root := NewRootCommand()
	root.SetArgs([]string{"frobnicate", filepath.Join(t.TempDir(), "x.pdf")})
	assert.Error(t, root.Execute())
}
