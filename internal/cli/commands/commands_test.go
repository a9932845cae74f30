package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-planning-hours/internal/pdf/pdftest"
)

func testOptions() *GlobalOptions {
	return &GlobalOptions{
		LogLevel:    "error",
		Threshold:   35,
		MaxFileSize: 1 << 20,
	}
}

func writePlanning(t *testing.T, person string) string {
	t.Helper()
	return pdftest.Write(t, t.TempDir(), "planning.pdf", "", pdftest.Planning(person))
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewParseCommand(t *testing.T) {
	cmd := NewParseCommand(testOptions())
	assert.Equal(t, "parse <planning.pdf>...", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("json"))
}

func TestParseCommand(t *testing.T) {
	path := writePlanning(t, "Dupont")

	out, err := execute(t, NewParseCommand(testOptions()), path)
	require.NoError(t, err)
	assert.Contains(t, out, "Heures de travail pour Dupont par semaine")
	assert.Contains(t, out, "Semaine 2024-W49: 14.50 heures")
}

func TestParseCommandJSON(t *testing.T) {
	path := writePlanning(t, "Dupont")

	out, err := execute(t, NewParseCommand(testOptions()), "--json", path)
	require.NoError(t, err)

	var results []struct {
		Person string             `json:"person"`
		Weeks  map[string]float64 `json:"weeks"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Dupont", results[0].Person)
	assert.InDelta(t, 14.5, results[0].Weeks["2024-W49"], 0.001)
}

func TestParseCommandJSONRoundsHours(t *testing.T) {
	path := pdftest.Write(t, t.TempDir(), "planning.pdf", "", []string{
		"Planning de travail pour Dupont",
		"Lundi",
		"1er janvier 2024",
		"08:20 - 09:10 VAL_ACCUEIL",
		"10:00 - 10:10 VAL_ACCUEIL",
		"11:00 - 11:10 REU_EQUIPE",
	})

	out, err := execute(t, NewParseCommand(testOptions()), "--json", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"2024-W01": 1.17`)
	assert.NotContains(t, out, "1.1666")
}

func TestParseCommandMissingFile(t *testing.T) {
	_, err := execute(t, NewParseCommand(testOptions()), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestParseCommandRequiresArgs(t *testing.T) {
	_, err := execute(t, NewParseCommand(testOptions()))
	assert.Error(t, err)
}

func TestTextCommand(t *testing.T) {
	path := writePlanning(t, "Dupont")

	out, err := execute(t, NewTextCommand(testOptions()), path)
	require.NoError(t, err)
	assert.Contains(t, out, "Planning de travail pour Dupont")
	assert.Contains(t, out, "Journée entière PRD_TELETRAVAIL")
}

func TestExportCommand(t *testing.T) {
	path := writePlanning(t, "Dupont")
	output := filepath.Join(t.TempDir(), "out.csv")

	cmd := NewExportCommand(testOptions())
	assert.NotNil(t, cmd.Flags().ShorthandLookup("o"))

	out, err := execute(t, cmd, "-o", output, path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported Dupont to "+output)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Personne,Semaine,HeuresTravaillees")
	assert.Contains(t, string(content), "Dupont,2024-W49,14.50")
}

func TestExportCommandStdout(t *testing.T) {
	path := writePlanning(t, "Dupont")

	out, err := execute(t, NewExportCommand(testOptions()), "--output", "-", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Dupont,2024-W49,14.50")
}

func TestSaveCommandRequiresDatabase(t *testing.T) {
	path := writePlanning(t, "Dupont")

	_, err := execute(t, NewSaveCommand(testOptions()), path)
	assert.ErrorIs(t, err, errNoDatabase)
}

func TestDeleteCommandRequiresDatabase(t *testing.T) {
	_, err := execute(t, NewDeleteCommand(testOptions()), "Dupont")
	assert.ErrorIs(t, err, errNoDatabase)
}

func TestSummaryCommand(t *testing.T) {
	path := writePlanning(t, "Dupont")

	out, err := execute(t, NewSummaryCommand(testOptions()), path)
	require.NoError(t, err)
	assert.Contains(t, out, "=== Année 2024 ===")
	assert.Contains(t, out, "Dupont: 0 hautes, 1 basses")
}

func TestSummaryCommandWorkbook(t *testing.T) {
	path := writePlanning(t, "Dupont")
	xlsx := filepath.Join(t.TempDir(), "heures.xlsx")

	out, err := execute(t, NewSummaryCommand(testOptions()), "--xlsx", xlsx, path)
	require.NoError(t, err)
	assert.Contains(t, out, "Workbook written to "+xlsx)

	info, err := os.Stat(xlsx)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestSummaryCommandEmpty(t *testing.T) {
	out, err := execute(t, NewSummaryCommand(testOptions()))
	require.NoError(t, err)
	assert.Contains(t, out, "Pas de données pour analyse.")
}

func TestSummaryCommandInvalidThreshold(t *testing.T) {
	opts := testOptions()
	opts.Threshold = 0

	_, err := execute(t, NewSummaryCommand(opts))
	assert.Error(t, err)
}

func TestDashboardCommand(t *testing.T) {
	path := writePlanning(t, "Dupont")

	out, err := execute(t, NewDashboardCommand(testOptions()), "--year", "2024", path)
	require.NoError(t, err)
	assert.Contains(t, out, "PERSONNE")
	assert.Contains(t, out, "2024-W49")
	assert.Contains(t, out, "14.50")
	assert.Contains(t, out, "Page 1/1, 1 semaines, 14.50 heures au total")
}

func TestDashboardCommandFilters(t *testing.T) {
	path := writePlanning(t, "Dupont")

	out, err := execute(t, NewDashboardCommand(testOptions()), "--person", "Martin", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Aucune donnée pour ces filtres.")

	_, err = execute(t, NewDashboardCommand(testOptions()), "--month", "13")
	assert.Error(t, err)

	_, err = execute(t, NewDashboardCommand(testOptions()), "--sort", "salary")
	assert.Error(t, err)
}

func TestPersonsCommandEmpty(t *testing.T) {
	out, err := execute(t, NewPersonsCommand(testOptions()))
	require.NoError(t, err)
	assert.Contains(t, out, "Aucune personne enregistrée.")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, NewVersionCommand())
	require.NoError(t, err)
	assert.Equal(t, "planning dev\n", out)
}
