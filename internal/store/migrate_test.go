package store

import (
	"database/sql"
	"io/fs"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationSources(t *testing.T) {
	db, err := sql.Open("pgx", "postgres://localhost:1/planning")
	require.NoError(t, err)
	defer db.Close()

	migrations, err := fs.Sub(migrationFS, "migrations")
	require.NoError(t, err)

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations)
	require.NoError(t, err)

	sources := provider.ListSources()
	require.Len(t, sources, 1)
	assert.Equal(t, int64(1), sources[0].Version)
}
