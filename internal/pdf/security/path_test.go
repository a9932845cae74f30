package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPlanningDir(t *testing.T) (dir, planning, nested string) {
	t.Helper()

	dir = t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "2024"), 0o755))

	planning = filepath.Join(dir, "planning_dupont.pdf")
	nested = filepath.Join(dir, "2024", "planning_martin.pdf")
	require.NoError(t, os.WriteFile(planning, []byte("%PDF"), 0o644))
	require.NoError(t, os.WriteFile(nested, []byte("%PDF"), 0o644))

	return dir, planning, nested
}

func TestNewPathValidator(t *testing.T) {
	_, err := NewPathValidator("")
	assert.Error(t, err)

	v, err := NewPathValidator("/non/existent/plannings")
	require.NoError(t, err)
	assert.Equal(t, "/non/existent/plannings", v.GetConfiguredDirectory())
}

func TestPathValidator_ValidatePath(t *testing.T) {
	dir, planning, nested := setupPlanningDir(t)

	v, err := NewPathValidator(dir)
	require.NoError(t, err)

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "empty path", path: "", wantErr: true},
		{name: "planning in root", path: planning},
		{name: "planning in subdirectory", path: nested},
		{name: "directory itself", path: dir},
		{name: "outside directory", path: "/etc/passwd", wantErr: true},
		{name: "parent traversal", path: filepath.Join(dir, "..", "outside.pdf"), wantErr: true},
		{name: "dot segment", path: filepath.Join(dir, ".", "planning_dupont.pdf")},
		{name: "sibling with shared prefix", path: dir + "-other/planning.pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPathValidator_OutsideIsSentinel(t *testing.T) {
	dir, _, _ := setupPlanningDir(t)
	v, err := NewPathValidator(dir)
	require.NoError(t, err)

	err = v.ValidatePath("/etc/passwd")
	assert.ErrorIs(t, err, ErrOutsideDirectory)
}

func TestPathValidator_Symlinks(t *testing.T) {
	dir, planning, _ := setupPlanningDir(t)
	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.pdf")
	require.NoError(t, os.WriteFile(secret, []byte("%PDF"), 0o644))

	escape := filepath.Join(dir, "escape.pdf")
	if err := os.Symlink(secret, escape); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	inside := filepath.Join(dir, "alias.pdf")
	require.NoError(t, os.Symlink(planning, inside))

	v, err := NewPathValidator(dir)
	require.NoError(t, err)

	assert.Error(t, v.ValidatePath(escape))
	assert.NoError(t, v.ValidatePath(inside))
}

func TestPathValidator_MissingDirectoryAllowsAll(t *testing.T) {
	v, err := NewPathValidator(filepath.Join(t.TempDir(), "later"))
	require.NoError(t, err)

	ok, err := v.IsPathWithinDirectory("/etc/passwd")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPathValidator_NormalizePath(t *testing.T) {
	dir, planning, nested := setupPlanningDir(t)
	v, err := NewPathValidator(dir)
	require.NoError(t, err)

	got, err := v.NormalizePath("planning_dupont.pdf")
	require.NoError(t, err)
	assert.Equal(t, planning, got)

	got, err = v.NormalizePath(filepath.Join("2024", "planning_martin.pdf"))
	require.NoError(t, err)
	assert.Equal(t, nested, got)

	got, err = v.NormalizePath("planning_\x00dupont.pdf")
	require.NoError(t, err)
	assert.Equal(t, planning, got)

	_, err = v.NormalizePath("../outside.pdf")
	assert.ErrorIs(t, err, ErrOutsideDirectory)

	_, err = v.NormalizePath("\x00")
	assert.Error(t, err)
}

func TestPathValidator_ValidateDirectory(t *testing.T) {
	dir, planning, _ := setupPlanningDir(t)
	v, err := NewPathValidator(dir)
	require.NoError(t, err)

	assert.NoError(t, v.ValidateDirectory(filepath.Join(dir, "2024")))
	assert.NoError(t, v.ValidateDirectory(filepath.Join(dir, "not-yet")))
	assert.Error(t, v.ValidateDirectory(planning))
	assert.Error(t, v.ValidateDirectory(t.TempDir()))
}
