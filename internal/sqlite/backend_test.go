// Tests for the SQLite workspace backend.
package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/padlib/internal/library"
	"github.com/mesh-intelligence/padlib/pkg/types"
)

func attachTemp(t *testing.T, dir string) *Backend {
	t.Helper()
	b := NewBackend()
	if err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()
	b := attachTemp(t, tmpDir)

	dbPath := filepath.Join(tmpDir, DatabaseFile)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("%s not created", DatabaseFile)
	}
	assert.Equal(t, dbPath, b.Path())

	err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: tmpDir})
	if !errors.Is(err, types.ErrAlreadyAttached) {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}
}

func TestBackend_AttachCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	attachTemp(t, dir)
	assert.DirExists(t, dir)
}

func TestBackend_AttachInvalidConfig(t *testing.T) {
	b := NewBackend()
	assert.ErrorIs(t, b.Attach(types.Config{}), types.ErrBackendEmpty)
	assert.ErrorIs(t, b.Attach(types.Config{Backend: "postgres"}), types.ErrBackendUnknown)
}

func TestBackend_Detach(t *testing.T) {
	b := NewBackend()
	if err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}
	if err := b.Detach(); err != nil {
		t.Errorf("second Detach should be idempotent, got %v", err)
	}
	assert.Empty(t, b.Path())

	_, err := b.Load()
	assert.ErrorIs(t, err, types.ErrWorkspaceDetached)
	assert.ErrorIs(t, b.Save(types.Library{}), types.ErrWorkspaceDetached)
	_, err = b.Seeded()
	assert.ErrorIs(t, err, types.ErrWorkspaceDetached)
}

func TestBackend_UnseededWorkspaceIsEmpty(t *testing.T) {
	b := attachTemp(t, t.TempDir())

	seeded, err := b.Seeded()
	require.NoError(t, err)
	assert.False(t, seeded)

	lib, err := b.Load()
	require.NoError(t, err)
	assert.Empty(t, lib)
}

func TestBackend_SaveLoadRoundTrip(t *testing.T) {
	b := attachTemp(t, t.TempDir())

	s := library.NewStore(nil)
	s.UseDefaults()
	require.NoError(t, s.AddCustomProduct("Custom", "V1", 12.5, 7.25, []types.PadSpec{
		{X: types.Float(0.1), Required: types.Bool(false), Color: types.String("#123456")},
		{},
	}))
	require.NoError(t, s.AddCustomProduct("Empty", "None", 1, 1, nil))
	want := s.Library()

	require.NoError(t, b.Save(want))

	got, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	seeded, err := b.Seeded()
	require.NoError(t, err)
	assert.True(t, seeded)
}

func TestBackend_SaveReplaces(t *testing.T) {
	b := attachTemp(t, t.TempDir())
	require.NoError(t, b.Save(library.Defaults()))

	only := types.Library{"Only": types.NewProductType(1, 2)}
	require.NoError(t, b.Save(only))

	got, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, only, got)
}

func TestBackend_SaveEmptyStillSeeds(t *testing.T) {
	b := attachTemp(t, t.TempDir())
	require.NoError(t, b.Save(types.Library{}))

	seeded, err := b.Seeded()
	require.NoError(t, err)
	assert.True(t, seeded, "an explicitly emptied workspace must not be reseeded")
}

func TestBackend_SaveRejectsInvalidLibrary(t *testing.T) {
	b := attachTemp(t, t.TempDir())
	require.NoError(t, b.Save(library.Defaults()))

	bad := library.Defaults()
	bad["3U"].Variants["3U-Basic"].ExpectedPads = 99
	assert.ErrorIs(t, b.Save(bad), types.ErrPadCountMismatch)

	got, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, library.Defaults(), got, "failed save leaves stored library intact")
}

func TestBackend_PersistsAcrossSessions(t *testing.T) {
	dir := t.TempDir()

	b1 := NewBackend()
	require.NoError(t, b1.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	require.NoError(t, b1.Save(library.Defaults()))
	require.NoError(t, b1.Detach())

	b2 := attachTemp(t, dir)
	got, err := b2.Load()
	require.NoError(t, err)
	assert.Equal(t, library.Defaults(), got)
}
