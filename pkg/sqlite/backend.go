// Package sqlite provides the public API for the SQLite workspace backend.
// It exposes the factory function while keeping implementation details
// internal.
package sqlite

import (
	"github.com/mesh-intelligence/padlib/internal/sqlite"
	"github.com/mesh-intelligence/padlib/pkg/types"
)

// NewWorkspace creates a new SQLite workspace instance.
// The workspace is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	ws := sqlite.NewWorkspace()
//	err := ws.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".padlib",
//	})
//	defer ws.Detach()
func NewWorkspace() types.Workspace {
	return sqlite.NewBackend()
}
