package types

import "errors"

// Workspace persists the working library between CLI sessions.
// Callers attach to a backend, load or save the library, and detach when done.
type Workspace interface {
	// Attach connects the Workspace to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	Detach() error

	// Load returns the stored library. An unseeded workspace yields an
	// empty library.
	Load() (Library, error)

	// Save replaces the stored library with lib in a single transaction.
	Save(lib Library) error

	// Seeded reports whether Save has been called at least once.
	Seeded() (bool, error)
}

// Workspace lifecycle errors.
var (
	ErrWorkspaceDetached = errors.New("workspace is detached")
	ErrAlreadyAttached   = errors.New("workspace is already attached")
)
