package cli

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/padlib/internal/library"
	"github.com/mesh-intelligence/padlib/internal/paths"
	"github.com/mesh-intelligence/padlib/internal/sqlite"
	"github.com/mesh-intelligence/padlib/pkg/types"
)

// session pairs an attached workspace with the store holding its library.
// The caller must defer close().
type session struct {
	backend *sqlite.Backend
	store   *library.Store
}

// attachWorkspace resolves the data directory and attaches the backend
// named in config.yaml.
func (a *app) attachWorkspace() (*sqlite.Backend, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, systemError(fmt.Errorf("resolve data dir: %w", err))
	}

	cfg := types.Config{
		Backend: a.cfg.GetString(cfgKeyBackend),
		DataDir: dataDir,
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		if errors.Is(err, types.ErrBackendUnknown) || errors.Is(err, types.ErrBackendEmpty) {
			return nil, fmt.Errorf("attach workspace: %w", err)
		}
		return nil, systemError(fmt.Errorf("attach workspace: %w", err))
	}
	a.logger.Debug("workspace attached", "path", backend.Path())
	return backend, nil
}

// openSession attaches the workspace and loads its library into a store.
// A workspace that was never saved starts from the built-in defaults.
func (a *app) openSession() (*session, error) {
	backend, err := a.attachWorkspace()
	if err != nil {
		return nil, err
	}

	store := library.NewStore(a.logger)
	seeded, err := backend.Seeded()
	if err != nil {
		backend.Detach()
		return nil, systemError(fmt.Errorf("read workspace: %w", err))
	}
	if !seeded {
		store.UseDefaults()
		return &session{backend: backend, store: store}, nil
	}

	lib, err := backend.Load()
	if err != nil {
		backend.Detach()
		return nil, systemError(fmt.Errorf("read workspace: %w", err))
	}
	store.SetLibrary(lib)
	return &session{backend: backend, store: store}, nil
}

// save persists the store's library to the workspace.
func (s *session) save() error {
	if err := s.backend.Save(s.store.Library()); err != nil {
		return systemError(fmt.Errorf("save workspace: %w", err))
	}
	return nil
}

func (s *session) close() error {
	return s.backend.Detach()
}
