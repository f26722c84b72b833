package dbbadger

import (
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v3"
	"github.com/sweepr/sweepr/internal/core/ports"
)

type stateStoreFactory struct {
	datadir string
	logger  badger.Logger
}

// NewStateStoreFactory returns a factory opening one store per wallet under
// the given directory. Every store of a fresh run lives in its own
// directory, stores of resumed runs are shared by network and template. An
// empty directory makes every store in-memory.
func NewStateStoreFactory(
	datadir string, logger badger.Logger,
) ports.StateStoreFactory {
	return &stateStoreFactory{datadir, logger}
}

func (f *stateStoreFactory) Open(scope ports.StoreScope) (ports.StateStore, error) {
	dir, err := f.dir(scope)
	if err != nil {
		return nil, err
	}
	return NewStateStore(dir, f.logger)
}

func (f *stateStoreFactory) dir(scope ports.StoreScope) (string, error) {
	if len(scope.Network) <= 0 || len(scope.Template) <= 0 {
		return "", fmt.Errorf("store scope must define network and template")
	}
	if !scope.Resume && len(scope.RunID) <= 0 {
		return "", fmt.Errorf("store scope must define run id")
	}
	if len(f.datadir) <= 0 {
		return "", nil
	}

	dir := filepath.Join(f.datadir, scope.Network, scope.Template)
	if !scope.Resume {
		dir = filepath.Join(dir, scope.RunID)
	}
	return dir, nil
}
