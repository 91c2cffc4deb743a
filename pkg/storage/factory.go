package storage

import (
	"fmt"
	"slices"
)

// Names lists the supported backends.
func Names() []string {
	return []string{"memory", "sqlite"}
}

// PersistentNames lists the backends whose reports outlive the process.
func PersistentNames() []string {
	return []string{"sqlite"}
}

// Persistent reports whether kind keeps reports across runs.
func Persistent(kind string) bool {
	return slices.Contains(PersistentNames(), kind)
}

func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(sqlitePath), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
