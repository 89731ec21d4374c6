package kvstore

import "fmt"

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
)

// Backends lists the supported backend names.
var Backends = []string{BackendJSON, BackendSQLite, BackendBolt}

// Repository loads and saves the whole mapping.
// Implementations rewrite everything on Save; there are no partial updates.
type Repository interface {
	// Load returns the persisted mapping, bootstrapping an empty one if none exists.
	Load() (Mapping, error)
	// Save replaces the persisted mapping with m.
	Save(m Mapping) error
	// Path returns the location of the backing file.
	Path() string
	Close() error
}

// Open returns the repository for the named backend at path.
func Open(backend, path string) (Repository, error) {
	switch backend {
	case BackendJSON, "":
		return NewJSONFile(path), nil
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendBolt:
		return OpenBolt(path)
	default:
		return nil, fmt.Errorf("unknown backend %q (valid: %v)", backend, Backends)
	}
}
