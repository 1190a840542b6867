// Package store persists tree snapshots by session ID.
//
// Three backends implement Store: MemoryStore for tests and single-process
// use, BoltStore for a local database file and S3Store for an S3 bucket.
// Open selects one from configuration.
package store

import (
	"context"
	"regexp"

	"github.com/vango-dev/vdomkit/internal/config"
	"github.com/vango-dev/vdomkit/internal/errors"
)

// Store saves and loads snapshots.
type Store interface {
	// Save stores data under id, replacing any previous snapshot.
	Save(ctx context.Context, id string, data []byte) error

	// Load returns the snapshot stored under id, or nil and no error when
	// there is none.
	Load(ctx context.Context, id string) ([]byte, error)

	// Delete removes the snapshot stored under id. Deleting a missing
	// snapshot is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored snapshots in lexical order.
	List(ctx context.Context) ([]string, error)

	// Close releases the backend's resources.
	Close() error
}

var idRE = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

// ValidID reports whether id can be used as a snapshot key by every
// backend: 1 to 128 ASCII letters, digits, '.', '_' or '-'.
func ValidID(id string) bool {
	return idRE.MatchString(id) && id != "." && id != ".."
}

func checkID(id string) error {
	if !ValidID(id) {
		return errors.New(errors.CodeInvalidRequest).
			WithDetail("Invalid snapshot ID " + id).
			WithSuggestion("Use 1 to 128 letters, digits, '.', '_' or '-'")
	}
	return nil
}

// Open creates the store selected by cfg.Backend.
func Open(cfg config.Store) (Store, error) {
	switch cfg.Backend {
	case "", config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendBolt:
		return OpenBolt(cfg.Bolt.Path, cfg.Bolt.Timeout)
	case config.BackendS3:
		return NewS3Store(NewS3Client(cfg.S3), cfg.S3.Bucket, cfg.S3.Prefix), nil
	default:
		return nil, errors.New(errors.CodeUnknownBackend).
			WithSuggestion("Set store.backend to memory, bolt or s3")
	}
}
