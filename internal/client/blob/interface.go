// Package blob abstracts the cloud object storage used for backups.
package blob

import (
	"context"
	"time"
)

// Info describes a stored object.
type Info struct {
	SizeBytes    int64
	LastModified time.Time
}

// Store is the cloud blob collaborator. Write always overwrites.
// Read and Stat return common.ErrNotFound (wrapped) when the object is
// absent, so callers can tell a missing backup from a transport failure.
type Store interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	Stat(ctx context.Context, key string) (*Info, error)
}
