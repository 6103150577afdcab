// Package storage persists video binaries. Blob contents are opaque to the
// rest of the system: the catalog stores only the blob name and URL this
// package hands back.
package storage

import (
	"context"
	"io"
)

// BlobStore uploads binaries and issues time-limited read URLs for them.
type BlobStore interface {
	Upload(ctx context.Context, name string, r io.Reader, size int64) (url string, err error)
	// SignedURL returns a URL granting read access to the named blob until
	// the store's configured TTL elapses.
	SignedURL(name string) (string, error)
}
