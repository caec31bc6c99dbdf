// Package media integrates with the third-party host that stores the
// actual image bytes. The service only keeps ownership metadata locally.
package media

import "context"

// Store is the opaque upload/delete API of the media host.
type Store interface {
	// Upload stores the file and returns its public ID and serving URL.
	Upload(ctx context.Context, data []byte, contentType string) (publicID, url string, err error)
	// Delete removes the file identified by publicID. The returned string
	// is the host's result verdict, e.g. "ok".
	Delete(ctx context.Context, publicID string) (string, error)
}
