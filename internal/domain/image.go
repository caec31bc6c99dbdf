package domain

import "time"

// Image records ownership metadata for a file stored on the media host.
// Deletion is a soft flag; the row survives for audit.
type Image struct {
	ID         string
	PublicID   string
	URL        string
	Username   string
	Deleted    bool
	UploadedAt time.Time
}
