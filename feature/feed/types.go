package feed

import (
	"errors"
	"time"
)

// Entry is one discovered image in the persisted index.
// An entry is created once at first discovery and never updated in place;
// its lifetime ends when the capacity bound trims it or the index is cleared.
type Entry struct {
	// ID is the object key, unique across the index.
	ID string `json:"id"`

	// MimeType is the image content type (always image/*).
	MimeType string `json:"mimeType"`

	// ThumbURL links the rendered thumbnail, falling back to the download URL.
	ThumbURL string `json:"thumb"`

	// URL is the public download link for the full image.
	URL string `json:"url"`

	// Width and Height are the pixel dimensions, null when unknown.
	Width  *int `json:"width"`
	Height *int `json:"height"`

	// CreatedAt is the RFC 3339 creation timestamp, falling back to the
	// enrichment wall clock when the backend provides none.
	CreatedAt string `json:"created"`
}

// Object is a scanned storage object eligible for indexing.
type Object struct {
	// ID is the object key.
	ID string
	// MimeType is the content type reported by the listing.
	MimeType string
}

var (
	// ErrFolderNotConfigured means no folder reference is set anywhere.
	ErrFolderNotConfigured = errors.New("no upload folder configured")

	// ErrFolderNotFound means the configured folder cannot be opened.
	ErrFolderNotFound = errors.New("upload folder not found")
)

// GrantResult reports the outcome of a best-effort public-read grant.
type GrantResult struct {
	// ID is the object the grant was attempted for.
	ID string
	// AlreadyPublic means an anyone-with-the-link grant was already present.
	AlreadyPublic bool
	// Granted means a new public-read grant was installed.
	Granted bool
	// Err is the failure reason; the object is still indexed regardless.
	Err error
}

// OK reports whether the grant attempt succeeded (or was unnecessary).
func (r GrantResult) OK() bool { return r.Err == nil }

// PassReport summarizes one reconciliation pass.
type PassReport struct {
	// Folder is the resolved folder reference the pass scanned.
	Folder string `json:"folder"`
	// Skipped means another pass held the lock and this one did nothing.
	Skipped bool `json:"skipped"`
	// Scanned is the number of image objects enumerated.
	Scanned int `json:"scanned"`
	// New is the number of entries added this pass.
	New int `json:"new"`
	// Trimmed is the number of entries dropped by the capacity bound.
	Trimmed int `json:"trimmed"`
	// GrantFailures counts objects whose public-read grant failed.
	GrantFailures int `json:"grant_failures"`
	// Persisted means the pass wrote the index document.
	Persisted bool `json:"persisted"`
	// Duration is the pass wall time.
	Duration time.Duration `json:"duration"`
}
