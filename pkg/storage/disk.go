// Package storage stores uploaded media, primarily product images.
//
// Two drivers are available:
//   - "local" — files under STORAGE_LOCAL_ROOT, served at STORAGE_URL
//   - "s3"    — S3-compatible object storage (AWS, MinIO, R2, Spaces)
//
// Boot once at startup with storage.Connect(), then use the
// package-level helpers against the default disk:
//
//	storage.Put("products/123.jpg", data)
//	url := storage.URL("products/123.jpg")
package storage

import "io"

// Disk is a media store backend.
type Disk interface {
	// Put writes content at path, creating intermediate directories
	// where the backend has them.
	Put(path string, content []byte) error

	// PutStream writes from r at path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content at path.
	Get(path string) ([]byte, error)

	// GetStream returns a reader for path. The caller closes it.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether path holds a file.
	Exists(path string) bool

	// Size returns the byte size of the file at path.
	Size(path string) (int64, error)

	// URL returns the public URL clients use to fetch path.
	URL(path string) string

	// Delete removes path. Deleting an absent file is not an error.
	Delete(path string) error
}
