package storage

import "io"

// Storage abstracts where generated and uploaded documents live. The local
// filesystem implementation is the default; the interface keeps an object
// store swap possible without touching the services.
type Storage interface {
	// Save writes the content under the given relative name and returns the
	// stored path and the number of bytes written.
	Save(name string, content io.Reader) (path string, size int64, err error)
	// Exists reports whether the stored file is still on disk.
	Exists(path string) bool
}
