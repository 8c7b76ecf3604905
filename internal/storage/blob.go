// Package storage keeps finished package archives addressable by key so
// exports can be re-downloaded later.
package storage

import "io"

type BlobStore interface {
	// Put stores the blob under key and returns the canonical key. A store
	// must never leave a partially written blob visible under key.
	Put(key string, r io.Reader) (string, error)
	Get(key string) (io.ReadCloser, error)
	Delete(key string) error
}
