// Package storage stores catalog images on a local disk or S3-compatible
// object storage (AWS S3, MinIO, R2).
//
// Boot once in the server bootstrap:
//
//	storage.Connect()
//
// Then from the upload controller:
//
//	storage.Put("materials/aluminum.jpg", data)
//	url := storage.URL("materials/aluminum.jpg")
package storage

import (
	"fmt"
	"io"
	"sync"

	"github.com/pmin574/pc-diamond-edge/config"
)

// Disk is the filesystem driver interface.
type Disk interface {
	// Put writes content to path, creating parents as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(path string) error

	// URL returns the public URL for path.
	URL(path string) string
}

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager. The local disk is always available;
// the S3 disk is booted only when S3_BUCKET is configured.
func Connect() {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.StorageDefault()
	disks["local"] = newLocalDisk()

	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			fmt.Printf("storage/s3: %v (disk disabled)\n", err)
		} else {
			disks["s3"] = d
		}
	}

	if _, ok := disks[defaultDisk]; !ok {
		defaultDisk = "local"
	}
}

// Use returns the named disk ("local" or "s3").
func Use(name string) Disk {
	managerMu.RLock()
	d, ok := disks[name]
	managerMu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// Default returns the configured default disk.
func Default() Disk { return Use(defaultDisk) }

// Put writes to the default disk.
func Put(path string, content []byte) error { return Default().Put(path, content) }

// PutStream writes a stream to the default disk.
func PutStream(path string, r io.Reader) error { return Default().PutStream(path, r) }

// Get reads from the default disk.
func Get(path string) ([]byte, error) { return Default().Get(path) }

// Exists checks the default disk.
func Exists(path string) bool { return Default().Exists(path) }

// Delete removes from the default disk.
func Delete(path string) error { return Default().Delete(path) }

// URL returns the public URL on the default disk.
func URL(path string) string { return Default().URL(path) }
