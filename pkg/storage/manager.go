// Package storage abstracts the blob store behind a small Disk interface
// with local-filesystem and S3-compatible drivers. Payment screenshots and
// UPI QR images go through here; each upload yields a stable retrieval URL.
package storage

import (
	"io"
	"sync"

	"github.com/MohamedTawfiq30/dmorder/config"
	"github.com/MohamedTawfiq30/dmorder/pkg/logger"
)

// Disk is the capability set the application actually exercises.
type Disk interface {
	Put(path string, content []byte) error
	PutStream(path string, r io.Reader) error
	Get(path string) ([]byte, error)
	Exists(path string) bool
	Delete(path string) error
	URL(path string) string
}

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager. Call once at application startup.
func Connect() {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.StorageDefault()

	// Always boot local disk.
	disks["local"] = newLocalDisk()

	// Boot S3 disk only if a bucket is configured.
	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}
}

// Use returns the named disk ("local" or "s3").
func Use(name string) Disk {
	managerMu.RLock()
	defer managerMu.RUnlock()
	return disks[name]
}

// RegisterDisk plugs in a custom Disk implementation, used by tests.
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}

// Default returns the disk selected by STORAGE_DISK.
func Default() Disk {
	managerMu.RLock()
	defer managerMu.RUnlock()
	if d, ok := disks[defaultDisk]; ok {
		return d
	}
	return disks["local"]
}

// PutStream writes from r to path on the default disk.
func PutStream(path string, r io.Reader) error { return Default().PutStream(path, r) }

// Delete removes path from the default disk.
func Delete(path string) error { return Default().Delete(path) }

// URL returns the public URL for path on the default disk.
func URL(path string) string { return Default().URL(path) }
