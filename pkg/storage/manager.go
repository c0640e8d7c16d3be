package storage

import (
	"fmt"
	"io"
	"sync"

	"github.com/Duvhier/jylclean-back/config"
	"github.com/Duvhier/jylclean-back/pkg/logger"
)

var (
	mu          sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the configured disks. The local disk is always
// available; the s3 disk is registered only when S3_BUCKET is set.
// Call once at startup.
func Connect() {
	mu.Lock()
	defer mu.Unlock()

	defaultDisk = config.StorageDefault()
	disks["local"] = newLocalDisk()

	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}

	if _, ok := disks[defaultDisk]; !ok {
		logger.Warn("storage: default disk not configured, using local", "disk", defaultDisk)
		defaultDisk = "local"
	}
}

// Use returns a named disk ("local" or "s3").
func Use(name string) Disk {
	mu.RLock()
	d, ok := disks[name]
	mu.RUnlock()
	if !ok {
		panic(fmt.Sprintf("storage: disk %q is not configured", name))
	}
	return d
}

// RegisterDisk plugs in a custom Disk, mainly for tests.
func RegisterDisk(name string, d Disk) {
	mu.Lock()
	disks[name] = d
	mu.Unlock()
}

func active() Disk { return Use(defaultDisk) }

// Package-level helpers proxy to the default disk.

func Put(path string, content []byte) error    { return active().Put(path, content) }
func PutStream(path string, r io.Reader) error { return active().PutStream(path, r) }
func Get(path string) ([]byte, error)          { return active().Get(path) }
func GetStream(path string) (io.ReadCloser, error) {
	return active().GetStream(path)
}
func Exists(path string) bool        { return active().Exists(path) }
func Size(path string) (int64, error) { return active().Size(path) }
func URL(path string) string         { return active().URL(path) }
func Delete(path string) error       { return active().Delete(path) }
