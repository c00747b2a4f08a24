// Package filesystem provides the real FileSystem adapter.
package filesystem

import (
	"os"

	"github.com/cltnschlosser/swift-driver/internal/ports"
)

// RealFileSystem reads the actual filesystem.
type RealFileSystem struct{}

// NewRealFileSystem creates a new RealFileSystem.
func NewRealFileSystem() *RealFileSystem {
	return &RealFileSystem{}
}

// ReadFile reads the file at path.
func (fs *RealFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns metadata for path.
func (fs *RealFileSystem) Stat(path string) (ports.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return ports.FileInfo{}, err
	}
	return ports.FileInfo{ModTime: info.ModTime(), IsDir: info.IsDir()}, nil
}

// Exists reports whether path exists.
func (fs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDirectory reports whether path is an existing directory.
func (fs *RealFileSystem) IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Getwd returns the process working directory.
func (fs *RealFileSystem) Getwd() (string, error) {
	return os.Getwd()
}

// WriteFile writes data to path with 0644 permissions.
func (fs *RealFileSystem) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
