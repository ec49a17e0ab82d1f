// Package fs provides the filesystem abstraction for relcheck.
// Checks read release files through FS so tests can use in-memory stubs.
package fs

import (
	iofs "io/fs"
	"os"
)

// FS is the narrow filesystem interface used by relcheck.
type FS interface {
	// ReadFile reads the named file and returns its contents.
	ReadFile(path string) ([]byte, error)

	// Stat returns file info for the named file.
	Stat(path string) (iofs.FileInfo, error)

	// AppendLine appends a single line (with trailing newline) to the named
	// file, creating it if needed.
	AppendLine(path, line string) error
}

// RealFS is the production FS backed by the os package.
type RealFS struct{}

// NewRealFS creates an FS backed by the os package.
func NewRealFS() *RealFS {
	return &RealFS{}
}

var _ FS = (*RealFS)(nil)

// ReadFile implements FS.ReadFile.
func (RealFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat implements FS.Stat.
func (RealFS) Stat(path string) (iofs.FileInfo, error) {
	return os.Stat(path)
}

// AppendLine implements FS.AppendLine.
func (RealFS) AppendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
