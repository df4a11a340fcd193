// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"context"
	"errors"
	"os"
	"syscall"
	"time"
)

// ReadOnlyFileSystem wraps a file system and rejects every write with syscall.EPERM.
type ReadOnlyFileSystem struct {
	FileSystem
}

func (r *ReadOnlyFileSystem) Chtimes(ctx context.Context, name string, atime time.Time, mtime time.Time) error {
	return &os.PathError{Op: "chtimes", Path: name, Err: syscall.EPERM}
}

func (r *ReadOnlyFileSystem) IsPermission(err error) bool {
	return errors.Is(err, syscall.EPERM) || r.FileSystem.IsPermission(err)
}

func (r *ReadOnlyFileSystem) MkdirAll(ctx context.Context, name string, mode os.FileMode) error {
	return &os.PathError{Op: "mkdir", Path: name, Err: syscall.EPERM}
}

func (r *ReadOnlyFileSystem) OpenFile(ctx context.Context, name string, flag int, perm os.FileMode) (File, error) {
	if flag&(os.O_WRONLY|os.O_RDWR|os.O_APPEND|os.O_CREATE|os.O_TRUNC) != 0 {
		return nil, &os.PathError{Op: "open", Path: name, Err: syscall.EPERM}
	}
	return r.FileSystem.OpenFile(ctx, name, flag, perm)
}

// ReadOnly returns a view of the file system that rejects every write.
func ReadOnly(f FileSystem) *ReadOnlyFileSystem {
	return &ReadOnlyFileSystem{FileSystem: f}
}
