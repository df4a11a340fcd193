// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package fs

import (
	"context"
	"os"
	"time"
)

// FileSystem is the set of operations needed to write a mirrored tree.
type FileSystem interface {
	Chtimes(ctx context.Context, name string, atime time.Time, mtime time.Time) error
	Dir(name string) string
	IsNotExist(err error) bool
	IsPermission(err error) bool
	Join(name ...string) string
	MkdirAll(ctx context.Context, name string, mode os.FileMode) error
	OpenFile(ctx context.Context, name string, flag int, perm os.FileMode) (File, error)
	Root() string
	Stat(ctx context.Context, name string) (FileInfo, error)
}

// SourceFileSystem is a FileSystem that can also be read and walked.
type SourceFileSystem interface {
	FileSystem
	Open(ctx context.Context, name string) (File, error)
	Relative(ctx context.Context, basepath string, targpath string) (string, error)
	Walk(ctx context.Context, root string, fn WalkFunc) error
}

// WalkFunc is called for every node visited by Walk, directories before their contents.
// If err is not nil, info may be nil.
type WalkFunc func(name string, info FileInfo, err error) error
