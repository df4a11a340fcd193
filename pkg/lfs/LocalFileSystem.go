// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package lfs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/afero"

	"github.com/navwar/gotransfer/pkg/fs"
)

type LocalFileSystem struct {
	fs   afero.Fs
	root string
}

func (lfs *LocalFileSystem) Chtimes(ctx context.Context, name string, atime time.Time, mtime time.Time) error {
	return lfs.fs.Chtimes(name, atime, mtime)
}

func (lfs *LocalFileSystem) Dir(name string) string {
	return filepath.Dir(name)
}

func (lfs *LocalFileSystem) IsNotExist(err error) bool {
	return errors.Is(err, iofs.ErrNotExist)
}

// IsPermission returns true if the error is a permission error.
// The read-only filesystem returns EPERM for every write.
func (lfs *LocalFileSystem) IsPermission(err error) bool {
	return errors.Is(err, iofs.ErrPermission) || errors.Is(err, syscall.EPERM)
}

func (lfs *LocalFileSystem) Join(name ...string) string {
	return filepath.Join(name...)
}

func (lfs *LocalFileSystem) MkdirAll(ctx context.Context, name string, mode os.FileMode) error {
	return lfs.fs.MkdirAll(name, mode)
}

func (lfs *LocalFileSystem) Open(ctx context.Context, name string) (fs.File, error) {
	f, err := lfs.fs.Open(name)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (lfs *LocalFileSystem) OpenFile(ctx context.Context, name string, flag int, perm os.FileMode) (fs.File, error) {
	f, err := lfs.fs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Relative returns the path of targpath relative to basepath.
func (lfs *LocalFileSystem) Relative(ctx context.Context, basepath string, targpath string) (string, error) {
	return filepath.Rel(basepath, targpath)
}

func (lfs *LocalFileSystem) Root() string {
	return "file://" + lfs.root
}

func (lfs *LocalFileSystem) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	fi, err := lfs.fs.Stat(name)
	if err != nil {
		return nil, err
	}
	return NewLocalFileInfo(fi.Name(), fi.ModTime(), fi.Mode(), fi.Size()), nil
}

// Walk walks the tree rooted at root in lexical order, calling fn for each directory before its contents.
// Symbolic links are not followed.
func (lfs *LocalFileSystem) Walk(ctx context.Context, root string, fn fs.WalkFunc) error {
	return afero.Walk(lfs.fs, root, func(name string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if info == nil {
			return fn(name, nil, err)
		}
		return fn(name, NewLocalFileInfo(info.Name(), info.ModTime(), info.Mode(), info.Size()), err)
	})
}

// NewLocalFileSystem returns a file system backed by the operating system.
func NewLocalFileSystem() *LocalFileSystem {
	return &LocalFileSystem{
		fs:   afero.NewOsFs(),
		root: string(os.PathSeparator),
	}
}

// NewReadOnlyLocalFileSystem returns a file system backed by the operating system that rejects every write.
func NewReadOnlyLocalFileSystem() *LocalFileSystem {
	return &LocalFileSystem{
		fs:   afero.NewReadOnlyFs(afero.NewOsFs()),
		root: string(os.PathSeparator),
	}
}

// NewLocalFileSystemFromFs wraps an existing afero file system, such as a memory map.
func NewLocalFileSystemFromFs(f afero.Fs) *LocalFileSystem {
	return &LocalFileSystem{
		fs:   f,
		root: string(os.PathSeparator),
	}
}

// ReadOnly returns a copy of the file system that rejects every write.
func (lfs *LocalFileSystem) ReadOnly() *LocalFileSystem {
	return &LocalFileSystem{
		fs:   afero.NewReadOnlyFs(lfs.fs),
		root: lfs.root,
	}
}
