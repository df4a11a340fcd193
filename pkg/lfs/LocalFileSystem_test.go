// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package lfs

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navwar/gotransfer/pkg/fs"
)

func TestLocalFileSystemRelative(t *testing.T) {
	ctx := context.Background()
	lfs := &LocalFileSystem{}

	base := "/a"

	relpath, err := lfs.Relative(ctx, base, "/a")
	assert.NoError(t, err)
	assert.Equal(t, ".", relpath)

	relpath, err = lfs.Relative(ctx, base, "/a/b/c")
	assert.NoError(t, err)
	assert.Equal(t, "b/c", relpath)

	relpath, err = lfs.Relative(ctx, base, "/b/c")
	assert.NoError(t, err)
	assert.Equal(t, "../b/c", relpath)

	relpath, err = lfs.Relative(ctx, base, "./b/c")
	assert.Error(t, err)
	assert.Equal(t, "Rel: can't make ./b/c relative to "+base, err.Error())
	assert.Equal(t, "", relpath)
}

func TestLocalFileSystemWalk(t *testing.T) {
	ctx := context.Background()
	m := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(m, "/src/b.txt", []byte("b"), 0644))
	require.NoError(t, afero.WriteFile(m, "/src/a/c.txt", []byte("cc"), 0644))

	lfs := NewLocalFileSystemFromFs(m)

	visited := []string{}
	err := lfs.Walk(ctx, "/src", func(name string, info fs.FileInfo, err error) error {
		require.NoError(t, err)
		visited = append(visited, name)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/src", "/src/a", "/src/a/c.txt", "/src/b.txt"}, visited)
}

func TestLocalFileSystemWalkCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(m, "/src/a.txt", []byte("a"), 0644))

	err := NewLocalFileSystemFromFs(m).Walk(ctx, "/src", func(name string, info fs.FileInfo, err error) error {
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalFileSystemStat(t *testing.T) {
	ctx := context.Background()
	m := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(m, "/a.txt", []byte("hello"), 0640))

	lfs := NewLocalFileSystemFromFs(m)

	fi, err := lfs.Stat(ctx, "/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "a.txt", fi.Name())
	assert.Equal(t, int64(5), fi.Size())
	assert.False(t, fi.IsDir())

	_, err = lfs.Stat(ctx, "/missing.txt")
	assert.Error(t, err)
	assert.True(t, lfs.IsNotExist(err))
}

func TestLocalFileSystemReadOnly(t *testing.T) {
	ctx := context.Background()
	m := afero.NewMemMapFs()

	lfs := NewLocalFileSystemFromFs(m).ReadOnly()

	err := lfs.MkdirAll(ctx, "/dst/sub", 0755)
	assert.Error(t, err)
	assert.True(t, lfs.IsPermission(err))

	_, err = lfs.OpenFile(ctx, "/dst/a.txt", os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	assert.Error(t, err)

	exists, err := afero.DirExists(m, "/dst")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCopyPreservesModTime(t *testing.T) {
	ctx := context.Background()
	m := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(m, "/src/a.txt", []byte("hello world"), 0644))
	require.NoError(t, m.MkdirAll("/dst", 0755))

	modTime := time.Date(2024, 7, 1, 12, 30, 0, 0, time.UTC)

	lfs := NewLocalFileSystemFromFs(m)
	written, err := fs.Copy(ctx, &fs.CopyInput{
		SourceName:            "/src/a.txt",
		SourceFileSystem:      lfs,
		DestinationName:       "/dst/a.txt",
		DestinationFileSystem: lfs,
		Mode:                  0644,
		ModTime:               modTime,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), written)

	data, err := afero.ReadFile(m, "/dst/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	fi, err := lfs.Stat(ctx, "/dst/a.txt")
	require.NoError(t, err)
	assert.True(t, fs.EqualTimestamp(modTime, fi.ModTime(), time.Second))
}

func TestCopyOverwritesLargerFile(t *testing.T) {
	ctx := context.Background()
	m := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(m, "/src/a.txt", []byte("new"), 0644))
	require.NoError(t, afero.WriteFile(m, "/dst/a.txt", []byte("much longer old content"), 0644))

	lfs := NewLocalFileSystemFromFs(m)
	_, err := fs.Copy(ctx, &fs.CopyInput{
		SourceName:            "/src/a.txt",
		SourceFileSystem:      lfs,
		DestinationName:       "/dst/a.txt",
		DestinationFileSystem: lfs,
	})
	require.NoError(t, err)

	data, err := afero.ReadFile(m, "/dst/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestLocalFileInfoMarshalJSON(t *testing.T) {
	modTime := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	b, err := json.Marshal(NewLocalFileInfo("a.jpg", modTime, 0644, 10))
	require.NoError(t, err)
	assert.JSONEq(t, `{"dir":false,"mode":"-rw-r--r--","modTime":"2024-07-01T12:00:00Z","name":"a.jpg","size":10}`, string(b))
}
