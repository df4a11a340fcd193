// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package transfer

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navwar/gotransfer/pkg/lfs"
)

func TestPlannerPlan(t *testing.T) {
	ctx := context.Background()
	m := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(m, "/src/b.png", []byte("0123456789"), 0644))
	require.NoError(t, afero.WriteFile(m, "/src/a/c.JPG", []byte("0123"), 0644))
	require.NoError(t, m.MkdirAll("/src/empty", 0755))

	local := lfs.NewLocalFileSystemFromFs(m)
	planner := &Planner{Source: local, Destination: local}

	entries, err := planner.Plan(ctx, "/src", "/dst")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "a/c.JPG", entries[0].RelativePath)
	assert.Equal(t, "/src/a/c.JPG", entries[0].SourcePath)
	assert.Equal(t, "/dst/a/c.JPG", entries[0].DestinationPath)
	assert.Equal(t, int64(4), entries[0].Size)
	assert.Equal(t, "jpg", entries[0].Extension)
	assert.Equal(t, RegularFile, entries[0].Kind)

	assert.Equal(t, "b.png", entries[1].RelativePath)
	assert.Equal(t, "/dst/b.png", entries[1].DestinationPath)
	assert.Equal(t, int64(10), entries[1].Size)

	// directories are mirrored, including empty ones
	for _, dir := range []string{"/dst", "/dst/a", "/dst/empty"} {
		ok, err := afero.DirExists(m, dir)
		require.NoError(t, err)
		assert.True(t, ok, dir)
	}
}

func TestPlannerDryRun(t *testing.T) {
	ctx := context.Background()
	m := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(m, "/src/a/b.txt", []byte("b"), 0644))

	local := lfs.NewLocalFileSystemFromFs(m)
	planner := &Planner{Source: local, Destination: local.ReadOnly(), DryRun: true}

	entries, err := planner.Plan(ctx, "/src", "/dst")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/dst/a/b.txt", entries[0].DestinationPath)

	ok, err := afero.Exists(m, "/dst")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPlannerSourceNotFound(t *testing.T) {
	ctx := context.Background()
	m := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(m, "/file.txt", []byte("a"), 0644))

	local := lfs.NewLocalFileSystemFromFs(m)
	planner := &Planner{Source: local, Destination: local}

	var sourceNotFoundError *SourceNotFoundError

	_, err := planner.Plan(ctx, "/missing", "/dst")
	require.ErrorAs(t, err, &sourceNotFoundError)
	assert.Equal(t, "/missing", sourceNotFoundError.Path)

	_, err = planner.Plan(ctx, "/file.txt", "/dst")
	require.ErrorAs(t, err, &sourceNotFoundError)
	assert.ErrorIs(t, err, ErrNotDirectory)
}

func TestPlannerUnreadableDirectory(t *testing.T) {
	ctx := context.Background()
	m := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(m, "/src/locked/secret.txt", []byte("s"), 0644))
	require.NoError(t, afero.WriteFile(m, "/src/open.txt", []byte("o"), 0644))

	source := lfs.NewLocalFileSystemFromFs(&deniedFs{Fs: m, denied: map[string]bool{"/src/locked": true}})
	sink := &recordingSink{}
	planner := &Planner{Source: source, Destination: lfs.NewLocalFileSystemFromFs(m), Sink: sink}

	entries, err := planner.Plan(ctx, "/src", "/dst")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "open.txt", entries[0].RelativePath)
	assert.Equal(t, []string{"Skipping unreadable path"}, sink.warnings)
}

func TestPlannerUnreadableRoot(t *testing.T) {
	ctx := context.Background()
	m := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(m, "/src/a.txt", []byte("a"), 0644))

	source := lfs.NewLocalFileSystemFromFs(&deniedFs{Fs: m, denied: map[string]bool{"/src": true}})
	planner := &Planner{Source: source, Destination: lfs.NewLocalFileSystemFromFs(m)}

	var sourceNotFoundError *SourceNotFoundError
	_, err := planner.Plan(ctx, "/src", "/dst")
	assert.ErrorAs(t, err, &sourceNotFoundError)

	exists, err := afero.Exists(m, "/dst")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPlannerDestinationError(t *testing.T) {
	ctx := context.Background()
	m := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(m, "/src/a.txt", []byte("a"), 0644))

	local := lfs.NewLocalFileSystemFromFs(m)
	planner := &Planner{Source: local, Destination: local.ReadOnly()}

	var destinationError *DestinationError
	_, err := planner.Plan(ctx, "/src", "/dst")
	require.ErrorAs(t, err, &destinationError)
	assert.Equal(t, "/dst", destinationError.Path)
}

func TestPlannerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(m, "/src/a.txt", []byte("a"), 0644))
	require.NoError(t, afero.WriteFile(m, "/src/b.txt", []byte("b"), 0644))

	local := lfs.NewLocalFileSystemFromFs(m)
	planner := &Planner{Source: local, Destination: local}

	visited := []string{}
	err := planner.Walk(ctx, "/src", "/dst", func(entry Entry) error {
		visited = append(visited, entry.RelativePath)
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"a.txt"}, visited)
}
