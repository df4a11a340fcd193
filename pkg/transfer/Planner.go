// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package transfer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/navwar/gotransfer/pkg/fs"
)

// Planner enumerates the source tree and mirrors its directory structure into the destination tree.
type Planner struct {
	Source      fs.SourceFileSystem
	Destination fs.FileSystem
	// DryRun disables the creation of destination directories.
	DryRun bool
	Logger fs.Logger
	Sink   Sink
}

// warn reports to the sink, falling back to the logger if there is no sink.
func (p *Planner) warn(msg string, fields map[string]interface{}) {
	if p.Sink != nil {
		p.Sink.OnWarning(msg, fields)
		return
	}
	if p.Logger != nil {
		_ = p.Logger.Log(msg, fields)
	}
}

// Walk calls fn once for every non-directory node under sourceRoot, in lexical pre-order.
// Every directory visited is created under destinationRoot before its contents are yielded.
// Subdirectories that cannot be read are skipped with a warning.
// Symbolic links to files are yielded with the size and modification time of their target.
// Symbolic links to directories are not followed and are skipped with a warning.
func (p *Planner) Walk(ctx context.Context, sourceRoot string, destinationRoot string, fn func(entry Entry) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sourceRootInfo, err := p.Source.Stat(ctx, sourceRoot)
	if err != nil {
		return &SourceNotFoundError{Path: sourceRoot, Err: err}
	}
	if !sourceRootInfo.IsDir() {
		return &SourceNotFoundError{Path: sourceRoot, Err: ErrNotDirectory}
	}

	// nothing is created at the destination unless the root can be listed
	sourceRootFile, err := p.Source.Open(ctx, sourceRoot)
	if err != nil {
		return &SourceNotFoundError{Path: sourceRoot, Err: err}
	}
	_ = sourceRootFile.Close()

	return p.Source.Walk(ctx, sourceRoot, func(sourceName string, sourceInfo fs.FileInfo, walkError error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkError != nil {
			if sourceName == sourceRoot {
				return &SourceNotFoundError{Path: sourceRoot, Err: walkError}
			}
			p.warn("Skipping unreadable path", map[string]interface{}{
				"path":  sourceName,
				"error": walkError.Error(),
			})
			if sourceInfo != nil && sourceInfo.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relativePath, err := p.Source.Relative(ctx, sourceRoot, sourceName)
		if err != nil {
			return fmt.Errorf("error calculating relative path for %q: %w", sourceName, err)
		}

		destinationName := p.Destination.Join(destinationRoot, filepath.ToSlash(relativePath))

		if sourceInfo.Mode()&os.ModeSymlink != 0 {
			targetInfo, err := p.Source.Stat(ctx, sourceName)
			switch {
			case err != nil:
				// a broken link is yielded as is and fails when copied
			case targetInfo.IsDir():
				p.warn("Skipping symbolic link to directory", map[string]interface{}{
					"path": sourceName,
				})
				return nil
			default:
				sourceInfo = targetInfo
			}
		}

		kind := KindOf(sourceInfo.Mode())

		if kind == Directory {
			if p.DryRun {
				return nil
			}
			if p.Logger != nil {
				_ = p.Logger.Log("Creating destination directory", map[string]interface{}{
					"src":  sourceInfo,
					"dst":  destinationName,
					"path": sourceName,
				})
			}
			if err := p.Destination.MkdirAll(ctx, destinationName, 0755); err != nil {
				return &DestinationError{Path: destinationName, Err: err}
			}
			return nil
		}

		return fn(Entry{
			RelativePath:    relativePath,
			SourcePath:      sourceName,
			DestinationPath: destinationName,
			Size:            sourceInfo.Size(),
			Extension:       Extension(sourceName),
			ModTime:         sourceInfo.ModTime(),
			Mode:            sourceInfo.Mode(),
			Kind:            kind,
		})
	})
}

// Plan returns every entry that Walk would yield.
func (p *Planner) Plan(ctx context.Context, sourceRoot string, destinationRoot string) ([]Entry, error) {
	entries := []Entry{}
	err := p.Walk(ctx, sourceRoot, destinationRoot, func(entry Entry) error {
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return entries, err
	}
	return entries, nil
}
