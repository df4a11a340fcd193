// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package transfer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/navwar/gotransfer/pkg/fs"
)

// TimestampPrecision is the precision used when comparing modification times,
// matching the 2 second resolution of FAT file systems.
const TimestampPrecision = 2 * time.Second

// Executor decides the outcome of each entry and copies the files that need copying.
type Executor struct {
	Source      fs.SourceFileSystem
	Destination fs.FileSystem
	Sink        Sink
	Logger      fs.Logger
	// Parents creates the parent directory of each file before it is copied,
	// for entries that did not come from a planner.
	Parents bool
	// Now defaults to time.Now.
	Now func() time.Time
}

func (e *Executor) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Executor) sink() Sink {
	if e.Sink != nil {
		return e.Sink
	}
	return NopSink{}
}

func (e *Executor) fail(entry Entry, err error) Result {
	return Result{
		Entry:   entry,
		Outcome: Failed,
		Err: &FileError{
			Path:       entry.SourcePath,
			Permission: e.Source.IsPermission(err) || e.Destination.IsPermission(err),
			Err:        err,
		},
	}
}

// Process classifies a single entry and copies it if required.
// Errors are returned in the result and never abort the run.
func (e *Executor) Process(ctx context.Context, cfg Config, entry Entry) Result {
	if !cfg.Allows(entry.Extension) {
		return Result{Entry: entry, Outcome: SkippedFiltered}
	}

	destinationInfo, err := e.Destination.Stat(ctx, entry.DestinationPath)
	if err != nil {
		if !e.Destination.IsNotExist(err) {
			return e.fail(entry, fmt.Errorf("error stating destination file %q: %w", entry.DestinationPath, err))
		}
	} else if destinationInfo.Size() == entry.Size {
		if e.Logger != nil && !fs.EqualTimestamp(destinationInfo.ModTime(), entry.ModTime, TimestampPrecision) {
			_ = e.Logger.Log("Skipping file with equal size but different modification time", map[string]interface{}{
				"src":     entry.SourcePath,
				"dst":     entry.DestinationPath,
				"src_mod": entry.ModTime,
				"dst_mod": destinationInfo.ModTime(),
			})
		}
		return Result{Entry: entry, Outcome: SkippedExisting}
	}

	if cfg.DryRun {
		return Result{Entry: entry, Outcome: WouldCopy, Bytes: entry.Size}
	}

	written, err := fs.Copy(ctx, &fs.CopyInput{
		SourceName:            entry.SourcePath,
		SourceFileSystem:      e.Source,
		DestinationName:       entry.DestinationPath,
		DestinationFileSystem: e.Destination,
		Mode:                  entry.Mode,
		ModTime:               entry.ModTime,
		Parents:               e.Parents,
		Logger:                e.Logger,
	})
	if err != nil {
		return e.fail(entry, err)
	}

	return Result{Entry: entry, Outcome: Copied, Bytes: written}
}

// Run mirrors cfg.Source into cfg.Destination.
// The returned statistics are never nil and EndTime is always set.
func (e *Executor) Run(ctx context.Context, cfg Config) (stats *Stats, err error) {
	stats = NewStats(e.now(), cfg.DryRun)

	sink := e.sink()

	sink.OnStart(cfg)

	defer func() {
		if r := recover(); r != nil {
			err = &UnexpectedError{Err: fmt.Errorf("panic: %v", r)}
		}
		stats.EndTime = e.now()
		sink.OnFinish(stats, StateOf(err), err)
	}()

	planner := &Planner{
		Source:      e.Source,
		Destination: e.Destination,
		DryRun:      cfg.DryRun,
		Logger:      e.Logger,
		Sink:        sink,
	}

	err = planner.Walk(ctx, cfg.Source, cfg.Destination, func(entry Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		result := e.Process(ctx, cfg, entry)
		// a copy abandoned because of cancellation is not counted
		if result.Outcome == Failed && ctx.Err() != nil && errors.Is(result.Err, ctx.Err()) {
			return ctx.Err()
		}
		stats.Record(result)
		sink.OnResult(result)
		return nil
	})

	err = classify(err)

	return stats, err
}
