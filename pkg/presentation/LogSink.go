// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package presentation

import (
	"github.com/navwar/gotransfer/pkg/fs"
	"github.com/navwar/gotransfer/pkg/transfer"
)

// LogSink is a transfer.Sink that writes every event as a structured log message.
type LogSink struct {
	logger fs.Logger
}

func NewLogSink(logger fs.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) OnStart(cfg transfer.Config) {
	extensions := []string{}
	if cfg.Extensions != nil {
		extensions = cfg.Extensions.Sorted()
	}
	_ = s.logger.Log("Starting transfer", map[string]interface{}{
		"src":        cfg.Source,
		"dst":        cfg.DestinationName(),
		"extensions": extensions,
		"dry_run":    cfg.DryRun,
	})
}

func (s *LogSink) OnResult(r transfer.Result) {
	fields := map[string]interface{}{
		"file":    r.Entry.RelativePath,
		"src":     r.Entry.SourcePath,
		"dst":     r.Entry.DestinationPath,
		"size":    r.Entry.Size,
		"kind":    r.Entry.Kind.String(),
		"outcome": r.Outcome.String(),
	}
	switch r.Outcome {
	case transfer.Copied:
		_ = s.logger.Log("Copied file", fields)
	case transfer.WouldCopy:
		_ = s.logger.Log("Would copy file", fields)
	case transfer.SkippedExisting:
		fields["reason"] = "exists"
		_ = s.logger.Log("Skipping file", fields)
	case transfer.SkippedFiltered:
		fields["reason"] = "filtered"
		_ = s.logger.Log("Skipping file", fields)
	default:
		if r.Err != nil {
			fields["error"] = r.Err.Error()
		}
		_ = s.logger.Log("Error copying file", fields)
	}
}

func (s *LogSink) OnWarning(msg string, fields map[string]interface{}) {
	_ = s.logger.Log(msg, fields)
}

func (s *LogSink) OnFinish(stats *transfer.Stats, state transfer.State, err error) {
	fields := map[string]interface{}{
		"state": state.String(),
	}
	if stats != nil {
		fields["total"] = stats.TotalFiles
		fields["copied"] = stats.CopiedFiles
		fields["skipped"] = stats.SkippedFiles
		fields["skipped_exists"] = stats.SkippedExisting
		fields["skipped_filtered"] = stats.SkippedFiltered
		fields["failed"] = stats.FailedFiles
		fields["bytes"] = stats.TotalBytesCopied
		fields["duration"] = stats.Duration().String()
		fields["throughput"] = stats.Throughput()
		fields["dry_run"] = stats.DryRun
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	_ = s.logger.Log("Transfer finished", fields)
}
