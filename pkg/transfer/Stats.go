// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package transfer

import (
	"time"
)

// Stats accumulates the outcomes of a run.
// Stats is owned by a single run and is not safe for concurrent use.
type Stats struct {
	TotalFiles   int
	CopiedFiles  int
	SkippedFiles int
	FailedFiles  int
	// SkippedFiltered and SkippedExisting break down SkippedFiles by reason.
	SkippedFiltered  int
	SkippedExisting  int
	TotalBytesCopied int64
	Errors           []string
	DryRun           bool
	StartTime        time.Time
	EndTime          time.Time
}

func NewStats(start time.Time, dryRun bool) *Stats {
	return &Stats{
		Errors:    []string{},
		DryRun:    dryRun,
		StartTime: start,
	}
}

// Record counts a processed entry.
// The entry is added to TotalFiles and to exactly one outcome counter in the same step,
// so an interrupted run never holds a partially counted entry.
func (s *Stats) Record(r Result) {
	s.TotalFiles++
	switch r.Outcome {
	case Copied, WouldCopy:
		s.CopiedFiles++
		s.TotalBytesCopied += r.Bytes
	case SkippedFiltered:
		s.SkippedFiles++
		s.SkippedFiltered++
	case SkippedExisting:
		s.SkippedFiles++
		s.SkippedExisting++
	default:
		s.FailedFiles++
		if r.Err != nil {
			s.Errors = append(s.Errors, r.Err.Error())
		} else {
			s.Errors = append(s.Errors, "error copying "+r.Entry.SourcePath)
		}
	}
}

// Balanced returns true if every discovered file has exactly one outcome.
func (s *Stats) Balanced() bool {
	return s.TotalFiles == s.CopiedFiles+s.SkippedFiles+s.FailedFiles
}

func (s *Stats) Duration() time.Duration {
	if s.EndTime.Before(s.StartTime) {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// Throughput returns the average number of bytes copied per second.
func (s *Stats) Throughput() float64 {
	d := s.Duration().Seconds()
	if d <= 0 || s.TotalBytesCopied == 0 {
		return 0
	}
	return float64(s.TotalBytesCopied) / d
}
