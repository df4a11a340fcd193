// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package transfer

import (
	"fmt"
)

// Outcome is the classification of a single entry.
type Outcome int

const (
	Copied Outcome = iota + 1
	SkippedFiltered
	SkippedExisting
	Failed
	// WouldCopy is reported instead of Copied during a dry run.
	WouldCopy
)

func (o Outcome) String() string {
	switch o {
	case Copied:
		return "copied"
	case SkippedFiltered:
		return "skipped-filtered"
	case SkippedExisting:
		return "skipped-exists"
	case Failed:
		return "failed"
	case WouldCopy:
		return "would-copy"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Result is the outcome of processing one entry.
// Bytes is the size of the source file for Copied and WouldCopy.
// Err is set only for Failed.
type Result struct {
	Entry   Entry
	Outcome Outcome
	Bytes   int64
	Err     error
}

// FileError describes a failed copy of a single file.
type FileError struct {
	Path       string
	Permission bool
	Err        error
}

func (e *FileError) Error() string {
	if e.Permission {
		return fmt.Sprintf("permission denied: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("error copying %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
