// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package transfer

import (
	"errors"
	"fmt"
)

var (
	ErrNotDirectory = errors.New("not a directory")
)

// SourceNotFoundError is returned when the source root does not exist or is not a directory.
type SourceNotFoundError struct {
	Path string
	Err  error
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("source directory does not exist %q: %v", e.Path, e.Err)
}

func (e *SourceNotFoundError) Unwrap() error {
	return e.Err
}

// DestinationError is returned when a directory in the destination tree cannot be created.
type DestinationError struct {
	Path string
	Err  error
}

func (e *DestinationError) Error() string {
	return fmt.Sprintf("error creating destination directory %q: %v", e.Path, e.Err)
}

func (e *DestinationError) Unwrap() error {
	return e.Err
}

// InterruptedError is returned when the run is cancelled between entries.
type InterruptedError struct {
	Err error
}

func (e *InterruptedError) Error() string {
	return fmt.Sprintf("transfer interrupted: %v", e.Err)
}

func (e *InterruptedError) Unwrap() error {
	return e.Err
}

// UnexpectedError wraps any fatal error that is not otherwise classified.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected error: %v", e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}
