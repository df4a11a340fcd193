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
)

// State is the lifecycle state of a run.
type State int

const (
	NotStarted State = iota
	Running
	Completed
	Aborted
	Interrupted
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Aborted:
		return "aborted"
	case Interrupted:
		return "interrupted"
	}
	return "unknown"
}

// StateOf returns the final state of a run that returned err.
func StateOf(err error) State {
	if err == nil {
		return Completed
	}
	var interruptedError *InterruptedError
	if errors.As(err, &interruptedError) {
		return Interrupted
	}
	return Aborted
}

const (
	ExitSuccess        = 0
	ExitFailures       = 1
	ExitSourceNotFound = 2
	ExitUnexpected     = 3
	ExitDestination    = 4
	ExitInterrupted    = 130
)

// ExitCode returns the process exit code for a run.
func ExitCode(stats *Stats, err error) int {
	if err != nil {
		var sourceNotFoundError *SourceNotFoundError
		var destinationError *DestinationError
		var interruptedError *InterruptedError
		switch {
		case errors.As(err, &interruptedError), errors.Is(err, context.Canceled):
			return ExitInterrupted
		case errors.As(err, &sourceNotFoundError):
			return ExitSourceNotFound
		case errors.As(err, &destinationError):
			return ExitDestination
		}
		return ExitUnexpected
	}
	if stats != nil && stats.FailedFiles > 0 {
		return ExitFailures
	}
	return ExitSuccess
}

// classify wraps err in the error type that decides the final state of the run.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var sourceNotFoundError *SourceNotFoundError
	var destinationError *DestinationError
	var interruptedError *InterruptedError
	var unexpectedError *UnexpectedError
	switch {
	case errors.As(err, &sourceNotFoundError), errors.As(err, &destinationError), errors.As(err, &interruptedError), errors.As(err, &unexpectedError):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &InterruptedError{Err: err}
	}
	return &UnexpectedError{Err: err}
}
