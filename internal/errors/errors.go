package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for expected failure modes
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrBadExtension     = errors.New("input must have .cabc.abc extension")
	ErrNoInputs         = errors.New("no CABC input files found")
	ErrUnwritableOutput = errors.New("output directory not writable")
)

// ConvertError represents a failure while processing one input file
type ConvertError struct {
	Song  string // song directory name, "" for standalone files
	Stage string // "read" or "write"
	Path  string
	Cause error
}

func (e *ConvertError) Error() string {
	if e.Song != "" {
		return fmt.Sprintf("%s: %s failed for %s: %v", e.Song, e.Stage, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s failed for %s: %v", e.Stage, e.Path, e.Cause)
}

func (e *ConvertError) Unwrap() error {
	return e.Cause
}

// NewConvertError creates a ConvertError
func NewConvertError(song, stage, path string, cause error) *ConvertError {
	return &ConvertError{
		Song:  song,
		Stage: stage,
		Path:  path,
		Cause: cause,
	}
}
