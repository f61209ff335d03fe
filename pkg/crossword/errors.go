package crossword

import (
	"errors"
	"fmt"
)

// LoadFailure classifies why a puzzle file could not be loaded.
type LoadFailure string

const (
	// FailureOpen means the file could not be read at all
	FailureOpen LoadFailure = "open"

	// FailureInvalidFile means the content is not a well-formed puzzle file
	FailureInvalidFile LoadFailure = "invalid_file"

	// FailureInvalidCrossword means the file parses but its answers disagree
	FailureInvalidCrossword LoadFailure = "invalid_crossword"
)

// LoadError is returned by Parse and LoadFile.
type LoadError struct {
	Kind LoadFailure
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return e.Message()
	}
	return fmt.Sprintf("%s: %v", e.Message(), e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Message is the short text shown to the author.
func (e *LoadError) Message() string {
	switch e.Kind {
	case FailureOpen:
		return "Couldn't open the file"
	case FailureInvalidCrossword:
		return "Invalid crossword"
	default:
		return "Invalid file"
	}
}

func invalidFile(format string, a ...any) error {
	return &LoadError{Kind: FailureInvalidFile, Err: fmt.Errorf(format, a...)}
}

func invalidCrossword(format string, a ...any) error {
	return &LoadError{Kind: FailureInvalidCrossword, Err: fmt.Errorf(format, a...)}
}

func failureOf(err error) (LoadFailure, bool) {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Kind, true
	}
	return "", false
}

// IsOpenFailed returns true if the file could not be read.
func IsOpenFailed(err error) bool {
	k, ok := failureOf(err)
	return ok && k == FailureOpen
}

// IsInvalidFile returns true if the content failed parsing or shape checks.
func IsInvalidFile(err error) bool {
	k, ok := failureOf(err)
	return ok && k == FailureInvalidFile
}

// IsInvalidCrossword returns true if two words of the file disagree on a letter.
func IsInvalidCrossword(err error) bool {
	k, ok := failureOf(err)
	return ok && k == FailureInvalidCrossword
}
