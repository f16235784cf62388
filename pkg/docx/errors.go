package docx

import (
	"errors"
	"fmt"
)

var (
	// ErrNotOpen is returned by package operations on a document that has not
	// been opened successfully.
	ErrNotOpen = errors.New("document is not open")
	// ErrMissingMainPart means the archive has no main document part.
	ErrMissingMainPart = errors.New("main document part not found")
	// ErrMalformedBody means the main part parsed but has no w:document/w:body.
	ErrMalformedBody = errors.New("main document part has no body")
)

// DocumentError represents an error during document operations
type DocumentError struct {
	Operation string
	Path      string
	Cause     error
}

func (e *DocumentError) Error() string {
	if e.Path != "" && e.Cause != nil {
		return fmt.Sprintf("document error during %s of '%s': %v", e.Operation, e.Path, e.Cause)
	} else if e.Path != "" {
		return fmt.Sprintf("document error during %s of '%s'", e.Operation, e.Path)
	} else if e.Cause != nil {
		return fmt.Sprintf("document error during %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("document error during %s", e.Operation)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// NewDocumentError creates a new document error
func NewDocumentError(operation, path string, cause error) error {
	return &DocumentError{
		Operation: operation,
		Path:      path,
		Cause:     cause,
	}
}

// ReplacementError reports a registered replacement whose source could not be
// read while saving.
type ReplacementError struct {
	Member string
	Source string
	Cause  error
}

func (e *ReplacementError) Error() string {
	return fmt.Sprintf("replacement for '%s' from '%s': %v", e.Member, e.Source, e.Cause)
}

func (e *ReplacementError) Unwrap() error {
	return e.Cause
}

// IsDocumentError checks if an error is, or wraps, a document error
func IsDocumentError(err error) bool {
	var de *DocumentError
	return errors.As(err, &de)
}

// IsReplacementError checks if an error is, or wraps, a replacement error
func IsReplacementError(err error) bool {
	var re *ReplacementError
	return errors.As(err, &re)
}
