// Package common holds error kinds shared by every layer of the program. They
// are intended to be checked with errors.Is, wrapped errors carry the details.
package common

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidValue is reported when an enumerated field receives a value
	// outside of its vocabulary.
	ErrInvalidValue = errors.New("invalid value")
	// ErrMissingRequiredField is reported when a book cannot be assembled
	// because mandatory data is absent.
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrAssetNotFound is reported when a referenced cover, image or
	// stylesheet does not exist.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrGenerationFailed is reported when the archive could not be produced.
	ErrGenerationFailed = errors.New("generation failed")
)

// ValueError describes rejected value. Valid is only filled for small
// vocabularies.
type ValueError struct {
	Field string
	Value string
	Valid []string
}

func (e *ValueError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid %s: %s", e.Field, e.Value)
	if len(e.Valid) > 0 {
		fmt.Fprintf(&sb, " (valid values: %s)", strings.Join(e.Valid, ", "))
	}
	return sb.String()
}

func (e *ValueError) Unwrap() error {
	return ErrInvalidValue
}

// MissingFieldError returns error wrapping ErrMissingRequiredField.
func MissingFieldError(reason string) error {
	return fmt.Errorf("%w: %s", ErrMissingRequiredField, reason)
}

// AssetNotFoundError returns error wrapping ErrAssetNotFound for the path.
func AssetNotFoundError(kind, path string, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w: %s file does not exist (%s): %w", ErrAssetNotFound, kind, path, cause)
	}
	return fmt.Errorf("%w: %s file does not exist (%s)", ErrAssetNotFound, kind, path)
}

// GenerationError wraps cause with ErrGenerationFailed.
func GenerationError(cause error) error {
	return fmt.Errorf("%w: %w", ErrGenerationFailed, cause)
}
