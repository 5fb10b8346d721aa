// Package errors provides standardized error types and helpers for the Silversmith codebase.
//
// The taxonomy follows the batch processing model: configuration errors
// are fatal for a batch and reported before any verse is processed;
// gazetteer and alignment errors are recoverable and surfaced as
// warnings and counters.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidConfig indicates an invalid or incomplete configuration
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrGazetteer indicates a gazetteer could not be loaded
	ErrGazetteer = errors.New("gazetteer load failed")
	// ErrUnaligned indicates a token could not be located in the raw text
	ErrUnaligned = errors.New("token unaligned")
	// ErrInternal indicates an internal system error
	ErrInternal = errors.New("internal error")
	// ErrUnsupported indicates an unsupported operation or format
	ErrUnsupported = errors.New("unsupported")
)

// NotFoundError represents a resource not found error with context
type NotFoundError struct {
	Resource string // Type of resource (e.g., "gazetteer", "corpus", "verse")
	ID       string // Identifier of the resource
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// ConfigError represents a fatal configuration error. No verses are
// processed once one of these is reported.
type ConfigError struct {
	Field   string // Configuration field that is invalid (e.g., "priority")
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid configuration for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid configuration: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidConfig
}

// GazetteerError represents a recoverable gazetteer load failure.
// The affected category contributes no matches but the batch continues.
type GazetteerError struct {
	Category string // Entity category the gazetteer belongs to
	Path     string // Gazetteer file path
	Err      error  // Underlying error
}

func (e *GazetteerError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("gazetteer for %s unavailable (%s): %v", e.Category, e.Path, e.Err)
	}
	return fmt.Sprintf("gazetteer for %s unavailable: %v", e.Category, e.Err)
}

func (e *GazetteerError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrGazetteer
}

// AlignError represents a token that could not be located in the raw
// text within the fallback window. Recoverable at token granularity.
type AlignError struct {
	VerseID    string // Verse being aligned
	TokenIndex int    // Ordinal position of the unaligned token
	Token      string // Token surface text
	Err        error  // Underlying error, if any
}

func (e *AlignError) Error() string {
	return fmt.Sprintf("token %d (%q) unaligned in %s", e.TokenIndex, e.Token, e.VerseID)
}

func (e *AlignError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnaligned
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents a parsing or deserialization error
type ParseError struct {
	Format  string // Format being parsed (e.g., "YAML", "OSIS", "JSONL")
	Path    string // File path, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidConfig
}

// UnsupportedError represents an unsupported feature or format
type UnsupportedError struct {
	Feature string // Feature or format that is unsupported
	Reason  string // Why it's not supported
	Err     error  // Underlying error, if any
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

func (e *UnsupportedError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnsupported
}

// Helper functions for creating common errors

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewConfig creates a ConfigError
func NewConfig(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewGazetteer creates a GazetteerError
func NewGazetteer(category, path string, err error) *GazetteerError {
	return &GazetteerError{
		Category: category,
		Path:     path,
		Err:      err,
	}
}

// NewAlign creates an AlignError
func NewAlign(verseID string, tokenIndex int, token string) *AlignError {
	return &AlignError{
		VerseID:    verseID,
		TokenIndex: tokenIndex,
		Token:      token,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// NewUnsupported creates an UnsupportedError
func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{
		Feature: feature,
		Reason:  reason,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
