// Package errors defines the typed errors the ingestion pipeline produces.
// Most of these are absorbed (logged, counted, skipped) by the indexer
// rather than propagated; they exist to give those log lines and the
// unparsed_suffixes histogram structured context instead of bare strings.
package errors

import (
	"fmt"
	"time"

	"github.com/standardbeagle/astidx/internal/types"
)

// ErrorType classifies an error for logging and histogram keys.
type ErrorType string

const (
	ErrorTypeIndexing ErrorType = "indexing"
	ErrorTypeParse    ErrorType = "parse"
	ErrorTypeFile     ErrorType = "file"
	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeShutdown ErrorType = "shutdown"
)

// IndexingError represents a failure applying parsed symbols to the index
// store.
type IndexingError struct {
	Type       ErrorType
	FileID     types.FileID
	FilePath   string
	Operation  string
	Underlying error
	Timestamp  time.Time
}

// NewIndexingError creates a new indexing error with context.
func NewIndexingError(op string, fileID types.FileID, path string, err error) *IndexingError {
	return &IndexingError{
		Type:       ErrorTypeIndexing,
		FileID:     fileID,
		FilePath:   path,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

func (e *IndexingError) Error() string {
	return fmt.Sprintf("%s %s failed for %s: %v", e.Type, e.Operation, e.FilePath, e.Underlying)
}

func (e *IndexingError) Unwrap() error { return e.Underlying }

// ParseError represents a Parser failure for one document. Reason is the
// Parser's opaque classification of the failure. The indexer keys the
// unparsed_suffixes histogram on the whole error message (Error()), not on
// Reason alone.
type ParseError struct {
	Type      ErrorType
	FilePath  string
	Reason    string
	Timestamp time.Time
}

// NewParseError creates a new parse error.
func NewParseError(path, reason string) *ParseError {
	return &ParseError{Type: ErrorTypeParse, FilePath: path, Reason: reason, Timestamp: time.Now()}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error for %s: %s", e.FilePath, e.Reason)
}

// FileError represents a FileTextResolver read failure.
type FileError struct {
	Type       ErrorType
	Path       string
	Underlying error
	Timestamp  time.Time
}

// NewFileError creates a new file error.
func NewFileError(path string, err error) *FileError {
	return &FileError{Type: ErrorTypeFile, Path: path, Underlying: err, Timestamp: time.Now()}
}

func (e *FileError) Error() string {
	return fmt.Sprintf("read failed for %s: %v", e.Path, e.Underlying)
}

func (e *FileError) Unwrap() error { return e.Underlying }

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
}

// NewConfigError creates a new config error.
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{Field: field, Value: value, Underlying: err}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value %q): %v", e.Field, e.Value, e.Underlying)
}

func (e *ConfigError) Unwrap() error { return e.Underlying }

// ErrShutdown describes a failed host-context upgrade: the host has gone
// away. The indexer logs its message and then terminates cleanly; it is
// not a failure of any single document.
type ErrShutdown struct {
	Timestamp time.Time
}

func NewShutdownError() *ErrShutdown {
	return &ErrShutdown{Timestamp: time.Now()}
}

func (e *ErrShutdown) Error() string {
	return "host context is gone, shutting down"
}
