package llmc

import (
	"errors"
	"fmt"
)

// Err is the root of the llmc error taxonomy. All typed errors produced by
// this package match it under errors.Is.
var Err = errors.New("llmc")

// FormatError reports a structural violation of the container layout: bad
// magic, unsupported version or revision, truncated sections, a bad store
// application ID, or undecodable metadata.
type FormatError struct {
	msg   string
	cause error
}

func (e *FormatError) Error() string   { return e.msg }
func (e *FormatError) Unwrap() error   { return e.cause }
func (e *FormatError) Is(t error) bool { return t == Err }

func formatErrf(format string, args ...any) *FormatError {
	return &FormatError{msg: fmt.Sprintf(format, args...)}
}

func wrapFormat(err error, format string, args ...any) *FormatError {
	return &FormatError{msg: fmt.Sprintf(format, args...) + ": " + err.Error(), cause: err}
}

// ParseError wraps any unexpected failure during an end-to-end parse,
// including I/O failures opening the source. Typed errors pass through
// untouched; see wrapParse.
type ParseError struct {
	msg   string
	cause error
}

func (e *ParseError) Error() string   { return e.msg }
func (e *ParseError) Unwrap() error   { return e.cause }
func (e *ParseError) Is(t error) bool { return t == Err }

// wrapParse wraps err with source context unless it is already one of this
// package's typed errors, which propagate unchanged.
func wrapParse(err error, source string) error {
	if errors.Is(err, Err) {
		return err
	}
	return &ParseError{msg: fmt.Sprintf("parse %s: %v", source, err), cause: err}
}

// ValidationError reports a pre-write structural violation of the canonical
// conversation entity. Validation stops at the first offending field.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string   { return e.msg }
func (e *ValidationError) Is(t error) bool { return t == Err }

func validationErrf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}
