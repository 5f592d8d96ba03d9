/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrTransport is returned when the statement RPC itself fails
	ErrTransport = errors.New("transport failure")

	// ErrMalformedPayload is returned when a column payload cannot be coerced to its declared type
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrShapeMismatch is returned when metadata, records or parameter sets disagree in shape
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// TransportError wraps an error returned by the RPC transport.
// The transport error is kept as-is and reachable through Unwrap.
type TransportError struct {
	Operation string
	Code      string
	Err       error
}

func (e *TransportError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s failed (%s): %v", e.Operation, e.Code, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedPayloadError reports a field whose payload does not parse as its column type
type MalformedPayloadError struct {
	Row      int
	Column   string
	TypeName string
	Err      error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed %s payload in column %q of row %d: %v", e.TypeName, e.Column, e.Row, e.Err)
}

func (e *MalformedPayloadError) Is(target error) bool {
	return target == ErrMalformedPayload
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Err
}

// ShapeMismatchError reports disagreeing lengths or missing entries
type ShapeMismatchError struct {
	Context  string
	Expected int
	Actual   int
	Detail   string
}

func (e *ShapeMismatchError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("shape mismatch in %s: %s", e.Context, e.Detail)
	}
	return fmt.Sprintf("shape mismatch in %s: expected %d, got %d", e.Context, e.Expected, e.Actual)
}

func (e *ShapeMismatchError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewTransportError creates a new TransportError
func NewTransportError(operation, code string, err error) error {
	return &TransportError{Operation: operation, Code: code, Err: err}
}

// NewMalformedPayloadError creates a new MalformedPayloadError
func NewMalformedPayloadError(row int, column, typeName string, err error) error {
	return &MalformedPayloadError{Row: row, Column: column, TypeName: typeName, Err: err}
}

// NewShapeMismatchError creates a ShapeMismatchError for a length disagreement
func NewShapeMismatchError(context string, expected, actual int) error {
	return &ShapeMismatchError{Context: context, Expected: expected, Actual: actual}
}

// NewShapeMismatchDetail creates a ShapeMismatchError with a free-form description
func NewShapeMismatchDetail(context, detail string) error {
	return &ShapeMismatchError{Context: context, Detail: detail}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsTransport checks if an error is a transport failure
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsMalformedPayload checks if an error is a malformed payload error
func IsMalformedPayload(err error) bool {
	return errors.Is(err, ErrMalformedPayload)
}

// IsShapeMismatch checks if an error is a shape mismatch error
func IsShapeMismatch(err error) bool {
	return errors.Is(err, ErrShapeMismatch)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
