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
	// ErrUnknownTypeReference is returned when a factory names a type that was never registered
	ErrUnknownTypeReference = errors.New("unknown type reference")

	// ErrArrayExpected is returned when a scalar is supplied for an array-valued field
	ErrArrayExpected = errors.New("array expected")

	// ErrArrayNotExpected is returned when a sequence is supplied for a scalar field
	ErrArrayNotExpected = errors.New("array not expected")

	// ErrInvalidFactory is returned when a factory cannot produce values for its field
	ErrInvalidFactory = errors.New("invalid factory")

	// ErrFieldType is returned when a value cannot be stored in its struct field
	ErrFieldType = errors.New("field type mismatch")

	// ErrTransform is returned when a value transformer fails
	ErrTransform = errors.New("transform failed")

	// ErrMaxDepthExceeded is returned when hydration nests deeper than the configured limit
	ErrMaxDepthExceeded = errors.New("maximum hydration depth exceeded")

	// ErrInvalidInput is returned when a payload or schema document cannot be decoded
	ErrInvalidInput = errors.New("invalid input")
)

// UnknownTypeError represents a forward reference whose target never registered itself
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("class %q was never registered", e.Name)
}

func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownTypeReference
}

// ShapeError represents a payload value whose arity disagrees with its field rule
type ShapeError struct {
	Type          string
	Field         string
	ArrayExpected bool
}

func (e *ShapeError) Error() string {
	if e.ArrayExpected {
		return fmt.Sprintf("array expected for field %s.%s", e.Type, e.Field)
	}
	return fmt.Sprintf("array not expected for field %s.%s", e.Type, e.Field)
}

func (e *ShapeError) Is(target error) bool {
	if e.ArrayExpected {
		return target == ErrArrayExpected
	}
	return target == ErrArrayNotExpected
}

// FactoryError represents a factory that does not fit the field it was attached to
type FactoryError struct {
	Type   string
	Field  string
	Reason string
}

func (e *FactoryError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid factory for field %s.%s: %s", e.Type, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid factory: %s", e.Reason)
}

func (e *FactoryError) Is(target error) bool {
	return target == ErrInvalidFactory
}

// FieldTypeError represents a value that could not be assigned to a struct field
type FieldTypeError struct {
	Type  string
	Field string
	Err   error
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("cannot assign field %s.%s: %v", e.Type, e.Field, e.Err)
}

func (e *FieldTypeError) Is(target error) bool {
	return target == ErrFieldType
}

func (e *FieldTypeError) Unwrap() error {
	return e.Err
}

// TransformError wraps a failure returned by a value transformer
type TransformError struct {
	Factory string
	Err     error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transformer %s: %v", e.Factory, e.Err)
}

func (e *TransformError) Is(target error) bool {
	return target == ErrTransform
}

func (e *TransformError) Unwrap() error {
	return e.Err
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

// NewUnknownTypeError creates a new UnknownTypeError
func NewUnknownTypeError(name string) error {
	return &UnknownTypeError{Name: name}
}

// NewShapeError creates a new ShapeError
func NewShapeError(typeName, field string, arrayExpected bool) error {
	return &ShapeError{Type: typeName, Field: field, ArrayExpected: arrayExpected}
}

// NewFactoryError creates a new FactoryError
func NewFactoryError(typeName, field, reason string) error {
	return &FactoryError{Type: typeName, Field: field, Reason: reason}
}

// NewFieldTypeError creates a new FieldTypeError
func NewFieldTypeError(typeName, field string, err error) error {
	return &FieldTypeError{Type: typeName, Field: field, Err: err}
}

// NewTransformError creates a new TransformError
func NewTransformError(factory string, err error) error {
	return &TransformError{Factory: factory, Err: err}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsUnknownTypeReference checks if an error is an unknown type reference
func IsUnknownTypeReference(err error) bool {
	return errors.Is(err, ErrUnknownTypeReference)
}

// IsArrayExpected checks if an error is an array-expected shape mismatch
func IsArrayExpected(err error) bool {
	return errors.Is(err, ErrArrayExpected)
}

// IsArrayNotExpected checks if an error is an array-not-expected shape mismatch
func IsArrayNotExpected(err error) bool {
	return errors.Is(err, ErrArrayNotExpected)
}

// IsShapeMismatch checks if an error is either kind of shape mismatch
func IsShapeMismatch(err error) bool {
	return IsArrayExpected(err) || IsArrayNotExpected(err)
}

// IsInvalidFactory checks if an error is an invalid factory error
func IsInvalidFactory(err error) bool {
	return errors.Is(err, ErrInvalidFactory)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
