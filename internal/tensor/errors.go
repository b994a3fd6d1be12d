package tensor

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrShape  = errors.New("shape mismatch")
	ErrConfig = errors.New("invalid configuration")
)

// ShapeError reports an operation whose input dimensions do not match what
// it declares or derives. It unwraps to ErrShape.
type ShapeError struct {
	Op       string // Operation that rejected the input (e.g., "conv2d", "add")
	Expected Shape  // Expected shape, if a single one applies
	Actual   Shape  // Shape that was received
	Details  string // Additional details
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	switch {
	case e.Expected != nil && e.Details != "":
		return fmt.Sprintf("%s: expected shape %v, got %v: %s", e.Op, e.Expected, e.Actual, e.Details)
	case e.Expected != nil:
		return fmt.Sprintf("%s: expected shape %v, got %v", e.Op, e.Expected, e.Actual)
	case e.Actual != nil:
		return fmt.Sprintf("%s: shape %v: %s", e.Op, e.Actual, e.Details)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Details)
	}
}

// Unwrap returns ErrShape so callers can use errors.Is.
func (e *ShapeError) Unwrap() error {
	return ErrShape
}

// ConfigError reports an invalid construction or call argument.
// It unwraps to ErrConfig.
type ConfigError struct {
	Field   string // Offending argument (e.g., "keypoints")
	Value   int    // Value that was received
	Details string // Additional details
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("invalid %s %d: %s", e.Field, e.Value, e.Details)
	}
	return fmt.Sprintf("invalid %s %d", e.Field, e.Value)
}

// Unwrap returns ErrConfig so callers can use errors.Is.
func (e *ConfigError) Unwrap() error {
	return ErrConfig
}

// shapeErrorf builds a ShapeError without an expected shape.
func shapeErrorf(op string, actual Shape, format string, args ...any) *ShapeError {
	return &ShapeError{Op: op, Actual: actual.Clone(), Details: fmt.Sprintf(format, args...)}
}
