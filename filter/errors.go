package filter

import (
	"fmt"
)

// Error types for filter operations
type (
	// CompilationError indicates a filter expression could not be compiled
	CompilationError struct {
		Expression string
		Reason     string
		Err        error
	}

	// PresetError indicates a configured preset could not be registered
	PresetError struct {
		Name string
		Err  error
	}
)

func (e *CompilationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("compilation error in '%s': %s: %v", e.Expression, e.Reason, e.Err)
	}
	return fmt.Sprintf("compilation error in '%s': %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

func (e *PresetError) Error() string {
	return fmt.Sprintf("invalid filter preset '%s': %v", e.Name, e.Err)
}

func (e *PresetError) Unwrap() error {
	return e.Err
}
