package mutablefs

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
)

// FlushError lists the staged operations that could not be persisted. Operations not
// listed were committed.
type FlushError struct {
	Failures  []*fs.PathError
	Attempted int
}

func (e *FlushError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Error())
	}
	return fmt.Sprintf("flush failed for %d of %d operations: %s",
		len(e.Failures), e.Attempted, strings.Join(parts, "; "))
}

// Unwrap exposes every failure to errors.Is and errors.As
func (e *FlushError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// First returns the first failure in flush order
func (e *FlushError) First() *fs.PathError {
	if len(e.Failures) == 0 {
		return nil
	}
	return e.Failures[0]
}

// Paths returns the failing paths in flush order
func (e *FlushError) Paths() []string {
	paths := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		paths[i] = f.Path
	}
	return paths
}

func decodeJSON(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}
	return nil
}
