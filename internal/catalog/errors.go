package catalog

import (
	"fmt"
	"strings"
)

// LoadError reports a failed listing of the collection.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load games: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Reason is the underlying message, suitable for a placeholder row.
func (e *LoadError) Reason() string {
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}

// ValidationError reports candidate fields that were blank after trimming.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// InsertError reports a failed insert into the collection.
type InsertError struct {
	Err error
}

func (e *InsertError) Error() string {
	return fmt.Sprintf("insert game: %v", e.Err)
}

func (e *InsertError) Unwrap() error { return e.Err }

// Reason is the underlying message, suitable for inline display.
func (e *InsertError) Reason() string {
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}

// Validate checks that every field of c is present after trimming and returns
// the trimmed candidate.
func Validate(c Candidate) (Candidate, error) {
	trimmed := c.Trimmed()
	var missing []string
	if trimmed.Name == "" {
		missing = append(missing, "name")
	}
	if trimmed.Platform == "" {
		missing = append(missing, "platform")
	}
	if trimmed.Category == "" {
		missing = append(missing, "category")
	}
	if trimmed.NotableFeatures == "" {
		missing = append(missing, "notable_features")
	}
	if len(missing) > 0 {
		return Candidate{}, &ValidationError{Fields: missing}
	}
	return trimmed, nil
}
