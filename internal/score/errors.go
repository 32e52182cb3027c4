package score

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is returned when a required key is absent.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidField is returned when a present key has the wrong shape.
	ErrInvalidField = errors.New("invalid field")

	// ErrNotDocument is returned when a loaded file's root is not an object.
	ErrNotDocument = errors.New("document root is not an object")
)

// SchemaError reports a structural problem at a location in the document.
type SchemaError struct {
	Path  string // e.g. "sections[1].measures[0]"; empty for the root
	Field string
	Err   error // ErrMissingField or ErrInvalidField
	Got   string
}

func (e *SchemaError) Error() string {
	loc := e.Field
	if e.Path != "" {
		loc = e.Path + "." + e.Field
	}
	if e.Got != "" {
		return fmt.Sprintf("%s: %v: got %s", loc, e.Err, e.Got)
	}
	return fmt.Sprintf("%s: %v", loc, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// LoadError reports that a document file could not be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
