package deckforge

import (
	"errors"
	"fmt"
)

// Sentinel errors for the pipeline's failure taxonomy. Only missing
// input files abort a whole stage; everything else degrades per slide
// or per field.
var (
	// ErrMissingInput marks an absent analysis, content, or template file.
	ErrMissingInput = errors.New("required input file not found")

	// ErrLayoutNotFound marks a layout name lookup miss. Callers on the
	// assembly path never surface this; they fall back to the default
	// layout instead.
	ErrLayoutNotFound = errors.New("layout not found")
)

func errLayoutNotFound(name string) error {
	return fmt.Errorf("%w: %q", ErrLayoutNotFound, name)
}
