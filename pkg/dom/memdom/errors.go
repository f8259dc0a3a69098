package memdom

import "errors"

var (
	// ErrNilReader is returned by Parse when no reader is supplied.
	ErrNilReader = errors.New("memdom: reader is nil")
	// ErrElementNotFound is returned by the interaction helpers when the
	// targeted control does not exist.
	ErrElementNotFound = errors.New("memdom: element not found")
	// ErrOptionNotFound is returned when a radio value or select option does
	// not exist.
	ErrOptionNotFound = errors.New("memdom: option not found")
)
