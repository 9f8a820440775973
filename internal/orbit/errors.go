package orbit

import "errors"

var (
	// ErrInvalidElements indicates an element set that cannot describe a
	// bound elliptical orbit.
	ErrInvalidElements = errors.New("orbit: invalid orbital elements")

	// ErrUnknownBody indicates a body id missing from the element table.
	ErrUnknownBody = errors.New("orbit: unknown body")
)
