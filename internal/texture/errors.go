package texture

import "errors"

var (
	// ErrResolution indicates a resolution the surface cannot be allocated at.
	ErrResolution = errors.New("texture: resolution out of range")

	// ErrBaseColor indicates a base color that is not a #rgb or #rrggbb hex string.
	ErrBaseColor = errors.New("texture: invalid base color")

	// ErrUnknownType indicates a type tag with no painter.
	ErrUnknownType = errors.New("texture: unknown texture type")
)
