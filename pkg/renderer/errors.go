package renderer

import "errors"

var (
	// ErrNoCamera is returned when rendering a scene without a camera
	ErrNoCamera = errors.New("renderer: no camera defined")
	// ErrInvalidSize is returned for non-positive image dimensions
	ErrInvalidSize = errors.New("renderer: image dimensions must be positive")
	// ErrNilScene is returned when no scene is supplied
	ErrNilScene = errors.New("renderer: nil scene")
)
