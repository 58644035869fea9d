package scene

import "errors"

var (
	// ErrNoAmbient is returned when a scene lacks an ambient light
	ErrNoAmbient = errors.New("scene: no ambient light defined")
	// ErrNoCamera is returned when a scene lacks a camera
	ErrNoCamera = errors.New("scene: no camera defined")
	// ErrNoLight is returned when a scene lacks a point light
	ErrNoLight = errors.New("scene: no light defined")
	// ErrInvalidPrimitive is returned for primitives with missing shapes or decorations
	ErrInvalidPrimitive = errors.New("scene: invalid primitive")
	// ErrUnknownScene is returned when a built-in scene name is not registered
	ErrUnknownScene = errors.New("scene: unknown built-in scene")
)
