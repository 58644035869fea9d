package loaders

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateElement is returned when A, C or L appears more than once
	ErrDuplicateElement = errors.New("element defined more than once")
	// ErrUnknownElement is returned for an unrecognized element identifier
	ErrUnknownElement = errors.New("unknown element")
	// ErrBumpDecode is returned when a bump map image cannot be decoded
	ErrBumpDecode = errors.New("cannot decode bump map")
	// ErrEmptyMesh is returned when an OBJ file contains no faces
	ErrEmptyMesh = errors.New("mesh has no faces")
)

// ParseError reports a problem on one line of a scene or mesh file
type ParseError struct {
	Line int    // 1-based line number, 0 when the whole file is at fault
	Msg  string // Human readable description
	Err  error  // Underlying cause, may be nil
}

func (e *ParseError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Line == 0 {
		return msg
	}
	return fmt.Sprintf("line %d: %s", e.Line, msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
