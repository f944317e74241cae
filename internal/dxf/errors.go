package dxf

import (
	"errors"
	"fmt"
)

var (
	ErrBinaryDXF      = errors.New("dxf: binary DXF is not supported")
	ErrUnexpectedEOF  = errors.New("dxf: group code without a value")
	ErrEntityMismatch = errors.New("dxf: library entities do not match records")
)

// ParseError reports a malformed group code or value.
type ParseError struct {
	Line  int
	Code  int
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Code < 0 {
		return fmt.Sprintf("dxf: line %d: invalid group code %q: %v", e.Line, e.Value, e.Err)
	}
	return fmt.Sprintf("dxf: line %d: group %d value %q: %v", e.Line, e.Code, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
