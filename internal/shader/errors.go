package shader

import (
	"errors"
	"fmt"
)

var (
	ErrNoUnits      = errors.New("shader: program has no shader units")
	ErrInvalidState = errors.New("shader: core has no program handle")
)

// CompileError reports a shader unit the driver refused to compile.
type CompileError struct {
	Unit string
	Log  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader: compile error in %s: %s", e.Unit, e.Log)
}

// LinkError reports a program the driver refused to link.
type LinkError struct {
	Units []string
	Log   string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("shader: link error for %v: %s", e.Units, e.Log)
}
