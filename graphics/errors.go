package graphics

import (
	"fmt"
	"strings"
)

// CompileError is returned when a shader stage fails to compile or the
// program fails to link. Log holds the driver's diagnostic text.
type CompileError struct {
	Stage string // "vertex", "fragment", "link" or "translate"
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader failed: %s", e.Stage, strings.TrimRight(e.Log, "\x00\n "))
}

// MissingAttributeError is returned when a program does not declare the
// vertex input the quad geometry is bound to.
type MissingAttributeError struct {
	Attribute string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("missing attribute %q in shader, cannot init vertex array object", e.Attribute)
}
