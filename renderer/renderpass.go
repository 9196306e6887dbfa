package renderer

import (
	"github.com/richinsley/goshaderlive/graphics"
	"github.com/richinsley/goshaderlive/uniforms"
)

// RenderState tells the driver what it may do this tick.
type RenderState int

const (
	// NoProgram: nothing has compiled yet. Frames are cleared only.
	NoProgram RenderState = iota
	// Ready: program, uniforms and geometry are all current.
	Ready
	// Degraded: program and uniforms are current but the program has no
	// position input, so nothing is drawn.
	Degraded
)

func (s RenderState) String() string {
	switch s {
	case NoProgram:
		return "no-program"
	case Ready:
		return "ready"
	case Degraded:
		return "degraded"
	}
	return "unknown"
}

// RenderPass is the resource set the controller installs as one unit.
type RenderPass struct {
	State       RenderState
	Program     *graphics.Program
	Uniforms    *uniforms.Registry
	VertexArray *graphics.VertexArray
}
