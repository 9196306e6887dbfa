package renderer

import (
	"github.com/richinsley/goshaderlive/graphics"
)

// QuadVertices covers clip space as a 4 vertex triangle strip.
var QuadVertices = []float32{
	-1.0, -1.0,
	-1.0, 1.0,
	1.0, -1.0,
	1.0, 1.0,
}

// NewQuad uploads the full-screen quad.
func NewQuad(dev graphics.Device) (*graphics.Buffer, error) {
	return dev.NewBuffer(QuadVertices, 2)
}

// BuildVertexArray binds buf to the program's attribute. A program without
// that input returns a *graphics.MissingAttributeError.
func BuildVertexArray(dev graphics.Device, p *graphics.Program, buf *graphics.Buffer, attribute string) (*graphics.VertexArray, error) {
	attr, ok := p.Attribute(attribute)
	if !ok {
		return nil, &graphics.MissingAttributeError{Attribute: attribute}
	}
	return dev.NewVertexArray(p, buf, attr)
}
