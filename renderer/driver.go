package renderer

import (
	"github.com/richinsley/goshaderlive/feeds"
	"github.com/richinsley/goshaderlive/graphics"
)

// TickStats reports what one tick did.
type TickStats struct {
	Suppliers int
	Draws     int
}

// Driver draws one frame from the current render pass.
type Driver struct {
	dev        graphics.Device
	background graphics.Color
}

func NewDriver(dev graphics.Device, background graphics.Color) *Driver {
	return &Driver{dev: dev, background: background}
}

// Tick resizes the viewport, clears, pushes every uniform and draws the quad
// if the pass is Ready. Without a program the frame is cleared only, so a
// failed start shows a blank frame rather than stale pixels.
func (d *Driver) Tick(pass RenderPass, f *feeds.Frame) TickStats {
	var stats TickStats

	d.dev.Viewport(0, 0, f.Input.Width, f.Input.Height)
	d.dev.Clear(d.background)

	if pass.Program == nil {
		return stats
	}
	d.dev.UseProgram(pass.Program)
	if pass.Uniforms != nil {
		pass.Uniforms.Push(d.dev, f)
		stats.Suppliers = pass.Uniforms.Len()
	}

	if pass.State == Ready && pass.VertexArray != nil {
		d.dev.Draw(pass.VertexArray, graphics.TriangleStrip, 0, pass.VertexArray.Vertices)
		stats.Draws++
	}
	return stats
}
