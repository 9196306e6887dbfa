package renderer

import (
	"time"

	"github.com/richinsley/goshaderlive/camera"
	"github.com/richinsley/goshaderlive/feeds"
	"github.com/richinsley/goshaderlive/graphics"
)

// buildFrame advances the camera with this frame's input and returns the
// values every feed reads from.
func buildFrame(cam *camera.Orbit, in graphics.Input, now time.Time) *feeds.Frame {
	cam.Update(in)
	aspect := float32(1)
	if in.Width > 0 && in.Height > 0 {
		aspect = float32(in.Width) / float32(in.Height)
	}
	return &feeds.Frame{
		Input:          in,
		Now:            now,
		WorldViewProj:  cam.ViewProjection(aspect),
		CameraPosition: cam.Position(),
		LightDirection: cam.Light,
	}
}
