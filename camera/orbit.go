// Package camera drives the camera and light feeds from pointer and keyboard
// input.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/goshaderlive/graphics"
)

const (
	// Radians of yaw/pitch per drawable width/height of drag.
	dragSensitivity float32 = math.Pi
	// Light x change per frame while an arrow key is held.
	lightStep float32 = 0.01
	zoomStep  float32 = 0.05

	maxPitch    = math.Pi/2 - 0.01
	minDistance = 0.5
	maxDistance = 100
)

// Orbit is a camera circling Target at Distance, plus the scene light.
type Orbit struct {
	Target   mgl32.Vec3
	Up       mgl32.Vec3
	Distance float32
	Yaw      float32
	Pitch    float32
	FOV      float32 // degrees
	Near     float32
	Far      float32
	Light    mgl32.Vec3

	lastX, lastY float64
	dragging     bool
}

func NewOrbit() *Orbit {
	return &Orbit{
		Up:       mgl32.Vec3{0, 1, 0},
		Distance: 3,
		FOV:      45,
		Near:     0.1,
		Far:      100,
		Light:    mgl32.Vec3{1, 1, 0},
	}
}

// Update applies one frame of input: a drag with the button held rotates,
// Left/Right nudge the light and Up/Down zoom.
func (o *Orbit) Update(in graphics.Input) {
	if in.MouseDown && o.dragging && in.Width > 0 && in.Height > 0 {
		dx := float32((o.lastX - in.MouseX) / float64(in.Width))
		dy := float32((o.lastY - in.MouseY) / float64(in.Height))
		o.Yaw += dx * dragSensitivity
		o.Pitch = mgl32.Clamp(o.Pitch-dy*dragSensitivity, -maxPitch, maxPitch)
	}
	o.lastX, o.lastY = in.MouseX, in.MouseY
	o.dragging = in.MouseDown

	if in.Keys.Held(graphics.KeyLeft) {
		o.Light[0] += lightStep
	}
	if in.Keys.Held(graphics.KeyRight) {
		o.Light[0] -= lightStep
	}
	if in.Keys.Held(graphics.KeyUp) {
		o.Distance = mgl32.Clamp(o.Distance*(1-zoomStep), minDistance, maxDistance)
	}
	if in.Keys.Held(graphics.KeyDown) {
		o.Distance = mgl32.Clamp(o.Distance*(1+zoomStep), minDistance, maxDistance)
	}
}

// Position is the camera's world position.
func (o *Orbit) Position() mgl32.Vec3 {
	offset := mgl32.SphericalToCartesian(o.Distance, math.Pi/2-o.Pitch, o.Yaw)
	// SphericalToCartesian is z-up; the scene is y-up.
	return o.Target.Add(mgl32.Vec3{offset[1], offset[2], offset[0]})
}

// ViewProjection is projection * view for the given aspect ratio. The model
// matrix is the identity.
func (o *Orbit) ViewProjection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	proj := mgl32.Perspective(mgl32.DegToRad(o.FOV), aspect, o.Near, o.Far)
	view := mgl32.LookAtV(o.Position(), o.Target, o.Up)
	return proj.Mul4(view)
}
