// Package feeds holds the builtin table of live values that shader uniforms
// are bound to by name.
package feeds

import (
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/goshaderlive/graphics"
)

// Shape is the value shape a feed produces.
type Shape int

const (
	Scalar Shape = iota
	Vec3
	Vec4
	Mat4
	Unit
)

func (s Shape) String() string {
	switch s {
	case Scalar:
		return "scalar"
	case Vec3:
		return "vec3"
	case Vec4:
		return "vec4"
	case Mat4:
		return "mat4"
	case Unit:
		return "texture unit"
	}
	return "unknown"
}

// Components is the number of values a feed of this shape produces.
func (s Shape) Components() int {
	switch s {
	case Vec3:
		return 3
	case Vec4:
		return 4
	case Mat4:
		return 16
	}
	return 1
}

// Marshal says how a value is written into a uniform.
type Marshal int

const (
	// MarshalScalar sets a single float or int directly.
	MarshalScalar Marshal = iota
	// MarshalTuple sets a fixed-size tuple directly.
	MarshalTuple
	// MarshalPacked uploads tightly packed float32 bytes.
	MarshalPacked
	// MarshalUnit binds a sampler to a fixed texture unit.
	MarshalUnit
)

func (m Marshal) String() string {
	switch m {
	case MarshalScalar:
		return "scalar"
	case MarshalTuple:
		return "tuple"
	case MarshalPacked:
		return "packed"
	case MarshalUnit:
		return "unit"
	}
	return "unknown"
}

// Frame is the read-only context every feed is evaluated against. The
// renderer refreshes it once per tick.
type Frame struct {
	Input          graphics.Input
	Now            time.Time
	WorldViewProj  mgl32.Mat4
	CameraPosition mgl32.Vec3
	LightDirection mgl32.Vec3
}

// Feed is a named value supplier.
type Feed struct {
	Name    string
	Shape   Shape
	Marshal Marshal
	Get     func(f *Frame) []float32
}

// Table maps uniform names to feeds. It is not modified after construction.
type Table struct {
	feeds map[string]Feed
}

// NewTable builds a table from the given feeds. Later feeds replace earlier
// ones with the same name.
func NewTable(feeds ...Feed) *Table {
	t := &Table{feeds: make(map[string]Feed, len(feeds))}
	for _, f := range feeds {
		t.feeds[f.Name] = f
	}
	return t
}

// Lookup returns the feed for a uniform name.
func (t *Table) Lookup(name string) (Feed, bool) {
	f, ok := t.feeds[name]
	return f, ok
}

// Names returns the supported uniform names, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.feeds))
	for name := range t.feeds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DiffuseTextureUnit is the texture unit diffTexture samples from.
const DiffuseTextureUnit = 0

var builtins = NewTable(
	Feed{Name: "iTime", Shape: Scalar, Marshal: MarshalScalar, Get: Time},
	Feed{Name: "iResolution", Shape: Vec3, Marshal: MarshalTuple, Get: Resolution},
	Feed{Name: "iMouse", Shape: Vec4, Marshal: MarshalTuple, Get: Mouse},
	Feed{Name: "iDate", Shape: Vec4, Marshal: MarshalTuple, Get: Date},
	Feed{Name: "worldViewProjMatrix", Shape: Mat4, Marshal: MarshalPacked, Get: WorldViewProj},
	Feed{Name: "lightDirection", Shape: Vec3, Marshal: MarshalPacked, Get: LightDirection},
	Feed{Name: "camPos", Shape: Vec3, Marshal: MarshalPacked, Get: CameraPosition},
	Feed{Name: "diffTexture", Shape: Unit, Marshal: MarshalUnit, Get: func(*Frame) []float32 {
		return []float32{DiffuseTextureUnit}
	}},
)

// Builtins returns the process-wide feed table.
func Builtins() *Table {
	return builtins
}

// Time is the number of seconds since the renderer started.
func Time(f *Frame) []float32 {
	return []float32{float32(f.Input.Time)}
}

// Resolution is the drawable size in pixels.
func Resolution(f *Frame) []float32 {
	return []float32{float32(f.Input.Width), float32(f.Input.Height), 0}
}

// Mouse is the pointer position with a bottom-left origin. While the button
// is held the position is repeated in zw, otherwise zw are zero.
func Mouse(f *Frame) []float32 {
	x := float32(f.Input.MouseX)
	y := float32(float64(f.Input.Height) - f.Input.MouseY)
	if f.Input.MouseDown {
		return []float32{x, y, x, y}
	}
	return []float32{x, y, 0, 0}
}

// Date is year, month, day and seconds into the day.
func Date(f *Frame) []float32 {
	d := f.Now
	secs := float64(d.Hour()*3600+d.Minute()*60+d.Second()) + float64(d.Nanosecond())/1e9
	return []float32{float32(d.Year()), float32(d.Month()), float32(d.Day()), float32(secs)}
}

func WorldViewProj(f *Frame) []float32 {
	m := f.WorldViewProj
	return m[:]
}

func LightDirection(f *Frame) []float32 {
	v := f.LightDirection
	return v[:]
}

func CameraPosition(f *Frame) []float32 {
	v := f.CameraPosition
	return v[:]
}
