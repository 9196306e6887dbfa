// Package graphicstest provides a recording graphics.Device for tests that
// run without a GPU.
package graphicstest

import (
	"fmt"

	"github.com/richinsley/goshaderlive/graphics"
)

// Call is one recorded device call.
type Call struct {
	Op      string
	Uniform string
	Values  []float32
	Bytes   []byte
	Unit    int32
	Mode    graphics.Primitive
	Count   int
}

// Compiled describes what CompileProgram returns for a fragment source.
type Compiled struct {
	Uniforms   []graphics.UniformDescriptor
	Attributes []string
}

// Device is a fake graphics.Device. Fragment sources are looked up in
// Programs; a source missing from the map fails to compile.
type Device struct {
	Programs map[string]Compiled

	Calls []Call

	nextID  uint32
	live    map[string]map[uint32]bool
	deleted map[string]map[uint32]int
}

func New() *Device {
	return &Device{
		Programs: make(map[string]Compiled),
		live:     map[string]map[uint32]bool{"program": {}, "buffer": {}, "vao": {}},
		deleted:  map[string]map[uint32]int{"program": {}, "buffer": {}, "vao": {}},
	}
}

func (d *Device) id(kind string) uint32 {
	d.nextID++
	d.live[kind][d.nextID] = true
	return d.nextID
}

func (d *Device) release(kind string, id uint32) {
	d.deleted[kind][id]++
	delete(d.live[kind], id)
}

// Live returns the number of objects of a kind ("program", "buffer", "vao")
// that were created and not yet deleted.
func (d *Device) Live(kind string) int {
	return len(d.live[kind])
}

// Deletes returns how many times the object was deleted.
func (d *Device) Deletes(kind string, id uint32) int {
	return d.deleted[kind][id]
}

// TotalDeletes returns the number of delete calls for a kind.
func (d *Device) TotalDeletes(kind string) int {
	n := 0
	for _, c := range d.deleted[kind] {
		n += c
	}
	return n
}

// Ops returns the recorded call names, in order.
func (d *Device) Ops() []string {
	ops := make([]string, len(d.Calls))
	for i, c := range d.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Count returns how many calls of op were recorded.
func (d *Device) Count(op string) int {
	n := 0
	for _, c := range d.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset forgets the recorded calls.
func (d *Device) Reset() {
	d.Calls = nil
}

func (d *Device) record(c Call) {
	d.Calls = append(d.Calls, c)
}

func (d *Device) CompileProgram(vertexSource, fragmentSource string) (*graphics.Program, error) {
	c, ok := d.Programs[fragmentSource]
	if !ok {
		d.record(Call{Op: "compile-failed"})
		return nil, &graphics.CompileError{Stage: "fragment", Log: "0:1: syntax error"}
	}
	p := &graphics.Program{
		ID:       d.id("program"),
		Uniforms: append([]graphics.UniformDescriptor(nil), c.Uniforms...),
	}
	for i, name := range c.Attributes {
		p.Attributes = append(p.Attributes, graphics.AttributeDescriptor{Name: name, Location: int32(i)})
	}
	d.record(Call{Op: "compile"})
	return p, nil
}

func (d *Device) DeleteProgram(p *graphics.Program) {
	d.release("program", p.ID)
	d.record(Call{Op: "delete-program"})
}

func (d *Device) UseProgram(p *graphics.Program) {
	d.record(Call{Op: "use"})
}

func (d *Device) NewBuffer(vertices []float32, components int) (*graphics.Buffer, error) {
	if components <= 0 || len(vertices)%components != 0 {
		return nil, fmt.Errorf("bad vertex data: %d floats, %d components", len(vertices), components)
	}
	return &graphics.Buffer{ID: d.id("buffer"), Components: components, Vertices: len(vertices) / components}, nil
}

func (d *Device) DeleteBuffer(b *graphics.Buffer) {
	d.release("buffer", b.ID)
}

func (d *Device) NewVertexArray(p *graphics.Program, b *graphics.Buffer, attr graphics.AttributeDescriptor) (*graphics.VertexArray, error) {
	d.record(Call{Op: "vertex-array"})
	return &graphics.VertexArray{ID: d.id("vao"), Program: p.ID, Vertices: b.Vertices}, nil
}

func (d *Device) DeleteVertexArray(v *graphics.VertexArray) {
	d.release("vao", v.ID)
	d.record(Call{Op: "delete-vertex-array"})
}

func (d *Device) SetScalar(u graphics.UniformDescriptor, v float32) {
	d.record(Call{Op: "scalar", Uniform: u.Name, Values: []float32{v}})
}

func (d *Device) SetTuple(u graphics.UniformDescriptor, v []float32) {
	d.record(Call{Op: "tuple", Uniform: u.Name, Values: append([]float32(nil), v...)})
}

func (d *Device) WriteUniform(u graphics.UniformDescriptor, data []byte) {
	d.record(Call{Op: "write", Uniform: u.Name, Bytes: append([]byte(nil), data...)})
}

func (d *Device) SetTextureUnit(u graphics.UniformDescriptor, unit int32) {
	d.record(Call{Op: "unit", Uniform: u.Name, Unit: unit})
}

func (d *Device) Viewport(x, y, width, height int) {
	d.record(Call{Op: "viewport", Values: []float32{float32(x), float32(y), float32(width), float32(height)}})
}

func (d *Device) Clear(c graphics.Color) {
	d.record(Call{Op: "clear", Values: []float32{c.R, c.G, c.B, c.A}})
}

func (d *Device) Draw(v *graphics.VertexArray, mode graphics.Primitive, first, count int) {
	d.record(Call{Op: "draw", Mode: mode, Count: count})
}

// Float is a float uniform descriptor with the given component count.
func Float(name string, components int) graphics.UniformDescriptor {
	return graphics.UniformDescriptor{Name: name, Kind: graphics.KindFloat, Components: components, Count: 1}
}

// Mat4 is a mat4 uniform descriptor.
func Mat4(name string) graphics.UniformDescriptor {
	return graphics.UniformDescriptor{Name: name, Kind: graphics.KindMatrix, Components: 16, Count: 1}
}

// Sampler is a sampler2D uniform descriptor.
func Sampler(name string) graphics.UniformDescriptor {
	return graphics.UniformDescriptor{Name: name, Kind: graphics.KindSampler, Components: 1, Count: 1}
}
