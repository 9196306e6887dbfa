package graphics

import "strings"

// UniformKind is the broad class of a declared uniform.
type UniformKind int

const (
	KindFloat UniformKind = iota
	KindInt
	KindMatrix
	KindSampler
	// KindUnsupported is a declared type no write rule exists for, such as
	// doubles or images.
	KindUnsupported
)

func (k UniformKind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindMatrix:
		return "matrix"
	case KindSampler:
		return "sampler"
	case KindUnsupported:
		return "unsupported"
	}
	return "unknown"
}

// UniformDescriptor describes one active uniform of a linked program.
type UniformDescriptor struct {
	Name       string
	Location   int32
	Kind       UniformKind
	Components int    // values per element: 1..4 for vectors, 4..16 for matrices
	Count      int    // array length, 1 for non-arrays
	Type       uint32 // backend type code
}

// Size is the number of scalar values the uniform holds.
func (u UniformDescriptor) Size() int {
	return u.Components * u.Count
}

// AttributeDescriptor describes one active vertex input.
type AttributeDescriptor struct {
	Name     string
	Location int32
}

// Program is a compiled and linked shader program together with its
// reflected inputs.
type Program struct {
	ID         uint32
	Uniforms   []UniformDescriptor
	Attributes []AttributeDescriptor
}

// Attribute looks up a vertex input by name.
func (p *Program) Attribute(name string) (AttributeDescriptor, bool) {
	for _, a := range p.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return AttributeDescriptor{}, false
}

// Uniform looks up a uniform by name.
func (p *Program) Uniform(name string) (UniformDescriptor, bool) {
	for _, u := range p.Uniforms {
		if u.Name == name {
			return u, true
		}
	}
	return UniformDescriptor{}, false
}

// Buffer is a vertex buffer of tightly packed float32 vertices.
type Buffer struct {
	ID         uint32
	Components int
	Vertices   int
}

// VertexArray binds a Buffer to one program's vertex input.
type VertexArray struct {
	ID       uint32
	Program  uint32
	Vertices int
}

// Primitive is a draw topology.
type Primitive int

const (
	Triangles Primitive = iota
	TriangleStrip
)

// Color is a linear RGBA clear color.
type Color struct {
	R, G, B, A float32
}

var White = Color{1, 1, 1, 1}

// Device is the subset of the graphics API the renderer needs. All methods
// must be called from the thread that owns the context.
type Device interface {
	// CompileProgram compiles and links the two stages. On failure it returns
	// a *CompileError and leaves no objects behind.
	CompileProgram(vertexSource, fragmentSource string) (*Program, error)
	DeleteProgram(p *Program)
	UseProgram(p *Program)

	NewBuffer(vertices []float32, components int) (*Buffer, error)
	DeleteBuffer(b *Buffer)

	NewVertexArray(p *Program, b *Buffer, attr AttributeDescriptor) (*VertexArray, error)
	DeleteVertexArray(v *VertexArray)

	SetScalar(u UniformDescriptor, v float32)
	SetTuple(u UniformDescriptor, v []float32)
	WriteUniform(u UniformDescriptor, data []byte)
	SetTextureUnit(u UniformDescriptor, unit int32)

	Viewport(x, y, width, height int)
	Clear(c Color)
	Draw(v *VertexArray, mode Primitive, first, count int)
}

// TrimArraySuffix turns "iChannelTime[0]" into "iChannelTime".
func TrimArraySuffix(name string) string {
	return strings.TrimSuffix(name, "[0]")
}
