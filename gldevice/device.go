// Package gldevice implements graphics.Device on OpenGL 4.1 core.
package gldevice

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/goshaderlive/graphics"
)

var glInitOnce sync.Once

// Device issues GL calls on the thread that owns the current context.
type Device struct {
	logger *log.Logger
}

var _ graphics.Device = (*Device)(nil)

// New initializes the GL function pointers. The context must be current.
func New(logger *log.Logger) (*Device, error) {
	if logger == nil {
		logger = log.Default()
	}
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	logger.Info("OpenGL initialized",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	return &Device{logger: logger}, nil
}

func (d *Device) CompileProgram(vertexSource, fragmentSource string) (*graphics.Program, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(infoLog))
		gl.DeleteProgram(program)
		return nil, &graphics.CompileError{Stage: "link", Log: infoLog}
	}
	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)

	return &graphics.Program{
		ID:         program,
		Uniforms:   activeUniforms(program),
		Attributes: activeAttributes(program),
	}, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)

		stage := "vertex"
		if shaderType == gl.FRAGMENT_SHADER {
			stage = "fragment"
		}
		return 0, &graphics.CompileError{Stage: stage, Log: logText}
	}
	return shader, nil
}

func (d *Device) DeleteProgram(p *graphics.Program) {
	gl.DeleteProgram(p.ID)
}

func (d *Device) UseProgram(p *graphics.Program) {
	gl.UseProgram(p.ID)
}

func (d *Device) NewBuffer(vertices []float32, components int) (*graphics.Buffer, error) {
	if components <= 0 || len(vertices) == 0 || len(vertices)%components != 0 {
		return nil, fmt.Errorf("bad vertex data: %d floats, %d components", len(vertices), components)
	}
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return &graphics.Buffer{ID: vbo, Components: components, Vertices: len(vertices) / components}, nil
}

func (d *Device) DeleteBuffer(b *graphics.Buffer) {
	gl.DeleteBuffers(1, &b.ID)
}

func (d *Device) NewVertexArray(p *graphics.Program, b *graphics.Buffer, attr graphics.AttributeDescriptor) (*graphics.VertexArray, error) {
	if attr.Location < 0 {
		return nil, fmt.Errorf("attribute %q has no location", attr.Name)
	}
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.ID)
	loc := uint32(attr.Location)
	gl.EnableVertexAttribArray(loc)
	gl.VertexAttribPointer(loc, int32(b.Components), gl.FLOAT, false, int32(b.Components*4), gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return &graphics.VertexArray{ID: vao, Program: p.ID, Vertices: b.Vertices}, nil
}

func (d *Device) DeleteVertexArray(v *graphics.VertexArray) {
	gl.DeleteVertexArrays(1, &v.ID)
}

func (d *Device) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (d *Device) Clear(c graphics.Color) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func glPrimitive(mode graphics.Primitive) uint32 {
	switch mode {
	case graphics.TriangleStrip:
		return gl.TRIANGLE_STRIP
	default:
		return gl.TRIANGLES
	}
}

func (d *Device) Draw(v *graphics.VertexArray, mode graphics.Primitive, first, count int) {
	gl.BindVertexArray(v.ID)
	gl.DrawArrays(glPrimitive(mode), int32(first), int32(count))
	gl.BindVertexArray(0)
}
