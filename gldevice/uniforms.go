package gldevice

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/goshaderlive/graphics"
)

func (d *Device) SetScalar(u graphics.UniformDescriptor, v float32) {
	if u.Location < 0 {
		return
	}
	switch u.Kind {
	case graphics.KindInt:
		ints, uints := intValues(u, []float32{v})
		if uints != nil {
			gl.Uniform1ui(u.Location, uints[0])
		} else {
			gl.Uniform1i(u.Location, ints[0])
		}
	case graphics.KindSampler:
		gl.Uniform1i(u.Location, int32(v))
	default:
		gl.Uniform1f(u.Location, v)
	}
}

func (d *Device) SetTuple(u graphics.UniformDescriptor, v []float32) {
	if u.Location < 0 || len(v) == 0 {
		return
	}
	if u.Kind == graphics.KindInt {
		ints, uints := intValues(u, v)
		if uints != nil {
			switch len(uints) {
			case 1:
				gl.Uniform1ui(u.Location, uints[0])
			case 2:
				gl.Uniform2ui(u.Location, uints[0], uints[1])
			case 3:
				gl.Uniform3ui(u.Location, uints[0], uints[1], uints[2])
			default:
				gl.Uniform4ui(u.Location, uints[0], uints[1], uints[2], uints[3])
			}
			return
		}
		switch len(ints) {
		case 1:
			gl.Uniform1i(u.Location, ints[0])
		case 2:
			gl.Uniform2i(u.Location, ints[0], ints[1])
		case 3:
			gl.Uniform3i(u.Location, ints[0], ints[1], ints[2])
		default:
			gl.Uniform4i(u.Location, ints[0], ints[1], ints[2], ints[3])
		}
		return
	}
	switch len(v) {
	case 1:
		gl.Uniform1f(u.Location, v[0])
	case 2:
		gl.Uniform2f(u.Location, v[0], v[1])
	case 3:
		gl.Uniform3f(u.Location, v[0], v[1], v[2])
	default:
		gl.Uniform4f(u.Location, v[0], v[1], v[2], v[3])
	}
}

// WriteUniform uploads tightly packed little-endian float32 data covering
// the uniform's declared element count.
func (d *Device) WriteUniform(u graphics.UniformDescriptor, data []byte) {
	if u.Location < 0 || u.Components == 0 {
		return
	}
	values := graphics.Unpack(data)
	count := int32(len(values) / u.Components)
	if count == 0 {
		return
	}

	if u.Kind == graphics.KindInt {
		ints, uints := intValues(u, values)
		if uints != nil {
			switch u.Components {
			case 1:
				gl.Uniform1uiv(u.Location, count, &uints[0])
			case 2:
				gl.Uniform2uiv(u.Location, count, &uints[0])
			case 3:
				gl.Uniform3uiv(u.Location, count, &uints[0])
			case 4:
				gl.Uniform4uiv(u.Location, count, &uints[0])
			}
			return
		}
		switch u.Components {
		case 1:
			gl.Uniform1iv(u.Location, count, &ints[0])
		case 2:
			gl.Uniform2iv(u.Location, count, &ints[0])
		case 3:
			gl.Uniform3iv(u.Location, count, &ints[0])
		case 4:
			gl.Uniform4iv(u.Location, count, &ints[0])
		}
		return
	}

	ptr := &values[0]
	switch u.Type {
	case gl.FLOAT_MAT2:
		gl.UniformMatrix2fv(u.Location, count, false, ptr)
	case gl.FLOAT_MAT3:
		gl.UniformMatrix3fv(u.Location, count, false, ptr)
	case gl.FLOAT_MAT4:
		gl.UniformMatrix4fv(u.Location, count, false, ptr)
	case gl.FLOAT_MAT2x3:
		gl.UniformMatrix2x3fv(u.Location, count, false, ptr)
	case gl.FLOAT_MAT2x4:
		gl.UniformMatrix2x4fv(u.Location, count, false, ptr)
	case gl.FLOAT_MAT3x2:
		gl.UniformMatrix3x2fv(u.Location, count, false, ptr)
	case gl.FLOAT_MAT3x4:
		gl.UniformMatrix3x4fv(u.Location, count, false, ptr)
	case gl.FLOAT_MAT4x2:
		gl.UniformMatrix4x2fv(u.Location, count, false, ptr)
	case gl.FLOAT_MAT4x3:
		gl.UniformMatrix4x3fv(u.Location, count, false, ptr)
	default:
		switch u.Components {
		case 1:
			gl.Uniform1fv(u.Location, count, ptr)
		case 2:
			gl.Uniform2fv(u.Location, count, ptr)
		case 3:
			gl.Uniform3fv(u.Location, count, ptr)
		case 4:
			gl.Uniform4fv(u.Location, count, ptr)
		}
	}
}

func (d *Device) SetTextureUnit(u graphics.UniformDescriptor, unit int32) {
	if u.Location < 0 {
		return
	}
	gl.Uniform1i(u.Location, unit)
}

// intValues converts v for an integer uniform. Unsigned declarations get
// uint32 values with negatives clamped to zero and ints is nil; every other
// declaration gets int32 values and uints is nil.
func intValues(u graphics.UniformDescriptor, v []float32) (ints []int32, uints []uint32) {
	if isUnsigned(u.Type) {
		uints = make([]uint32, len(v))
		for i, f := range v {
			if f > 0 {
				uints[i] = uint32(f)
			}
		}
		return nil, uints
	}
	ints = make([]int32, len(v))
	for i, f := range v {
		ints[i] = int32(f)
	}
	return ints, nil
}
