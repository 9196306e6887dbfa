package gldevice

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/goshaderlive/graphics"
)

type typeInfo struct {
	kind       graphics.UniformKind
	components int
}

var glTypes = map[uint32]typeInfo{
	gl.FLOAT:      {graphics.KindFloat, 1},
	gl.FLOAT_VEC2: {graphics.KindFloat, 2},
	gl.FLOAT_VEC3: {graphics.KindFloat, 3},
	gl.FLOAT_VEC4: {graphics.KindFloat, 4},

	gl.INT:               {graphics.KindInt, 1},
	gl.INT_VEC2:          {graphics.KindInt, 2},
	gl.INT_VEC3:          {graphics.KindInt, 3},
	gl.INT_VEC4:          {graphics.KindInt, 4},
	gl.UNSIGNED_INT:      {graphics.KindInt, 1},
	gl.UNSIGNED_INT_VEC2: {graphics.KindInt, 2},
	gl.UNSIGNED_INT_VEC3: {graphics.KindInt, 3},
	gl.UNSIGNED_INT_VEC4: {graphics.KindInt, 4},
	gl.BOOL:              {graphics.KindInt, 1},
	gl.BOOL_VEC2:         {graphics.KindInt, 2},
	gl.BOOL_VEC3:         {graphics.KindInt, 3},
	gl.BOOL_VEC4:         {graphics.KindInt, 4},

	gl.FLOAT_MAT2:   {graphics.KindMatrix, 4},
	gl.FLOAT_MAT3:   {graphics.KindMatrix, 9},
	gl.FLOAT_MAT4:   {graphics.KindMatrix, 16},
	gl.FLOAT_MAT2x3: {graphics.KindMatrix, 6},
	gl.FLOAT_MAT2x4: {graphics.KindMatrix, 8},
	gl.FLOAT_MAT3x2: {graphics.KindMatrix, 6},
	gl.FLOAT_MAT3x4: {graphics.KindMatrix, 12},
	gl.FLOAT_MAT4x2: {graphics.KindMatrix, 8},
	gl.FLOAT_MAT4x3: {graphics.KindMatrix, 12},

	gl.SAMPLER_1D:                   {graphics.KindSampler, 1},
	gl.SAMPLER_2D:                   {graphics.KindSampler, 1},
	gl.SAMPLER_3D:                   {graphics.KindSampler, 1},
	gl.SAMPLER_CUBE:                 {graphics.KindSampler, 1},
	gl.SAMPLER_2D_SHADOW:            {graphics.KindSampler, 1},
	gl.SAMPLER_2D_ARRAY:             {graphics.KindSampler, 1},
	gl.SAMPLER_2D_RECT:              {graphics.KindSampler, 1},
	gl.SAMPLER_BUFFER:               {graphics.KindSampler, 1},
	gl.INT_SAMPLER_2D:               {graphics.KindSampler, 1},
	gl.INT_SAMPLER_3D:               {graphics.KindSampler, 1},
	gl.UNSIGNED_INT_SAMPLER_2D:      {graphics.KindSampler, 1},
	gl.UNSIGNED_INT_SAMPLER_3D:      {graphics.KindSampler, 1},
	gl.SAMPLER_CUBE_MAP_ARRAY:       {graphics.KindSampler, 1},
	gl.SAMPLER_2D_MULTISAMPLE:       {graphics.KindSampler, 1},
	gl.SAMPLER_2D_MULTISAMPLE_ARRAY: {graphics.KindSampler, 1},
}

// describe maps a GL type enum to the backend-neutral kind. Types without a
// write rule (doubles, images) are KindUnsupported.
func describe(xtype uint32) typeInfo {
	if info, ok := glTypes[xtype]; ok {
		return info
	}
	return typeInfo{graphics.KindUnsupported, 1}
}

func isUnsigned(xtype uint32) bool {
	switch xtype {
	case gl.UNSIGNED_INT, gl.UNSIGNED_INT_VEC2, gl.UNSIGNED_INT_VEC3, gl.UNSIGNED_INT_VEC4:
		return true
	}
	return false
}

// activeUniforms lists the program's default-block uniforms in index order.
func activeUniforms(program uint32) []graphics.UniformDescriptor {
	var count, maxLen int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)
	if count == 0 {
		return nil
	}

	buf := make([]uint8, maxLen+1)
	uniforms := make([]graphics.UniformDescriptor, 0, count)
	for i := uint32(0); i < uint32(count); i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveUniform(program, i, int32(len(buf)), &length, &size, &xtype, &buf[0])
		name := string(buf[:length])

		index := i
		var block int32
		gl.GetActiveUniformsiv(program, 1, &index, gl.UNIFORM_BLOCK_INDEX, &block)
		if block != -1 || strings.HasPrefix(name, "gl_") {
			continue
		}

		info := describe(xtype)
		uniforms = append(uniforms, graphics.UniformDescriptor{
			Name:       graphics.TrimArraySuffix(name),
			Location:   gl.GetUniformLocation(program, gl.Str(name+"\x00")),
			Kind:       info.kind,
			Components: info.components,
			Count:      int(size),
			Type:       xtype,
		})
	}
	return uniforms
}

// activeAttributes lists the program's vertex inputs.
func activeAttributes(program uint32) []graphics.AttributeDescriptor {
	var count, maxLen int32
	gl.GetProgramiv(program, gl.ACTIVE_ATTRIBUTES, &count)
	gl.GetProgramiv(program, gl.ACTIVE_ATTRIBUTE_MAX_LENGTH, &maxLen)
	if count == 0 {
		return nil
	}

	buf := make([]uint8, maxLen+1)
	attrs := make([]graphics.AttributeDescriptor, 0, count)
	for i := uint32(0); i < uint32(count); i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveAttrib(program, i, int32(len(buf)), &length, &size, &xtype, &buf[0])
		name := string(buf[:length])
		if strings.HasPrefix(name, "gl_") {
			continue
		}
		attrs = append(attrs, graphics.AttributeDescriptor{
			Name:     name,
			Location: gl.GetAttribLocation(program, gl.Str(name+"\x00")),
		})
	}
	return attrs
}
