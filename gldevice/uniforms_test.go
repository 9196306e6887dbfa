package gldevice

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/goshaderlive/graphics"
	"github.com/stretchr/testify/assert"
)

func TestIntValuesUnsigned(t *testing.T) {
	u := graphics.UniformDescriptor{Name: "iResolution", Kind: graphics.KindInt, Components: 2, Count: 1, Type: gl.UNSIGNED_INT_VEC2}

	ints, uints := intValues(u, []float32{640, -3})
	assert.Nil(t, ints)
	assert.Equal(t, []uint32{640, 0}, uints)
}

func TestIntValuesSigned(t *testing.T) {
	for _, xtype := range []uint32{gl.INT_VEC2, gl.BOOL_VEC2} {
		u := graphics.UniformDescriptor{Name: "iOffset", Kind: graphics.KindInt, Components: 2, Count: 1, Type: xtype}

		ints, uints := intValues(u, []float32{7.9, -3})
		assert.Nil(t, uints, "type 0x%x", xtype)
		assert.Equal(t, []int32{7, -3}, ints, "type 0x%x", xtype)
	}
}

func TestGLPrimitive(t *testing.T) {
	assert.Equal(t, uint32(gl.TRIANGLES), glPrimitive(graphics.Triangles))
	assert.Equal(t, uint32(gl.TRIANGLE_STRIP), glPrimitive(graphics.TriangleStrip))
}
