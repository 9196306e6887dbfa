package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgramLookup(t *testing.T) {
	p := &Program{
		Uniforms: []UniformDescriptor{
			{Name: "iTime", Location: 3, Kind: KindFloat, Components: 1, Count: 1},
			{Name: "iChannelTime", Location: 5, Kind: KindFloat, Components: 1, Count: 4},
		},
		Attributes: []AttributeDescriptor{{Name: "in_vert", Location: 0}},
	}

	u, ok := p.Uniform("iChannelTime")
	assert.True(t, ok)
	assert.Equal(t, int32(5), u.Location)
	assert.Equal(t, 4, u.Size())

	_, ok = p.Uniform("iMouse")
	assert.False(t, ok)

	a, ok := p.Attribute("in_vert")
	assert.True(t, ok)
	assert.Equal(t, int32(0), a.Location)
}

func TestTrimArraySuffix(t *testing.T) {
	assert.Equal(t, "iChannelTime", TrimArraySuffix("iChannelTime[0]"))
	assert.Equal(t, "iTime", TrimArraySuffix("iTime"))
}

func TestKeys(t *testing.T) {
	keys := Keys(0).With(KeyLeft).With(KeyR)
	assert.True(t, keys.Held(KeyLeft))
	assert.True(t, keys.Held(KeyR))
	assert.False(t, keys.Held(KeyRight))
	assert.Equal(t, "unsupported", KindUnsupported.String())
}
