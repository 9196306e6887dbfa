package gldevice

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVflip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})

	flipped := vflip(img)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, flipped.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, flipped.RGBAAt(0, 1))
}
