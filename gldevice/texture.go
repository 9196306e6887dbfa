package gldevice

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"

	// Blank imports for image decoders so image.Decode can handle them.
	_ "image/jpeg"
	_ "image/png"
)

// Texture is a 2D RGBA texture bound to a fixed texture unit.
type Texture struct {
	ID     uint32
	Unit   uint32
	Width  int
	Height int
}

// vflip vertically flips the provided RGBA image so row 0 is the bottom of
// the picture, as GL expects.
func vflip(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	flipped := image.NewRGBA(bounds)
	height := bounds.Dy()

	rowSize := bounds.Dx() * 4
	for y := 0; y < height; y++ {
		srcRow := src.Pix[((height-1)-y)*src.Stride:]
		dstRow := flipped.Pix[y*flipped.Stride:]
		copy(dstRow, srcRow[:rowSize])
	}
	return flipped
}

// LoadTexture decodes a PNG or JPEG file and uploads it, leaving it bound
// on unit.
func LoadTexture(path string, unit uint32) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}
	return NewTexture(img, unit), nil
}

// NewTexture uploads img with mipmaps and repeat wrapping.
func NewTexture(img image.Image, unit uint32) *Texture {
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	rgba = vflip(rgba)

	width := int32(rgba.Rect.Size().X)
	height := int32(rgba.Rect.Size().Y)

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	return &Texture{ID: textureID, Unit: unit, Width: int(width), Height: int(height)}
}

// Bind binds the texture to its unit.
func (t *Texture) Bind() {
	gl.ActiveTexture(gl.TEXTURE0 + t.Unit)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

func (t *Texture) Destroy() {
	gl.DeleteTextures(1, &t.ID)
}
