package renderer

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/goshaderlive/camera"
	"github.com/richinsley/goshaderlive/graphics"
	"github.com/richinsley/goshaderlive/options"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoderArgs(t *testing.T) {
	opts := options.Defaults()
	opts.Width, opts.Height, opts.FPS = 320, 240, 30

	in, out := encoderArgs(opts)
	assert.Equal(t, "rawvideo", in["format"])
	assert.Equal(t, "rgba", in["pix_fmt"])
	assert.Equal(t, "320x240", in["s"])
	assert.Equal(t, 30, in["r"])
	assert.Equal(t, "vflip", out["vf"])
	assert.Equal(t, "yuv420p", out["pix_fmt"])
}

func framesOf(sizes ...int) <-chan *recordedFrame {
	ch := make(chan *recordedFrame, len(sizes))
	for i, n := range sizes {
		ch <- &recordedFrame{PTS: i, Pixels: bytes.Repeat([]byte{byte(i + 1)}, n)}
	}
	close(ch)
	return ch
}

func TestWriteFrames(t *testing.T) {
	var buf bytes.Buffer
	n, err := writeFrames(&buf, 8, framesOf(8, 8, 8))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 24, buf.Len())
	assert.Equal(t, byte(3), buf.Bytes()[23])
}

func TestWriteFramesWrongSize(t *testing.T) {
	var buf bytes.Buffer
	n, err := writeFrames(&buf, 8, framesOf(8, 4))
	assert.Error(t, err)
	assert.Equal(t, 1, n)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriteFramesWriterError(t *testing.T) {
	_, err := writeFrames(failingWriter{}, 8, framesOf(8))
	assert.ErrorContains(t, err, "broken pipe")
}

func TestBuildFrame(t *testing.T) {
	cam := camera.NewOrbit()
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	in := graphics.Input{Width: 200, Height: 100, Time: 2.5}

	f := buildFrame(cam, in, now)
	assert.Equal(t, in, f.Input)
	assert.Equal(t, now, f.Now)
	assert.Equal(t, cam.Position(), f.CameraPosition)
	assert.Equal(t, cam.Light, f.LightDirection)
	assert.Equal(t, cam.ViewProjection(2), f.WorldViewProj)
}

func TestBuildFrameUpdatesCamera(t *testing.T) {
	cam := camera.NewOrbit()
	before := cam.Light
	f := buildFrame(cam, graphics.Input{Keys: graphics.Keys(0).With(graphics.KeyLeft)}, time.Now())
	assert.InDelta(t, before[0]+0.01, f.LightDirection[0], 1e-6)
	assert.NotEqual(t, mgl32.Mat4{}, f.WorldViewProj)
}
