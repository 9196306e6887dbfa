package renderer

import (
	"fmt"
	"io"
	"time"

	"github.com/richinsley/goshaderlive/gldevice"
	"github.com/richinsley/goshaderlive/options"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// recordedFrame is one read-back RGBA frame, bottom row first.
type recordedFrame struct {
	PTS    int
	Pixels []byte
}

// frameBuffers is how many frames may wait for the encoder.
const frameBuffers = 3

func encoderArgs(opts options.Options) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"format":  "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"r":       opts.FPS,
	}
	// GL rows come out bottom first.
	outputArgs = ffmpeg.KwArgs{
		"vf":      "vflip",
		"c:v":     "libx264",
		"pix_fmt": "yuv420p",
	}
	return
}

// writeFrames copies every frame to w in order. Frames of the wrong size
// stop the stream.
func writeFrames(w io.Writer, frameSize int, frames <-chan *recordedFrame) (int, error) {
	n := 0
	for frame := range frames {
		if len(frame.Pixels) != frameSize {
			return n, fmt.Errorf("frame %d has %d bytes, want %d", frame.PTS, len(frame.Pixels), frameSize)
		}
		if _, err := w.Write(frame.Pixels); err != nil {
			return n, fmt.Errorf("failed to write frame %d to ffmpeg: %w", frame.PTS, err)
		}
		n++
	}
	return n, nil
}

// runEncoder is the consumer. It pipes raw frames into ffmpeg until frames
// is closed and reports ffmpeg's result on done.
func (r *Renderer) runEncoder(frames <-chan *recordedFrame, done chan<- error) {
	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := encoderArgs(r.opts)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(r.opts.Output, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if r.opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(r.opts.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		// unblock writes if ffmpeg exits early
		pipeReader.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()

	n, err := writeFrames(pipeWriter, r.opts.Width*r.opts.Height*4, frames)
	if err != nil {
		r.logger.Error("encoder stopped", "err", err)
		pipeWriter.CloseWithError(err)
		// keep draining so the producer never blocks
		for range frames {
		}
	} else {
		pipeWriter.Close()
	}
	r.logger.Debug("encoder input closed", "frames", n)

	if ferr := <-errc; ferr != nil {
		done <- fmt.Errorf("ffmpeg failed: %w", ferr)
		return
	}
	done <- err
}

// Record renders opts.Frames() frames at a fixed timestep into an offscreen
// target and encodes them to opts.Output.
func (r *Renderer) Record() error {
	target, err := gldevice.NewTarget(r.opts.Width, r.opts.Height)
	if err != nil {
		return err
	}
	defer target.Destroy()

	frames := make(chan *recordedFrame, frameBuffers)
	done := make(chan error, 1)
	go r.runEncoder(frames, done)

	total := r.opts.Frames()
	r.logger.Info("recording", "output", r.opts.Output, "frames", total, "fps", r.opts.FPS)

	if r.texture != nil {
		r.texture.Bind()
	}
	step := 1 / float64(r.opts.FPS)
	start := time.Now()
	for i := 0; i < total; i++ {
		in := r.ctx.Input()
		in.Width, in.Height = r.opts.Width, r.opts.Height
		in.Time = float64(i) * step
		f := buildFrame(r.camera, in, start.Add(time.Duration(in.Time*float64(time.Second))))

		target.Bind()
		r.driver.Tick(r.controller.Current(), f)
		pixels := target.ReadRGBA()
		target.Unbind()

		frames <- &recordedFrame{PTS: i, Pixels: pixels}
		if i > 0 && i%r.opts.FPS == 0 {
			r.logger.Debug("recorded", "frame", i, "of", total)
		}
	}
	close(frames)

	if err := <-done; err != nil {
		return err
	}
	r.logger.Info("recording finished", "output", r.opts.Output)
	return nil
}
