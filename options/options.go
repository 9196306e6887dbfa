package options

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/richinsley/goshaderlive/graphics"
	"github.com/richinsley/goshaderlive/shader"
)

// MissingArgumentError is returned when no fragment shader path was given.
type MissingArgumentError struct {
	Argument string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing required argument <%s>", e.Argument)
}

type Options struct {
	FragmentPath string
	VertexPath   string
	HeaderPath   string
	FooterPath   string
	VersionLine  string
	Raw          bool   // fragment file is a complete shader, no header/footer
	Translate    bool   // run the WebGL2 translator before compiling
	Attribute    string // vertex input the full-screen quad is bound to

	Width      int
	Height     int
	Background graphics.Color

	Watch    bool
	Debounce time.Duration

	Texture string // optional image bound to the diffuse sampler

	// Recording. An empty Output runs the interactive window.
	Output     string
	Duration   float64
	FPS        int
	FFMPEGPath string

	LogLevel string
}

// Defaults returns the options used when no flag overrides them.
func Defaults() Options {
	return Options{
		Attribute:  shader.PositionAttribute,
		Width:      1280,
		Height:     720,
		Background: graphics.White,
		Watch:      true,
		Debounce:   100 * time.Millisecond,
		Duration:   10,
		FPS:        60,
		LogLevel:   "info",
	}
}

// Validate reports the first problem with o.
func (o Options) Validate() error {
	if o.FragmentPath == "" {
		return &MissingArgumentError{Argument: "fragment.glsl"}
	}
	if o.Attribute == "" {
		return &MissingArgumentError{Argument: "attribute"}
	}
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", o.Width, o.Height)
	}
	if o.Debounce < 0 {
		return errors.New("debounce must not be negative")
	}
	if o.Recording() {
		if o.FPS <= 0 {
			return fmt.Errorf("invalid fps %d", o.FPS)
		}
		if o.Duration <= 0 {
			return fmt.Errorf("invalid duration %g", o.Duration)
		}
	}
	if _, err := log.ParseLevel(o.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// Recording reports whether frames go to a file instead of a window.
func (o Options) Recording() bool {
	return o.Output != ""
}

// Frames is the number of frames a recording renders.
func (o Options) Frames() int {
	return int(o.Duration * float64(o.FPS))
}

// Sources returns the shader files to load.
func (o Options) Sources() shader.Sources {
	return shader.Sources{
		Fragment: o.FragmentPath,
		Vertex:   o.VertexPath,
		Header:   o.HeaderPath,
		Footer:   o.FooterPath,
		Version:  o.VersionLine,
		Raw:      o.Raw,
	}
}

// Level is the parsed log level; invalid levels fall back to info.
func (o Options) Level() log.Level {
	lvl, err := log.ParseLevel(o.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
