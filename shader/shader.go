package shader

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/richinsley/goshaderlive/graphics"
)

// ────────────────────────────────── Defaults ──────────────────────────────────

//go:embed fsq.vert
var defaultVertex string

//go:embed image/header.glsl
var defaultHeader string

//go:embed image/footer.glsl
var defaultFooter string

const (
	// VersionGL is the version line for desktop GL 4.1 core contexts.
	VersionGL = "#version 410 core\n"
	// VersionWebGL2 is used when the wrapped source goes through the
	// translator before compiling.
	VersionWebGL2 = "#version 300 es\nprecision highp float;\nprecision highp int;\n"

	// PositionAttribute is the vertex input the full-screen quad feeds.
	PositionAttribute = "in_vert"
)

// DefaultVertex returns the built-in full-screen-quad vertex shader.
func DefaultVertex() string { return defaultVertex }

// DefaultHeader returns the built-in shadertoy compatibility header.
func DefaultHeader() string { return defaultHeader }

// DefaultFooter returns the built-in footer that calls mainImage.
func DefaultFooter() string { return defaultFooter }

// Assemble wraps user fragment code between the version line, header and
// footer.
func Assemble(version, header, user, footer string) string {
	var b strings.Builder
	b.Grow(len(version) + len(header) + len(user) + len(footer) + 2)
	b.WriteString(version)
	if version != "" && !strings.HasSuffix(version, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(header)
	b.WriteString(user)
	if !strings.HasSuffix(user, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(footer)
	return b.String()
}

// ─────────────────────────────────── Sources ──────────────────────────────────

// SourceError is returned when a shader source file cannot be read.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("failed to read shader source %s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Sources names the files a program is built from. Empty Vertex, Header and
// Footer select the built-in defaults.
type Sources struct {
	Fragment string
	Vertex   string
	Header   string
	Footer   string
	// Version is prepended to the wrapped fragment source. Empty selects
	// VersionGL, or VersionWebGL2 when translating.
	Version string
	// Raw skips the header/footer wrapping: the fragment file is a complete
	// shader.
	Raw bool
}

// Paths returns the files that exist on disk, for watching.
func (s Sources) Paths() []string {
	var paths []string
	for _, p := range []string{s.Fragment, s.Vertex, s.Header, s.Footer} {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func readOr(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", &SourceError{Path: path, Err: err}
	}
	return string(b), nil
}

// Read loads every stage and returns the vertex source and the assembled
// fragment source.
func (s Sources) Read(translating bool) (vertex, fragment string, err error) {
	if vertex, err = readOr(s.Vertex, defaultVertex); err != nil {
		return "", "", err
	}
	if s.Fragment == "" {
		return "", "", &SourceError{Path: "<none>", Err: os.ErrNotExist}
	}
	user, err := readOr(s.Fragment, "")
	if err != nil {
		return "", "", err
	}
	if s.Raw {
		return vertex, user, nil
	}

	header, err := readOr(s.Header, defaultHeader)
	if err != nil {
		return "", "", err
	}
	footer, err := readOr(s.Footer, defaultFooter)
	if err != nil {
		return "", "", err
	}

	version := s.Version
	if version == "" {
		version = VersionGL
		if translating {
			version = VersionWebGL2
		}
	}
	return vertex, Assemble(version, header, user, footer), nil
}

// ─────────────────────────────────── Loader ───────────────────────────────────

// Translator converts WebGL2 fragment source to something the device
// compiles. names maps each translated uniform name back to the name the
// user wrote.
type Translator interface {
	TranslateFragment(source string) (code string, names map[string]string, err error)
}

// Loader turns Sources into a compiled program.
type Loader struct {
	Device     graphics.Device
	Sources    Sources
	Translator Translator // nil compiles the assembled source as is
	Logger     *log.Logger
}

func (l *Loader) logger() *log.Logger {
	if l.Logger == nil {
		return log.Default()
	}
	return l.Logger
}

// Load reads, assembles, optionally translates and compiles the program. A
// failed attempt returns an error and creates nothing.
func (l *Loader) Load() (*graphics.Program, error) {
	vertex, fragment, err := l.Sources.Read(l.Translator != nil)
	if err != nil {
		return nil, err
	}

	var names map[string]string
	if l.Translator != nil {
		fragment, names, err = l.Translator.TranslateFragment(fragment)
		if err != nil {
			return nil, &graphics.CompileError{Stage: "translate", Log: err.Error()}
		}
	}

	p, err := l.Device.CompileProgram(vertex, fragment)
	if err != nil {
		return nil, err
	}
	for i, u := range p.Uniforms {
		if orig, ok := names[u.Name]; ok {
			p.Uniforms[i].Name = orig
		}
	}
	l.logger().Debug("program compiled", "id", p.ID, "uniforms", len(p.Uniforms), "attributes", len(p.Attributes))
	return p, nil
}
