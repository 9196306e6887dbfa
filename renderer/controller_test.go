package renderer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/richinsley/goshaderlive/feeds"
	"github.com/richinsley/goshaderlive/graphics"
	"github.com/richinsley/goshaderlive/graphics/graphicstest"
	"github.com/richinsley/goshaderlive/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validSource   = "valid"
	noVertSource  = "no-position-input"
	invalidSource = "void mainImage(out vec4 c, in vec2 p) { c = vec4(1.0) "
)

type sourceLoader struct {
	dev      *graphicstest.Device
	fragment string
}

func (l *sourceLoader) Load() (*graphics.Program, error) {
	return l.dev.CompileProgram("vertex", l.fragment)
}

type fixture struct {
	dev        *graphicstest.Device
	loader     *sourceLoader
	controller *Controller
	driver     *Driver
	logs       *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dev := graphicstest.New()
	dev.Programs[validSource] = graphicstest.Compiled{
		Uniforms: []graphics.UniformDescriptor{
			graphicstest.Float("iResolution", 3),
			graphicstest.Float("iTime", 1),
			graphicstest.Float("iMouse", 4),
		},
		Attributes: []string{shader.PositionAttribute},
	}
	dev.Programs[noVertSource] = graphicstest.Compiled{
		Uniforms:   []graphics.UniformDescriptor{graphicstest.Float("iTime", 1)},
		Attributes: []string{"position"},
	}

	quad, err := NewQuad(dev)
	require.NoError(t, err)

	logs := &bytes.Buffer{}
	loader := &sourceLoader{dev: dev, fragment: validSource}
	return &fixture{
		dev:        dev,
		loader:     loader,
		controller: NewController(dev, loader, feeds.Builtins(), quad, WithLogger(log.New(logs))),
		driver:     NewDriver(dev, graphics.White),
		logs:       logs,
	}
}

func (f *fixture) tick() TickStats {
	f.dev.Reset()
	return f.driver.Tick(f.controller.Current(), &feeds.Frame{Input: graphics.Input{Width: 100, Height: 50}})
}

func TestInitialStateClearsOnly(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, NoProgram, f.controller.State())

	stats := f.tick()
	assert.Equal(t, TickStats{}, stats)
	assert.Equal(t, []string{"viewport", "clear"}, f.dev.Ops())
	assert.Equal(t, []float32{1, 1, 1, 1}, f.dev.Calls[1].Values)
}

func TestReloadToReady(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.controller.Reload())

	pass := f.controller.Current()
	assert.Equal(t, Ready, pass.State)
	require.NotNil(t, pass.VertexArray)
	assert.Equal(t, pass.Program.ID, pass.VertexArray.Program)
	assert.Equal(t, pass.Program.ID, pass.Uniforms.Program())
	assert.Equal(t, []string{"iResolution", "iTime", "iMouse"}, pass.Uniforms.Names())

	stats := f.tick()
	assert.Equal(t, TickStats{Suppliers: 3, Draws: 1}, stats)
	assert.Equal(t, []string{"viewport", "clear", "use", "tuple", "scalar", "tuple", "draw"}, f.dev.Ops())
	draw := f.dev.Calls[len(f.dev.Calls)-1]
	assert.Equal(t, graphics.TriangleStrip, draw.Mode)
	assert.Equal(t, 4, draw.Count)
}

func TestFailedReloadKeepsCurrentSet(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.controller.Reload())
	before := f.controller.Current()
	beforeProgram := *before.Program
	beforeVAO := *before.VertexArray

	f.loader.fragment = invalidSource
	err := f.controller.Reload()
	var compileErr *graphics.CompileError
	require.ErrorAs(t, err, &compileErr)

	after := f.controller.Current()
	assert.Equal(t, before, after)
	assert.Same(t, before.Program, after.Program)
	assert.Same(t, before.Uniforms, after.Uniforms)
	assert.Same(t, before.VertexArray, after.VertexArray)
	assert.Equal(t, beforeProgram, *after.Program)
	assert.Equal(t, beforeVAO, *after.VertexArray)
	assert.Equal(t, 0, f.dev.TotalDeletes("program"))
	assert.Equal(t, 0, f.dev.TotalDeletes("vao"))
	assert.Equal(t, ReloadStats{Attempts: 2, Failures: 1}, f.controller.Stats())
	assert.Contains(t, f.logs.String(), "shader compilation failed")

	// still drawing the last good program
	assert.Equal(t, 1, f.tick().Draws)
}

func TestFailedInitialReloadStaysNoProgram(t *testing.T) {
	f := newFixture(t)
	f.loader.fragment = invalidSource
	require.Error(t, f.controller.Reload())
	assert.Equal(t, NoProgram, f.controller.State())
	assert.Equal(t, 0, f.dev.Live("program"))
}

func TestMissingAttributeDegrades(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.controller.Reload())
	old := f.controller.Current()

	f.loader.fragment = noVertSource
	require.NoError(t, f.controller.Reload())
	assert.Equal(t, Degraded, f.controller.State())
	assert.Nil(t, f.controller.Current().VertexArray)
	assert.Equal(t, 1, f.dev.Deletes("program", old.Program.ID))
	assert.Equal(t, 1, f.dev.Deletes("vao", old.VertexArray.ID))
	assert.Contains(t, f.logs.String(), "missing attribute")

	stats := f.tick()
	assert.Equal(t, 0, stats.Draws)
	assert.Equal(t, 1, stats.Suppliers)
	assert.Equal(t, 1, f.dev.Count("clear"))
	assert.Equal(t, 0, f.dev.Count("draw"))

	// and back again
	f.loader.fragment = validSource
	require.NoError(t, f.controller.Reload())
	assert.Equal(t, Ready, f.controller.State())
	assert.Equal(t, 1, f.tick().Draws)
}

func TestRepeatedReloadsReleaseEachSetOnce(t *testing.T) {
	f := newFixture(t)
	var passes []RenderPass
	for i := 0; i < 3; i++ {
		require.NoError(t, f.controller.Reload())
		passes = append(passes, f.controller.Current())
	}

	assert.NotEqual(t, passes[0].Program.ID, passes[1].Program.ID)
	assert.NotEqual(t, passes[1].VertexArray.ID, passes[2].VertexArray.ID)
	for _, p := range passes[:2] {
		assert.Equal(t, 1, f.dev.Deletes("program", p.Program.ID))
		assert.Equal(t, 1, f.dev.Deletes("vao", p.VertexArray.ID))
	}
	assert.Equal(t, 0, f.dev.Deletes("program", passes[2].Program.ID))
	assert.Equal(t, 1, f.dev.Live("program"))
	assert.Equal(t, 1, f.dev.Live("vao"))
}

func TestReleaseHappensAfterNewSetIsBuilt(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.controller.Reload())
	f.dev.Reset()
	require.NoError(t, f.controller.Reload())
	assert.Equal(t, []string{"compile", "vertex-array", "delete-vertex-array", "delete-program"}, f.dev.Ops())
}

func TestUnsupportedUniformWarnsOncePerBuild(t *testing.T) {
	f := newFixture(t)
	f.dev.Programs["custom"] = graphicstest.Compiled{
		Uniforms: []graphics.UniformDescriptor{
			graphicstest.Float("iTime", 1),
			graphicstest.Float("u_zoom", 1),
			graphicstest.Float("iResolution", 3),
		},
		Attributes: []string{shader.PositionAttribute},
	}
	f.loader.fragment = "custom"

	require.NoError(t, f.controller.Reload())
	assert.Equal(t, 1, strings.Count(f.logs.String(), "uniform=u_zoom"))
	assert.Equal(t, []string{"iTime", "iResolution"}, f.controller.Current().Uniforms.Names())

	require.NoError(t, f.controller.Reload())
	assert.Equal(t, 2, strings.Count(f.logs.String(), "uniform=u_zoom"))
}

func TestCloseReleasesOnce(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.controller.Reload())
	pass := f.controller.Current()

	f.controller.Close()
	f.controller.Close()
	assert.Equal(t, 1, f.dev.Deletes("program", pass.Program.ID))
	assert.Equal(t, 1, f.dev.Deletes("vao", pass.VertexArray.ID))
	assert.Equal(t, NoProgram, f.controller.State())
}

func TestUnreadableSourceKeepsCurrentSet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "toy.frag")
	require.NoError(t, os.WriteFile(path, []byte("void mainImage(out vec4 c, in vec2 p) { c = vec4(1.0); }"), 0o644))

	dev := graphicstest.New()
	sources := shader.Sources{Fragment: path}
	_, fragment, err := sources.Read(false)
	require.NoError(t, err)
	dev.Programs[fragment] = graphicstest.Compiled{Attributes: []string{shader.PositionAttribute}}

	quad, err := NewQuad(dev)
	require.NoError(t, err)
	c := NewController(dev, &shader.Loader{Device: dev, Sources: sources}, feeds.Builtins(), quad, WithLogger(log.New(&bytes.Buffer{})))
	require.NoError(t, c.Reload())
	before := c.Current()

	require.NoError(t, os.Remove(path))
	err = c.Reload()
	var srcErr *shader.SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, before, c.Current())
	assert.Equal(t, 0, dev.TotalDeletes("program"))
}

func TestAttributeOptionBindsNamedInput(t *testing.T) {
	f := newFixture(t)
	quad, err := NewQuad(f.dev)
	require.NoError(t, err)
	f.loader.fragment = noVertSource
	c := NewController(f.dev, f.loader, feeds.Builtins(), quad,
		WithLogger(log.New(f.logs)), WithAttribute("position"))

	require.NoError(t, c.Reload())
	assert.Equal(t, Ready, c.State())
	require.NotNil(t, c.Current().VertexArray)
	assert.NotContains(t, f.logs.String(), "missing attribute")
}
