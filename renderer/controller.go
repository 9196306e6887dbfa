package renderer

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/richinsley/goshaderlive/feeds"
	"github.com/richinsley/goshaderlive/graphics"
	"github.com/richinsley/goshaderlive/shader"
	"github.com/richinsley/goshaderlive/uniforms"
)

// ProgramLoader produces a freshly compiled program. A failed load must not
// leave anything allocated.
type ProgramLoader interface {
	Load() (*graphics.Program, error)
}

// ReloadStats counts reload outcomes.
type ReloadStats struct {
	Attempts int
	Failures int
	Degraded int
}

// Controller owns the current program, uniform registry and vertex array and
// replaces them as one unit on reload.
type Controller struct {
	dev       graphics.Device
	loader    ProgramLoader
	feeds     *feeds.Table
	quad      *graphics.Buffer
	attribute string
	logger    *log.Logger

	current RenderPass
	stats   ReloadStats
}

type ControllerOption func(*Controller)

// WithLogger sets the logger diagnostics go to.
func WithLogger(logger *log.Logger) ControllerOption {
	return func(c *Controller) { c.logger = logger }
}

// WithAttribute changes the vertex input the quad is bound to.
func WithAttribute(name string) ControllerOption {
	return func(c *Controller) { c.attribute = name }
}

func NewController(dev graphics.Device, loader ProgramLoader, table *feeds.Table, quad *graphics.Buffer, opts ...ControllerOption) *Controller {
	c := &Controller{
		dev:       dev,
		loader:    loader,
		feeds:     table,
		quad:      quad,
		attribute: shader.PositionAttribute,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reload compiles the program again and, if that works, swaps in a new
// program, registry and vertex array. On failure the current set is left as
// it was and the error is returned after being logged.
func (c *Controller) Reload() error {
	c.stats.Attempts++
	c.logger.Info("reload", "attempt", c.stats.Attempts)

	program, err := c.loader.Load()
	if err != nil {
		c.stats.Failures++
		var compileErr *graphics.CompileError
		var sourceErr *shader.SourceError
		switch {
		case errors.As(err, &compileErr):
			c.logger.Error("shader compilation failed, keeping previous program", "stage", compileErr.Stage, "log", compileErr.Error())
		case errors.As(err, &sourceErr):
			c.logger.Error("shader source unreadable, keeping previous program", "path", sourceErr.Path, "err", sourceErr.Err)
		default:
			c.logger.Error("reload failed, keeping previous program", "err", err)
		}
		return err
	}

	next := RenderPass{
		State:    Ready,
		Program:  program,
		Uniforms: uniforms.Build(program, c.feeds, c.logger),
	}

	next.VertexArray, err = BuildVertexArray(c.dev, program, c.quad, c.attribute)
	if err != nil {
		c.stats.Degraded++
		next.State = Degraded
		next.VertexArray = nil
		c.logger.Warn("drawing disabled", "err", err)
	}

	c.release()
	c.current = next
	c.logger.Info("program installed", "state", next.State, "uniforms", next.Uniforms.Names())
	return nil
}

// release deletes the current set and forgets it.
func (c *Controller) release() {
	if c.current.VertexArray != nil {
		c.dev.DeleteVertexArray(c.current.VertexArray)
	}
	if c.current.Program != nil {
		c.dev.DeleteProgram(c.current.Program)
	}
	c.current = RenderPass{}
}

// Current returns the installed resource set.
func (c *Controller) Current() RenderPass {
	return c.current
}

func (c *Controller) State() RenderState {
	return c.current.State
}

func (c *Controller) Stats() ReloadStats {
	return c.stats
}

// Close releases the current set. Further calls do nothing.
func (c *Controller) Close() {
	c.release()
}
