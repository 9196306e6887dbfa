package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/richinsley/goshaderlive/camera"
	"github.com/richinsley/goshaderlive/feeds"
	"github.com/richinsley/goshaderlive/gldevice"
	"github.com/richinsley/goshaderlive/glfwcontext"
	"github.com/richinsley/goshaderlive/graphics"
	"github.com/richinsley/goshaderlive/options"
	"github.com/richinsley/goshaderlive/shader"
	"github.com/richinsley/goshaderlive/translator"
	"github.com/richinsley/goshaderlive/watcher"
)

// Renderer owns the window, the device and everything drawn with it.
type Renderer struct {
	opts   options.Options
	logger *log.Logger

	ctx        graphics.Context
	dev        graphics.Device
	quad       *graphics.Buffer
	texture    *gldevice.Texture
	controller *Controller
	driver     *Driver
	camera     *camera.Orbit
	watcher    *watcher.Watcher

	reloadRequested bool
}

// New opens a GLFW window on OpenGL, compiles the shader once and starts
// watching its sources. A shader that fails to compile here is not fatal:
// the window stays blank until a later reload succeeds.
func New(opts options.Options, logger *log.Logger) (*Renderer, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, err := glfwcontext.New(opts.Width, opts.Height, !opts.Recording(), "goshaderlive")
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	ctx.MakeCurrent()

	dev, err := gldevice.New(logger.WithPrefix("gl"))
	if err != nil {
		ctx.Shutdown()
		return nil, err
	}

	var texture *gldevice.Texture
	if opts.Texture != "" {
		if texture, err = gldevice.LoadTexture(opts.Texture, feeds.DiffuseTextureUnit); err != nil {
			ctx.Shutdown()
			return nil, err
		}
		logger.Info("texture loaded", "path", opts.Texture, "width", texture.Width, "height", texture.Height)
	}

	loader := &shader.Loader{
		Device:  dev,
		Sources: opts.Sources(),
		Logger:  logger.WithPrefix("shader"),
	}
	if opts.Translate {
		t, err := translator.New(context.Background())
		if err != nil {
			if texture != nil {
				texture.Destroy()
			}
			ctx.Shutdown()
			return nil, err
		}
		loader.Translator = t
	}

	r, err := newRenderer(opts, logger, ctx, dev, loader)
	if err != nil {
		if texture != nil {
			texture.Destroy()
		}
		ctx.Shutdown()
		return nil, err
	}
	r.texture = texture
	return r, nil
}

// newRenderer wires the quad, controller, driver, camera and watcher onto an
// existing context and device and loads the program once.
func newRenderer(opts options.Options, logger *log.Logger, ctx graphics.Context, dev graphics.Device, loader ProgramLoader) (*Renderer, error) {
	quad, err := NewQuad(dev)
	if err != nil {
		return nil, fmt.Errorf("failed to create quad: %w", err)
	}

	r := &Renderer{
		opts:   opts,
		logger: logger,
		ctx:    ctx,
		dev:    dev,
		quad:   quad,
		camera: camera.NewOrbit(),
	}
	r.controller = NewController(dev, loader, feeds.Builtins(), quad,
		WithLogger(logger), WithAttribute(opts.Attribute))
	r.driver = NewDriver(dev, opts.Background)
	// errors are already logged; start in NoProgram
	_ = r.controller.Reload()

	if opts.Watch && !opts.Recording() {
		if r.watcher, err = watcher.New(opts.Sources().Paths(), opts.Debounce, logger.WithPrefix("watch")); err != nil {
			r.controller.Close()
			dev.DeleteBuffer(quad)
			return nil, err
		}
	}
	ctx.OnKeyPress(graphics.KeyR, func() { r.reloadRequested = true })

	return r, nil
}

// pendingReload reports and clears any reload request made since the last
// frame.
func (r *Renderer) pendingReload() bool {
	requested := r.reloadRequested
	r.reloadRequested = false
	if r.watcher != nil {
		select {
		case <-r.watcher.Changes():
			requested = true
		default:
		}
	}
	return requested
}

// Run draws frames until the window is closed. Reloads happen between
// frames, never during one.
func (r *Renderer) Run() {
	for !r.ctx.ShouldClose() {
		if r.pendingReload() {
			_ = r.controller.Reload()
		}
		if r.texture != nil {
			r.texture.Bind()
		}
		f := buildFrame(r.camera, r.ctx.Input(), time.Now())
		r.driver.Tick(r.controller.Current(), f)
		r.ctx.EndFrame()
	}
	stats := r.controller.Stats()
	r.logger.Info("window closed", "reloads", stats.Attempts, "failures", stats.Failures)
}

// Shutdown releases everything New created. It is safe to call more than
// once.
func (r *Renderer) Shutdown() {
	if r.watcher != nil {
		r.watcher.Close()
		r.watcher = nil
	}
	r.controller.Close()
	if r.texture != nil {
		r.texture.Destroy()
		r.texture = nil
	}
	if r.quad != nil {
		r.dev.DeleteBuffer(r.quad)
		r.quad = nil
	}
	if r.ctx != nil {
		r.ctx.Shutdown()
		r.ctx = nil
	}
}
