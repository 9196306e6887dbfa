package glfwcontext

import (
	"runtime"

	"github.com/charmbracelet/log"
	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/goshaderlive/graphics"
)

// keyMap lists the keys reported in Input snapshots.
var keyMap = map[glfw.Key]graphics.Key{
	glfw.KeyLeft:   graphics.KeyLeft,
	glfw.KeyRight:  graphics.KeyRight,
	glfw.KeyUp:     graphics.KeyUp,
	glfw.KeyDown:   graphics.KeyDown,
	glfw.KeyR:      graphics.KeyR,
	glfw.KeyEscape: graphics.KeyEscape,
}

var _ graphics.Context = (*Context)(nil)

// Context is a GLFW window with a 4.1 core context.
type Context struct {
	window *glfw.Window
	start  float64
	// functions to run when a key is pressed
	keyCallbacks map[glfw.Key]func()
}

// New creates a window. Hidden windows are used for recording.
func New(width, height int, visible bool, title string) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:       win,
		start:        glfw.GetTime(),
		keyCallbacks: make(map[glfw.Key]func()),
	}
	win.SetKeyCallback(c.glfwKeyCallback)
	return c, nil
}

func glfwKey(k graphics.Key) (glfw.Key, bool) {
	for gk, mapped := range keyMap {
		if mapped == k {
			return gk, true
		}
	}
	return glfw.KeyUnknown, false
}

// OnKeyPress runs f whenever k is pressed.
func (c *Context) OnKeyPress(k graphics.Key, f func()) {
	if gk, ok := glfwKey(k); ok {
		c.keyCallbacks[gk] = f
	}
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	if key == glfw.KeyEscape {
		w.SetShouldClose(true)
	}
	if callback, ok := c.keyCallbacks[key]; ok {
		callback()
	}
}

// scaleCursor converts a cursor position in window coordinates to drawable
// pixels.
func scaleCursor(x, y float64, winW, winH, fbW, fbH int) (float64, float64) {
	if winW <= 0 || winH <= 0 {
		return x, y
	}
	return x * float64(fbW) / float64(winW), y * float64(fbH) / float64(winH)
}

// Input takes this frame's snapshot of size, time, pointer and held keys.
func (c *Context) Input() graphics.Input {
	fbWidth, fbHeight := c.GetFramebufferSize()
	winWidth, winHeight := c.window.GetSize()
	cursorX, cursorY := c.window.GetCursorPos()
	mouseX, mouseY := scaleCursor(cursorX, cursorY, winWidth, winHeight, fbWidth, fbHeight)

	in := graphics.Input{
		Width:     fbWidth,
		Height:    fbHeight,
		Time:      c.Time(),
		MouseX:    mouseX,
		MouseY:    mouseY,
		MouseDown: c.window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press,
	}
	for gk, k := range keyMap {
		if c.window.GetKey(gk) == glfw.Press {
			in.Keys = in.Keys.With(k)
		}
	}
	return in
}

func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

// Time is the number of seconds since the window was created.
func (c *Context) Time() float64 {
	return glfw.GetTime() - c.start
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Debug("GLFW initialized", "version", glfw.GetVersionString())
	return nil
}

// TerminateGraphics shuts GLFW down. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Debug("GLFW terminated")
}
