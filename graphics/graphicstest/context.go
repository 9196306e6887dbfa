package graphicstest

import "github.com/richinsley/goshaderlive/graphics"

// Context is a fake graphics.Context. It reports ShouldClose once Frames
// frames have ended, and presses the keys listed in Presses while ending the
// frame with that number (counting from 1).
type Context struct {
	Frames        int
	Width, Height int
	Presses       map[int][]graphics.Key

	Ended   int
	Current bool
	Closed  bool

	callbacks map[graphics.Key]func()
}

var _ graphics.Context = (*Context)(nil)

func NewContext(width, height, frames int) *Context {
	return &Context{
		Frames:    frames,
		Width:     width,
		Height:    height,
		Presses:   make(map[int][]graphics.Key),
		callbacks: make(map[graphics.Key]func()),
	}
}

func (c *Context) MakeCurrent()      { c.Current = true }
func (c *Context) Shutdown()         { c.Closed = true }
func (c *Context) ShouldClose() bool { return c.Ended >= c.Frames }

func (c *Context) EndFrame() {
	c.Ended++
	for _, k := range c.Presses[c.Ended] {
		c.Press(k)
	}
}

func (c *Context) GetFramebufferSize() (int, int) { return c.Width, c.Height }

// Time advances by a sixtieth of a second per ended frame.
func (c *Context) Time() float64 { return float64(c.Ended) / 60 }

func (c *Context) Input() graphics.Input {
	return graphics.Input{Width: c.Width, Height: c.Height, Time: c.Time()}
}

func (c *Context) OnKeyPress(k graphics.Key, f func()) {
	c.callbacks[k] = f
}

// Press runs the callback registered for k, if any.
func (c *Context) Press(k graphics.Key) {
	if f, ok := c.callbacks[k]; ok {
		f()
	}
}
