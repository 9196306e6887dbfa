package graphics

// Context defines the interface for an OpenGL window context.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	// EndFrame presents the frame and processes pending window events. Key
	// press callbacks run from here.
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
	// Input returns a read-only snapshot of the window state for this frame.
	Input() Input
	// OnKeyPress runs f each time k is pressed. A later call for the same key
	// replaces f.
	OnKeyPress(k Key, f func())
}

// Key identifies a keyboard key the renderer cares about.
type Key uint8

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyR
	KeyEscape
)

// Keys is a set of held keys.
type Keys uint32

// With returns a copy of the set with k held.
func (ks Keys) With(k Key) Keys {
	return ks | 1<<k
}

// Held reports whether k was held when the snapshot was taken.
func (ks Keys) Held(k Key) bool {
	return ks&(1<<k) != 0
}

// Input is the per-frame snapshot of the window and pointer. Mouse
// coordinates are in drawable pixels with the origin at the top-left corner,
// as the window system reports them.
type Input struct {
	Width     int
	Height    int
	Time      float64 // seconds since the window was created
	MouseX    float64
	MouseY    float64
	MouseDown bool
	Keys      Keys
}
