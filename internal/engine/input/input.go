// Package input turns window events into viewer controls.
//
// The package has no windowing dependency: the window package translates
// its native events into Event values and feeds them to a Controller.
package input

// EventType enumerates the events the viewer reacts to.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// Key is a layout-independent key.
type Key int

const (
	KeyUnknown Key = iota
	KeyA
	KeyD
	KeyE
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyP
	KeyQ
	KeyS
	KeyW
	KeyX
	KeyEscape
)

// Button is a mouse button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Button Button
	Width  int
	Height int
	MouseX int
	MouseY int
}

// Speeds configures a Controller.
type Speeds struct {
	Move        float32 // grid cells per second
	Rotate      float32 // camera, radians per second
	Light       float32 // light, radians per second
	MouseRadian float32 // radians per pixel of drag
}

// Controller tracks held keys and mouse drags between frames.
type Controller struct {
	speeds Speeds

	move       float32
	yaw        float32
	pitch      float32
	lightYaw   float32
	lightPitch float32

	button       Button
	lastX, lastY int
	dragX, dragY int

	quit       bool
	screenshot bool
	resized    bool
	width      int
	height     int
}

// NewController creates a controller with the given speeds.
func NewController(s Speeds) *Controller {
	return &Controller{speeds: s}
}

// Handle applies one event. Pressing a key sets its rate, releasing it
// clears the axis.
func (c *Controller) Handle(e Event) {
	switch e.Type {
	case EventQuit:
		c.quit = true

	case EventWindowResize:
		c.resized = true
		c.width, c.height = e.Width, e.Height

	case EventKeyDown:
		c.keyDown(e.Key)

	case EventKeyUp:
		c.keyUp(e.Key)

	case EventMouseDown:
		c.button = e.Button
		c.lastX, c.lastY = e.MouseX, e.MouseY

	case EventMouseUp:
		c.button = ButtonNone

	case EventMouseMove:
		if c.button != ButtonNone {
			c.dragX += e.MouseX - c.lastX
			c.dragY += e.MouseY - c.lastY
		}
		c.lastX, c.lastY = e.MouseX, e.MouseY
	}
}

func (c *Controller) keyDown(k Key) {
	s := c.speeds
	switch k {
	case KeyX, KeyEscape:
		c.quit = true
	case KeyP:
		c.screenshot = true

	case KeyA:
		c.yaw = s.Rotate
	case KeyD:
		c.yaw = -s.Rotate
	case KeyW:
		c.pitch = s.Rotate
	case KeyS:
		c.pitch = -s.Rotate

	case KeyE:
		c.move = s.Move
	case KeyQ:
		c.move = -s.Move

	case KeyJ:
		c.lightYaw = s.Light
	case KeyL:
		c.lightYaw = -s.Light
	case KeyI:
		c.lightPitch = s.Light
	case KeyK:
		c.lightPitch = -s.Light
	}
}

func (c *Controller) keyUp(k Key) {
	switch k {
	case KeyA, KeyD:
		c.yaw = 0
	case KeyW, KeyS:
		c.pitch = 0
	case KeyE, KeyQ:
		c.move = 0
	case KeyJ, KeyL:
		c.lightYaw = 0
	case KeyI, KeyK:
		c.lightPitch = 0
	}
}

// State is the control state consumed once per frame.
type State struct {
	Move       float32
	Yaw        float32
	Pitch      float32
	LightYaw   float32
	LightPitch float32

	// Drag rotations in radians. The left button turns the camera, the
	// right button turns light 0.
	DragYaw        float32
	DragPitch      float32
	DragLightYaw   float32
	DragLightPitch float32

	Quit       bool
	Screenshot bool

	// Resized is set when the window changed size to Width x Height.
	Resized bool
	Width   int
	Height  int
}

// Take returns the current state and resets the one-off parts: drags,
// screenshot and resize requests. Held keys and quit persist.
func (c *Controller) Take() State {
	st := State{
		Move:       c.move,
		Yaw:        c.yaw,
		Pitch:      c.pitch,
		LightYaw:   c.lightYaw,
		LightPitch: c.lightPitch,
		Quit:       c.quit,
		Screenshot: c.screenshot,
		Resized:    c.resized,
		Width:      c.width,
		Height:     c.height,
	}

	dx := -float32(c.dragX) * c.speeds.MouseRadian
	dy := -float32(c.dragY) * c.speeds.MouseRadian
	switch c.button {
	case ButtonLeft:
		st.DragYaw, st.DragPitch = dx, dy
	case ButtonRight:
		st.DragLightYaw, st.DragLightPitch = dx, dy
	}

	c.dragX, c.dragY = 0, 0
	c.screenshot = false
	c.resized = false
	return st
}
