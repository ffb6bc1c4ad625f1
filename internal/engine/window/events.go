package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/prayground/internal/engine/input"
)

var keys = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_A:      input.KeyA,
	sdl.SCANCODE_D:      input.KeyD,
	sdl.SCANCODE_E:      input.KeyE,
	sdl.SCANCODE_I:      input.KeyI,
	sdl.SCANCODE_J:      input.KeyJ,
	sdl.SCANCODE_K:      input.KeyK,
	sdl.SCANCODE_L:      input.KeyL,
	sdl.SCANCODE_P:      input.KeyP,
	sdl.SCANCODE_Q:      input.KeyQ,
	sdl.SCANCODE_S:      input.KeyS,
	sdl.SCANCODE_W:      input.KeyW,
	sdl.SCANCODE_X:      input.KeyX,
	sdl.SCANCODE_ESCAPE: input.KeyEscape,
}

func button(b uint8) input.Button {
	switch b {
	case sdl.BUTTON_LEFT:
		return input.ButtonLeft
	case sdl.BUTTON_MIDDLE:
		return input.ButtonMiddle
	case sdl.BUTTON_RIGHT:
		return input.ButtonRight
	}
	return input.ButtonNone
}

// translate converts an SDL event. Key repeats and unmapped keys are
// dropped.
func translate(event sdl.Event) (input.Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return input.Event{Type: input.EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED {
			return input.Event{
				Type:   input.EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		k, ok := keys[e.Keysym.Scancode]
		if !ok || e.Repeat != 0 {
			return input.Event{}, false
		}
		if e.Type == sdl.KEYDOWN {
			return input.Event{Type: input.EventKeyDown, Key: k}, true
		}
		return input.Event{Type: input.EventKeyUp, Key: k}, true

	case *sdl.MouseMotionEvent:
		return input.Event{
			Type:   input.EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
		}, true

	case *sdl.MouseButtonEvent:
		t := input.EventMouseUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			t = input.EventMouseDown
		}
		return input.Event{
			Type:   t,
			Button: button(e.Button),
			MouseX: int(e.X),
			MouseY: int(e.Y),
		}, true
	}
	return input.Event{}, false
}
