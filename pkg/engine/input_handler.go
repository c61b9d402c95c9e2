package engine

import (
	"image"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// EventKind tells which fields of an InputEvent are set
type EventKind int

const (
	EventKey EventKind = iota
	EventChar
	EventScroll
	EventMouseDown
	EventMouseUp
	EventMouseMove
	EventResize
)

// InputEvent is one window event, queued until the next frame
type InputEvent struct {
	Kind   EventKind
	Key    glfw.Key
	Mods   glfw.ModifierKey
	Char   rune
	Scroll float64
	Button glfw.MouseButton
	Pos    image.Point
	Size   image.Point
}

// InputHandler collects keyboard, mouse and resize events from GLFW
// callbacks in arrival order
type InputHandler struct {
	window   *glfw.Window
	events   []InputEvent
	mousePos image.Point
}

// NewInputHandler installs the window callbacks
func NewInputHandler(window *glfw.Window) *InputHandler {
	handler := &InputHandler{window: window}

	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Press || action == glfw.Repeat {
			handler.push(InputEvent{Kind: EventKey, Key: key, Mods: mods})
		}
	})
	window.SetCharCallback(func(_ *glfw.Window, char rune) {
		handler.push(InputEvent{Kind: EventChar, Char: char})
	})
	window.SetScrollCallback(func(_ *glfw.Window, _, yoffset float64) {
		handler.push(InputEvent{Kind: EventScroll, Scroll: yoffset})
	})
	window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		kind := EventMouseDown
		if action == glfw.Release {
			kind = EventMouseUp
		}
		handler.push(InputEvent{Kind: kind, Button: button, Pos: handler.mousePos})
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		handler.mousePos = image.Pt(int(x), int(y))
		handler.push(InputEvent{Kind: EventMouseMove, Pos: handler.mousePos})
	})
	window.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		handler.push(InputEvent{Kind: EventResize, Size: image.Pt(width, height)})
	})

	return handler
}

func (ih *InputHandler) push(ev InputEvent) {
	ih.events = append(ih.events, ev)
}

// Drain returns the queued events and empties the queue. The returned
// slice is only valid until the next PollEvents.
func (ih *InputHandler) Drain() []InputEvent {
	events := ih.events
	ih.events = ih.events[:0]
	return events
}

// MousePosition returns the last known cursor position
func (ih *InputHandler) MousePosition() image.Point {
	return ih.mousePos
}
