package window

import (
	"errors"
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/texkit/texkit/pkg/common"
	"github.com/texkit/texkit/pkg/opengl"
)

type Window struct {
	handle       *glfw.Window
	context      *opengl.Context
	events       WindowEventStack        // Cached event stack
	eventHandler func(event WindowEvent) // Event handler function will be called for every event at PollEvents call
}

// New creates a window and initializes an opengl context for it.
// In order to use the context just call the GL function of the window.
// You must call the Show function to show the window.
func New(title string, width, height int) (*Window, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New("Window dimensions must bigger than zero")
	}

	window := new(Window)

	// Set opengl library version
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	// We need to create forward compatible context for macos support.
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	// We are initializing window as hidden, and then we show it when mainloop begins
	glfw.WindowHint(glfw.Visible, glfw.False)
	// Single buffered, we flush when a frame is done
	glfw.WindowHint(glfw.DoubleBuffer, glfw.False)
	// Focus to window after shown
	glfw.WindowHint(glfw.FocusOnShow, glfw.True)

	var err error
	window.handle, err = glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("Failed to create glfw window: %s", err)
	}

	// This is important
	window.handle.MakeContextCurrent()

	// Disable v-sync, already disabled by default but make sure.
	glfw.SwapInterval(0)

	// Load opengl context
	window.context, err = opengl.New()
	if err != nil {
		return nil, err
	}

	// CALLBACKS

	window.handle.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		window.events.Push(WindowEventResize, width, height)
	})

	window.handle.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		window.events.Push(WindowEventKeyInput, key, scancode, action, mods)
	})

	window.handle.SetDropCallback(func(w *glfw.Window, names []string) {
		window.events.Push(WindowEventDrop, names)
	})

	window.handle.SetCloseCallback(func(w *glfw.Window) {
		window.events.Push(WindowEventClose)
	})

	return window, nil
}

func (window *Window) GL() *opengl.Context {
	return window.context
}

func (window *Window) Show() {
	window.handle.Show()
}

func (window *Window) SetTitle(title string) {
	window.handle.SetTitle(title)
}

func (window *Window) SetMinSize(minSize common.Vector2[int]) {
	window.handle.SetSizeLimits(minSize.X, minSize.Y, glfw.DontCare, glfw.DontCare)
}

func (window *Window) Size() common.Vector2[int] {
	W, H := window.handle.GetFramebufferSize()
	return common.Vector2[int]{X: W, Y: H}
}

func (window *Window) Viewport() common.Rectangle[int] {
	return common.Rectangle[int]{X: 0, Y: 0, W: window.Size().Width(), H: window.Size().Height()}
}

func (window *Window) Destroy() {
	window.context.Destroy()
	window.handle.Destroy()
}
