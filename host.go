package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/adinfit/sierpinski/scene"
)

// Host forwards window events to the scene.
type Host struct {
	Scene *scene.Scene

	ScreenWidth  int
	ScreenHeight int
	Focused      bool
}

// Attach installs the window callbacks and captures the cursor.
func (host *Host) Attach(window *glfw.Window) {
	host.Focused = true

	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	window.SetCharCallback(func(_ *glfw.Window, char rune) {
		if cmd := scene.CommandForKey(char); cmd != scene.None {
			scene.Logger().Debug("command", "key", string(char), "command", cmd.String())
			host.Scene.Apply(cmd)
		}
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})
	window.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		host.Focused = focused
		host.Scene.FocusChanged(focused)
	})
}

// NextFrameGLFW resizes the viewport when the framebuffer changed.
func (host *Host) NextFrameGLFW(window *glfw.Window) {
	width, height := window.GetFramebufferSize()
	if width != host.ScreenWidth || height != host.ScreenHeight {
		host.ScreenWidth, host.ScreenHeight = width, height
		host.Scene.Resize(width, height)
	}
}

// Input samples the cursor; an unfocused window does not steer the camera.
func (host *Host) Input(window *glfw.Window) scene.Input {
	if !host.Focused {
		return scene.Input{}
	}
	x, y := window.GetCursorPos()
	return scene.Input{
		Cursor:    mgl32.Vec2{float32(x), float32(y)},
		HasCursor: true,
	}
}
