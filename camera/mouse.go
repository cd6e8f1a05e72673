package camera

import "github.com/go-gl/mathgl/mgl32"

// Mouse turns absolute cursor positions into deltas.
type Mouse struct {
	last  mgl32.Vec2
	valid bool
}

// Delta returns the movement since the previous position. The first call
// after Reset returns zero.
func (mouse *Mouse) Delta(position mgl32.Vec2) mgl32.Vec2 {
	if !mouse.valid {
		mouse.last, mouse.valid = position, true
		return mgl32.Vec2{}
	}
	delta := position.Sub(mouse.last)
	mouse.last = position
	return delta
}

// Reset forgets the last position; call it when the window loses focus so
// the cursor jump on refocus does not spin the view.
func (mouse *Mouse) Reset() { mouse.valid = false }
