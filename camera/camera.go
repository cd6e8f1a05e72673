// Package camera implements a free-fly camera steered by yaw and pitch.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPitch keeps pitch strictly inside (-π/2, π/2) so the view never flips.
const MaxPitch = float32(math.Pi/2) - 0.01

// Camera is a position and an orientation (yaw, pitch) in radians.
// Movement is relative to the camera's own basis.
type Camera struct {
	Position    mgl32.Vec3
	Orientation mgl32.Vec2

	Sensitivity float32
}

func New(position mgl32.Vec3, yaw, pitch float32) *Camera {
	camera := &Camera{
		Position:    position,
		Sensitivity: 0.002,
	}
	camera.SetOrientation(yaw, pitch)
	return camera
}

func (camera *Camera) Yaw() float32   { return camera.Orientation[0] }
func (camera *Camera) Pitch() float32 { return camera.Orientation[1] }

// SetOrientation stores yaw wrapped to (-2π, 2π) and pitch clamped to MaxPitch.
func (camera *Camera) SetOrientation(yaw, pitch float32) {
	if isBad(yaw) {
		yaw = camera.Yaw()
	}
	if isBad(pitch) {
		pitch = camera.Pitch()
	}
	yaw = float32(math.Mod(float64(yaw), 2*math.Pi))
	camera.Orientation = mgl32.Vec2{yaw, mgl32.Clamp(pitch, -MaxPitch, MaxPitch)}
}

func isBad(v float32) bool {
	return math.IsNaN(float64(v)) || math.IsInf(float64(v), 0)
}

// Rotate turns the camera by a mouse delta in pixels. Moving the mouse right
// turns right, moving it down looks down.
func (camera *Camera) Rotate(delta mgl32.Vec2) {
	camera.SetOrientation(
		camera.Yaw()-delta[0]*camera.Sensitivity,
		camera.Pitch()-delta[1]*camera.Sensitivity,
	)
}

// Forward is the look direction from spherical coordinates.
func (camera *Camera) Forward() mgl32.Vec3 {
	sy, cy := sincos(camera.Yaw())
	sp, cp := sincos(camera.Pitch())
	return mgl32.Vec3{cp * sy, sp, cp * cy}
}

// Right is horizontal and perpendicular to Forward.
func (camera *Camera) Right() mgl32.Vec3 {
	sy, cy := sincos(camera.Yaw())
	return mgl32.Vec3{-cy, 0, sy}
}

func (camera *Camera) Up() mgl32.Vec3 {
	return camera.Right().Cross(camera.Forward())
}

// Move translates along the camera basis.
func (camera *Camera) Move(forward, right, up float32) {
	camera.Position = camera.Position.
		Add(camera.Forward().Mul(forward)).
		Add(camera.Right().Mul(right)).
		Add(camera.Up().Mul(up))
}

func (camera *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(camera.Position, camera.Position.Add(camera.Forward()), camera.Up())
}

func sincos(v float32) (float32, float32) {
	s, c := math.Sincos(float64(v))
	return float32(s), float32(c)
}
