// Package geom generates the drawable volumes: cubes, tetrahedra and
// Sierpinski approximations built by recursive tetrahedron subdivision.
//
// Geometry is produced in local space and never changes after
// construction; only the transform in Body moves.
package geom

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/adinfit/sierpinski/gpu"
)

// Components per element of each attribute stream.
const (
	PositionComponents = 3
	ColorComponents    = 4
	TexCoordComponents = 2
)

// Volume is the capability set every drawable shape provides.
//
// Vertices, Colors and TexCoords return slices owned by the volume that
// callers must not modify. Indices returns a fresh slice with offset added
// to every local index; AppendIndices appends the same values to dst.
type Volume interface {
	Object() *Body

	VertexCount() int
	IndexCount() int
	ColorCount() int
	TexCoordCount() int

	Vertices() []float32
	Indices(offset uint32) []uint32
	AppendIndices(dst []uint32, offset uint32) []uint32
	Colors() []float32
	TexCoords() []float32
}

// Body is the transform and motion state shared by all volumes.
type Body struct {
	ID uuid.UUID

	Position mgl32.Vec3
	Rotation mgl32.Vec3 // euler angles in radians
	Scale    mgl32.Vec3

	Model          mgl32.Mat4
	ViewProjection mgl32.Mat4
	MVP            mgl32.Mat4

	Texture gpu.TextureID
	Drift   Drift
}

// NewBody returns an identity transform with a fresh ID and no drift.
func NewBody() Body {
	return Body{
		ID:             uuid.New(),
		Scale:          mgl32.Vec3{1, 1, 1},
		Model:          mgl32.Ident4(),
		ViewProjection: mgl32.Ident4(),
		MVP:            mgl32.Ident4(),
	}
}

func (body *Body) Object() *Body { return body }

// Textured reports whether the body has a texture bound.
func (body *Body) Textured() bool { return body.Texture != 0 }

// Advance moves the body one step along its drift and adds spin to its rotation.
func (body *Body) Advance(rng *rand.Rand, spin mgl32.Vec3) {
	step := body.Drift.Step(rng)
	body.Position = body.Position.Add(mgl32.Vec3(step.FloatXYZ()))
	body.Rotation = body.Rotation.Add(spin)
}

// ComputeModel rebuilds the model matrix. Vertices are scaled, then rotated
// about X, Y and Z in that order, then translated.
func (body *Body) ComputeModel() mgl32.Mat4 {
	body.Model = mgl32.Translate3D(body.Position.Elem()).
		Mul4(mgl32.HomogRotate3DZ(body.Rotation.Z())).
		Mul4(mgl32.HomogRotate3DY(body.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DX(body.Rotation.X())).
		Mul4(mgl32.Scale3D(body.Scale.Elem()))
	return body.Model
}

// Project stores the view-projection and the combined model-view-projection.
func (body *Body) Project(viewProjection mgl32.Mat4) {
	body.ViewProjection = viewProjection
	body.MVP = viewProjection.Mul4(body.Model)
}

func offsetIndices(local []uint32, offset uint32) []uint32 {
	return appendOffsetIndices(make([]uint32, 0, len(local)), local, offset)
}

func appendOffsetIndices(dst, local []uint32, offset uint32) []uint32 {
	for _, index := range local {
		dst = append(dst, index+offset)
	}
	return dst
}

func appendVec3(dst []float32, v mgl32.Vec3) []float32 { return append(dst, v[:]...) }
func appendVec4(dst []float32, v mgl32.Vec4) []float32 { return append(dst, v[:]...) }
