package geom

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	CubeVertices         = 8
	CubeIndices          = 36
	TexturedCubeVertices = 24
)

// cubeCorners is the unit cube centered on the origin.
var cubeCorners = [CubeVertices]mgl32.Vec3{
	{-0.5, -0.5, -0.5},
	{+0.5, -0.5, -0.5},
	{+0.5, +0.5, -0.5},
	{-0.5, +0.5, -0.5},
	{-0.5, -0.5, +0.5},
	{+0.5, -0.5, +0.5},
	{+0.5, +0.5, +0.5},
	{-0.5, +0.5, +0.5},
}

// cubeFaces lists the corners of each face counter-clockwise as seen from
// outside the cube.
var cubeFaces = [6][4]uint32{
	{4, 5, 6, 7}, // +z
	{1, 0, 3, 2}, // -z
	{5, 1, 2, 6}, // +x
	{0, 4, 7, 3}, // -x
	{7, 6, 2, 3}, // +y
	{0, 1, 5, 4}, // -y
}

var faceUV = [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// cornerColor maps a corner onto the RGB cube.
func cornerColor(p mgl32.Vec3) mgl32.Vec4 {
	return mgl32.Vec4{p[0] + 0.5, p[1] + 0.5, p[2] + 0.5, 1}
}

// Cube shares its 8 corners between faces and colors each corner.
type Cube struct {
	Body
	mesh meshData
}

func NewCube() *Cube {
	cube := &Cube{Body: NewBody()}
	for _, p := range cubeCorners {
		cube.mesh.Vertex(p, cornerColor(p))
	}
	for _, f := range cubeFaces {
		cube.mesh.Quad(f[0], f[1], f[2], f[3])
	}
	return cube
}

func (cube *Cube) VertexCount() int   { return CubeVertices }
func (cube *Cube) IndexCount() int    { return CubeIndices }
func (cube *Cube) ColorCount() int    { return CubeVertices }
func (cube *Cube) TexCoordCount() int { return 0 }

func (cube *Cube) Vertices() []float32            { return cube.mesh.vertices }
func (cube *Cube) Indices(offset uint32) []uint32 { return offsetIndices(cube.mesh.indices, offset) }
func (cube *Cube) AppendIndices(dst []uint32, offset uint32) []uint32 {
	return appendOffsetIndices(dst, cube.mesh.indices, offset)
}
func (cube *Cube) Colors() []float32    { return cube.mesh.colors }
func (cube *Cube) TexCoords() []float32 { return nil }

// TexturedCube duplicates corners per face so every face carries its own
// texture coordinates.
type TexturedCube struct {
	Body
	mesh meshData
}

func NewTexturedCube() *TexturedCube {
	cube := &TexturedCube{Body: NewBody()}
	white := mgl32.Vec4{1, 1, 1, 1}
	for _, f := range cubeFaces {
		var quad [4]uint32
		for i, corner := range f {
			quad[i] = cube.mesh.TexturedVertex(cubeCorners[corner], white, faceUV[i])
		}
		cube.mesh.Quad(quad[0], quad[1], quad[2], quad[3])
	}
	return cube
}

func (cube *TexturedCube) VertexCount() int   { return TexturedCubeVertices }
func (cube *TexturedCube) IndexCount() int    { return CubeIndices }
func (cube *TexturedCube) ColorCount() int    { return TexturedCubeVertices }
func (cube *TexturedCube) TexCoordCount() int { return TexturedCubeVertices }

func (cube *TexturedCube) Vertices() []float32 { return cube.mesh.vertices }
func (cube *TexturedCube) Indices(offset uint32) []uint32 {
	return offsetIndices(cube.mesh.indices, offset)
}
func (cube *TexturedCube) AppendIndices(dst []uint32, offset uint32) []uint32 {
	return appendOffsetIndices(dst, cube.mesh.indices, offset)
}
func (cube *TexturedCube) Colors() []float32    { return cube.mesh.colors }
func (cube *TexturedCube) TexCoords() []float32 { return cube.mesh.texcoords }
