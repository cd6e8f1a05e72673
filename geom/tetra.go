package geom

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	TetraVertices = 4
	TetraIndices  = 12

	// MaxDepth bounds subdivision; a depth d Sierpinski has 4^d leaves.
	MaxDepth = 6
)

// UnitTetra is a regular tetrahedron inscribed in the unit sphere with its
// apex on +Z.
var UnitTetra = [TetraVertices]mgl32.Vec3{
	{0, 0, 1},
	{0.943, 0, -0.333},
	{-0.471, 0.816, -0.333},
	{-0.471, -0.816, -0.333},
}

// DefaultPalette colors the apex and the three base corners.
var DefaultPalette = [TetraVertices]mgl32.Vec4{
	{1, 0.85, 0.2, 1},
	{0.9, 0.2, 0.2, 1},
	{0.2, 0.8, 0.3, 1},
	{0.2, 0.4, 0.95, 1},
}

// tetraFaces winds each face counter-clockwise from outside for a tetra whose
// apex lies above the base triangle A, B, C taken counter-clockwise.
var tetraFaces = [TetraIndices]uint32{
	0, 1, 2,
	0, 2, 3,
	0, 3, 1,
	1, 3, 2,
}

// Corners are the apex and the three base corners of a tetrahedron.
type Corners [TetraVertices]mgl32.Vec3

// Children splits at the midpoints of the six edges and returns the four
// corner pieces: the apex child first, then the children at base corners
// A, B and C. The central octahedron is discarded.
//
// Each child is the parent scaled by one half about the corner it keeps.
func (corners Corners) Children() [4]Corners {
	apex, a, b, c := corners[0], corners[1], corners[2], corners[3]

	apexA, apexB, apexC := midpoint(apex, a), midpoint(apex, b), midpoint(apex, c)
	ab, bc, ca := midpoint(a, b), midpoint(b, c), midpoint(c, a)

	return [4]Corners{
		{apex, apexA, apexB, apexC},
		{apexA, a, ab, ca},
		{apexB, ab, b, bc},
		{apexC, ca, bc, c},
	}
}

// Walk calls visit for each of the 4^n leaves n levels below corners, in
// depth-first order. Walk(0) visits corners itself.
func (corners Corners) Walk(n int, visit func(leaf Corners)) {
	if n <= 0 {
		visit(corners)
		return
	}
	for _, child := range corners.Children() {
		child.Walk(n-1, visit)
	}
}

// Tetra is a tetrahedron given by its apex and three base corners.
type Tetra struct {
	Body
	Corners Corners
	Palette [TetraVertices]mgl32.Vec4

	vertices []float32
	colors   []float32
}

func NewTetra(apex, a, b, c mgl32.Vec3) *Tetra {
	return newTetra(Corners{apex, a, b, c}, DefaultPalette)
}

func newTetra(corners Corners, palette [TetraVertices]mgl32.Vec4) *Tetra {
	tetra := &Tetra{
		Body:    NewBody(),
		Corners: corners,
		Palette: palette,
	}
	tetra.vertices = make([]float32, 0, TetraVertices*PositionComponents)
	tetra.colors = make([]float32, 0, TetraVertices*ColorComponents)
	for i := range corners {
		tetra.vertices = appendVec3(tetra.vertices, corners[i])
		tetra.colors = appendVec4(tetra.colors, palette[i])
	}
	return tetra
}

func (tetra *Tetra) Apex() mgl32.Vec3 { return tetra.Corners[0] }

func (tetra *Tetra) VertexCount() int   { return TetraVertices }
func (tetra *Tetra) IndexCount() int    { return TetraIndices }
func (tetra *Tetra) ColorCount() int    { return TetraVertices }
func (tetra *Tetra) TexCoordCount() int { return 0 }

func (tetra *Tetra) Vertices() []float32            { return tetra.vertices }
func (tetra *Tetra) Indices(offset uint32) []uint32 { return offsetIndices(tetraFaces[:], offset) }
func (tetra *Tetra) AppendIndices(dst []uint32, offset uint32) []uint32 {
	return appendOffsetIndices(dst, tetraFaces[:], offset)
}
func (tetra *Tetra) Colors() []float32    { return tetra.colors }
func (tetra *Tetra) TexCoords() []float32 { return nil }

// Children returns the four corner pieces as volumes, see Corners.Children.
func (tetra *Tetra) Children() [4]*Tetra {
	var children [4]*Tetra
	for i, corners := range tetra.Corners.Children() {
		children[i] = newTetra(corners, tetra.Palette)
	}
	return children
}

// Divide subdivides n levels deep and returns the 4^n leaves in depth-first
// order. Divide(0) returns the tetra itself; negative n is treated as 0.
// Callers bound n, see MaxDepth. Only the leaves become volumes.
func (tetra *Tetra) Divide(n int) []*Tetra {
	if n <= 0 {
		return []*Tetra{tetra}
	}
	leaves := make([]*Tetra, 0, LeafCount(n))
	tetra.Corners.Walk(n, func(leaf Corners) {
		leaves = append(leaves, newTetra(leaf, tetra.Palette))
	})
	return leaves
}

// LeafCount returns 4^n, the number of leaves Divide(n) produces.
func LeafCount(n int) int {
	if n <= 0 {
		return 1
	}
	return 1 << (2 * uint(n))
}

func midpoint(a, b mgl32.Vec3) mgl32.Vec3 {
	return a.Add(b).Mul(0.5)
}
