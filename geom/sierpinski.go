package geom

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Sierpinski is the flattened leaves of a subdivided tetra drawn as a
// single volume.
type Sierpinski struct {
	Body
	Depth int

	mesh *sierpinskiMesh
}

// sierpinskiMesh is immutable once built and may be shared between volumes.
type sierpinskiMesh struct {
	leaves   int
	vertices []float32
	colors   []float32
	indices  []uint32
}

// unitMeshes caches the UnitTetra subdivision per depth.
var unitMeshes [MaxDepth + 1]struct {
	once sync.Once
	mesh *sierpinskiMesh
}

func clampDepth(depth int) int { return max(0, min(depth, MaxDepth)) }

// NewSierpinski subdivides the given tetra. Depth is clamped to [0, MaxDepth].
func NewSierpinski(apex, a, b, c mgl32.Vec3, depth int) *Sierpinski {
	depth = clampDepth(depth)
	return &Sierpinski{
		Body:  NewBody(),
		Depth: depth,
		mesh:  buildSierpinski(Corners{apex, a, b, c}, DefaultPalette, depth),
	}
}

// NewUnitSierpinski subdivides UnitTetra. Volumes of the same depth share
// their geometry.
func NewUnitSierpinski(depth int) *Sierpinski {
	depth = clampDepth(depth)
	cached := &unitMeshes[depth]
	cached.once.Do(func() {
		cached.mesh = buildSierpinski(Corners(UnitTetra), DefaultPalette, depth)
	})
	return &Sierpinski{
		Body:  NewBody(),
		Depth: depth,
		mesh:  cached.mesh,
	}
}

// buildSierpinski concatenates the leaves; leaf k owns vertices [4k, 4k+4).
func buildSierpinski(corners Corners, palette [TetraVertices]mgl32.Vec4, depth int) *sierpinskiMesh {
	leaves := LeafCount(depth)
	mesh := &sierpinskiMesh{
		leaves:   leaves,
		vertices: make([]float32, 0, leaves*TetraVertices*PositionComponents),
		colors:   make([]float32, 0, leaves*TetraVertices*ColorComponents),
		indices:  make([]uint32, 0, leaves*TetraIndices),
	}
	corners.Walk(depth, func(leaf Corners) {
		base := uint32(len(mesh.vertices) / PositionComponents)
		for i := range leaf {
			mesh.vertices = appendVec3(mesh.vertices, leaf[i])
			mesh.colors = appendVec4(mesh.colors, palette[i])
		}
		mesh.indices = appendOffsetIndices(mesh.indices, tetraFaces[:], base)
	})
	return mesh
}

// Leaves returns the number of leaf tetrahedra, 4^Depth.
func (s *Sierpinski) Leaves() int { return s.mesh.leaves }

func (s *Sierpinski) VertexCount() int   { return s.mesh.leaves * TetraVertices }
func (s *Sierpinski) IndexCount() int    { return s.mesh.leaves * TetraIndices }
func (s *Sierpinski) ColorCount() int    { return s.mesh.leaves * TetraVertices }
func (s *Sierpinski) TexCoordCount() int { return 0 }

func (s *Sierpinski) Vertices() []float32            { return s.mesh.vertices }
func (s *Sierpinski) Indices(offset uint32) []uint32 { return offsetIndices(s.mesh.indices, offset) }
func (s *Sierpinski) AppendIndices(dst []uint32, offset uint32) []uint32 {
	return appendOffsetIndices(dst, s.mesh.indices, offset)
}
func (s *Sierpinski) Colors() []float32    { return s.mesh.colors }
func (s *Sierpinski) TexCoords() []float32 { return nil }
