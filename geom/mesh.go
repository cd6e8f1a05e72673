package geom

import "github.com/go-gl/mathgl/mgl32"

// meshData accumulates local-space geometry while a volume is constructed.
type meshData struct {
	vertices  []float32
	colors    []float32
	texcoords []float32
	indices   []uint32
}

func (mesh *meshData) count() uint32 {
	return uint32(len(mesh.vertices) / PositionComponents)
}

func (mesh *meshData) Vertex(p mgl32.Vec3, c mgl32.Vec4) uint32 {
	index := mesh.count()
	mesh.vertices = appendVec3(mesh.vertices, p)
	mesh.colors = appendVec4(mesh.colors, c)
	return index
}

func (mesh *meshData) TexturedVertex(p mgl32.Vec3, c mgl32.Vec4, uv mgl32.Vec2) uint32 {
	index := mesh.Vertex(p, c)
	mesh.texcoords = append(mesh.texcoords, uv[:]...)
	return index
}

func (mesh *meshData) Triangle(a, b, c uint32) {
	mesh.indices = append(mesh.indices, a, b, c)
}

// Quad adds two triangles for the counter-clockwise corners a, b, c, d.
func (mesh *meshData) Quad(a, b, c, d uint32) {
	mesh.Triangle(a, b, c)
	mesh.Triangle(a, c, d)
}
