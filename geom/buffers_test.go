package geom

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomVolumes(rng *rand.Rand, n int) []Volume {
	volumes := make([]Volume, 0, n)
	for i := 0; i < n; i++ {
		switch rng.IntN(4) {
		case 0:
			volumes = append(volumes, NewCube())
		case 1:
			volumes = append(volumes, NewTexturedCube())
		case 2:
			volumes = append(volumes, unitTetra())
		case 3:
			volumes = append(volumes, NewUnitSierpinski(rng.IntN(3)))
		}
	}
	return volumes
}

func TestFlatten(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	volumes := randomVolumes(rng, 40)

	var buffers Buffers
	Flatten(&buffers, volumes)

	totalVertices, totalIndices := 0, 0
	for _, v := range volumes {
		totalVertices += v.VertexCount()
		totalIndices += v.IndexCount()
	}
	assert.Equal(t, totalVertices, buffers.VertexCount())
	assert.Len(t, buffers.Positions, totalVertices*PositionComponents)
	assert.Len(t, buffers.Colors, totalVertices*ColorComponents)
	assert.Len(t, buffers.TexCoords, totalVertices*TexCoordComponents)
	assert.Len(t, buffers.Indices, totalIndices)
	require.Len(t, buffers.Ranges, len(volumes))

	offset, first := 0, 0
	for k, v := range volumes {
		r := buffers.Ranges[k]
		assert.Equal(t, offset, r.FirstVertex)
		assert.Equal(t, first, r.FirstIndex)
		assert.Equal(t, v.IndexCount(), r.IndexCount)

		for _, index := range buffers.Indices[r.FirstIndex : r.FirstIndex+r.IndexCount] {
			assert.GreaterOrEqual(t, int(index), offset, "object %d", k)
			assert.Less(t, int(index), offset+v.VertexCount(), "object %d", k)
		}

		offset += v.VertexCount()
		first += v.IndexCount()
	}
}

func TestFlattenPadsTexCoords(t *testing.T) {
	textured := NewTexturedCube()
	plain := NewCube()

	var buffers Buffers
	Flatten(&buffers, []Volume{plain, textured})

	pad := buffers.TexCoords[:CubeVertices*TexCoordComponents]
	for _, v := range pad {
		assert.Zero(t, v)
	}
	assert.Equal(t, textured.TexCoords(), buffers.TexCoords[CubeVertices*TexCoordComponents:])
}

func TestFlattenReusesStorage(t *testing.T) {
	var buffers Buffers
	Flatten(&buffers, []Volume{NewUnitSierpinski(2)})
	capacity := cap(buffers.Positions)

	Flatten(&buffers, []Volume{NewCube()})
	assert.Equal(t, CubeVertices, buffers.VertexCount())
	assert.Equal(t, capacity, cap(buffers.Positions))

	Flatten(&buffers, nil)
	assert.Zero(t, buffers.VertexCount())
	assert.Empty(t, buffers.Indices)
}

func TestFlattenSteadyStateDoesNotAllocate(t *testing.T) {
	volumes := []Volume{NewCube(), NewTexturedCube(), unitTetra(), NewUnitSierpinski(3)}
	var buffers Buffers
	Flatten(&buffers, volumes)

	allocs := testing.AllocsPerRun(20, func() {
		Flatten(&buffers, volumes)
	})
	assert.Zero(t, allocs)
}
