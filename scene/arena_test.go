package scene

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adinfit/sierpinski/geom"
)

func TestArenaCapacity(t *testing.T) {
	arena := NewArena(3)
	for i := 0; i < 3; i++ {
		slot, err := arena.Add(geom.NewCube())
		require.NoError(t, err)
		assert.Equal(t, i, slot)
	}
	assert.True(t, arena.Full())

	slot, err := arena.Add(geom.NewCube())
	assert.ErrorIs(t, err, ErrSceneFull)
	assert.Equal(t, -1, slot)
	assert.Equal(t, 3, arena.Len())
}

func TestArenaDefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, NewArena(0).Cap())
	assert.Equal(t, DefaultCapacity, NewArena(-5).Cap())
}

func TestArenaReusesFreeSlots(t *testing.T) {
	arena := NewArena(4)
	a, b, c := geom.NewCube(), unitTetra(), geom.NewUnitSierpinski(1)
	for _, v := range []geom.Volume{a, b, c} {
		_, err := arena.Add(v)
		require.NoError(t, err)
	}

	require.True(t, arena.Remove(b.ID))
	assert.False(t, arena.Remove(b.ID), "already removed")
	assert.False(t, arena.Remove(uuid.New()))
	assert.Equal(t, []geom.Volume{a, c}, arena.Volumes(nil))

	d := geom.NewTexturedCube()
	slot, err := arena.Add(d)
	require.NoError(t, err)
	assert.Equal(t, 1, slot)
	assert.Equal(t, []geom.Volume{a, d, c}, arena.Volumes(nil))
	assert.Equal(t, 3, arena.Len())
}

func TestArenaClear(t *testing.T) {
	arena := NewArena(2)
	_, _ = arena.Add(geom.NewCube())
	_, _ = arena.Add(geom.NewCube())
	require.True(t, arena.Full())

	arena.Clear()
	assert.Zero(t, arena.Len())
	assert.False(t, arena.Full())
	assert.Empty(t, arena.Volumes(nil))

	slot, err := arena.Add(geom.NewCube())
	require.NoError(t, err)
	assert.Equal(t, 0, slot)
}

func TestArenaVolumesAppends(t *testing.T) {
	arena := NewArena(2)
	cube := geom.NewCube()
	_, _ = arena.Add(cube)

	existing := unitTetra()
	got := arena.Volumes([]geom.Volume{existing})
	assert.Equal(t, []geom.Volume{existing, cube}, got)
}

func unitTetra() *geom.Tetra {
	return geom.NewTetra(geom.UnitTetra[0], geom.UnitTetra[1], geom.UnitTetra[2], geom.UnitTetra[3])
}
