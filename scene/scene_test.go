package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adinfit/sierpinski/geom"
	"github.com/adinfit/sierpinski/gpu"
	"github.com/adinfit/sierpinski/gpu/gputest"
)

const testTexture gpu.TextureID = 77

func fullDevice() *gputest.Device {
	return gputest.New(
		[]gpu.Variable{
			{Name: AttrPosition, Size: 1, Type: gpu.FloatVec3},
			{Name: AttrColor, Size: 1, Type: gpu.FloatVec4},
			{Name: AttrTexCoord, Size: 1, Type: gpu.FloatVec2},
		},
		[]gpu.Variable{
			{Name: UniformMVP, Size: 1, Type: gpu.FloatMat4},
			{Name: UniformTextured, Size: 1, Type: gpu.Float},
			{Name: UniformSampler, Size: 1, Type: gpu.Sampler2D},
		},
	)
}

func newTestScene(t *testing.T, device *gputest.Device, modify func(*Options)) *Scene {
	t.Helper()
	program, err := gpu.NewProgram(device, "scene", "vs", "fs")
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Seed = 1234
	opts.Depth = 2
	opts.Texture = testTexture
	if modify != nil {
		modify(&opts)
	}
	return New(device, program, opts)
}

func TestSpawnPending(t *testing.T) {
	s := newTestScene(t, fullDevice(), nil)
	s.QueueSpawn(10)

	for tick := 1; tick <= 5; tick++ {
		s.Update(Input{})
		assert.Equal(t, 2*tick, s.Arena().Len())
		assert.Equal(t, 10-2*tick, s.Pending())

		live := s.Arena().Volumes(nil)
		textured, ok := live[len(live)-2].(*geom.TexturedCube)
		require.True(t, ok, "tick %d spawns a textured cube first", tick)
		assert.Equal(t, testTexture, textured.Texture)
		_, ok = live[len(live)-1].(*geom.Sierpinski)
		require.True(t, ok, "tick %d spawns a sierpinski second", tick)

		for _, v := range live[len(live)-2:] {
			body := v.Object()
			assert.True(t, DefaultBounds.Contains(body.Position), "position %v", body.Position)
			for _, scale := range body.Scale {
				assert.GreaterOrEqual(t, scale, DefaultBounds.MinScale)
				assert.LessOrEqual(t, scale, DefaultBounds.MaxScale)
			}
		}
	}

	for i := 0; i < 5; i++ {
		s.Update(Input{})
	}
	assert.Equal(t, 10, s.Arena().Len())
	assert.Zero(t, s.Pending())
}

func TestSpawnOddPending(t *testing.T) {
	s := newTestScene(t, fullDevice(), nil)
	s.QueueSpawn(3)
	s.Update(Input{})
	assert.Equal(t, 1, s.Pending())
	s.Update(Input{})
	s.Update(Input{})
	assert.Zero(t, s.Pending())
	require.Equal(t, 3, s.Arena().Len(), "odd counts spawn exactly that many")

	live := s.Arena().Volumes(nil)
	_, ok := live[2].(*geom.TexturedCube)
	assert.True(t, ok, "the odd remainder is a textured cube")
}

func TestSpawnReachesCap(t *testing.T) {
	s := newTestScene(t, fullDevice(), nil)
	for i := 0; i < DefaultCapacity-1; i++ {
		require.NoError(t, s.AddVolume(geom.NewCube()))
	}
	require.False(t, s.Full())
	assert.Equal(t, Presets[0], s.ClearColor())

	s.Apply(Spawn)
	s.Update(Input{})

	assert.Equal(t, DefaultCapacity, s.Arena().Len())
	assert.True(t, s.Full())
	assert.Zero(t, s.Pending())
	assert.Equal(t, FullColor, s.ClearColor())
	assert.ErrorIs(t, s.AddVolume(geom.NewCube()), ErrSceneFull)

	s.Apply(Spawn)
	s.Apply(Burst)
	s.Update(Input{})
	s.Update(Input{})
	assert.Equal(t, DefaultCapacity, s.Arena().Len())
	assert.Zero(t, s.Pending())

	s.Apply(Preset3)
	assert.Equal(t, FullColor, s.ClearColor(), "full state overrides presets")

	s.Render()
	assert.Len(t, s.device.(*gputest.Device).Draws, DefaultCapacity)
}

func TestBurst(t *testing.T) {
	s := newTestScene(t, fullDevice(), func(o *Options) { o.Depth = 0 })
	s.Apply(Burst)
	s.Update(Input{})
	assert.Equal(t, 400, s.Arena().Len())

	live := s.Arena().Volumes(nil)
	_, ok := live[0].(*geom.Cube)
	assert.True(t, ok)
	_, ok = live[1].(*geom.Sierpinski)
	assert.True(t, ok)

	s.Update(Input{})
	assert.Equal(t, 400, s.Arena().Len(), "burst is consumed")
}

func TestBurstStopsAtCap(t *testing.T) {
	s := newTestScene(t, fullDevice(), func(o *Options) {
		o.Capacity = 51
		o.Depth = 0
	})
	s.Apply(Burst)
	s.Update(Input{})
	assert.Equal(t, 51, s.Arena().Len())
	assert.True(t, s.Full())
}

func TestUpdateUploadsFlattenedBuffers(t *testing.T) {
	device := fullDevice()
	s := newTestScene(t, device, nil)
	cube := geom.NewCube()
	textured := geom.NewTexturedCube()
	require.NoError(t, s.AddVolume(cube))
	require.NoError(t, s.AddVolume(textured))

	s.Update(Input{})

	positions, _ := s.Program().Buffer(AttrPosition)
	colors, _ := s.Program().Buffer(AttrColor)
	texcoords, _ := s.Program().Buffer(AttrTexCoord)

	vertices := geom.CubeVertices + geom.TexturedCubeVertices
	assert.Len(t, device.Floats[positions], vertices*geom.PositionComponents)
	assert.Len(t, device.Floats[colors], vertices*geom.ColorComponents)
	assert.Len(t, device.Floats[texcoords], vertices*geom.TexCoordComponents)
	assert.Len(t, device.Indices[s.indices], 2*geom.CubeIndices)

	for _, index := range device.Indices[s.indices][geom.CubeIndices:] {
		assert.GreaterOrEqual(t, index, uint32(geom.CubeVertices))
	}
	assert.Equal(t, device.Program, s.Program().ID, "update leaves the program bound")
}

func TestUpdateSkipsUndeclaredAttributes(t *testing.T) {
	device := gputest.New(
		[]gpu.Variable{{Name: AttrPosition, Size: 1, Type: gpu.FloatVec3}},
		[]gpu.Variable{{Name: UniformMVP, Size: 1, Type: gpu.FloatMat4}},
	)
	s := newTestScene(t, device, nil)
	require.NoError(t, s.AddVolume(geom.NewTexturedCube()))

	s.Update(Input{})
	s.Render()

	assert.Len(t, device.Floats, 1, "only positions are uploaded")
	assert.Equal(t, map[int32]gpu.BufferID{0: mustBuffer(t, s, AttrPosition)}, device.Pointers)
	assert.Empty(t, device.Scalars, "no textured uniform to set")
	require.Len(t, device.Draws, 1)
}

func mustBuffer(t *testing.T, s *Scene, name string) gpu.BufferID {
	buffer, ok := s.Program().Buffer(name)
	require.True(t, ok)
	return buffer
}

func TestRender(t *testing.T) {
	device := fullDevice()
	s := newTestScene(t, device, nil)

	textured := geom.NewTexturedCube()
	textured.Texture = testTexture
	volumes := []geom.Volume{geom.NewCube(), textured, geom.NewUnitSierpinski(2)}
	for _, v := range volumes {
		require.NoError(t, s.AddVolume(v))
	}

	s.Update(Input{})
	s.Render()

	require.Len(t, device.Draws, 3)
	assert.Equal(t, gputest.Draw{Count: 36, First: 0, Texture: 0, Program: s.Program().ID}, device.Draws[0])
	assert.Equal(t, gputest.Draw{Count: 36, First: 36, Texture: testTexture, Program: s.Program().ID}, device.Draws[1])
	assert.Equal(t, gputest.Draw{Count: 16 * geom.TetraIndices, First: 72, Texture: 0, Program: s.Program().ID}, device.Draws[2])

	mvp := s.Program().UniformSlot(UniformMVP)
	assert.Equal(t, volumes[2].Object().MVP, device.Matrices[mvp], "last draw left its mvp")
	assert.Equal(t, int32(0), device.Ints[s.Program().UniformSlot(UniformSampler)])

	for slot, enabled := range device.Enabled {
		assert.False(t, enabled, "slot %d left enabled", slot)
	}
	assert.Equal(t, Presets[0], device.Background)
	assert.Equal(t, 1, device.Flushes)
}

func TestRenderSeesSettledState(t *testing.T) {
	device := fullDevice()
	s := newTestScene(t, device, nil)
	require.NoError(t, s.AddVolume(geom.NewCube()))
	s.QueueSpawn(2)

	s.Update(Input{})
	s.Render()

	// volumes spawned during the update are drawn from the next tick on
	assert.Equal(t, 3, s.Arena().Len())
	assert.Len(t, device.Draws, 1)
}

func TestModelViewProjection(t *testing.T) {
	s := newTestScene(t, fullDevice(), func(o *Options) { o.Spin = 0 })
	cube := geom.NewCube()
	cube.Position = mgl32.Vec3{1, 2, 3}
	require.NoError(t, s.AddVolume(cube))

	s.Update(Input{})

	viewProjection := s.Projection().Mul4(s.Camera().View())
	assert.Equal(t, viewProjection, cube.ViewProjection)
	assert.True(t, cube.MVP.ApproxEqual(viewProjection.Mul4(cube.Model)))
	assert.True(t, mgl32.Translate3D(1, 2, 3).ApproxEqual(cube.Model))
}

func TestBrokenProgramDegrades(t *testing.T) {
	device := fullDevice()
	device.CompileLog = "error"
	program, err := gpu.NewProgram(device, "broken", "vs", "fs")
	require.Error(t, err)

	s := New(device, program, DefaultOptions())
	require.NoError(t, s.AddVolume(geom.NewCube()))
	s.Update(Input{})
	s.Render()

	assert.Empty(t, device.Floats)
	assert.Empty(t, device.Draws)
}

func TestMouseLook(t *testing.T) {
	s := newTestScene(t, fullDevice(), nil)
	s.Update(Input{Cursor: mgl32.Vec2{100, 100}, HasCursor: true})
	yaw := s.Camera().Yaw()

	s.Update(Input{Cursor: mgl32.Vec2{150, 100}, HasCursor: true})
	assert.Less(t, s.Camera().Yaw(), yaw)

	s.FocusChanged(true)
	yaw = s.Camera().Yaw()
	s.Update(Input{Cursor: mgl32.Vec2{5000, 100}, HasCursor: true})
	assert.Equal(t, yaw, s.Camera().Yaw(), "focus change resets tracking")
}

func TestZoomCommands(t *testing.T) {
	s := newTestScene(t, fullDevice(), func(o *Options) {
		o.ZoomSteps = 100
		o.ZoomStep = 0.1
		o.ZoomStepsPerTick = 10
	})
	start := s.Camera().Position

	s.Apply(ZoomIn)
	s.Update(Input{})
	assert.InDelta(t, 1.0, s.Camera().Position.Sub(start).Len(), 1e-4)

	s.Apply(CancelZoom)
	s.Update(Input{})
	assert.InDelta(t, 1.0, s.Camera().Position.Sub(start).Len(), 1e-4)
	assert.Zero(t, s.Zoom().Len())
}

func TestCommands(t *testing.T) {
	s := newTestScene(t, fullDevice(), nil)
	start := s.Camera().Position

	s.Apply(MoveForward)
	assert.Greater(t, s.Camera().Position.Sub(start).Dot(s.Camera().Forward()), float32(0))

	s.Apply(Preset2)
	assert.Equal(t, Presets[1], s.ClearColor())

	s.Apply(Spawn)
	assert.Equal(t, 10, s.Pending())

	s.Update(Input{})
	s.Apply(ClearScene)
	assert.Zero(t, s.Arena().Len())
	assert.Zero(t, s.Pending())

	assert.False(t, s.ExitRequested())
	s.Apply(Exit)
	assert.True(t, s.ExitRequested())
}

func TestClearReenablesSpawning(t *testing.T) {
	s := newTestScene(t, fullDevice(), func(o *Options) { o.Capacity = 2 })
	s.QueueSpawn(2)
	s.Update(Input{})
	require.True(t, s.Full())

	s.Clear()
	assert.False(t, s.Full())
	s.QueueSpawn(2)
	s.Update(Input{})
	assert.Equal(t, 2, s.Arena().Len())
}

func TestResize(t *testing.T) {
	device := fullDevice()
	s := newTestScene(t, device, nil)

	s.Resize(1920, 1080)
	assert.Equal(t, [2]int{1920, 1080}, device.Size)
	w, h := s.Size()
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)

	s.Resize(0, 0)
	w, h = s.Size()
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)
}

func TestStats(t *testing.T) {
	s := newTestScene(t, fullDevice(), nil)
	require.NoError(t, s.AddVolume(geom.NewCube()))
	s.Update(Input{})
	s.Render()

	stats := s.Stats()
	assert.Equal(t, uint64(1), stats.Ticks)
	assert.Equal(t, 1, stats.Objects)
	assert.Equal(t, geom.CubeVertices, stats.Vertices)
	assert.Equal(t, geom.CubeIndices, stats.Indices)
	assert.Contains(t, stats.String(), "Objects:\t1")
	assert.NotContains(t, stats.String(), "FULL")
}
