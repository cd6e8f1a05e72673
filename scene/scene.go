// Package scene owns the live volumes and runs the per-tick update and
// render passes against a gpu.Device.
package scene

import (
	"math/rand/v2"

	"github.com/adinfinit/g"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/loov/hrtime"

	"github.com/adinfit/sierpinski/camera"
	"github.com/adinfit/sierpinski/geom"
	"github.com/adinfit/sierpinski/gpu"
)

// Names the scene program is reflected for. Only position is required;
// the others are skipped when the program does not declare them.
const (
	AttrPosition    = "position"
	AttrColor       = "color"
	AttrTexCoord    = "texcoord"
	UniformMVP      = "mvp"
	UniformTextured = "textured"
	UniformSampler  = "tex"
)

// Presets are the user-selectable background colors.
var Presets = [4]mgl32.Vec4{
	{0x26 / 255.0, 0x42 / 255.0, 0x6b / 255.0, 1},
	{0.05, 0.05, 0.05, 1},
	{0.85, 0.85, 0.85, 1},
	{0.1, 0.3, 0.15, 1},
}

// FullColor is the background once the live-object cap is reached.
var FullColor = mgl32.Vec4{0.45, 0.05, 0.05, 1}

type Options struct {
	Capacity       int
	Depth          int
	SpawnIncrement int
	BurstPairs     int
	Bounds         Bounds

	FOV         float32 // degrees
	Near, Far   float32
	Sensitivity float32
	MoveSpeed   float32

	ZoomSteps        int
	ZoomStep         float32
	ZoomStepsPerTick int

	TickRate int
	Spin     float32 // radians per tick every volume turns by at least
	Seed     uint64  // 0 picks a random seed
	Texture  gpu.TextureID
}

func DefaultOptions() Options {
	return Options{
		Capacity:       DefaultCapacity,
		Depth:          3,
		SpawnIncrement: 10,
		BurstPairs:     200,
		Bounds:         DefaultBounds,

		FOV:         70,
		Near:        0.1,
		Far:         200,
		Sensitivity: 0.002,
		MoveSpeed:   0.5,

		ZoomSteps:        1000,
		ZoomStep:         0.02,
		ZoomStepsPerTick: 20,

		TickRate: 60,
		Spin:     0.01,
	}
}

// Input is the host state sampled at the start of an update.
type Input struct {
	Cursor    mgl32.Vec2
	HasCursor bool
}

// Scene is driven from the thread owning the graphics context: Update then
// Render, once per tick, never overlapping.
type Scene struct {
	device  gpu.Device
	program *gpu.Program
	slots   struct {
		mvp, textured, sampler int32
	}

	opts    Options
	rng     *rand.Rand
	factory factory

	arena   *Arena
	volumes []geom.Volume
	buffers geom.Buffers
	indices gpu.BufferID

	camera *camera.Camera
	mouse  camera.Mouse
	zoom   *camera.Queue

	width, height int
	time          float32

	pending int
	burst   bool
	full    bool
	preset  int
	exit    bool

	stats Stats
}

func New(device gpu.Device, program *gpu.Program, opts Options) *Scene {
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	s := &Scene{
		device:  device,
		opts:    opts,
		rng:     rng,
		arena:   NewArena(opts.Capacity),
		indices: device.GenBuffer(),
		camera:  camera.New(mgl32.Vec3{0, 0, -45}, 0, 0),
		zoom:    camera.NewQueue(opts.ZoomStepsPerTick),
		width:   800,
		height:  600,
	}
	s.camera.Sensitivity = opts.Sensitivity
	s.factory = factory{
		rng:     rng,
		bounds:  opts.Bounds,
		depth:   opts.Depth,
		texture: opts.Texture,
	}
	s.SetProgram(program)
	return s
}

// SetProgram switches the program used for upload and drawing and caches
// its uniform slots.
func (s *Scene) SetProgram(program *gpu.Program) {
	s.program = program
	s.slots.mvp = program.UniformSlot(UniformMVP)
	s.slots.textured = program.UniformSlot(UniformTextured)
	s.slots.sampler = program.UniformSlot(UniformSampler)

	if s.slots.sampler != gpu.NotFound {
		program.Use()
		s.device.Uniform1i(s.slots.sampler, 0)
	}
}

func (s *Scene) Program() *gpu.Program     { return s.program }
func (s *Scene) Camera() *camera.Camera    { return s.camera }
func (s *Scene) Zoom() *camera.Queue       { return s.zoom }
func (s *Scene) Arena() *Arena             { return s.arena }
func (s *Scene) Buffers() *geom.Buffers    { return &s.buffers }
func (s *Scene) Volumes() []geom.Volume    { return s.volumes }
func (s *Scene) Stats() Stats              { return s.stats }
func (s *Scene) Pending() int              { return s.pending }
func (s *Scene) Full() bool                { return s.full }
func (s *Scene) ExitRequested() bool       { return s.exit }
func (s *Scene) Preset() int               { return s.preset }
func (s *Scene) Size() (width, height int) { return s.width, s.height }

// ClearColor is the background for the next render.
func (s *Scene) ClearColor() mgl32.Vec4 {
	if s.full {
		return FullColor
	}
	return Presets[s.preset]
}

// Projection is the perspective for the current viewport.
func (s *Scene) Projection() mgl32.Mat4 {
	aspect := float32(s.width) / float32(max(s.height, 1))
	return mgl32.Perspective(mgl32.DegToRad(s.opts.FOV), aspect, s.opts.Near, s.opts.Far)
}

// Resize updates the viewport; zero sizes from a minimized window are ignored.
func (s *Scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	s.device.Viewport(width, height)
	Logger().Info("viewport resized", "width", width, "height", height)
}

// FocusChanged resets mouse tracking so the cursor jump on refocus is ignored.
func (s *Scene) FocusChanged(focused bool) {
	s.mouse.Reset()
}

// AddVolume appends v to the live set. Once the cap is reached the scene is
// marked full and every later add fails with ErrSceneFull until Clear.
func (s *Scene) AddVolume(v geom.Volume) error {
	if s.full {
		return ErrSceneFull
	}
	if _, err := s.arena.Add(v); err != nil {
		s.markFull()
		return err
	}
	if s.arena.Full() {
		s.markFull()
	}
	return nil
}

// RemoveVolume drops the volume with id from the live set.
func (s *Scene) RemoveVolume(id uuid.UUID) bool {
	return s.arena.Remove(id)
}

func (s *Scene) markFull() {
	if s.full {
		return
	}
	s.full = true
	s.pending = 0
	Logger().Info("scene full, spawning disabled", "objects", s.arena.Len(), "capacity", s.arena.Cap())
}

// QueueSpawn adds n to the pending spawn count.
func (s *Scene) QueueSpawn(n int) {
	if s.full || n <= 0 {
		return
	}
	s.pending += n
}

// TriggerBurst requests a one-shot burst for the next update.
func (s *Scene) TriggerBurst() { s.burst = true }

// Clear drops every volume and re-enables spawning.
func (s *Scene) Clear() {
	s.arena.Clear()
	clear(s.volumes)
	s.volumes = s.volumes[:0]
	s.buffers.Reset()
	s.pending = 0
	s.burst = false
	s.full = false
}

// Apply executes a user command.
func (s *Scene) Apply(cmd Command) {
	speed := s.opts.MoveSpeed
	switch cmd {
	case MoveForward:
		s.camera.Move(speed, 0, 0)
	case MoveBack:
		s.camera.Move(-speed, 0, 0)
	case MoveLeft:
		s.camera.Move(0, -speed, 0)
	case MoveRight:
		s.camera.Move(0, speed, 0)
	case MoveUp:
		s.camera.Move(0, 0, speed)
	case MoveDown:
		s.camera.Move(0, 0, -speed)
	case ZoomIn:
		s.zoom.Push(camera.Nudge{Direction: mgl32.Vec3{0, 0, 1}, Step: s.opts.ZoomStep, Steps: s.opts.ZoomSteps})
	case ZoomOut:
		s.zoom.Push(camera.Nudge{Direction: mgl32.Vec3{0, 0, -1}, Step: s.opts.ZoomStep, Steps: s.opts.ZoomSteps})
	case CancelZoom:
		s.zoom.CancelAll()
	case Preset1, Preset2, Preset3, Preset4:
		s.preset = int(cmd - Preset1)
		Logger().Debug("clear color preset", "preset", s.preset+1)
	case Burst:
		s.TriggerBurst()
	case Spawn:
		s.QueueSpawn(s.opts.SpawnIncrement)
	case ClearScene:
		s.Clear()
	case Exit:
		s.exit = true
	}
}

// Update runs one tick: camera input, flatten and upload, motion and
// transforms, spawning, and finally binds the program for Render.
func (s *Scene) Update(input Input) {
	start := hrtime.Now()

	if input.HasCursor {
		s.camera.Rotate(s.mouse.Delta(input.Cursor))
	}
	s.zoom.Tick(s.camera)

	clear(s.volumes)
	s.volumes = s.arena.Volumes(s.volumes[:0])
	geom.Flatten(&s.buffers, s.volumes)
	s.upload()

	s.advance()
	s.spawn()

	s.program.Use()

	s.stats.Ticks++
	s.stats.Objects = len(s.volumes)
	s.stats.Vertices = s.buffers.VertexCount()
	s.stats.Indices = len(s.buffers.Indices)
	s.stats.Pending = s.pending
	s.stats.Full = s.full
	s.stats.Update = hrtime.Now() - start
}

func (s *Scene) upload() {
	s.program.Upload(AttrPosition, s.buffers.Positions)
	s.program.Upload(AttrColor, s.buffers.Colors)
	s.program.Upload(AttrTexCoord, s.buffers.TexCoords)

	s.device.BindBuffer(gpu.ElementArrayBuffer, s.indices)
	s.device.BufferIndices(gpu.ElementArrayBuffer, s.buffers.Indices)
}

// advance spins and drifts every volume and recomputes its matrices. The
// spin is phase shifted per volume so they drift out of sync over time.
func (s *Scene) advance() {
	rate := max(s.opts.TickRate, 1)
	s.time += 1 / float32(rate)

	viewProjection := s.Projection().Mul4(s.camera.View())
	base := s.opts.Spin
	for i, v := range s.volumes {
		sn, cs := g.Sincos(s.time*0.7 + float32(i)*0.37)
		spin := mgl32.Vec3{
			base * (1 + 0.5*sn),
			base * (1 + 0.5*cs),
			base * 0.5,
		}

		body := v.Object()
		body.Advance(s.rng, spin)
		body.ComputeModel()
		body.Project(viewProjection)
	}
}

func (s *Scene) spawn() {
	if s.burst {
		s.burst = false
		added := 0
		for i := 0; i < s.opts.BurstPairs && !s.full; i++ {
			added += s.addPair(s.factory.Cube, s.factory.Sierpinski)
		}
		Logger().Debug("burst spawn", "added", added, "objects", s.arena.Len())
	}

	if s.pending > 0 && !s.full {
		// an odd remainder spawns only the textured cube
		if s.pending >= 2 {
			s.addPair(s.factory.TexturedCube, s.factory.Sierpinski)
		} else {
			s.addPair(s.factory.TexturedCube, nil)
		}
		s.pending = max(s.pending-2, 0)
	}
}

func (s *Scene) addPair(first, second func() geom.Volume) int {
	added := 0
	for _, build := range [2]func() geom.Volume{first, second} {
		if s.full || build == nil {
			break
		}
		if err := s.AddVolume(build()); err != nil {
			break
		}
		added++
	}
	return added
}

// Render draws the volumes flattened by the last Update. Each volume draws
// its own index range; ranges follow each other in list order.
func (s *Scene) Render() {
	start := hrtime.Now()

	s.device.ClearColor(s.ClearColor())
	s.device.Clear()
	if !s.program.Valid() {
		s.device.Flush()
		s.stats.Render = hrtime.Now() - start
		return
	}

	s.program.Use()
	s.program.EnableVertexAttributes()
	s.device.BindBuffer(gpu.ElementArrayBuffer, s.indices)

	offset := 0
	for _, v := range s.volumes {
		body := v.Object()
		s.device.BindTexture(body.Texture)
		if s.slots.textured != gpu.NotFound {
			textured := float32(0)
			if body.Textured() {
				textured = 1
			}
			s.device.Uniform1f(s.slots.textured, textured)
		}
		if s.slots.mvp != gpu.NotFound {
			s.device.UniformMatrix4(s.slots.mvp, body.MVP)
		}

		count := v.IndexCount()
		s.device.DrawIndexedTriangles(count, offset)
		offset += count
	}

	s.device.BindTexture(0)
	s.program.DisableVertexAttributes()
	s.device.Flush()

	s.stats.Render = hrtime.Now() - start
}
