package scene

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/adinfit/sierpinski/geom"
	"github.com/adinfit/sierpinski/gpu"
)

// Bounds are the ranges spawned volumes are placed in. Positions are drawn
// from [-Extent, Extent) per axis, rotations from [0, 2π) and scale from
// [MinScale, MaxScale) per axis.
type Bounds struct {
	Extent   float32
	MinScale float32
	MaxScale float32
}

var DefaultBounds = Bounds{
	Extent:   20,
	MinScale: 0.5,
	MaxScale: 2.5,
}

// Contains reports whether p lies within the spawn cube.
func (bounds Bounds) Contains(p mgl32.Vec3) bool {
	for _, v := range p {
		if v < -bounds.Extent || v > bounds.Extent {
			return false
		}
	}
	return true
}

// factory builds randomized volumes.
type factory struct {
	rng     *rand.Rand
	bounds  Bounds
	depth   int
	texture gpu.TextureID
}

func (f *factory) uniform(lo, hi float32) float32 {
	return lo + f.rng.Float32()*(hi-lo)
}

func (f *factory) vec3(lo, hi float32) mgl32.Vec3 {
	return mgl32.Vec3{f.uniform(lo, hi), f.uniform(lo, hi), f.uniform(lo, hi)}
}

func (f *factory) place(body *geom.Body) {
	body.Position = f.vec3(-f.bounds.Extent, f.bounds.Extent)
	body.Rotation = f.vec3(0, 2*math.Pi)
	body.Scale = f.vec3(f.bounds.MinScale, f.bounds.MaxScale)
	body.Drift = geom.NewDrift(f.rng)
}

func (f *factory) Cube() geom.Volume {
	cube := geom.NewCube()
	f.place(&cube.Body)
	return cube
}

func (f *factory) TexturedCube() geom.Volume {
	cube := geom.NewTexturedCube()
	f.place(&cube.Body)
	cube.Texture = f.texture
	return cube
}

func (f *factory) Sierpinski() geom.Volume {
	s := geom.NewUnitSierpinski(f.depth)
	f.place(&s.Body)
	return s
}
