package geom

import (
	"math/rand/v2"

	"github.com/adinfinit/g"
)

// DriftPatterns is the number of motion rules a volume can be given.
const DriftPatterns = 7

// driftAxes are the axes each pattern wanders along.
var driftAxes = [DriftPatterns]g.Vec3{
	g.V3(1, 0, 0),
	g.V3(0, 1, 0),
	g.V3(0, 0, 1),
	g.V3(1, 1, 0),
	g.V3(1, 0, 1),
	g.V3(0, 1, 1),
	g.V3(1, 1, 1),
}

// Drift is a per-volume stochastic motion rule chosen at construction.
// The zero value does not move.
type Drift struct {
	Pattern int
	Speed   float32
	Sign    float32
}

// NewDrift picks a random pattern, speed and heading.
func NewDrift(rng *rand.Rand) Drift {
	sign := float32(1)
	if rng.IntN(2) == 0 {
		sign = -1
	}
	return Drift{
		Pattern: rng.IntN(DriftPatterns),
		Speed:   0.002 + rng.Float32()*0.01,
		Sign:    sign,
	}
}

// Step returns the next displacement. Each active axis moves by a random
// amount in [-0.5, 1)×Speed, so volumes wander but trend along Sign.
func (drift Drift) Step(rng *rand.Rand) g.Vec3 {
	if drift.Speed == 0 {
		return g.Vec3{}
	}
	jitter := g.V3(rng.Float32(), rng.Float32(), rng.Float32()).Mul(1.5).Sub(g.V3(0.5, 0.5, 0.5))
	axis := driftAxes[drift.Pattern%DriftPatterns]
	return jitter.Scale(axis).Mul(drift.Speed * drift.Sign)
}
