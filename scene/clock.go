package scene

// Clock converts wall time into fixed update ticks.
type Clock struct {
	Step       float64 // seconds per tick
	MaxCatchUp int     // ticks run at most per Advance; the rest is dropped

	last    float64
	backlog float64
	started bool
}

func NewClock(rate int) *Clock {
	if rate <= 0 {
		rate = 60
	}
	return &Clock{Step: 1 / float64(rate), MaxCatchUp: 5}
}

// Advance moves the clock to now (seconds) and returns how many ticks are due.
func (clock *Clock) Advance(now float64) int {
	if !clock.started {
		clock.last, clock.started = now, true
		return 0
	}
	if now > clock.last {
		clock.backlog += now - clock.last
	}
	clock.last = now

	ticks := int(clock.backlog / clock.Step)
	clock.backlog -= float64(ticks) * clock.Step
	if ticks > clock.MaxCatchUp {
		ticks = clock.MaxCatchUp
	}
	return ticks
}
