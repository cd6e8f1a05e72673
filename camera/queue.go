package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Nudge moves the camera Steps times by Step along Direction, given in the
// camera basis: X right, Y up, Z forward.
type Nudge struct {
	Direction mgl32.Vec3
	Step      float32
	Steps     int
}

// Ticket identifies a pushed nudge for cancellation.
type Ticket uint64

type pending struct {
	ticket Ticket
	nudge  Nudge
	done   int
}

// Queue serializes camera nudges. Producers Push from any goroutine; the
// owner of the camera calls Tick once per update, which applies up to
// PerTick steps, oldest nudge first.
type Queue struct {
	PerTick int

	mu      sync.Mutex
	next    Ticket
	pending []pending
}

func NewQueue(perTick int) *Queue {
	return &Queue{PerTick: max(perTick, 1)}
}

func (queue *Queue) Push(nudge Nudge) Ticket {
	queue.mu.Lock()
	defer queue.mu.Unlock()

	queue.next++
	if nudge.Steps > 0 {
		queue.pending = append(queue.pending, pending{ticket: queue.next, nudge: nudge})
	}
	return queue.next
}

// Cancel drops the remaining steps of ticket. It reports whether the nudge
// was still pending.
func (queue *Queue) Cancel(ticket Ticket) bool {
	queue.mu.Lock()
	defer queue.mu.Unlock()

	for i, p := range queue.pending {
		if p.ticket == ticket {
			queue.pending = append(queue.pending[:i], queue.pending[i+1:]...)
			return true
		}
	}
	return false
}

func (queue *Queue) CancelAll() {
	queue.mu.Lock()
	defer queue.mu.Unlock()
	queue.pending = queue.pending[:0]
}

// Len returns the number of unfinished nudges.
func (queue *Queue) Len() int {
	queue.mu.Lock()
	defer queue.mu.Unlock()
	return len(queue.pending)
}

// Tick applies up to PerTick steps to camera and returns how many it applied.
func (queue *Queue) Tick(camera *Camera) int {
	queue.mu.Lock()
	defer queue.mu.Unlock()

	applied := 0
	for applied < queue.PerTick && len(queue.pending) > 0 {
		head := &queue.pending[0]
		n := min(queue.PerTick-applied, head.nudge.Steps-head.done)

		d := head.nudge.Direction.Mul(head.nudge.Step * float32(n))
		camera.Move(d.Z(), d.X(), d.Y())

		head.done += n
		applied += n
		if head.done >= head.nudge.Steps {
			queue.pending = queue.pending[1:]
		}
	}
	return applied
}
