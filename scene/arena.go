package scene

import (
	"errors"

	"github.com/google/uuid"

	"github.com/adinfit/sierpinski/geom"
)

// DefaultCapacity is the live-object cap.
const DefaultCapacity = 2000

// ErrSceneFull is returned by Add once the arena holds its capacity.
var ErrSceneFull = errors.New("scene full")

// Arena holds the live volumes in slot order up to a fixed capacity. Slots
// freed by Remove are reused before new ones are appended.
type Arena struct {
	slots    []geom.Volume
	free     []int
	live     int
	capacity int
}

func NewArena(capacity int) *Arena {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Arena{
		slots:    make([]geom.Volume, 0, capacity),
		capacity: capacity,
	}
}

// Add stores v and returns its slot, or ErrSceneFull.
func (arena *Arena) Add(v geom.Volume) (int, error) {
	if arena.live >= arena.capacity {
		return -1, ErrSceneFull
	}
	arena.live++

	if n := len(arena.free); n > 0 {
		slot := arena.free[n-1]
		arena.free = arena.free[:n-1]
		arena.slots[slot] = v
		return slot, nil
	}

	arena.slots = append(arena.slots, v)
	return len(arena.slots) - 1, nil
}

// Remove frees the slot holding the volume with the given id.
func (arena *Arena) Remove(id uuid.UUID) bool {
	for slot, v := range arena.slots {
		if v != nil && v.Object().ID == id {
			arena.slots[slot] = nil
			arena.free = append(arena.free, slot)
			arena.live--
			return true
		}
	}
	return false
}

// Clear drops every volume.
func (arena *Arena) Clear() {
	clear(arena.slots)
	arena.slots = arena.slots[:0]
	arena.free = arena.free[:0]
	arena.live = 0
}

func (arena *Arena) Len() int   { return arena.live }
func (arena *Arena) Cap() int   { return arena.capacity }
func (arena *Arena) Full() bool { return arena.live >= arena.capacity }

// Volumes appends the live volumes in slot order to dst.
func (arena *Arena) Volumes(dst []geom.Volume) []geom.Volume {
	for _, v := range arena.slots {
		if v != nil {
			dst = append(dst, v)
		}
	}
	return dst
}
