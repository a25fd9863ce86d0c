package physics

import "fmt"

// Handle identifies a body owned by a Solver. The generation changes each
// time a slot is reused, so a handle to a removed body never resolves again.
// The zero Handle is never issued.
type Handle struct {
	index      uint32
	generation uint32
}

func (h Handle) IsZero() bool {
	return h.generation == 0
}

func (h Handle) String() string {
	return fmt.Sprintf("body#%d.%d", h.index, h.generation)
}

func (h Handle) less(o Handle) bool {
	if h.index != o.index {
		return h.index < o.index
	}
	return h.generation < o.generation
}

type slot struct {
	body       *RigidBody
	generation uint32
	active     bool
}

// arena stores bodies by index and recycles freed slots
type arena struct {
	slots []slot
	free  []uint32
}

func (a *arena) insert(body *RigidBody) Handle {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.body = body
		s.active = false
		return Handle{index: idx, generation: s.generation}
	}
	a.slots = append(a.slots, slot{body: body, generation: 1})
	return Handle{index: uint32(len(a.slots) - 1), generation: 1}
}

func (a *arena) get(h Handle) (*slot, bool) {
	if h.IsZero() || int(h.index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[h.index]
	if s.body == nil || s.generation != h.generation {
		return nil, false
	}
	return s, true
}

func (a *arena) remove(h Handle) bool {
	s, ok := a.get(h)
	if !ok {
		return false
	}
	s.body = nil
	s.active = false
	s.generation++
	a.free = append(a.free, h.index)
	return true
}

func (a *arena) len() int {
	return len(a.slots) - len(a.free)
}
