package physics

import (
	"fmt"
	"log/slog"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"

	"impulse3d/internal/config"
	"impulse3d/internal/engine"
)

// Contact is delivered to OnContact for every contact the narrow phase
// generates. Resolved is false when the solver skipped it, e.g. because the
// bodies were already separating.
type Contact struct {
	Pair     CollisionPair
	Point    ContactPoint
	Resolved bool
}

// TickStats describes the last tick, for tooling
type TickStats struct {
	Bodies     int
	Candidates int // pairs that passed the bounds test
	Colliding  int // pairs with at least one contact
	Contacts   int
	Resolved   int
	CacheHits  int
	Sleeping   int
}

// Solver owns every rigid body and steps them at a fixed rate. It is not safe
// for concurrent use.
type Solver struct {
	cfg    config.Physics
	logger *slog.Logger

	bodies   arena
	active   []Handle
	timeLeft float32

	touching map[CollisionPair]bool
	cache    *contactCache
	stats    TickStats

	// OnContact fires once per generated contact, in resolution order
	OnContact engine.Event[Contact]
	// OnCollisionEnter fires on the first tick a pair touches
	OnCollisionEnter engine.Event[CollisionPair]
	// OnCollisionExit fires on the first tick a touching pair separates
	OnCollisionExit engine.Event[CollisionPair]
}

// NewSolver builds a solver from cfg. An invalid cfg falls back to defaults
// with a warning rather than producing a solver that divides by zero.
func NewSolver(cfg config.Physics) *Solver {
	s := &Solver{
		cfg:      cfg,
		logger:   slog.Default().With("component", "physics"),
		touching: make(map[CollisionPair]bool),
	}
	if err := cfg.Validate(); err != nil {
		s.logger.Warn("invalid physics config, using defaults", "error", err)
		s.cfg = config.Default()
	}
	if s.cfg.ContactCache {
		s.cache = newContactCache(s.cfg.CacheTolerance)
	}
	return s
}

func (s *Solver) SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	s.logger = l.With("component", "physics")
}

func (s *Solver) Config() config.Physics {
	return s.cfg
}

func (s *Solver) Stats() TickStats {
	return s.stats
}

// Gravity is the configured world gravity
func (s *Solver) Gravity() rl.Vector3 {
	g := s.cfg.Gravity
	return rl.Vector3{X: g[0], Y: g[1], Z: g[2]}
}

// CreateRigidBody stores a new body. It takes no part in the simulation until
// AddRigidBody is called with the returned handle.
func (s *Solver) CreateRigidBody(t *engine.Transform, shape Shape, gravity rl.Vector3, isStatic bool, mass float32) (Handle, error) {
	body, err := NewRigidBody(t, shape, gravity, isStatic, mass)
	if err != nil {
		return Handle{}, err
	}
	return s.bodies.insert(body), nil
}

// AddRigidBody registers a created body with the active list. Adding an
// already active body does nothing.
func (s *Solver) AddRigidBody(h Handle) error {
	slot, ok := s.bodies.get(h)
	if !ok {
		return fmt.Errorf("add %v: %w", h, ErrUnknownHandle)
	}
	if slot.active {
		return nil
	}
	slot.active = true
	s.active = append(s.active, h)
	if n := len(s.active); n%100 == 0 {
		s.logger.Debug("active bodies", "count", n)
	}
	return nil
}

// RemoveRigidBody destroys a body. Its handle, and every pair holding it, is
// invalid afterwards.
func (s *Solver) RemoveRigidBody(h Handle) error {
	if !s.bodies.remove(h) {
		return fmt.Errorf("remove %v: %w", h, ErrUnknownHandle)
	}
	s.active = slices.DeleteFunc(s.active, func(a Handle) bool { return a == h })
	for pair := range s.touching {
		if pair.Has(h) {
			delete(s.touching, pair)
			// Whatever rested on the removed body has to fall again
			if slot, ok := s.bodies.get(pair.Other(h)); ok {
				slot.body.Wake()
			}
		}
	}
	if s.cache != nil {
		s.cache.forget(h)
	}
	return nil
}

func (s *Solver) Body(h Handle) (*RigidBody, error) {
	slot, ok := s.bodies.get(h)
	if !ok {
		return nil, fmt.Errorf("body %v: %w", h, ErrUnknownHandle)
	}
	return slot.body, nil
}

// Active returns the handles of simulated bodies in registration order
func (s *Solver) Active() []Handle {
	return slices.Clone(s.active)
}

// BodyCount is the number of stored bodies, active or not
func (s *Solver) BodyCount() int {
	return s.bodies.len()
}

// Update adds frameDelta to the accumulator and runs as many fixed ticks as
// it covers. The remainder carries over to the next call.
func (s *Solver) Update(frameDelta float32) int {
	s.timeLeft += frameDelta
	ticks := 0
	for s.timeLeft >= s.cfg.Tick {
		s.Tick()
		s.timeLeft -= s.cfg.Tick
		ticks++
	}
	return ticks
}

// Tick advances the simulation by exactly one fixed step
func (s *Solver) Tick() {
	dt := s.cfg.Tick
	bodies := make([]*RigidBody, len(s.active))
	for i, h := range s.active {
		slot, _ := s.bodies.get(h)
		bodies[i] = slot.body
		slot.body.ApplyGravity()
		slot.body.Integrate(dt, s.cfg.RestVelocity)
	}

	candidates := s.broadPhase(bodies)
	results := runNarrowPhase(candidates, narrowPhaseConfig{
		gjkIterations: s.cfg.GJKMaxIterations,
		epaIterations: s.cfg.EPAMaxIterations,
	}, s.cfg.Workers)

	stats := TickStats{Bodies: len(bodies), Candidates: len(candidates)}
	if s.cache != nil {
		s.cache.hits = 0
	}
	touching := make(map[CollisionPair]bool)
	var entered []CollisionPair

	for i, res := range results {
		c := candidates[i]
		if res.epaCapped {
			s.logger.Warn("EPA hit its iteration cap, using closest face found",
				"a", c.pair.A, "b", c.pair.B, "cap", s.cfg.EPAMaxIterations)
		}
		if res.err != nil {
			s.logger.Warn("skipping contact manifold", "a", c.pair.A, "b", c.pair.B, "error", res.err)
		}
		if len(res.contacts) == 0 {
			continue
		}

		touching[c.pair] = true
		if !s.touching[c.pair] {
			entered = append(entered, c.pair)
		}
		if s.cfg.Sleep {
			wakeOnContact(c.a, c.b, s.cfg.SleepVelocity)
		}

		contacts := res.contacts
		if s.cache != nil {
			contacts = s.cache.resolve(c.pair, contacts)
		}
		stats.Colliding++
		stats.Contacts += len(contacts)
		for _, contact := range contacts {
			resolved := s.resolveContact(c.a, c.b, contact)
			if resolved {
				stats.Resolved++
			}
			s.OnContact.Invoke(Contact{Pair: c.pair, Point: contact, Resolved: resolved})
		}
	}

	if s.cfg.Sleep {
		for _, b := range bodies {
			b.updateSleep(s.cfg.SleepVelocity, s.cfg.SleepTicks)
			if b.IsSleeping {
				stats.Sleeping++
			}
		}
		s.keepRestingPairs(touching)
	}

	if s.cache != nil {
		s.cache.retain(touching)
		stats.CacheHits = s.cache.hits
	}
	s.stats = stats
	s.dispatchCollisionEvents(entered, touching)
}

// broadPhase tests every pair of active bodies by world bounds, then by
// shapesMayTouch. Pairs where both bodies rest (static or asleep) are never
// candidates.
func (s *Solver) broadPhase(bodies []*RigidBody) []candidate {
	bounds := make([]AABB, len(bodies))
	for i, b := range bodies {
		bounds[i] = b.Shape.Bounds(b.Transform)
	}

	var out []candidate
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			if a.resting() && b.resting() {
				continue
			}
			if !bounds[i].Intersects(bounds[j]) || !shapesMayTouch(a, b) {
				continue
			}
			out = append(out, candidate{pair: NewCollisionPair(s.active[i], s.active[j]), a: a, b: b})
		}
	}
	return out
}

// wakeOnContact wakes a sleeping body hit by one still moving above speed
func wakeOnContact(a, b *RigidBody, speed float32) {
	if a.IsSleeping && b.movingFaster(speed) {
		a.Wake()
	}
	if b.IsSleeping && a.movingFaster(speed) {
		b.Wake()
	}
}

// keepRestingPairs carries over touching pairs the broad phase skipped
// because both bodies rest, so falling asleep does not fire an exit.
func (s *Solver) keepRestingPairs(touching map[CollisionPair]bool) {
	for pair := range s.touching {
		if touching[pair] {
			continue
		}
		a, okA := s.bodies.get(pair.A)
		b, okB := s.bodies.get(pair.B)
		if okA && okB && a.body.resting() && b.body.resting() {
			touching[pair] = true
		}
	}
}

// dispatchCollisionEvents compares this tick's touching pairs with the last
// tick's. Exits are sent in handle order.
func (s *Solver) dispatchCollisionEvents(entered []CollisionPair, touching map[CollisionPair]bool) {
	var exited []CollisionPair
	for pair := range s.touching {
		if !touching[pair] {
			exited = append(exited, pair)
		}
	}
	slices.SortFunc(exited, comparePairs)

	s.touching = touching
	for _, pair := range entered {
		s.OnCollisionEnter.Invoke(pair)
	}
	for _, pair := range exited {
		s.OnCollisionExit.Invoke(pair)
	}
}
