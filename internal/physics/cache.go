package physics

import (
	"cmp"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultCacheTolerance is how far a contact may drift and still match its cached twin
const DefaultCacheTolerance = 0.1

// CollisionPair is an unordered pair of bodies. NewCollisionPair stores the
// lower handle first so (a, b) and (b, a) are the same map key.
type CollisionPair struct {
	A, B Handle
}

func NewCollisionPair(a, b Handle) CollisionPair {
	if b.less(a) {
		a, b = b, a
	}
	return CollisionPair{A: a, B: b}
}

func (p CollisionPair) Has(h Handle) bool {
	return p.A == h || p.B == h
}

// Other returns the body paired with h
func (p CollisionPair) Other(h Handle) Handle {
	if p.A == h {
		return p.B
	}
	return p.A
}

func comparePairs(x, y CollisionPair) int {
	if c := cmp.Compare(x.A.index, y.A.index); c != 0 {
		return c
	}
	if c := cmp.Compare(x.A.generation, y.A.generation); c != 0 {
		return c
	}
	if c := cmp.Compare(x.B.index, y.B.index); c != 0 {
		return c
	}
	return cmp.Compare(x.B.generation, y.B.generation)
}

// AreContactsValidInCache reports whether fresh matches cached: same count and
// every fresh contact within tolerance of some cached one.
func AreContactsValidInCache(cached, fresh []ContactPoint, tolerance float32) bool {
	if len(cached) == 0 || len(cached) != len(fresh) {
		return false
	}
	for _, f := range fresh {
		found := false
		for _, c := range cached {
			if rl.Vector3Distance(f.Location, c.Location) <= tolerance {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// contactCache remembers the last manifold of each touching pair
type contactCache struct {
	tolerance float32
	entries   map[CollisionPair][]ContactPoint
	hits      int
}

func newContactCache(tolerance float32) *contactCache {
	return &contactCache{tolerance: tolerance, entries: make(map[CollisionPair][]ContactPoint)}
}

// resolve returns the contacts to use this tick. On a hit the cached
// locations are kept and each takes the normal and depth of its nearest fresh
// contact, which stops resting contacts from wandering between ticks.
func (c *contactCache) resolve(pair CollisionPair, fresh []ContactPoint) []ContactPoint {
	cached := c.entries[pair]
	if AreContactsValidInCache(cached, fresh, c.tolerance) {
		c.hits++
		for i := range cached {
			f := nearestContact(fresh, cached[i].Location)
			cached[i].Normal = f.Normal
			cached[i].PenetrationDepth = f.PenetrationDepth
		}
		return cached
	}
	stored := append([]ContactPoint(nil), fresh...)
	c.entries[pair] = stored
	return stored
}

func nearestContact(contacts []ContactPoint, p rl.Vector3) ContactPoint {
	best := contacts[0]
	bestDist := rl.Vector3Distance(best.Location, p)
	for _, c := range contacts[1:] {
		if d := rl.Vector3Distance(c.Location, p); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// retain drops every pair not in touching
func (c *contactCache) retain(touching map[CollisionPair]bool) {
	for pair := range c.entries {
		if !touching[pair] {
			delete(c.entries, pair)
		}
	}
}

func (c *contactCache) forget(h Handle) {
	for pair := range c.entries {
		if pair.Has(h) {
			delete(c.entries, pair)
		}
	}
}
