package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/sync/errgroup"
)

// candidate is a pair that survived the bounds pre-test this tick
type candidate struct {
	pair CollisionPair
	a, b *RigidBody
}

// pairResult is the narrow-phase outcome for one candidate
type pairResult struct {
	contacts  []ContactPoint
	epaCapped bool
	err       error
}

// narrowPhaseConfig is the part of the solver settings pair tests read
type narrowPhaseConfig struct {
	gjkIterations int
	epaIterations int
}

// shapesMayTouch refines the bounds test for two single convex shapes: SAT
// for box against box, closest point for spheres. Composites always pass.
func shapesMayTouch(a, b *RigidBody) bool {
	sa, sb := a.Shape, b.Shape
	if sa.Kind == ShapeComposite || sb.Kind == ShapeComposite {
		return true
	}
	switch {
	case sa.Kind == ShapeBox && sb.Kind == ShapeBox:
		return NewOBB(sa, a.Transform).IntersectsOBB(NewOBB(sb, b.Transform))
	case sa.Kind == ShapeBox:
		center, radius := sb.worldSphere(b.Transform)
		return NewOBB(sa, a.Transform).IntersectsSphere(center, radius)
	case sb.Kind == ShapeBox:
		center, radius := sa.worldSphere(a.Transform)
		return NewOBB(sb, b.Transform).IntersectsSphere(center, radius)
	}
	ca, ra := sa.worldSphere(a.Transform)
	cb, rb := sb.worldSphere(b.Transform)
	return lengthSqr(sub(ca, cb)) <= (ra+rb)*(ra+rb)
}

// testPair runs GJK, EPA and manifold generation over every convex part of
// both bodies. It only reads body state, so candidates may run concurrently.
func testPair(c candidate, cfg narrowPhaseConfig) pairResult {
	var res pairResult
	for _, partA := range c.a.Shape.convexParts() {
		for _, partB := range c.b.Shape.convexParts() {
			ca := Collider{Shape: partA, Transform: c.a.Transform}
			cb := Collider{Shape: partB, Transform: c.b.Transform}

			simplex, hit := GJKSeeded(ca, cb, rl.Vector3{X: 1}, cfg.gjkIterations)
			if !hit {
				continue
			}
			epa := EPA(ca, cb, simplex, cfg.epaIterations)
			if !epa.Converged {
				res.epaCapped = true
			}
			contacts, err := BuildManifold(ca, cb, epa.Normal, epa.Depth)
			if err != nil {
				res.err = err
				continue
			}
			res.contacts = append(res.contacts, contacts...)
		}
	}
	return res
}

// runNarrowPhase tests every candidate. With more than one worker the tests
// fan out over an errgroup; results keep candidate order either way.
func runNarrowPhase(candidates []candidate, cfg narrowPhaseConfig, workers int) []pairResult {
	results := make([]pairResult, len(candidates))
	if workers <= 1 || len(candidates) < 2 {
		for i, c := range candidates {
			results[i] = testPair(c, cfg)
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, c := range candidates {
		g.Go(func() error {
			results[i] = testPair(c, cfg)
			return nil
		})
	}
	g.Wait()
	return results
}
