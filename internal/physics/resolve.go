package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// tangentSlipEpsilon is the squared tangential speed treated as no slip
const tangentSlipEpsilon = 1e-6

// effectiveMassTerm is the denominator of an impulse along dir applied at rA and rB
func effectiveMassTerm(a, b *RigidBody, rA, rB, dir rl.Vector3) float32 {
	denom := a.InverseMass() + b.InverseMass()
	denom += dot(dir, cross(a.applyInverseInertia(cross(rA, dir)), rA))
	denom += dot(dir, cross(b.applyInverseInertia(cross(rB, dir)), rB))
	return denom
}

func frictionCoefficient(a, b *RigidBody, slipping bool) float32 {
	if slipping {
		return math32.Sqrt(a.DynamicFriction*a.DynamicFriction + b.DynamicFriction*b.DynamicFriction)
	}
	return math32.Sqrt(a.StaticFriction*a.StaticFriction + b.StaticFriction*b.StaticFriction)
}

// resolveContact applies the normal and friction impulses for one contact and
// nudges both bodies apart. Friction reads the velocities captured before the
// normal impulse. It returns false when the contact was skipped.
func (s *Solver) resolveContact(a, b *RigidBody, c ContactPoint) bool {
	invMassA, invMassB := a.InverseMass(), b.InverseMass()
	if invMassA+invMassB == 0 {
		return false
	}

	n := c.Normal
	rA := sub(c.Location, a.CenterOfMass())
	rB := sub(c.Location, b.CenterOfMass())
	relVel := sub(b.PointVelocity(rB), a.PointVelocity(rA))
	velAlongNormal := dot(relVel, n)
	if velAlongNormal > 0 {
		return false
	}

	e := math32.Min(a.Bounciness, b.Bounciness)
	j := -(1 + e) * velAlongNormal / effectiveMassTerm(a, b, rA, rB, n)
	impulse := scale(n, j)
	a.applyImpulse(negate(impulse), rA)
	b.applyImpulse(impulse, rB)

	tangent := sub(relVel, scale(n, velAlongNormal))
	slipping := lengthSqr(tangent) >= tangentSlipEpsilon
	mu := frictionCoefficient(a, b, slipping)
	if slipping {
		tangent = normalize(tangent)
		maxFriction := math32.Abs(mu * j)
		jt := dot(negate(relVel), tangent) / effectiveMassTerm(a, b, rA, rB, tangent)
		jt = clamp(jt, -maxFriction, maxFriction)
		friction := scale(tangent, jt)
		a.applyImpulse(negate(friction), rA)
		b.applyImpulse(friction, rB)
	}

	correction := positionalCorrection(c, invMassA, invMassB, s.cfg.Slop, s.cfg.CorrectionPercent)
	if invMassA > 0 {
		a.Transform.Position = sub(a.Transform.Position, scale(correction, invMassA))
	}
	if invMassB > 0 {
		b.Transform.Position = add(b.Transform.Position, scale(correction, invMassB))
	}
	return true
}

// positionalCorrection is the Baumgarte push for one contact, before it is
// scaled by each body's inverse mass.
func positionalCorrection(c ContactPoint, invMassA, invMassB, slop, percent float32) rl.Vector3 {
	invSum := invMassA + invMassB
	if invSum == 0 {
		return rl.Vector3{}
	}
	excess := math32.Max(c.PenetrationDepth-slop, 0)
	return scale(c.Normal, excess/invSum*percent)
}
