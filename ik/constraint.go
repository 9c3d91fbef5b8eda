package ik

import (
	"github.com/golang/geo/r3"

	"github.com/fabrik-go/fabrik/spatialmath"
	"github.com/fabrik-go/fabrik/utils"
)

// Constraint restricts a joint's allowed orientation relative to its parent
// link. The constraint set is closed and the solver dispatches on concrete
// type, keeping the inner loop branch-predictable. Application is pure: the
// same inputs always produce the same corrected position.
type Constraint interface {
	isConstraint()
}

// Unconstrained permits any orientation. Link-length enforcement still
// applies; it is equivalent to attaching no constraint at all.
type Unconstrained struct{}

func (Unconstrained) isConstraint() {}

// HingeAngle keeps the angle between a joint's link and its parent link
// within [min, max] radians.
type HingeAngle struct {
	min, max float64
}

// NewHingeAngle builds a hinge constraint from bounds in degrees. Bounds must
// satisfy 0 <= min <= max <= 180.
func NewHingeAngle(minDegrees, maxDegrees float64) (HingeAngle, error) {
	if minDegrees > maxDegrees {
		return HingeAngle{}, NewInvalidConstraintError("hinge min angle exceeds max angle")
	}
	if minDegrees < 0 || maxDegrees > 180 {
		return HingeAngle{}, NewInvalidConstraintError("hinge angles must be within [0, 180] degrees")
	}
	return HingeAngle{min: utils.DegToRad(minDegrees), max: utils.DegToRad(maxDegrees)}, nil
}

func (HingeAngle) isConstraint() {}

// BallAndSocket keeps a joint's link within a cone of the given half-angle
// around its parent link.
type BallAndSocket struct {
	coneHalfAngle float64
}

// NewBallAndSocket builds a cone constraint from a half-angle in degrees,
// which must be within [0, 180].
func NewBallAndSocket(coneHalfAngleDegrees float64) (BallAndSocket, error) {
	if coneHalfAngleDegrees < 0 || coneHalfAngleDegrees > 180 {
		return BallAndSocket{}, NewInvalidConstraintError("cone half-angle must be within [0, 180] degrees")
	}
	return BallAndSocket{coneHalfAngle: utils.DegToRad(coneHalfAngleDegrees)}, nil
}

func (BallAndSocket) isConstraint() {}

// FixedPosition pins a joint to an anchor point, ignoring whatever position a
// pass proposes for it. Used for pinned roots and partially pinned chains.
type FixedPosition struct {
	Anchor r3.Vector
}

func (FixedPosition) isConstraint() {}

// applyConstraint projects a proposed joint position onto the feasible set.
// neighbor is the already-placed adjacent joint for the current pass and
// reference is the direction of the link placed immediately before it, or the
// zero vector when no parent link has been placed yet. The returned position
// is always exactly length away from neighbor, so constraint application
// never reintroduces a link-length violation; FixedPosition wins outright.
//
// A degenerate proposed direction (proposed coincident with neighbor) falls
// back to the parent-link direction, or +Y when there is none, so the link
// still comes out at its full length.
func applyConstraint(c Constraint, proposed, neighbor, reference r3.Vector, length, minNorm float64) r3.Vector {
	if fixed, ok := c.(FixedPosition); ok {
		return fixed.Anchor
	}
	dir := proposed.Sub(neighbor)
	if dir.Norm() < minNorm {
		if reference.Norm() >= minNorm {
			dir = reference
		} else {
			dir = r3.Vector{Y: 1}
		}
	}
	switch cc := c.(type) {
	case HingeAngle:
		dir = clampToCone(dir, reference, cc.min, cc.max, minNorm)
	case BallAndSocket:
		dir = clampToCone(dir, reference, 0, cc.coneHalfAngle, minNorm)
	}
	return neighbor.Add(dir.Normalize().Mul(length))
}

// clampToCone returns dir adjusted so that its angle to reference lies within
// [minAngle, maxAngle]. A zero reference means there is no parent link to
// constrain against and dir passes through unchanged.
func clampToCone(dir, reference r3.Vector, minAngle, maxAngle, minNorm float64) r3.Vector {
	if reference.Norm() < minNorm {
		return dir
	}
	ref := reference.Normalize()
	d := dir.Normalize()
	angle := spatialmath.AngleBetween(d, ref)
	if angle >= minAngle && angle <= maxAngle {
		return d
	}
	limit := utils.ClampF64(angle, minAngle, maxAngle)
	axis := ref.Cross(d)
	if axis.Norm() < minNorm {
		// dir is parallel to the reference; any perpendicular axis gives an
		// equally near point on the cone boundary.
		axis = ref.Ortho()
	}
	return spatialmath.RotateVectorAboutAxis(ref, axis, limit)
}
