package ik

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/fabrik-go/fabrik/spatialmath"
	"github.com/fabrik-go/fabrik/utils"
)

func TestConstraintConstructionValidation(t *testing.T) {
	_, err := NewHingeAngle(30, 10)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewHingeAngle(-5, 10)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewHingeAngle(0, 190)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewHingeAngle(10, 90)
	test.That(t, err, test.ShouldBeNil)

	_, err = NewBallAndSocket(-1)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewBallAndSocket(200)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewBallAndSocket(45)
	test.That(t, err, test.ShouldBeNil)
}

func TestApplyConstraintRescalesToLinkLength(t *testing.T) {
	// unconstrained application is pure repositioning at the link length
	got := applyConstraint(nil, r3.Vector{X: 2}, r3.Vector{}, r3.Vector{}, 1, defaultMinVectorNorm)
	test.That(t, spatialmath.R3VectorAlmostEqual(got, r3.Vector{X: 1}, 1e-12), test.ShouldBeTrue)

	got = applyConstraint(Unconstrained{}, r3.Vector{X: 2}, r3.Vector{}, r3.Vector{}, 1, defaultMinVectorNorm)
	test.That(t, spatialmath.R3VectorAlmostEqual(got, r3.Vector{X: 1}, 1e-12), test.ShouldBeTrue)
}

func TestApplyConstraintDegenerateDirection(t *testing.T) {
	// a proposed position coincident with its neighbor falls back to the
	// parent-link direction at the full link length
	neighbor := r3.Vector{X: 1, Y: 1}
	got := applyConstraint(nil, neighbor, neighbor, r3.Vector{X: 1}, 1, defaultMinVectorNorm)
	test.That(t, spatialmath.R3VectorAlmostEqual(got, r3.Vector{X: 2, Y: 1}, 1e-12), test.ShouldBeTrue)

	// with no parent link placed either, +Y stands in
	got = applyConstraint(nil, neighbor, neighbor, r3.Vector{}, 2, defaultMinVectorNorm)
	test.That(t, spatialmath.R3VectorAlmostEqual(got, r3.Vector{X: 1, Y: 3}, 1e-12), test.ShouldBeTrue)

	// either way the link keeps its length
	test.That(t, got.Sub(neighbor).Norm(), test.ShouldAlmostEqual, 2, 1e-12)
}

func TestApplyConstraintFixedPosition(t *testing.T) {
	anchor := r3.Vector{X: 7, Y: -2, Z: 3}
	got := applyConstraint(FixedPosition{Anchor: anchor}, r3.Vector{X: 100}, r3.Vector{}, r3.Vector{}, 1, defaultMinVectorNorm)
	test.That(t, got, test.ShouldResemble, anchor)
}

func TestApplyConstraintBallAndSocket(t *testing.T) {
	ball, err := NewBallAndSocket(30)
	test.That(t, err, test.ShouldBeNil)
	neighbor := r3.Vector{}
	reference := r3.Vector{X: 1}

	// a 90 degree bend gets clamped onto the 30 degree cone boundary
	got := applyConstraint(ball, r3.Vector{Y: 1}, neighbor, reference, 2, defaultMinVectorNorm)
	test.That(t, got.Norm(), test.ShouldAlmostEqual, 2, 1e-12)
	test.That(t, spatialmath.AngleBetween(got.Sub(neighbor), reference), test.ShouldAlmostEqual, utils.DegToRad(30), 1e-9)
	// the clamp stays in the plane spanned by the reference and the proposal
	test.That(t, got.Z, test.ShouldAlmostEqual, 0, 1e-12)
	test.That(t, got.Y, test.ShouldBeGreaterThan, 0)

	// a bend already inside the cone passes through, rescaled only
	inside := r3.Vector{X: math.Cos(utils.DegToRad(20)), Y: math.Sin(utils.DegToRad(20))}
	got = applyConstraint(ball, inside, neighbor, reference, 3, defaultMinVectorNorm)
	test.That(t, spatialmath.R3VectorAlmostEqual(got, inside.Mul(3), 1e-9), test.ShouldBeTrue)

	// without a placed parent link there is nothing to clamp against
	got = applyConstraint(ball, r3.Vector{Y: 1}, neighbor, r3.Vector{}, 2, defaultMinVectorNorm)
	test.That(t, spatialmath.R3VectorAlmostEqual(got, r3.Vector{Y: 2}, 1e-12), test.ShouldBeTrue)
}

func TestApplyConstraintHingeMinAngle(t *testing.T) {
	hinge, err := NewHingeAngle(45, 90)
	test.That(t, err, test.ShouldBeNil)
	neighbor := r3.Vector{}
	reference := r3.Vector{X: 1}

	// a straight continuation violates the 45 degree minimum and is pushed
	// out onto it; the axis choice is arbitrary but the angle is not
	got := applyConstraint(hinge, r3.Vector{X: 1}, neighbor, reference, 1, defaultMinVectorNorm)
	test.That(t, got.Norm(), test.ShouldAlmostEqual, 1, 1e-12)
	test.That(t, spatialmath.AngleBetween(got.Sub(neighbor), reference), test.ShouldAlmostEqual, utils.DegToRad(45), 1e-9)

	// a bend beyond the max gets pulled back onto it
	got = applyConstraint(hinge, r3.Vector{X: -1, Y: 0.1}, neighbor, reference, 1, defaultMinVectorNorm)
	test.That(t, spatialmath.AngleBetween(got.Sub(neighbor), reference), test.ShouldAlmostEqual, utils.DegToRad(90), 1e-9)

	// in range passes through
	got = applyConstraint(hinge, r3.Vector{X: 1, Y: 1}, neighbor, reference, 1, defaultMinVectorNorm)
	test.That(t, spatialmath.AngleBetween(got.Sub(neighbor), reference), test.ShouldAlmostEqual, utils.DegToRad(45), 1e-9)
}
