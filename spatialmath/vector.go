// Package spatialmath defines spatial mathematical operations on 3D vectors.
//
// All operations use float64. Functions that compare or normalize take an
// explicit epsilon rather than relying on exact floating-point equality.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Float64AlmostEqual compares two float64s and returns whether they differ by
// at most epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// R3VectorAlmostEqual compares two vectors componentwise within epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return math.Abs(a.X-b.X) <= epsilon &&
		math.Abs(a.Y-b.Y) <= epsilon &&
		math.Abs(a.Z-b.Z) <= epsilon
}

// AngleBetween returns the angle in radians between two nonzero vectors,
// in the range [0, pi].
func AngleBetween(v1, v2 r3.Vector) float64 {
	acosInput := v1.Normalize().Dot(v2.Normalize())

	// Account for floating point issues
	if acosInput > 1.0 {
		acosInput = 1.0
	}
	if acosInput < -1.0 {
		acosInput = -1.0
	}
	return math.Acos(acosInput)
}

// RotateVectorAboutAxis rotates v by theta radians about the given axis using
// the quaternion sandwich product. The axis must be nonzero but need not be
// normalized.
func RotateVectorAboutAxis(v, axis r3.Vector, theta float64) r3.Vector {
	u := axis.Normalize()
	s := math.Sin(theta / 2)
	q := quat.Number{Real: math.Cos(theta / 2), Imag: s * u.X, Jmag: s * u.Y, Kmag: s * u.Z}
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	rotated := quat.Mul(q, quat.Mul(p, quat.Conj(q)))
	return r3.Vector{X: rotated.Imag, Y: rotated.Jmag, Z: rotated.Kmag}
}
