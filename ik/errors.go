package ik

import "github.com/pkg/errors"

// NewChainTooShortError returns an error indicating that a chain was
// constructed with fewer than two joints.
func NewChainTooShortError(numJoints int) error {
	return errors.Errorf("invalid chain: need at least 2 joints, got %d", numJoints)
}

// NewDegenerateLinkError returns an error indicating that two consecutive
// initial joint positions are too close to define a link.
func NewDegenerateLinkError(link int, length, minLength float64) error {
	return errors.Errorf("invalid chain: link %d has length %g, below minimum %g", link, length, minLength)
}

// NewJointOOBError returns an error indicating a joint index outside the chain.
func NewJointOOBError(joint, numJoints int) error {
	return errors.Errorf("joint index %d out of bounds for chain with %d joints", joint, numJoints)
}

// NewInvalidConstraintError returns an error indicating that a constraint was
// misconfigured. Constraint parameters are validated at construction so a bad
// configuration never reaches the solver's inner loop.
func NewInvalidConstraintError(reason string) error {
	return errors.Errorf("invalid constraint: %s", reason)
}

// NewUnsupportedConstraintError returns an error for an unknown constraint
// type string in a chain config.
func NewUnsupportedConstraintError(constraintType string) error {
	return errors.Errorf("unsupported constraint type %q", constraintType)
}

// NewInvalidSolverConfigError returns an error indicating that a solver was
// created with out-of-range configuration values.
func NewInvalidSolverConfigError(reason string) error {
	return errors.Errorf("invalid solver config: %s", reason)
}
