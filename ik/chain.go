// Package ik implements the FABRIK (Forward And Backward Reaching Inverse
// Kinematics) solver for a single open kinematic chain of fixed-length links.
//
// A Chain is built once from an initial pose and persists across solves; each
// solve mutates the joint positions in place while the link lengths recorded
// at construction stay fixed for the chain's lifetime. Unreachable targets
// are not errors: the solver straightens the chain toward the target and
// reports Reached == false.
package ik

import "github.com/golang/geo/r3"

// defaultMinLinkLength is the construction-time floor below which two
// consecutive joints are considered coincident and the link degenerate.
const defaultMinLinkLength = 1e-8

// Chain is an ordered sequence of joints connected by fixed-length links.
// A joint's identity is its index; joint 0 is the root and the last joint is
// the end effector. The chain owns its joint storage exclusively and only
// the solver mutates it during an active solve.
type Chain struct {
	name        string
	joints      []r3.Vector
	lengths     []float64
	constraints []Constraint
	rootAnchor  r3.Vector
}

// NewChain builds a chain from an initial pose. It fails if fewer than two
// positions are given or if any two consecutive positions are closer than the
// minimum link length. The root anchor defaults to the first position.
func NewChain(positions []r3.Vector) (*Chain, error) {
	return newChain("", positions, defaultMinLinkLength)
}

func newChain(name string, positions []r3.Vector, minLinkLength float64) (*Chain, error) {
	if len(positions) < 2 {
		return nil, NewChainTooShortError(len(positions))
	}
	joints := make([]r3.Vector, len(positions))
	copy(joints, positions)
	lengths := make([]float64, len(joints)-1)
	for i := 0; i < len(joints)-1; i++ {
		length := joints[i+1].Sub(joints[i]).Norm()
		if length < minLinkLength {
			return nil, NewDegenerateLinkError(i, length, minLinkLength)
		}
		lengths[i] = length
	}
	return &Chain{
		name:        name,
		joints:      joints,
		lengths:     lengths,
		constraints: make([]Constraint, len(joints)),
		rootAnchor:  joints[0],
	}, nil
}

// Name returns the chain's name, which may be empty.
func (c *Chain) Name() string {
	return c.name
}

// NumJoints returns the number of joints in the chain.
func (c *Chain) NumJoints() int {
	return len(c.joints)
}

// LinkLength returns the fixed length of link i, the segment between joints
// i and i+1. Link lengths never change after construction.
func (c *Chain) LinkLength(i int) float64 {
	return c.lengths[i]
}

// LinkLengths returns a copy of all link lengths.
func (c *Chain) LinkLengths() []float64 {
	lengths := make([]float64, len(c.lengths))
	copy(lengths, c.lengths)
	return lengths
}

// TotalReach returns the sum of all link lengths, the upper bound on how far
// the end effector can get from the root.
func (c *Chain) TotalReach() float64 {
	total := 0.
	for _, length := range c.lengths {
		total += length
	}
	return total
}

// JointPosition returns the current position of joint i.
// Solver-facing accessor, no bounds validation.
func (c *Chain) JointPosition(i int) r3.Vector {
	return c.joints[i]
}

// SetJointPosition overwrites the position of joint i.
// Solver-facing accessor, no validation; link lengths are re-enforced by the
// solver at each repositioning step rather than checked here.
func (c *Chain) SetJointPosition(i int, p r3.Vector) {
	c.joints[i] = p
}

// Positions returns a copy of the current joint positions.
func (c *Chain) Positions() []r3.Vector {
	positions := make([]r3.Vector, len(c.joints))
	copy(positions, c.joints)
	return positions
}

// EndEffector returns the position of the last joint.
func (c *Chain) EndEffector() r3.Vector {
	return c.joints[len(c.joints)-1]
}

// RootAnchor returns the position the first joint is pinned to after every
// backward pass.
func (c *Chain) RootAnchor() r3.Vector {
	return c.rootAnchor
}

// SetRootAnchor repins the chain's root, e.g. when the owning entity moves.
func (c *Chain) SetRootAnchor(p r3.Vector) {
	c.rootAnchor = p
}

// Constraint returns the constraint attached to joint i, or nil when the
// joint is unconstrained.
func (c *Chain) Constraint(i int) Constraint {
	return c.constraints[i]
}

// SetConstraint attaches a constraint to joint i. The root joint has no
// parent link, so it only accepts FixedPosition.
func (c *Chain) SetConstraint(i int, constraint Constraint) error {
	if i < 0 || i >= len(c.joints) {
		return NewJointOOBError(i, len(c.joints))
	}
	if i == 0 {
		switch constraint.(type) {
		case HingeAngle, BallAndSocket:
			return NewInvalidConstraintError("root joint has no parent link to constrain against")
		}
	}
	c.constraints[i] = constraint
	return nil
}
