package ik

import (
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
)

const (
	defaultMaxIterations = 20
	// defaultToleranceScale scales the chain's average link length into a
	// convergence tolerance when SolverConfig.Tolerance is left zero.
	defaultToleranceScale = 1e-3
	// defaultMinVectorNorm guards normalization of near-zero directions.
	defaultMinVectorNorm = 1e-9
)

// SolverConfig tunes a FABRIK solve. The zero value selects defaults for
// every field.
type SolverConfig struct {
	// MaxIterations bounds the number of forward/backward sweeps per solve.
	MaxIterations int
	// Tolerance is the end-effector distance to target at or below which a
	// solve counts as converged. Left zero, it is derived per chain as
	// defaultToleranceScale times the average link length.
	Tolerance float64
	// MinVectorNorm is the epsilon below which a direction vector is treated
	// as degenerate instead of being normalized.
	MinVectorNorm float64
}

// SolveResult reports the outcome of a single solve call.
type SolveResult struct {
	// Positions is a snapshot of the joint positions after the solve. The
	// chain itself is also updated in place.
	Positions []r3.Vector
	// Reached is true when the end effector finished within tolerance of the
	// target. An unreachable target yields Reached == false with the chain
	// straightened toward it; that is a documented outcome, not an error.
	Reached bool
	// Iterations is the number of forward/backward sweeps consumed.
	Iterations int
	// Residual is the final end-effector distance to the target.
	Residual float64
}

// FABRIKSolver iteratively drives a chain's end effector toward targets. It
// holds no per-chain state between calls; a solve is a deterministic,
// synchronous function of the chain state, the target, and the config, so
// disjoint chains may be solved concurrently with one solver.
type FABRIKSolver struct {
	cfg    SolverConfig
	logger golog.Logger
}

// NewFABRIKSolver validates the config, fills in defaults for zero fields,
// and returns a ready solver.
func NewFABRIKSolver(logger golog.Logger, cfg SolverConfig) (*FABRIKSolver, error) {
	if cfg.MaxIterations < 0 {
		return nil, NewInvalidSolverConfigError("max iterations must not be negative")
	}
	if cfg.Tolerance < 0 {
		return nil, NewInvalidSolverConfigError("tolerance must not be negative")
	}
	if cfg.MinVectorNorm < 0 {
		return nil, NewInvalidSolverConfigError("min vector norm must not be negative")
	}
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = defaultMaxIterations
	}
	if cfg.MinVectorNorm == 0 {
		cfg.MinVectorNorm = defaultMinVectorNorm
	}
	return &FABRIKSolver{cfg: cfg, logger: logger}, nil
}

// Solve drives the chain's end effector toward target, anchored at the
// chain's root anchor. The chain's joints are updated in place.
func (s *FABRIKSolver) Solve(chain *Chain, target r3.Vector) SolveResult {
	return s.SolveAnchored(chain, target, chain.RootAnchor())
}

// SolveAnchored is Solve with an explicit root anchor. After the call the
// first joint is at root regardless of whether the target was reached.
func (s *FABRIKSolver) SolveAnchored(chain *Chain, target, root r3.Vector) SolveResult {
	tolerance := s.tolerance(chain)

	if root.Sub(target).Norm() > chain.TotalReach() {
		// Best effort for an out-of-range target: straighten every link
		// toward it in a single pass.
		s.stretchTowardTarget(chain, root, target)
		residual := chain.EndEffector().Sub(target).Norm()
		s.logger.Debugw("target out of reach, straightened chain toward it",
			"chain", chain.Name(), "residual", residual)
		return SolveResult{
			Positions:  chain.Positions(),
			Reached:    false,
			Iterations: 1,
			Residual:   residual,
		}
	}

	for iteration := 0; iteration < s.cfg.MaxIterations; iteration++ {
		s.forwardPass(chain, target)
		s.backwardPass(chain, root)

		residual := chain.EndEffector().Sub(target).Norm()
		if residual <= tolerance {
			return SolveResult{
				Positions:  chain.Positions(),
				Reached:    true,
				Iterations: iteration + 1,
				Residual:   residual,
			}
		}
	}

	residual := chain.EndEffector().Sub(target).Norm()
	return SolveResult{
		Positions:  chain.Positions(),
		Reached:    residual <= tolerance,
		Iterations: s.cfg.MaxIterations,
		Residual:   residual,
	}
}

// tolerance resolves the convergence tolerance for a chain, deriving it from
// the average link length when the config leaves it zero.
func (s *FABRIKSolver) tolerance(chain *Chain) float64 {
	if s.cfg.Tolerance > 0 {
		return s.cfg.Tolerance
	}
	return defaultToleranceScale * chain.TotalReach() / float64(chain.NumJoints()-1)
}

// forwardPass pins the end effector to the target and walks toward the root,
// repositioning each joint at its fixed link length from its successor and
// applying its constraint relative to the link placed in the previous step.
func (s *FABRIKSolver) forwardPass(chain *Chain, target r3.Vector) {
	n := chain.NumJoints()
	chain.SetJointPosition(n-1, target)
	for i := n - 2; i >= 0; i-- {
		successor := chain.JointPosition(i + 1)
		var reference r3.Vector
		if i+2 < n {
			reference = successor.Sub(chain.JointPosition(i + 2))
		}
		corrected := applyConstraint(
			chain.Constraint(i), chain.JointPosition(i), successor, reference,
			chain.LinkLength(i), s.cfg.MinVectorNorm)
		chain.SetJointPosition(i, corrected)
	}
}

// backwardPass pins the root back to its anchor and walks toward the end
// effector, mirroring the forward pass.
func (s *FABRIKSolver) backwardPass(chain *Chain, root r3.Vector) {
	chain.SetJointPosition(0, root)
	n := chain.NumJoints()
	for i := 1; i < n; i++ {
		predecessor := chain.JointPosition(i - 1)
		var reference r3.Vector
		if i >= 2 {
			reference = predecessor.Sub(chain.JointPosition(i - 2))
		}
		corrected := applyConstraint(
			chain.Constraint(i), chain.JointPosition(i), predecessor, reference,
			chain.LinkLength(i-1), s.cfg.MinVectorNorm)
		chain.SetJointPosition(i, corrected)
	}
}

// stretchTowardTarget lays the chain out in a straight line from root toward
// the target, each link at its fixed length.
func (s *FABRIKSolver) stretchTowardTarget(chain *Chain, root, target r3.Vector) {
	dir := target.Sub(root).Normalize()
	chain.SetJointPosition(0, root)
	for i := 1; i < chain.NumJoints(); i++ {
		chain.SetJointPosition(i, chain.JointPosition(i-1).Add(dir.Mul(chain.LinkLength(i-1))))
	}
}
