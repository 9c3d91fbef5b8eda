package ik

import (
	"context"
	"sync"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
)

// SolveAll solves each chain toward the target at the same index, running the
// solves concurrently. Chains share no joint storage, so concurrent solves
// yield exactly the results of solving them one at a time; the returned slice
// is index-aligned with the inputs.
//
// The context is consulted before each solve is scheduled. Chains skipped due
// to cancellation keep a zero SolveResult and the cancellation is reported in
// the combined error.
func (s *FABRIKSolver) SolveAll(ctx context.Context, chains []*Chain, targets []r3.Vector) ([]SolveResult, error) {
	if len(chains) != len(targets) {
		return nil, errors.Errorf("got %d chains but %d targets", len(chains), len(targets))
	}

	results := make([]SolveResult, len(chains))
	var activeSolvers sync.WaitGroup
	var solveErrors error

	for i, chain := range chains {
		if err := ctx.Err(); err != nil {
			solveErrors = multierr.Combine(solveErrors, err)
			break
		}

		activeSolvers.Add(1)
		goutils.PanicCapturingGo(func() {
			defer activeSolvers.Done()
			// Each goroutine writes only its own index.
			results[i] = s.Solve(chain, targets[i])
		})
	}

	activeSolvers.Wait()
	return results, solveErrors
}
