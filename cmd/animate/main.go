// Package main is a command that animates a chain chasing a target orbiting
// its base, solving every frame and logging the per-frame results. It stands
// in for the animation driver a rendering layer would provide.
package main

import (
	"flag"
	"math"
	"time"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"

	"github.com/fabrik-go/fabrik/ik"
)

func main() {
	frames := flag.Int("frames", 120, "number of frames to simulate")
	fps := flag.Int("fps", 30, "frames per second")
	radius := flag.Float64("radius", 2.5, "orbit radius of the target")
	configFile := flag.String("config", "", "optional chain config JSON file")
	flag.Parse()

	logger := golog.NewDevelopmentLogger("animate")

	var chain *ik.Chain
	var err error
	if *configFile != "" {
		chain, err = ik.ParseJSONFile(*configFile, "")
	} else {
		chain, err = ik.NewChain([]r3.Vector{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 2, Y: 0, Z: 0},
			{X: 3, Y: 0, Z: 0},
		})
	}
	if err != nil {
		logger.Fatal(err)
	}

	solver, err := ik.NewFABRIKSolver(logger, ik.SolverConfig{})
	if err != nil {
		logger.Fatal(err)
	}

	ticker := time.NewTicker(time.Second / time.Duration(*fps))
	defer ticker.Stop()

	for frame := 0; frame < *frames; frame++ {
		<-ticker.C
		theta := 2 * math.Pi * float64(frame) / float64(*frames)
		target := r3.Vector{X: *radius * math.Cos(theta), Y: *radius * math.Sin(theta)}

		result := solver.Solve(chain, target)
		logger.Infow("frame solved",
			"frame", frame,
			"reached", result.Reached,
			"iterations", result.Iterations,
			"residual", result.Residual,
			"end_effector", chain.EndEffector(),
		)
	}
}
