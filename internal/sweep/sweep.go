// Package sweep runs what-if grids of projections in parallel.
package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/fyfire/internal/fire"
	"github.com/theirongolddev/fyfire/internal/model"
)

// Grid is the cartesian product of monthly ISA contribution deltas and
// expected annual returns. Deltas are added to the base ISA contribution.
type Grid struct {
	ContributionDeltas []float64
	Returns            []float64
}

// Size is the number of points in the grid.
func (g Grid) Size() int {
	return len(g.ContributionDeltas) * len(g.Returns)
}

// StepGrid builds a grid of steps contribution deltas, from 0 upwards in
// increments of step, crossed with returns.
func StepGrid(step float64, steps int, returns []float64) Grid {
	deltas := make([]float64, 0, steps)
	for i := range steps {
		deltas = append(deltas, float64(i)*step)
	}
	return Grid{ContributionDeltas: deltas, Returns: returns}
}

// Point is one projected grid cell.
type Point struct {
	MonthlyISAContributions float64     `json:"monthlyISAContributions"`
	ExpectedReturn          float64     `json:"expectedReturn"`
	Result                  fire.Result `json:"-"`
}

// ProgressFunc is called after each point completes.
type ProgressFunc func(done, total int)

// Run projects every grid point with at most workers goroutines. Results come
// back in grid order: contribution delta major, return minor. A cancelled
// ctx aborts the sweep with ctx.Err().
func Run(ctx context.Context, p *fire.Projector, base model.Inputs, g Grid, workers int, progressFn ProgressFunc) ([]Point, error) {
	total := g.Size()
	if total == 0 {
		return nil, nil
	}
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	points := make([]Point, total)
	var done atomic.Int64

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i, delta := range g.ContributionDeltas {
		for j, ret := range g.Returns {
			idx := i*len(g.Returns) + j

			in := base
			in.MonthlyISAContributions = base.MonthlyISAContributions + delta
			in.ExpectedReturn = ret

			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				points[idx] = Point{
					MonthlyISAContributions: in.MonthlyISAContributions,
					ExpectedReturn:          ret,
					Result:                  p.Project(in.Snapshot()),
				}
				n := done.Add(1)
				if progressFn != nil {
					progressFn(int(n), total)
				}
				return nil
			})
		}
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("sweep aborted: %w", err)
	}
	return points, nil
}
