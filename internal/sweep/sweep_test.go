package sweep

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/theirongolddev/fyfire/internal/fire"
	"github.com/theirongolddev/fyfire/internal/model"
)

func frozenProjector() *fire.Projector {
	return fire.NewProjector(fire.DefaultPolicy(), func() time.Time {
		return time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	})
}

func TestStepGrid(t *testing.T) {
	g := StepGrid(100, 3, []float64{5, 6})
	if g.Size() != 6 {
		t.Fatalf("Size() = %d, want 6", g.Size())
	}
	want := []float64{0, 100, 200}
	for i, d := range g.ContributionDeltas {
		if d != want[i] {
			t.Fatalf("delta[%d] = %v, want %v", i, d, want[i])
		}
	}
}

func TestRun_MatchesDirectProjectionInGridOrder(t *testing.T) {
	p := frozenProjector()
	base := model.DefaultInputs()
	g := StepGrid(250, 4, []float64{4, 5, 6, 7, 8})

	var calls atomic.Int64
	points, err := Run(context.Background(), p, base, g, 3, func(done, total int) {
		calls.Add(1)
		if total != g.Size() {
			t.Errorf("progress total = %d, want %d", total, g.Size())
		}
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(points) != g.Size() {
		t.Fatalf("len(points) = %d, want %d", len(points), g.Size())
	}
	if calls.Load() != int64(g.Size()) {
		t.Fatalf("progress calls = %d, want %d", calls.Load(), g.Size())
	}

	idx := 0
	for _, d := range g.ContributionDeltas {
		for _, r := range g.Returns {
			pt := points[idx]
			in := base
			in.MonthlyISAContributions += d
			in.ExpectedReturn = r

			if pt.MonthlyISAContributions != in.MonthlyISAContributions || pt.ExpectedReturn != r {
				t.Fatalf("point %d = (%v, %v), want (%v, %v)", idx,
					pt.MonthlyISAContributions, pt.ExpectedReturn, in.MonthlyISAContributions, r)
			}
			want := p.Project(in.Snapshot())
			if pt.Result.YearsToTarget != want.YearsToTarget || pt.Result.FireNumber != want.FireNumber {
				t.Fatalf("point %d result = %v, want %v", idx, pt.Result.YearsToTarget, want.YearsToTarget)
			}
			idx++
		}
	}
}

func TestRun_MoreContributionNeverSlower(t *testing.T) {
	points, err := Run(context.Background(), frozenProjector(), model.DefaultInputs(),
		StepGrid(200, 5, []float64{6}), 2, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	prev := 1e9
	for i, pt := range points {
		y, ok := pt.Result.YearsToTarget.Value()
		if !ok {
			t.Fatalf("point %d unreachable", i)
		}
		if y > prev {
			t.Fatalf("point %d years = %v, previous %v: more saving took longer", i, y, prev)
		}
		prev = y
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, frozenProjector(), model.DefaultInputs(), StepGrid(100, 10, []float64{5, 6}), 2, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run(cancelled) err = %v, want context.Canceled", err)
	}
}

func TestRun_EmptyGrid(t *testing.T) {
	points, err := Run(context.Background(), frozenProjector(), model.DefaultInputs(), Grid{}, 1, nil)
	if err != nil || points != nil {
		t.Fatalf("Run(empty) = %v, %v; want nil, nil", points, err)
	}
}
