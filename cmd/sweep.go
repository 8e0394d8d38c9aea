package cmd

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fyfire/internal/cli"
	"github.com/theirongolddev/fyfire/internal/fire"
	"github.com/theirongolddev/fyfire/internal/server"
	"github.com/theirongolddev/fyfire/internal/sweep"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "What-if table of years to FIRE by ISA contribution and return",
	RunE:  runSweep,
}

var (
	flagContribStep float64
	flagSteps       int
	flagReturns     []float64
	flagWorkers     int
)

func init() {
	sweepCmd.Flags().Float64Var(&flagContribStep, "contrib-step", 100, "Extra monthly ISA contribution per row (£)")
	sweepCmd.Flags().IntVar(&flagSteps, "steps", 6, "Number of contribution rows")
	sweepCmd.Flags().Float64SliceVar(&flagReturns, "returns", []float64{4, 5, 6, 7, 8}, "Expected returns to compare (%)")
	sweepCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Parallel workers (default from config)")
	addOverrideFlags(sweepCmd)
	rootCmd.AddCommand(sweepCmd)
}

type sweepRow struct {
	MonthlyISAContributions float64                   `json:"monthlyISAContributions"`
	ExpectedReturn          float64                   `json:"expectedReturn"`
	Result                  server.ProjectionResponse `json:"result"`
}

func runSweep(c *cobra.Command, _ []string) error {
	if flagSteps < 1 {
		return fmt.Errorf("--steps must be at least 1, got %d", flagSteps)
	}
	if flagContribStep < 0 {
		return fmt.Errorf("--contrib-step cannot be negative, got %g", flagContribStep)
	}
	if len(flagReturns) == 0 {
		return fmt.Errorf("--returns needs at least one value")
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	base := applyOverrides(c, s.loadInputs(c.Context()))
	if err := base.Validate(); err != nil {
		return fmt.Errorf("invalid inputs: %w", err)
	}

	workers := flagWorkers
	if workers <= 0 {
		workers = s.cfg.Sweep.Workers
	}

	grid := sweep.StepGrid(flagContribStep, flagSteps, flagReturns)
	progressFn := func(done, total int) {
		if flagQuiet || flagJSON {
			return
		}
		if done%10 == 0 || done == total {
			fmt.Fprintf(os.Stderr, "\r  Projecting [%d/%d]", done, total)
		}
	}

	points, err := sweep.Run(c.Context(), s.projector, base, grid, workers, progressFn)
	if !flagQuiet && !flagJSON {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}
	s.log.Debug().Int("points", len(points)).Int("workers", workers).Msg("sweep done")

	if flagJSON {
		rows := make([]sweepRow, len(points))
		for i, p := range points {
			rows[i] = sweepRow{
				MonthlyISAContributions: p.MonthlyISAContributions,
				ExpectedReturn:          p.ExpectedReturn,
				Result:                  server.NewProjectionResponse(p.Result, s.accessAge()),
			}
		}
		return writeJSON(rows)
	}

	fmt.Print(renderSweep(points, grid, base.TargetRetirementAge-base.CurrentAge))
	return nil
}

// renderSweep lays points out as contribution rows by return columns.
func renderSweep(points []sweep.Point, g sweep.Grid, yearsToRetirement int) string {
	cols := len(g.Returns)

	headers := []string{"ISA / month"}
	for _, r := range g.Returns {
		headers = append(headers, fmt.Sprintf("%g%%", r))
	}
	headers = append(headers, "Trend")

	rows := make([][]string, 0, len(g.ContributionDeltas))
	for i := range g.ContributionDeltas {
		row := []string{cli.FormatGBP(points[i*cols].MonthlyISAContributions)}
		trend := make([]float64, cols)
		for j := range cols {
			res := points[i*cols+j].Result
			row = append(row, sweepCell(res, yearsToRetirement))
			trend[j] = yearsOrInf(res)
		}
		row = append(row, invertedSparkline(trend))
		rows = append(rows, row)
	}

	return cli.RenderTable(cli.Table{
		Title:   "Years to FIRE by ISA contribution and expected return",
		Headers: headers,
		Rows:    rows,
	}) + "  * reaches the FIRE number by the target retirement age\n"
}

func sweepCell(r fire.Result, yearsToRetirement int) string {
	if r.AlreadyAtTarget {
		return "Now *"
	}
	y, ok := r.YearsToTarget.Value()
	if !ok {
		return "Never"
	}
	cell := fmt.Sprintf("%.1f", y)
	if y <= float64(yearsToRetirement) {
		cell += " *"
	}
	return cell
}

func yearsOrInf(r fire.Result) float64 {
	if y, ok := r.YearsToTarget.Value(); ok {
		return y
	}
	return math.Inf(1)
}

// invertedSparkline draws shorter bars for fewer years, so a rising trend
// reads as an improvement.
func invertedSparkline(years []float64) string {
	longest := 0.0
	for _, y := range years {
		if !math.IsInf(y, 0) && y > longest {
			longest = y
		}
	}
	vals := make([]float64, len(years))
	for i, y := range years {
		if math.IsInf(y, 0) {
			vals[i] = math.Inf(1)
			continue
		}
		vals[i] = longest - y + 1
	}
	return cli.RenderSparkline(vals)
}
