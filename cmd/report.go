package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fyfire/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a one-page PDF projection report",
	RunE:  runReport,
}

var flagReportOut string

func init() {
	reportCmd.Flags().StringVarP(&flagReportOut, "out", "o", "fyfire-report.pdf", "Output PDF path")
	addOverrideFlags(reportCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReport(c *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	in := applyOverrides(c, s.loadInputs(c.Context()))
	if err := in.Validate(); err != nil {
		return fmt.Errorf("invalid inputs: %w", err)
	}
	res := s.projector.Project(in.Snapshot())

	f, err := os.Create(flagReportOut)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := report.WritePDF(f, in, res, s.accessAge(), time.Now()); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	fmt.Printf("  Wrote %s\n", flagReportOut)
	return nil
}
