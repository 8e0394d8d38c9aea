package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fyfire/internal/scenario"
)

var exportCmd = &cobra.Command{
	Use:   "export [file.yaml]",
	Short: "Export your saved inputs as a YAML scenario",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func init() {
	addOverrideFlags(exportCmd)
	rootCmd.AddCommand(exportCmd)
}

func runExport(c *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	in := applyOverrides(c, s.loadInputs(c.Context()))

	if len(args) == 0 || args[0] == "-" {
		return scenario.Export(os.Stdout, in)
	}

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("creating scenario file: %w", err)
	}
	if err := scenario.Export(f, in); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing scenario file: %w", err)
	}
	s.log.Info().Str("file", args[0]).Msg("scenario exported")
	return nil
}
