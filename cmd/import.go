package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fyfire/internal/cli"
	"github.com/theirongolddev/fyfire/internal/scenario"
	"github.com/theirongolddev/fyfire/internal/server"
)

var importCmd = &cobra.Command{
	Use:   "import <file.yaml>",
	Short: "Replace your saved inputs with a YAML scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var flagImportDryRun bool

func init() {
	importCmd.Flags().BoolVar(&flagImportDryRun, "dry-run", false, "Project the scenario without saving it")
	rootCmd.AddCommand(importCmd)
}

func runImport(c *cobra.Command, args []string) error {
	var r io.Reader = os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening scenario: %w", err)
		}
		defer f.Close()
		r = f
	}

	in, err := scenario.Import(r)
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if !flagImportDryRun {
		if err := s.store.SaveInputs(c.Context(), in); err != nil {
			return err
		}
		s.log.Info().Str("file", args[0]).Msg("scenario imported")
	}

	res := s.projector.Project(in.Snapshot())
	if flagJSON {
		return writeJSON(server.NewProjectionResponse(res, s.accessAge()))
	}
	fmt.Print(cli.RenderResult(in, res, s.accessAge()))
	return nil
}
