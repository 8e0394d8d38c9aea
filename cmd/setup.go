package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fyfire/internal/tui"
	"github.com/theirongolddev/fyfire/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Setup wizard for your finances",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(c *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := c.Context()
	vals := tui.NewSetupValues(s.loadInputs(ctx), s.cfg.Appearance.Theme)

	theme.SetActive(s.cfg.Appearance.Theme)
	if err := tui.NewSetupForm(vals).RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	in, err := vals.Inputs()
	if err != nil {
		return fmt.Errorf("invalid answers: %w", err)
	}
	if err := s.store.SaveInputs(ctx, in); err != nil {
		return err
	}

	if vals.Theme != "" && vals.Theme != s.cfg.Appearance.Theme {
		s.cfg.Appearance.Theme = vals.Theme
		if err := saveConfig(s.cfg); err != nil {
			s.log.Warn().Err(err).Msg("could not save theme")
		}
	}

	res := s.projector.Project(in.Snapshot())
	fmt.Println()
	fmt.Println("  Saved. Run `fyfire` anytime to see your projection.")
	fmt.Println()
	fmt.Printf("  FIRE number: %s\n", formatGBP(res.FireNumber))
	fmt.Println()
	return nil
}
