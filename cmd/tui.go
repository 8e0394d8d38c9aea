package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fyfire/internal/model"
	"github.com/theirongolddev/fyfire/internal/tui"
	"github.com/theirongolddev/fyfire/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive what-if dashboard",
	RunE:  runTUI,
}

func init() {
	addOverrideFlags(tuiCmd)
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(c *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	theme.SetActive(s.cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	ctx := c.Context()
	in := applyOverrides(c, s.loadInputs(ctx))
	save := func(in model.Inputs) error {
		if err := in.Validate(); err != nil {
			return err
		}
		return s.store.SaveInputs(context.WithoutCancel(ctx), in)
	}

	app := tui.NewApp(s.projector, in, save)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
