package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear your saved inputs",
	RunE:  runReset,
}

var flagResetYes bool

func init() {
	resetCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false, "Skip confirmation")
	rootCmd.AddCommand(resetCmd)
}

func runReset(c *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := c.Context()
	has, err := s.store.HasInputs(ctx)
	if err != nil {
		return fmt.Errorf("checking saved inputs: %w", err)
	}
	if !has {
		fmt.Println("  Nothing saved.")
		return nil
	}

	if !flagResetYes {
		confirm := false
		err := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Clear your saved inputs?").
				Description("The next run starts from the defaults.").
				Value(&confirm),
		)).RunWithContext(ctx)
		proceed, err := confirmed(err, confirm)
		if err != nil {
			return err
		}
		if !proceed {
			fmt.Println("  Kept your inputs.")
			return nil
		}
	}

	if err := s.store.ClearInputs(ctx); err != nil {
		return err
	}
	s.log.Info().Msg("saved inputs cleared")
	fmt.Println("  Cleared. Run `fyfire setup` to start again.")
	return nil
}

// confirmed interprets a confirm form's outcome. Declining or aborting the
// form is not an error; any other form failure is.
func confirmed(formErr error, confirm bool) (bool, error) {
	switch {
	case errors.Is(formErr, huh.ErrUserAborted):
		return false, nil
	case formErr != nil:
		return false, fmt.Errorf("confirm form: %w", formErr)
	}
	return confirm, nil
}
