package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var flagConfigInit bool

func init() {
	configCmd.Flags().BoolVar(&flagConfigInit, "init", false, "Write the effective configuration to the config file")
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := configPath()

	if flagConfigInit {
		if err := saveConfig(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("  Wrote %s\n", path)
		return nil
	}

	if flagJSON {
		return writeJSON(cfg)
	}

	fmt.Printf("  Config file: %s\n", path)
	if configExists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	dbPath := flagDB
	if dbPath == "" {
		dbPath = cfg.DatabasePath()
	}
	fmt.Printf("  Database:    %s\n", dbPath)
	fmt.Println()

	if err := toml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	fmt.Println()
	fmt.Println("  FYFIRE_* environment variables override the file.")
	return nil
}
