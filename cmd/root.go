// Package cmd implements the fyfire CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fyfire/internal/config"
	"github.com/theirongolddev/fyfire/internal/fire"
	"github.com/theirongolddev/fyfire/internal/logging"
	"github.com/theirongolddev/fyfire/internal/model"
	"github.com/theirongolddev/fyfire/internal/store"
)

var (
	flagDB     string
	flagConfig string
	flagQuiet  bool
	flagJSON   bool
)

var rootCmd = &cobra.Command{
	Use:          "fyfire",
	Short:        "UK FIRE projection calculator",
	Long:         "Project when your ISA, pension and GIA reach your FIRE number, and whether your ISA can bridge the gap to pension access.",
	SilenceUsage: true,
	RunE:         runProject,
}

// Execute is the main entry point called from main.go.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Inputs database path (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default ~/.config/fyfire/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Write JSON instead of tables")
}

// session is the shared state most commands start from.
type session struct {
	cfg       config.Config
	log       zerolog.Logger
	store     *store.Store
	projector *fire.Projector
}

// loadConfig reads --config or the default config file.
func loadConfig() (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if flagConfig != "" {
		cfg, err = config.LoadFrom(flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// configPath is --config or the default config file.
func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.ConfigPath()
}

// saveConfig writes cfg to --config or the default config file.
func saveConfig(cfg config.Config) error {
	if flagConfig != "" {
		return config.SaveTo(flagConfig, cfg)
	}
	return config.Save(cfg)
}

// configExists reports whether --config or the default config file exists.
func configExists() bool {
	if flagConfig != "" {
		return config.ExistsAt(flagConfig)
	}
	return config.Exists()
}

// openSession loads config, builds the logger and projector, and opens the
// inputs store. Callers must Close it.
func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log := logging.Stderr(cfg.General.LogLevel, flagQuiet)

	dbPath := flagDB
	if dbPath == "" {
		dbPath = cfg.DatabasePath()
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("db", dbPath).Msg("store opened")

	return &session{
		cfg:       cfg,
		log:       log,
		store:     st,
		projector: fire.NewProjector(cfg.EnginePolicy(), time.Now),
	}, nil
}

func (s *session) Close() error {
	return s.store.Close()
}

func (s *session) accessAge() int {
	return s.projector.Policy().PensionAccessAge
}

// loadInputs returns the saved inputs. A corrupt record is reported and the
// defaults are used instead.
func (s *session) loadInputs(ctx context.Context) model.Inputs {
	in, err := s.store.LoadInputs(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("saved inputs unreadable, using defaults")
	}
	return in
}
