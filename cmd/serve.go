package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fyfire/internal/fire"
	"github.com/theirongolddev/fyfire/internal/logging"
	"github.com/theirongolddev/fyfire/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the projection HTTP API",
	RunE:  runServe,
}

var flagAddr string

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(c *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logging.Component(logging.Stderr(cfg.General.LogLevel, flagQuiet), "server")

	srvCfg := cfg.Server
	if flagAddr != "" {
		srvCfg.Addr = flagAddr
	}

	p := fire.NewProjector(cfg.EnginePolicy(), time.Now)
	srv := server.New(srvCfg, p, log)

	if err := srv.Run(c.Context()); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	log.Info().Msg("stopped")
	return nil
}
