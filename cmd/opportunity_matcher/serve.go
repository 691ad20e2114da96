package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/opportunity-matcher/internal/config"
	"github.com/jonathan/opportunity-matcher/internal/server"
	"github.com/jonathan/opportunity-matcher/internal/server/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes personalized matching, search and the opportunity catalog.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", config.DefaultPort, "Port to listen on")
	serveCmd.Flags().String("profiles", "", "Serve profiles from this JSON file instead of the database")
	serveCmd.Flags().String("opportunities", "", "Serve opportunities from this JSON file instead of the database")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	rt, err := setup(cmd, config.KeyPort, config.KeyProfiles, config.KeyOpportunities)
	if err != nil {
		return err
	}
	defer func() { _ = rt.logger.Sync() }()

	jwtConfig, err := config.NewJWTConfig(v)
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, rt)
	if err != nil {
		return err
	}
	defer closeStore()

	srv, err := server.New(server.Config{
		Port:      rt.cfg.Port,
		UseRAG:    rt.cfg.UseRAG,
		JWT:       jwtConfig,
		RateLimit: ratelimit.LoadConfig(v),
	}, store, rt.logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
