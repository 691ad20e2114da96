package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/opportunity-matcher/internal/catalog"
	"github.com/jonathan/opportunity-matcher/internal/config"
	"github.com/jonathan/opportunity-matcher/internal/db"
	"github.com/jonathan/opportunity-matcher/internal/db/sqlite"
	"github.com/jonathan/opportunity-matcher/internal/logger"
	"github.com/jonathan/opportunity-matcher/internal/server"
)

// runEnv is what every command needs after flags, env and config file are merged.
type runEnv struct {
	cfg    *config.Config
	logger *zap.Logger
}

// setup binds the named flags of cmd to their config keys, loads the config and
// builds the logger. Flag names use dashes where keys use underscores.
func setup(cmd *cobra.Command, keys ...string) (*runEnv, error) {
	for _, key := range keys {
		flag := cmd.Flags().Lookup(flagName(key))
		if flag == nil {
			return nil, fmt.Errorf("no flag for config key %q", key)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
		}
	}

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.JSON, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return &runEnv{cfg: cfg, logger: log}, nil
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// database is a persistent store that commands can migrate and write to.
type database interface {
	server.Store
	recordWriter
	Migrate(ctx context.Context) error
	Close()
}

// openStore returns an in-memory store when both data files are configured, then
// SQLite when a file is set, and PostgreSQL otherwise. The returned func releases it.
func openStore(ctx context.Context, rt *runEnv) (server.Store, func(), error) {
	if rt.cfg.UsesFiles() {
		profiles, err := catalog.LoadProfiles(rt.cfg.ProfilesFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load profiles: %w", err)
		}
		opportunities, err := catalog.LoadOpportunities(rt.cfg.OpportunitiesFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load opportunities: %w", err)
		}
		rt.logger.Debug("using file store",
			zap.Int("profiles", len(profiles.Profiles)),
			zap.Int("opportunities", len(opportunities.Opportunities)),
		)
		return catalog.NewMemoryStore(profiles.Profiles, opportunities.Opportunities), func() {}, nil
	}

	store, err := connect(ctx, rt)
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}

func connect(ctx context.Context, rt *runEnv) (database, error) {
	if rt.cfg.SQLitePath != "" {
		store, err := sqlite.Open(ctx, rt.cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		rt.logger.Debug("using sqlite store", zap.String("path", rt.cfg.SQLitePath))
		return store, nil
	}

	if rt.cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required (or pass --sqlite, or --profiles and --opportunities)")
	}
	pg, err := db.Connect(ctx, rt.cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return pg, nil
}

// writeJSON prints data as indented JSON.
func writeJSON(out io.Writer, data any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
