package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/opportunity-matcher/internal/catalog"
	"github.com/jonathan/opportunity-matcher/internal/types"
)

// loadConcurrency caps parallel upserts so a large import does not exhaust the pool.
const loadConcurrency = 8

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Import opportunities and profiles into the database",
	Long:  "Validates JSON files against their schemas and upserts every record. Re-importing a file updates records in place.",
	RunE:  runLoad,
}

var (
	loadOpportunitiesFile string
	loadProfilesFile      string
)

// recordWriter is the write side of a store.
type recordWriter interface {
	UpsertProfile(ctx context.Context, p *types.Profile) error
	UpsertOpportunity(ctx context.Context, o *types.Opportunity) error
}

func init() {
	loadCmd.Flags().StringVar(&loadOpportunitiesFile, "opportunities", "", "Path to opportunities JSON file (required)")
	loadCmd.Flags().StringVar(&loadProfilesFile, "profiles", "", "Path to profiles JSON file")

	if err := loadCmd.MarkFlagRequired("opportunities"); err != nil {
		panic(fmt.Sprintf("failed to mark opportunities flag as required: %v", err))
	}

	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, _ []string) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = rt.logger.Sync() }()

	opportunities, err := catalog.LoadOpportunities(loadOpportunitiesFile)
	if err != nil {
		return fmt.Errorf("failed to load opportunities: %w", err)
	}

	var profiles []types.Profile
	if loadProfilesFile != "" {
		bank, err := catalog.LoadProfiles(loadProfilesFile)
		if err != nil {
			return fmt.Errorf("failed to load profiles: %w", err)
		}
		profiles = bank.Profiles
	}

	store, err := connect(cmd.Context(), rt)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := importRecords(cmd.Context(), store, profiles, opportunities.Opportunities); err != nil {
		return err
	}

	rt.logger.Info("import complete",
		zap.Int("profiles", len(profiles)),
		zap.Int("opportunities", len(opportunities.Opportunities)),
	)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d opportunities and %d profiles\n",
		len(opportunities.Opportunities), len(profiles))
	return nil
}

// importRecords upserts all records concurrently and stops at the first failure.
func importRecords(ctx context.Context, store recordWriter, profiles []types.Profile, opportunities []types.Opportunity) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)

	for i := range profiles {
		p := &profiles[i]
		g.Go(func() error {
			if err := store.UpsertProfile(gctx, p); err != nil {
				return fmt.Errorf("failed to upsert profile %s: %w", p.ID, err)
			}
			return nil
		})
	}

	for i := range opportunities {
		o := &opportunities[i]
		g.Go(func() error {
			if err := store.UpsertOpportunity(gctx, o); err != nil {
				return fmt.Errorf("failed to upsert opportunity %q: %w", o.Title, err)
			}
			return nil
		})
	}

	return g.Wait()
}
