package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/opportunity-matcher/internal/config"
	"github.com/jonathan/opportunity-matcher/internal/matching"
	"github.com/jonathan/opportunity-matcher/internal/observability"
	"github.com/jonathan/opportunity-matcher/internal/server"
	"github.com/jonathan/opportunity-matcher/internal/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank opportunities for a learner profile",
	Long:  "Scores every opportunity against the profile and prints the best matches with their reasons.",
	RunE:  runMatch,
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search opportunities and rank the results for a learner profile",
	Long:  "Filters opportunities by type, grade level, interests and a free-text query, then ranks what is left for the profile.",
	RunE:  runSearch,
}

var (
	matchUserID string
	matchNoRAG  bool

	searchUserID     string
	searchNoRAG      bool
	searchQuery      string
	searchType       string
	searchGradeLevel string
	searchInterests  []string
)

// matchKeys are the config keys both commands take from flags.
var matchKeys = []string{config.KeyLimit, config.KeyProfiles, config.KeyOpportunities}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().Int("limit", config.DefaultLimit, "Maximum number of matches")
	cmd.Flags().String("profiles", "", "Read profiles from this JSON file instead of the database")
	cmd.Flags().String("opportunities", "", "Read opportunities from this JSON file instead of the database")
}

func init() {
	matchCmd.Flags().StringVarP(&matchUserID, "user-id", "u", "", "Profile ID (required)")
	matchCmd.Flags().BoolVar(&matchNoRAG, "no-rag", false, "Use rule-based scoring only")
	addSourceFlags(matchCmd)

	searchCmd.Flags().StringVarP(&searchUserID, "user-id", "u", "", "Profile ID (required)")
	searchCmd.Flags().BoolVar(&searchNoRAG, "no-rag", false, "Use rule-based scoring only")
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "Free-text query matched against title and description")
	searchCmd.Flags().StringVar(&searchType, "type", "", "Opportunity type, e.g. internship")
	searchCmd.Flags().StringVar(&searchGradeLevel, "grade-level", "", "Grade level (9-12)")
	searchCmd.Flags().StringSliceVar(&searchInterests, "interests", nil, "Comma-separated interests")
	addSourceFlags(searchCmd)

	for _, cmd := range []*cobra.Command{matchCmd, searchCmd} {
		if err := cmd.MarkFlagRequired("user-id"); err != nil {
			panic(fmt.Sprintf("failed to mark user-id flag as required: %v", err))
		}
		rootCmd.AddCommand(cmd)
	}
}

func runMatch(cmd *cobra.Command, _ []string) error {
	userID, err := uuid.Parse(matchUserID)
	if err != nil {
		return fmt.Errorf("invalid --user-id: %w", err)
	}

	rt, err := setup(cmd, matchKeys...)
	if err != nil {
		return err
	}
	defer func() { _ = rt.logger.Sync() }()

	store, closeStore, err := openStore(cmd.Context(), rt)
	if err != nil {
		return err
	}
	defer closeStore()

	service := matching.NewService(store, rt.logger)
	matches := service.GetPersonalizedOpportunities(cmd.Context(), userID, rt.cfg.Limit, rt.cfg.UseRAG && !matchNoRAG)

	return printMatches(cmd, rt, store, userID, "PERSONALIZED MATCHES", matches)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	userID, err := uuid.Parse(searchUserID)
	if err != nil {
		return fmt.Errorf("invalid --user-id: %w", err)
	}

	filters := &types.SearchFilters{
		Type:       searchType,
		GradeLevel: searchGradeLevel,
		Interests:  searchInterests,
	}
	if err := filters.Validate(); err != nil {
		return fmt.Errorf("invalid search filters: %w", err)
	}
	if filters.IsEmpty() {
		filters = nil
	}

	rt, err := setup(cmd, matchKeys...)
	if err != nil {
		return err
	}
	defer func() { _ = rt.logger.Sync() }()

	store, closeStore, err := openStore(cmd.Context(), rt)
	if err != nil {
		return err
	}
	defer closeStore()

	service := matching.NewService(store, rt.logger)
	matches := service.SearchOpportunities(cmd.Context(), userID, searchQuery, filters, rt.cfg.Limit, rt.cfg.UseRAG && !searchNoRAG)

	return printMatches(cmd, rt, store, userID, "SEARCH RESULTS", matches)
}

// printMatches writes the matches as JSON or as a profile box followed by a match box.
func printMatches(cmd *cobra.Command, rt *runEnv, store server.Store, userID uuid.UUID, title string, matches []types.Match) error {
	if rt.cfg.JSON {
		return writeJSON(cmd.OutOrStdout(), server.MatchesResponse{Matches: matches, Count: len(matches)})
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	profile, err := store.GetProfile(cmd.Context(), userID)
	if err != nil {
		rt.logger.Warn("failed to load profile for display", zap.Error(err))
	}
	printer.PrintProfile(profile)
	printer.PrintMatches(title, matches)
	return nil
}
