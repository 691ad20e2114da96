package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/opportunity-matcher/internal/catalog"
	"github.com/jonathan/opportunity-matcher/internal/embeddings"
	"github.com/jonathan/opportunity-matcher/internal/observability"
	"github.com/jonathan/opportunity-matcher/internal/ranking"
	"github.com/jonathan/opportunity-matcher/internal/types"
)

var topTermsCmd = &cobra.Command{
	Use:   "top-terms",
	Short: "Show the most distinctive terms of each opportunity",
	Long:  "Computes TF-IDF weights of each opportunity's text against the whole file and prints the highest weighted terms.",
	RunE:  runTopTerms,
}

var (
	topTermsFile string
	topTermsN    int
)

// OpportunityTerms is one opportunity's TF-IDF summary.
type OpportunityTerms struct {
	ID    uuid.UUID              `json:"id"`
	Title string                 `json:"title"`
	Terms []embeddings.TermScore `json:"terms"`
}

func init() {
	topTermsCmd.Flags().StringVar(&topTermsFile, "opportunities", "", "Path to opportunities JSON file (required)")
	topTermsCmd.Flags().IntVarP(&topTermsN, "n", "n", 10, "Number of terms per opportunity")

	if err := topTermsCmd.MarkFlagRequired("opportunities"); err != nil {
		panic(fmt.Sprintf("failed to mark opportunities flag as required: %v", err))
	}

	rootCmd.AddCommand(topTermsCmd)
}

func runTopTerms(cmd *cobra.Command, _ []string) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = rt.logger.Sync() }()

	opportunities, err := catalog.LoadOpportunities(topTermsFile)
	if err != nil {
		return fmt.Errorf("failed to load opportunities: %w", err)
	}

	results := corpusTopTerms(opportunities.Opportunities, topTermsN)

	if rt.cfg.JSON {
		return writeJSON(cmd.OutOrStdout(), results)
	}

	printer := observability.NewPrinter(cmd.OutOrStdout())
	for _, r := range results {
		printer.PrintTopTerms(r.Title, r.Terms)
	}
	return nil
}

// corpusTopTerms scores each opportunity against all of them.
func corpusTopTerms(opps []types.Opportunity, n int) []OpportunityTerms {
	corpus := make([]string, len(opps))
	for i := range opps {
		corpus[i] = ranking.OpportunityEmbeddingText(&opps[i])
	}

	results := make([]OpportunityTerms, 0, len(opps))
	for i, text := range corpus {
		results = append(results, OpportunityTerms{
			ID:    opps[i].ID,
			Title: opps[i].Title,
			Terms: embeddings.TopTerms(embeddings.CalculateTFIDF(text, corpus), n),
		})
	}
	return results
}
