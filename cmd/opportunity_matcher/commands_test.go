package main

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/opportunity-matcher/internal/catalog"
	"github.com/jonathan/opportunity-matcher/internal/config"
	"github.com/jonathan/opportunity-matcher/internal/server"
	"github.com/jonathan/opportunity-matcher/internal/types"
)

const (
	roboticsUserID = "550e8400-e29b-41d4-a716-446655440000"
	artistUserID   = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
)

func decodeMatchesOutput(t *testing.T, out string) server.MatchesResponse {
	t.Helper()
	var resp server.MatchesResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	return resp
}

func TestMatchCommand_JSON(t *testing.T) {
	out, err := executeCommand(t, "match",
		"--user-id", roboticsUserID,
		"--profiles", validProfilesFile,
		"--opportunities", validOpportunitiesFile,
		"--json",
	)
	require.NoError(t, err)

	resp := decodeMatchesOutput(t, out)
	require.NotEmpty(t, resp.Matches)
	assert.Equal(t, len(resp.Matches), resp.Count)
	assert.Equal(t, "Robotics Research Internship", resp.Matches[0].Opportunity.Title)
	assert.NotNil(t, resp.Matches[0].SemanticScore)
}

func TestMatchCommand_RulesOnly(t *testing.T) {
	out, err := executeCommand(t, "match",
		"--user-id", artistUserID,
		"--profiles", validProfilesFile,
		"--opportunities", validOpportunitiesFile,
		"--no-rag",
		"--limit", "1",
		"--json",
	)
	require.NoError(t, err)

	resp := decodeMatchesOutput(t, out)
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "Young Artists Scholarship", resp.Matches[0].Opportunity.Title)
	assert.Nil(t, resp.Matches[0].SemanticScore)
}

func TestMatchCommand_TextOutput(t *testing.T) {
	out, err := executeCommand(t, "match",
		"--user-id", roboticsUserID,
		"--profiles", validProfilesFile,
		"--opportunities", validOpportunitiesFile,
	)
	require.NoError(t, err)

	assert.Contains(t, out, "PROFILE")
	assert.Contains(t, out, "Lincoln High School")
	assert.Contains(t, out, "PERSONALIZED MATCHES")
	assert.Contains(t, out, "#1  Robotics Research Internship")
}

func TestMatchCommand_UnknownProfile(t *testing.T) {
	out, err := executeCommand(t, "match",
		"--user-id", uuid.NewString(),
		"--profiles", validProfilesFile,
		"--opportunities", validOpportunitiesFile,
	)
	require.NoError(t, err)

	assert.Contains(t, out, "NO MATCHING OPPORTUNITIES")
}

func TestMatchCommand_Errors(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv(config.EnvPrefix+"_DATABASE_URL", "")
	t.Setenv(config.EnvPrefix+"_SQLITE", "")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "missing user id",
			args:    []string{"match"},
			wantErr: "required flag(s) \"user-id\" not set",
		},
		{
			name:    "invalid user id",
			args:    []string{"match", "--user-id", "not-a-uuid"},
			wantErr: "invalid --user-id",
		},
		{
			name:    "no data source",
			args:    []string{"match", "--user-id", roboticsUserID},
			wantErr: "DATABASE_URL",
		},
		{
			name:    "profiles without opportunities",
			args:    []string{"match", "--user-id", roboticsUserID, "--profiles", validProfilesFile},
			wantErr: "config error",
		},
		{
			name:    "limit out of range",
			args:    []string{"match", "--user-id", roboticsUserID, "--limit", "500"},
			wantErr: "config error: invalid Limit",
		},
		{
			name: "invalid opportunities file",
			args: []string{"match", "--user-id", roboticsUserID,
				"--profiles", validProfilesFile, "--opportunities", invalidOpportunitiesFile},
			wantErr: "failed to load opportunities",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSearchCommand(t *testing.T) {
	out, err := executeCommand(t, "search",
		"--user-id", roboticsUserID,
		"--profiles", validProfilesFile,
		"--opportunities", validOpportunitiesFile,
		"--query", "robotics",
		"--type", types.OpportunityInternship,
		"--json",
	)
	require.NoError(t, err)

	resp := decodeMatchesOutput(t, out)
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "Robotics Research Internship", resp.Matches[0].Opportunity.Title)
}

func TestSearchCommand_InterestFilter(t *testing.T) {
	out, err := executeCommand(t, "search",
		"--user-id", roboticsUserID,
		"--profiles", validProfilesFile,
		"--opportunities", validOpportunitiesFile,
		"--interests", "science",
		"--json",
	)
	require.NoError(t, err)

	resp := decodeMatchesOutput(t, out)
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "Youth Science Conference", resp.Matches[0].Opportunity.Title)
}

func TestSearchCommand_InvalidFilters(t *testing.T) {
	_, err := executeCommand(t, "search",
		"--user-id", roboticsUserID,
		"--grade-level", "13",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid search filters")
}

func TestTopTermsCommand(t *testing.T) {
	out, err := executeCommand(t, "top-terms", "--opportunities", validOpportunitiesFile, "-n", "3", "--json")
	require.NoError(t, err)

	var results []OpportunityTerms
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)
	for _, r := range results {
		assert.LessOrEqual(t, len(r.Terms), 3)
		assert.NotEqual(t, uuid.Nil, r.ID, "ids are derived when missing")
	}
}

func TestTopTermsCommand_TextOutput(t *testing.T) {
	out, err := executeCommand(t, "top-terms", "--opportunities", validOpportunitiesFile)
	require.NoError(t, err)

	assert.Contains(t, out, "Robotics Research Internship")
	assert.Contains(t, out, " 1. ")
}

func TestCorpusTopTerms(t *testing.T) {
	opps := []types.Opportunity{
		{Title: "Robotics Camp", Description: "robotics robotics build"},
		{Title: "Art Camp", Description: "painting build"},
	}

	results := corpusTopTerms(opps, 1)

	require.Len(t, results, 2)
	require.Len(t, results[0].Terms, 1)
	assert.Equal(t, "robotics", results[0].Terms[0].Term)
	assert.Equal(t, "Art Camp", results[1].Title)
	for _, term := range results[1].Terms {
		assert.NotEqual(t, "camp", term.Term, "terms found in every document rank last")
	}
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key-for-jwt-signing-minimum-32-bytes")

	out, err := executeCommand(t, "token", "--user-id", roboticsUserID)
	require.NoError(t, err)

	jwtConfig := &config.JWTConfig{Secret: "test-secret-key-for-jwt-signing-minimum-32-bytes", ExpirationHours: 1}
	claims, err := server.NewTokenAuthority(jwtConfig).Verify(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, roboticsUserID, claims.UserID.String())
}

func TestTokenCommand_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := executeCommand(t, "token", "--user-id", roboticsUserID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadCommand_InvalidFile(t *testing.T) {
	_, err := executeCommand(t, "load", "--opportunities", invalidOpportunitiesFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load opportunities")
}

func TestImportRecords(t *testing.T) {
	store := catalog.NewMemoryStore(nil, nil)
	profile := types.Profile{ID: uuid.New(), Bio: "test"}
	opportunities := []types.Opportunity{
		{ID: uuid.New(), Title: "A", Type: types.OpportunityResearch},
		{ID: uuid.New(), Title: "B", Type: types.OpportunityCompetition},
	}

	err := importRecords(context.Background(), store, []types.Profile{profile}, opportunities)
	require.NoError(t, err)

	got, err := store.GetProfile(context.Background(), profile.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	listed, err := store.ListOpportunities(context.Background(), types.OpportunityFilter{})
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

type failingWriter struct {
	*catalog.MemoryStore
}

func (failingWriter) UpsertOpportunity(context.Context, *types.Opportunity) error {
	return errors.New("disk full")
}

func TestImportRecords_Failure(t *testing.T) {
	w := failingWriter{MemoryStore: catalog.NewMemoryStore(nil, nil)}

	err := importRecords(context.Background(), w, nil, []types.Opportunity{{Title: "Broken"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `failed to upsert opportunity "Broken"`)
	assert.Contains(t, err.Error(), "disk full")
}

func TestFlagName(t *testing.T) {
	assert.Equal(t, "database-url", flagName(config.KeyDatabaseURL))
	assert.Equal(t, "limit", flagName(config.KeyLimit))
}

func TestSQLiteWorkflow(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "matcher.db")

	out, err := executeCommand(t, "migrate", "--sqlite", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Schema applied")

	out, err = executeCommand(t, "load", "--sqlite", dbPath,
		"--opportunities", validOpportunitiesFile,
		"--profiles", validProfilesFile,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded 3 opportunities and 2 profiles")

	// Re-importing updates in place.
	_, err = executeCommand(t, "load", "--sqlite", dbPath, "--opportunities", validOpportunitiesFile)
	require.NoError(t, err)

	out, err = executeCommand(t, "match", "--sqlite", dbPath, "--user-id", roboticsUserID, "--json")
	require.NoError(t, err)

	resp := decodeMatchesOutput(t, out)
	require.Len(t, resp.Matches, 3)
	assert.Equal(t, "Robotics Research Internship", resp.Matches[0].Opportunity.Title)

	out, err = executeCommand(t, "search", "--sqlite", dbPath,
		"--user-id", artistUserID,
		"--type", types.OpportunityScholarship,
		"--json",
	)
	require.NoError(t, err)

	resp = decodeMatchesOutput(t, out)
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "Young Artists Scholarship", resp.Matches[0].Opportunity.Title)
}
