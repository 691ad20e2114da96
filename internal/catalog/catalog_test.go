package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/opportunity-matcher/internal/ranking"
	"github.com/jonathan/opportunity-matcher/internal/schemas"
	"github.com/jonathan/opportunity-matcher/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ranking.Store = (*MemoryStore)(nil)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadOpportunities_ValidFile(t *testing.T) {
	path := writeFile(t, "opportunities.json", `{
		"opportunities": [
			{
				"title": "Robotics Internship",
				"organization": "TechCorp",
				"type": "internship",
				"grade_levels": ["11", "12"],
				"interests": ["AI", "Robotics"],
				"location": "Remote",
				"deadline": "2026-04-01T00:00:00Z",
				"is_featured": true
			},
			{
				"id": "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
				"title": "Art Scholarship",
				"type": "scholarship"
			}
		]
	}`)

	catalog, err := LoadOpportunities(path)
	require.NoError(t, err)
	require.Len(t, catalog.Opportunities, 2)

	first := catalog.Opportunities[0]
	assert.Equal(t, OpportunityID("Robotics Internship", "TechCorp"), first.ID)
	assert.Equal(t, []string{"11", "12"}, first.GradeLevels)
	assert.True(t, first.IsFeatured)
	require.NotNil(t, first.Deadline)
	assert.Equal(t, 2026, first.Deadline.Year())

	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", catalog.Opportunities[1].ID.String())
	assert.Nil(t, catalog.Opportunities[1].Deadline)
}

func TestLoadOpportunities_FileNotFound(t *testing.T) {
	_, err := LoadOpportunities("nonexistent_file.json")
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Message, "failed to read file")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadOpportunities_SchemaViolation(t *testing.T) {
	path := writeFile(t, "opportunities.json", `{"opportunities": [{"title": "x", "type": "job"}]}`)

	_, err := LoadOpportunities(path)
	require.Error(t, err)

	var validationErr *schemas.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestLoadProfiles(t *testing.T) {
	path := writeFile(t, "profiles.json", `{
		"profiles": [
			{"id": "550e8400-e29b-41d4-a716-446655440000", "grade_level": "11", "interests": ["AI"], "location": "Boston"}
		]
	}`)

	bank, err := LoadProfiles(path)
	require.NoError(t, err)
	require.Len(t, bank.Profiles, 1)
	assert.Equal(t, types.Grade11, bank.Profiles[0].GradeLevel)
	assert.Equal(t, []string{"AI"}, bank.Profiles[0].Interests)
}

func TestLoadProfiles_NilID(t *testing.T) {
	path := writeFile(t, "profiles.json", `{"profiles": [{"id": "00000000-0000-0000-0000-000000000000"}]}`)

	_, err := LoadProfiles(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid profile")
}

func TestOpportunityID_Stable(t *testing.T) {
	assert.Equal(t, OpportunityID("Robotics Internship", "TechCorp"), OpportunityID(" robotics internship", "TECHCORP "))
	assert.NotEqual(t, OpportunityID("Robotics Internship", "TechCorp"), OpportunityID("Robotics Internship", "Other"))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	profile := types.Profile{ID: uuid.New(), GradeLevel: types.Grade10}
	older := types.Opportunity{ID: uuid.New(), Title: "Older", Type: types.OpportunityResearch, CreatedAt: now.Add(-time.Hour)}
	newer := types.Opportunity{ID: uuid.New(), Title: "Newer", Type: types.OpportunityInternship, CreatedAt: now}

	store := NewMemoryStore([]types.Profile{profile}, []types.Opportunity{older, newer})

	got, err := store.GetProfile(ctx, profile.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, types.Grade10, got.GradeLevel)

	missing, err := store.GetProfile(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := store.ListOpportunities(ctx, types.OpportunityFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Newer", all[0].Title)

	research, err := store.ListOpportunities(ctx, types.OpportunityFilter{Type: types.OpportunityResearch})
	require.NoError(t, err)
	require.Len(t, research, 1)
	assert.Equal(t, "Older", research[0].Title)

	limited, err := store.ListOpportunities(ctx, types.OpportunityFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	opp, err := store.GetOpportunity(ctx, older.ID)
	require.NoError(t, err)
	require.NotNil(t, opp)
	assert.Equal(t, "Older", opp.Title)
}

func TestMemoryStore_Upsert(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(nil, nil)

	o := &types.Opportunity{Title: "Camp", Type: types.OpportunitySummerProgram}
	require.NoError(t, store.UpsertOpportunity(ctx, o))
	assert.NotEqual(t, uuid.Nil, o.ID)

	o.Title = "Summer Camp"
	require.NoError(t, store.UpsertOpportunity(ctx, o))

	all, err := store.ListOpportunities(ctx, types.OpportunityFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Summer Camp", all[0].Title)

	p := &types.Profile{GradeLevel: types.Grade9}
	require.NoError(t, store.UpsertProfile(ctx, p))
	got, err := store.GetProfile(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
}
