package db

import (
	"testing"

	"github.com/jonathan/opportunity-matcher/internal/ranking"
	"github.com/jonathan/opportunity-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

var _ ranking.Store = (*DB)(nil)

func TestBuildListOpportunitiesQuery(t *testing.T) {
	tests := []struct {
		name         string
		filter       types.OpportunityFilter
		wantContains []string
		wantArgs     []any
	}{
		{
			name:         "no filter",
			filter:       types.OpportunityFilter{},
			wantContains: []string{"ORDER BY created_at DESC"},
			wantArgs:     []any{},
		},
		{
			name:         "type only",
			filter:       types.OpportunityFilter{Type: types.OpportunityInternship},
			wantContains: []string{"AND type = $1", "ORDER BY created_at DESC"},
			wantArgs:     []any{"internship"},
		},
		{
			name:         "type and limit",
			filter:       types.OpportunityFilter{Type: types.OpportunityResearch, Limit: 5},
			wantContains: []string{"AND type = $1", "LIMIT $2"},
			wantArgs:     []any{"research", 5},
		},
		{
			name:         "limit only",
			filter:       types.OpportunityFilter{Limit: 20},
			wantContains: []string{"LIMIT $1"},
			wantArgs:     []any{20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildListOpportunitiesQuery(tt.filter)
			for _, fragment := range tt.wantContains {
				assert.Contains(t, query, fragment)
			}
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildListOpportunitiesQuery_NoLimitClause(t *testing.T) {
	query, _ := buildListOpportunitiesQuery(types.OpportunityFilter{Limit: 0})
	assert.NotContains(t, query, "LIMIT")
}

func TestSchema(t *testing.T) {
	schema := Schema()
	assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS profiles")
	assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS opportunities")
	assert.Contains(t, schema, "idx_opportunities_created_at")
}

func TestNonNil(t *testing.T) {
	assert.Equal(t, []string{}, nonNil(nil))
	assert.Equal(t, []string{"a"}, nonNil([]string{"a"}))
}

func TestClose_NilPool(t *testing.T) {
	db := &DB{}
	assert.NotPanics(t, db.Close)
	assert.Error(t, db.Ping(t.Context()))
}
