package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/opportunity-matcher/internal/types"
)

const opportunityColumns = `id, title, description, organization, type, grade_levels, interests,
	location, deadline, is_featured, created_at, updated_at`

// ListOpportunities retrieves opportunities newest first, optionally narrowed by type.
// A non-positive limit returns every row.
func (db *DB) ListOpportunities(ctx context.Context, filter types.OpportunityFilter) ([]types.Opportunity, error) {
	query, args := buildListOpportunitiesQuery(filter)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	defer rows.Close()

	opps := []types.Opportunity{}
	for rows.Next() {
		o, err := scanOpportunity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opportunity: %w", err)
		}
		opps = append(opps, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate opportunities: %w", err)
	}
	return opps, nil
}

// GetOpportunity retrieves an opportunity by ID. Returns nil, nil when absent.
func (db *DB) GetOpportunity(ctx context.Context, id uuid.UUID) (*types.Opportunity, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+opportunityColumns+` FROM opportunities WHERE id = $1`,
		id,
	)
	o, err := scanOpportunity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}
	return o, nil
}

// UpsertOpportunity inserts an opportunity or replaces the stored one with the same ID.
// A zero CreatedAt is set by the database.
func (db *DB) UpsertOpportunity(ctx context.Context, o *types.Opportunity) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	var createdAt any
	if !o.CreatedAt.IsZero() {
		createdAt = o.CreatedAt
	}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO opportunities (id, title, description, organization, type, grade_levels, interests,
		                            location, deadline, is_featured, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, COALESCE($11, NOW()))
		 ON CONFLICT (id) DO UPDATE SET
		     title = EXCLUDED.title,
		     description = EXCLUDED.description,
		     organization = EXCLUDED.organization,
		     type = EXCLUDED.type,
		     grade_levels = EXCLUDED.grade_levels,
		     interests = EXCLUDED.interests,
		     location = EXCLUDED.location,
		     deadline = EXCLUDED.deadline,
		     is_featured = EXCLUDED.is_featured,
		     updated_at = NOW()
		 RETURNING created_at, updated_at`,
		o.ID, o.Title, o.Description, o.Organization, o.Type, nonNil(o.GradeLevels), nonNil(o.Interests),
		o.Location, o.Deadline, o.IsFeatured, createdAt,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert opportunity %s: %w", o.ID, err)
	}
	return nil
}

func buildListOpportunitiesQuery(filter types.OpportunityFilter) (string, []any) {
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE 1=1`
	args := []any{}
	argNum := 1

	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", argNum)
		args = append(args, filter.Type)
		argNum++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argNum)
		args = append(args, filter.Limit)
	}
	return query, args
}

func scanOpportunity(row pgx.Row) (*types.Opportunity, error) {
	var o types.Opportunity
	if err := row.Scan(&o.ID, &o.Title, &o.Description, &o.Organization, &o.Type, &o.GradeLevels, &o.Interests,
		&o.Location, &o.Deadline, &o.IsFeatured, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}
