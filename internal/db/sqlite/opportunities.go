package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/opportunity-matcher/internal/types"
)

const opportunityColumns = `id, title, description, organization, type, grade_levels, interests,
	location, deadline, is_featured, created_at, updated_at`

// ListOpportunities retrieves opportunities newest first, optionally narrowed by type.
// A non-positive limit returns every row.
func (s *Store) ListOpportunities(ctx context.Context, filter types.OpportunityFilter) ([]types.Opportunity, error) {
	query, args := buildListOpportunitiesQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}
	defer func() { _ = rows.Close() }()

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
func (s *Store) GetOpportunity(ctx context.Context, id uuid.UUID) (*types.Opportunity, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+opportunityColumns+` FROM opportunities WHERE id = ?`,
		id.String(),
	)
	o, err := scanOpportunity(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}
	return o, nil
}

// UpsertOpportunity inserts an opportunity or replaces the stored one with the same ID.
// A zero CreatedAt is set to the current time on insert.
func (s *Store) UpsertOpportunity(ctx context.Context, o *types.Opportunity) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}

	gradeLevels, err := encodeList(o.GradeLevels)
	if err != nil {
		return fmt.Errorf("failed to encode opportunity %s: %w", o.ID, err)
	}
	interests, err := encodeList(o.Interests)
	if err != nil {
		return fmt.Errorf("failed to encode opportunity %s: %w", o.ID, err)
	}

	var deadline sql.NullString
	if o.Deadline != nil {
		deadline = sql.NullString{String: formatTime(*o.Deadline), Valid: true}
	}

	now := formatTime(s.now())
	createdAt := now
	if !o.CreatedAt.IsZero() {
		createdAt = formatTime(o.CreatedAt)
	}

	var storedCreated, storedUpdated string
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO opportunities (id, title, description, organization, type, grade_levels, interests,
		                            location, deadline, is_featured, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		     title = excluded.title,
		     description = excluded.description,
		     organization = excluded.organization,
		     type = excluded.type,
		     grade_levels = excluded.grade_levels,
		     interests = excluded.interests,
		     location = excluded.location,
		     deadline = excluded.deadline,
		     is_featured = excluded.is_featured,
		     updated_at = excluded.updated_at
		 RETURNING created_at, updated_at`,
		o.ID.String(), o.Title, o.Description, o.Organization, o.Type, gradeLevels, interests,
		o.Location, deadline, o.IsFeatured, createdAt, now,
	).Scan(&storedCreated, &storedUpdated)
	if err != nil {
		return fmt.Errorf("failed to upsert opportunity %s: %w", o.ID, err)
	}

	if o.CreatedAt, err = parseTime(storedCreated); err != nil {
		return err
	}
	if o.UpdatedAt, err = parseTime(storedUpdated); err != nil {
		return err
	}
	return nil
}

func buildListOpportunitiesQuery(filter types.OpportunityFilter) (string, []any) {
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE 1=1`
	args := []any{}

	if filter.Type != "" {
		query += " AND type = ?"
		args = append(args, filter.Type)
	}

	query += " ORDER BY created_at DESC, id"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	return query, args
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanOpportunity(row rowScanner) (*types.Opportunity, error) {
	var o types.Opportunity
	var gradeLevels, interests, createdAt, updatedAt string
	var deadline sql.NullString
	if err := row.Scan(&o.ID, &o.Title, &o.Description, &o.Organization, &o.Type, &gradeLevels, &interests,
		&o.Location, &deadline, &o.IsFeatured, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if o.GradeLevels, err = decodeList(gradeLevels); err != nil {
		return nil, err
	}
	if o.Interests, err = decodeList(interests); err != nil {
		return nil, err
	}
	if deadline.Valid {
		d, err := parseTime(deadline.String)
		if err != nil {
			return nil, err
		}
		o.Deadline = &d
	}
	if o.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if o.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}
