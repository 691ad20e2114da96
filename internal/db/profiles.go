package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/opportunity-matcher/internal/types"
)

const profileColumns = `id, bio, school, interests, skills, achievements, projects,
	grade_level, location, created_at, updated_at`

// GetProfile retrieves a profile by user ID. Returns nil, nil when absent.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	var p types.Profile
	err := db.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`,
		userID,
	).Scan(&p.ID, &p.Bio, &p.School, &p.Interests, &p.Skills, &p.Achievements, &p.Projects,
		&p.GradeLevel, &p.Location, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// UpsertProfile inserts a profile or replaces the stored one with the same ID
func (db *DB) UpsertProfile(ctx context.Context, p *types.Profile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	err := db.pool.QueryRow(ctx,
		`INSERT INTO profiles (id, bio, school, interests, skills, achievements, projects, grade_level, location)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET
		     bio = EXCLUDED.bio,
		     school = EXCLUDED.school,
		     interests = EXCLUDED.interests,
		     skills = EXCLUDED.skills,
		     achievements = EXCLUDED.achievements,
		     projects = EXCLUDED.projects,
		     grade_level = EXCLUDED.grade_level,
		     location = EXCLUDED.location,
		     updated_at = NOW()
		 RETURNING created_at, updated_at`,
		p.ID, p.Bio, p.School, nonNil(p.Interests), nonNil(p.Skills), nonNil(p.Achievements),
		nonNil(p.Projects), p.GradeLevel, p.Location,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert profile %s: %w", p.ID, err)
	}
	return nil
}
