package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/opportunity-matcher/internal/types"
)

const profileColumns = `id, bio, school, interests, skills, achievements, projects,
	grade_level, location, created_at, updated_at`

// GetProfile retrieves a profile by user ID. Returns nil, nil when absent.
func (s *Store) GetProfile(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = ?`,
		userID.String(),
	)

	var p types.Profile
	var interests, skills, achievements, projects string
	var createdAt, updatedAt string
	err := row.Scan(&p.ID, &p.Bio, &p.School, &interests, &skills, &achievements, &projects,
		&p.GradeLevel, &p.Location, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	for _, col := range []struct {
		raw string
		dst *[]string
	}{
		{interests, &p.Interests},
		{skills, &p.Skills},
		{achievements, &p.Achievements},
		{projects, &p.Projects},
	} {
		if *col.dst, err = decodeList(col.raw); err != nil {
			return nil, fmt.Errorf("failed to decode profile %s: %w", p.ID, err)
		}
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", p.ID, err)
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", p.ID, err)
	}
	return &p, nil
}

// UpsertProfile inserts a profile or replaces the stored one with the same ID.
// The first CreatedAt wins.
func (s *Store) UpsertProfile(ctx context.Context, p *types.Profile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	lists := make([]string, 0, 4)
	for _, items := range [][]string{p.Interests, p.Skills, p.Achievements, p.Projects} {
		encoded, err := encodeList(items)
		if err != nil {
			return fmt.Errorf("failed to encode profile %s: %w", p.ID, err)
		}
		lists = append(lists, encoded)
	}

	now := formatTime(s.now())
	createdAt := now
	if !p.CreatedAt.IsZero() {
		createdAt = formatTime(p.CreatedAt)
	}

	var storedCreated, storedUpdated string
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO profiles (id, bio, school, interests, skills, achievements, projects,
		                       grade_level, location, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		     bio = excluded.bio,
		     school = excluded.school,
		     interests = excluded.interests,
		     skills = excluded.skills,
		     achievements = excluded.achievements,
		     projects = excluded.projects,
		     grade_level = excluded.grade_level,
		     location = excluded.location,
		     updated_at = excluded.updated_at
		 RETURNING created_at, updated_at`,
		p.ID.String(), p.Bio, p.School, lists[0], lists[1], lists[2], lists[3],
		p.GradeLevel, p.Location, createdAt, now,
	).Scan(&storedCreated, &storedUpdated)
	if err != nil {
		return fmt.Errorf("failed to upsert profile %s: %w", p.ID, err)
	}

	if p.CreatedAt, err = parseTime(storedCreated); err != nil {
		return err
	}
	if p.UpdatedAt, err = parseTime(storedUpdated); err != nil {
		return err
	}
	return nil
}
