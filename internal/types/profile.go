// Package types provides type definitions for structured data used throughout the opportunity matcher.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// Grade levels a profile can declare.
const (
	Grade9  = "9"
	Grade10 = "10"
	Grade11 = "11"
	Grade12 = "12"
)

// Profile is a learner's record. The matcher only reads it.
type Profile struct {
	ID           uuid.UUID `json:"id" validate:"required"`
	Bio          string    `json:"bio,omitempty"`
	School       string    `json:"school,omitempty"`
	Interests    []string  `json:"interests,omitempty"`
	Skills       []string  `json:"skills,omitempty"`
	Achievements []string  `json:"achievements,omitempty"`
	Projects     []string  `json:"projects,omitempty"`
	GradeLevel   string    `json:"grade_level,omitempty" validate:"omitempty,oneof=9 10 11 12"`
	Location     string    `json:"location,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty"`
}

// ProfileBank is the on-disk format for a batch of profiles.
type ProfileBank struct {
	Profiles []Profile `json:"profiles" validate:"dive"`
}
