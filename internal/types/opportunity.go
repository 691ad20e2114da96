package types

import (
	"time"

	"github.com/google/uuid"
)

// Opportunity types
const (
	OpportunityInternship    = "internship"
	OpportunityScholarship   = "scholarship"
	OpportunitySummerProgram = "summer_program"
	OpportunityResearch      = "research"
	OpportunityCompetition   = "competition"
	OpportunityVolunteering  = "volunteering"
	OpportunityConference    = "conference"
)

// Opportunity is a postable program a learner can apply to.
type Opportunity struct {
	ID           uuid.UUID  `json:"id" validate:"required"`
	Title        string     `json:"title" validate:"required"`
	Description  string     `json:"description,omitempty"`
	Organization string     `json:"organization,omitempty"`
	Type         string     `json:"type" validate:"required"`
	GradeLevels  []string   `json:"grade_levels,omitempty" validate:"dive,oneof=9 10 11 12"`
	Interests    []string   `json:"interests,omitempty"`
	Location     string     `json:"location,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	IsFeatured   bool       `json:"is_featured"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at,omitempty"`
}

// OpenToAllGrades reports whether the opportunity has no grade restriction.
func (o *Opportunity) OpenToAllGrades() bool {
	return len(o.GradeLevels) == 0
}

// OpportunityCatalog is the on-disk format for a batch of opportunities.
type OpportunityCatalog struct {
	Opportunities []Opportunity `json:"opportunities" validate:"dive"`
}

// OpportunityFilter is the server-side filter applied when listing opportunities.
type OpportunityFilter struct {
	Type  string
	Limit int
}
