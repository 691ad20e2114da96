package types

import (
	"github.com/go-playground/validator/v10"
)

// SearchFilters narrows a search before scoring.
type SearchFilters struct {
	Type       string   `json:"type,omitempty" validate:"omitempty,max=64"`
	GradeLevel string   `json:"grade_level,omitempty" validate:"omitempty,oneof=9 10 11 12"`
	Interests  []string `json:"interests,omitempty" validate:"omitempty,max=20,dive,min=1"`
}

// IsEmpty reports whether no filter is set.
func (f *SearchFilters) IsEmpty() bool {
	return f == nil || (f.Type == "" && f.GradeLevel == "" && len(f.Interests) == 0)
}

// Validate validates the SearchFilters using the validator.
func (f *SearchFilters) Validate() error {
	validate := validator.New()
	return validate.Struct(f)
}
