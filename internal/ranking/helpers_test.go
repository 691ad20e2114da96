package ranking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/opportunity-matcher/internal/types"
)

var testNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func daysFromNow(days int) *time.Time {
	t := testNow.Add(time.Duration(days) * 24 * time.Hour)
	return &t
}

// fakeStore is an in-memory Store with error injection.
type fakeStore struct {
	profile    *types.Profile
	opps       []types.Opportunity
	profileErr error
	oppsErr    error
	lastFilter types.OpportunityFilter
}

func (f *fakeStore) GetProfile(_ context.Context, userID uuid.UUID) (*types.Profile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	if f.profile == nil || f.profile.ID != userID {
		return nil, nil
	}
	p := *f.profile
	return &p, nil
}

func (f *fakeStore) ListOpportunities(_ context.Context, filter types.OpportunityFilter) ([]types.Opportunity, error) {
	f.lastFilter = filter
	if f.oppsErr != nil {
		return nil, f.oppsErr
	}
	out := make([]types.Opportunity, 0, len(f.opps))
	for _, o := range f.opps {
		if filter.Type != "" && o.Type != filter.Type {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func roboticsProfile() *types.Profile {
	return &types.Profile{
		ID:         uuid.New(),
		Bio:        "Robotics internship autonomous robotics systems research",
		Interests:  []string{"AI"},
		GradeLevel: types.Grade12,
		Location:   "Remote",
	}
}

func roboticsInternship() types.Opportunity {
	return types.Opportunity{
		ID:           uuid.New(),
		Title:        "Robotics Internship",
		Description:  "Build autonomous robotics systems with our research team.",
		Organization: "TechCorp",
		Type:         types.OpportunityInternship,
		GradeLevels:  []string{types.Grade12},
		Interests:    []string{"AI", "Robotics"},
		Location:     "Remote",
		Deadline:     daysFromNow(20),
		IsFeatured:   true,
		CreatedAt:    testNow.Add(-2 * 24 * time.Hour),
	}
}

func artScholarship() types.Opportunity {
	return types.Opportunity{
		ID:           uuid.New(),
		Title:        "Painting Scholarship",
		Description:  "Funding for young painters.",
		Organization: "Paris Academy",
		Type:         types.OpportunityScholarship,
		GradeLevels:  []string{types.Grade9},
		Interests:    []string{"Painting"},
		Location:     "Paris",
		CreatedAt:    testNow.Add(-100 * 24 * time.Hour),
	}
}

func scienceConference() types.Opportunity {
	return types.Opportunity{
		ID:           uuid.New(),
		Title:        "Youth Science Conference",
		Description:  "Talks on research, robotics and space exploration.",
		Organization: "Science Society",
		Type:         types.OpportunityConference,
		Interests:    []string{"Science"},
		Location:     "Chicago",
		Deadline:     daysFromNow(60),
		CreatedAt:    testNow.Add(-10 * 24 * time.Hour),
	}
}
