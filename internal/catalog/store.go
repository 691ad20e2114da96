package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/opportunity-matcher/internal/types"
)

// MemoryStore serves profiles and opportunities from memory.
// It is safe for concurrent use.
type MemoryStore struct {
	mu            sync.RWMutex
	profiles      map[uuid.UUID]types.Profile
	opportunities []types.Opportunity
}

// NewMemoryStore creates a store holding copies of the given records.
func NewMemoryStore(profiles []types.Profile, opportunities []types.Opportunity) *MemoryStore {
	s := &MemoryStore{profiles: make(map[uuid.UUID]types.Profile, len(profiles))}
	for _, p := range profiles {
		s.profiles[p.ID] = p
	}
	for _, o := range opportunities {
		s.putOpportunity(o)
	}
	return s
}

// GetProfile returns nil, nil when the profile does not exist.
func (s *MemoryStore) GetProfile(_ context.Context, userID uuid.UUID) (*types.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// ListOpportunities returns opportunities newest first.
func (s *MemoryStore) ListOpportunities(_ context.Context, filter types.OpportunityFilter) ([]types.Opportunity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Opportunity, 0, len(s.opportunities))
	for _, o := range s.opportunities {
		if filter.Type != "" && o.Type != filter.Type {
			continue
		}
		out = append(out, o)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

// GetOpportunity returns nil, nil when the opportunity does not exist.
func (s *MemoryStore) GetOpportunity(_ context.Context, id uuid.UUID) (*types.Opportunity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.opportunities {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, nil
}

// UpsertProfile stores or replaces a profile.
func (s *MemoryStore) UpsertProfile(_ context.Context, p *types.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.profiles[p.ID] = *p
	return nil
}

// UpsertOpportunity stores or replaces an opportunity.
func (s *MemoryStore) UpsertOpportunity(_ context.Context, o *types.Opportunity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	s.putOpportunity(*o)
	return nil
}

// putOpportunity keeps the slice ordered by CreatedAt, newest first. Caller holds the lock.
func (s *MemoryStore) putOpportunity(o types.Opportunity) {
	for i := range s.opportunities {
		if s.opportunities[i].ID == o.ID {
			s.opportunities = append(s.opportunities[:i], s.opportunities[i+1:]...)
			break
		}
	}
	s.opportunities = append(s.opportunities, o)
	sort.SliceStable(s.opportunities, func(i, j int) bool {
		return s.opportunities[i].CreatedAt.After(s.opportunities[j].CreatedAt)
	})
}
