package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption-api/internal/domain/shelters"
)

type shelterRepo struct {
	mu   sync.RWMutex
	byID map[string]shelters.Shelter
}

func NewShelterRepo() shelters.Repository {
	return &shelterRepo{
		byID: make(map[string]shelters.Shelter),
	}
}

func (r *shelterRepo) Create(ctx context.Context, s shelters.Shelter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(s.ID) == "" {
		return errors.New("shelter id required")
	}
	if _, exists := r.byID[s.ID]; exists {
		return errors.New("shelter already exists")
	}
	r.byID[s.ID] = s
	return nil
}

func (r *shelterRepo) GetByID(ctx context.Context, id string) (shelters.Shelter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok || s.IsDeleted {
		return shelters.Shelter{}, shelters.ErrNotFound
	}
	return s, nil
}

func (r *shelterRepo) Update(ctx context.Context, s shelters.Shelter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, exists := r.byID[s.ID]
	if !exists || cur.IsDeleted {
		return shelters.ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *shelterRepo) Delete(ctx context.Context, s shelters.Shelter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, exists := r.byID[s.ID]
	if !exists || cur.IsDeleted {
		return shelters.ErrNotFound
	}
	// The service flags IsDeleted; this just persists it.
	r.byID[s.ID] = s
	return nil
}

func (r *shelterRepo) List(ctx context.Context, q shelters.Query) ([]shelters.Shelter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]shelters.Shelter, 0)
	for _, s := range r.byID {
		if s.IsDeleted {
			continue
		}
		if q.Matches(s) {
			matched = append(matched, s)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		av, bv := sortKey(a, q.SortBy), sortKey(b, q.SortBy)
		if av != bv {
			if q.SortDesc {
				return av > bv
			}
			return av < bv
		}
		// Tie break by id ascending, regardless of direction.
		return a.ID < b.ID
	})

	// Paging
	if q.Offset >= len(matched) {
		return []shelters.Shelter{}, nil
	}
	end := q.Offset + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[q.Offset:end], nil
}

func sortKey(s shelters.Shelter, field string) string {
	switch field {
	case "city":
		return strings.ToLower(s.Address.City)
	case "state":
		return strings.ToLower(s.Address.State)
	case "created_at":
		return s.CreatedAt.UTC().Format("2006-01-02T15:04:05.000000000")
	default:
		return strings.ToLower(s.Name)
	}
}
