package memory

import (
	"context"
	"sort"
	"sync"

	"pet-adoption-api/internal/domain/shelters"
)

type managersRepo struct {
	mu    sync.RWMutex
	links map[string]map[string]shelters.ManagerLink // shelterID -> userID -> link
}

func NewManagersRepo() shelters.ManagerRepository {
	return &managersRepo{
		links: make(map[string]map[string]shelters.ManagerLink),
	}
}

func (r *managersRepo) Add(ctx context.Context, link shelters.ManagerLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.links[link.ShelterID] == nil {
		r.links[link.ShelterID] = make(map[string]shelters.ManagerLink)
	}
	r.links[link.ShelterID][link.UserID] = link
	return nil
}

func (r *managersRepo) Remove(ctx context.Context, shelterID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m := r.links[shelterID]; m != nil {
		delete(m, userID)
	}
	return nil
}

func (r *managersRepo) RemoveByShelter(ctx context.Context, shelterID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.links, shelterID)
	return nil
}

func (r *managersRepo) Exists(ctx context.Context, shelterID, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m := r.links[shelterID]
	if m == nil {
		return false, nil
	}
	_, ok := m[userID]
	return ok, nil
}

func (r *managersRepo) ListByShelter(ctx context.Context, shelterID string) ([]shelters.ManagerLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]shelters.ManagerLink, 0)
	for _, link := range r.links[shelterID] {
		out = append(out, link)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}
