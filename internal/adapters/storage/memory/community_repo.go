package memory

import (
	"context"
	"sort"
	"sync"

	"pet-adoption-api/internal/domain/community"
)

type communityRepo struct {
	mu      sync.RWMutex
	follows map[string]map[string]community.Follow // shelterID -> userID -> follow
	reviews map[string][]community.Review          // shelterID -> reviews
}

func NewCommunityRepo() community.Repository {
	return &communityRepo{
		follows: make(map[string]map[string]community.Follow),
		reviews: make(map[string][]community.Review),
	}
}

func (r *communityRepo) AddFollow(ctx context.Context, f community.Follow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.follows[f.ShelterID] == nil {
		r.follows[f.ShelterID] = make(map[string]community.Follow)
	}
	r.follows[f.ShelterID][f.UserID] = f
	return nil
}

func (r *communityRepo) RemoveFollow(ctx context.Context, shelterID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m := r.follows[shelterID]; m != nil {
		delete(m, userID)
	}
	return nil
}

func (r *communityRepo) IsFollowing(ctx context.Context, shelterID, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m := r.follows[shelterID]
	if m == nil {
		return false, nil
	}
	_, ok := m[userID]
	return ok, nil
}

func (r *communityRepo) CountFollowers(ctx context.Context, shelterID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.follows[shelterID]), nil
}

func (r *communityRepo) ListFollowers(ctx context.Context, shelterID string) ([]community.Follow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]community.Follow, 0)
	for _, f := range r.follows[shelterID] {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

func (r *communityRepo) AddReview(ctx context.Context, rv community.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reviews[rv.ShelterID] = append(r.reviews[rv.ShelterID], rv)
	return nil
}

func (r *communityRepo) ListReviews(ctx context.Context, shelterID string) ([]community.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src := r.reviews[shelterID]
	out := make([]community.Review, len(src))
	copy(out, src)

	// Newest first.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *communityRepo) RatingSummary(ctx context.Context, shelterID string) (community.RatingSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src := r.reviews[shelterID]
	if len(src) == 0 {
		return community.RatingSummary{}, nil
	}

	var sum float64
	for _, rv := range src {
		sum += rv.Rating
	}
	return community.RatingSummary{
		Count:   len(src),
		Average: sum / float64(len(src)),
	}, nil
}
