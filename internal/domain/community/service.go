package community

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-adoption-api/internal/domain/shelters"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// ShelterRef provides shelter existence checks.
type ShelterRef interface {
	GetByID(ctx context.Context, id string) (shelters.Shelter, error)
}

type Service struct {
	repo    Repository
	shelter ShelterRef
	now     func() time.Time
}

func NewService(repo Repository, shelter ShelterRef) *Service {
	return &Service{
		repo:    repo,
		shelter: shelter,
		now:     time.Now,
	}
}

// SetShelterRef breaks the construction cycle with the shelters service,
// which consumes this service for follower counts and rating summaries.
// Call before serving.
func (s *Service) SetShelterRef(ref ShelterRef) {
	s.shelter = ref
}

// Follow is idempotent: following a shelter twice is a no-op.
func (s *Service) Follow(ctx context.Context, shelterID, userID string) (Follow, error) {
	shelterID = strings.TrimSpace(shelterID)
	userID = strings.TrimSpace(userID)
	if shelterID == "" || userID == "" {
		return Follow{}, ErrInvalidInput
	}

	sh, err := s.shelter.GetByID(ctx, shelterID)
	if err != nil {
		return Follow{}, ErrNotFound
	}

	following, err := s.repo.IsFollowing(ctx, sh.ID, userID)
	if err != nil {
		return Follow{}, err
	}
	if following {
		return Follow{ShelterID: sh.ID, UserID: userID}, nil
	}

	f := Follow{
		ShelterID: sh.ID,
		UserID:    userID,
		CreatedAt: s.now(),
	}
	if err := s.repo.AddFollow(ctx, f); err != nil {
		return Follow{}, err
	}
	return f, nil
}

func (s *Service) Unfollow(ctx context.Context, shelterID, userID string) error {
	shelterID = strings.TrimSpace(shelterID)
	userID = strings.TrimSpace(userID)
	if shelterID == "" || userID == "" {
		return ErrInvalidInput
	}

	following, err := s.repo.IsFollowing(ctx, shelterID, userID)
	if err != nil {
		return err
	}
	if !following {
		return ErrNotFound
	}
	return s.repo.RemoveFollow(ctx, shelterID, userID)
}

func (s *Service) Followers(ctx context.Context, shelterID string) ([]Follow, error) {
	shelterID = strings.TrimSpace(shelterID)
	if shelterID == "" {
		return nil, ErrInvalidInput
	}
	if _, err := s.shelter.GetByID(ctx, shelterID); err != nil {
		return nil, ErrNotFound
	}
	return s.repo.ListFollowers(ctx, shelterID)
}

type ReviewInput struct {
	Rating  float64
	Comment string
}

// AddReview records a review. Ratings are clamped to [0,5] and rounded to
// the nearest half star.
func (s *Service) AddReview(ctx context.Context, shelterID, userID string, in ReviewInput) (Review, error) {
	shelterID = strings.TrimSpace(shelterID)
	userID = strings.TrimSpace(userID)
	if shelterID == "" || userID == "" {
		return Review{}, ErrInvalidInput
	}
	if in.Rating < 0 || in.Rating > 5 {
		return Review{}, ErrInvalidInput
	}

	sh, err := s.shelter.GetByID(ctx, shelterID)
	if err != nil {
		return Review{}, ErrNotFound
	}

	rv := Review{
		ID:        uuid.NewString(),
		ShelterID: sh.ID,
		UserID:    userID,
		Rating:    math.Round(in.Rating*2) / 2,
		Comment:   strings.TrimSpace(in.Comment),
		CreatedAt: s.now(),
	}
	if err := s.repo.AddReview(ctx, rv); err != nil {
		return Review{}, err
	}
	return rv, nil
}

func (s *Service) Reviews(ctx context.Context, shelterID string) ([]Review, error) {
	shelterID = strings.TrimSpace(shelterID)
	if shelterID == "" {
		return nil, ErrInvalidInput
	}
	if _, err := s.shelter.GetByID(ctx, shelterID); err != nil {
		return nil, ErrNotFound
	}
	return s.repo.ListReviews(ctx, shelterID)
}

// CountFollowers satisfies shelters.FollowerCounter.
func (s *Service) CountFollowers(ctx context.Context, shelterID string) (int, error) {
	return s.repo.CountFollowers(ctx, shelterID)
}

// RatingSummary satisfies shelters.ReviewRater.
func (s *Service) RatingSummary(ctx context.Context, shelterID string) (shelters.ReviewSummary, error) {
	sum, err := s.repo.RatingSummary(ctx, shelterID)
	if err != nil {
		return shelters.ReviewSummary{}, err
	}
	return shelters.ReviewSummary{
		Count:   sum.Count,
		Average: sum.Average,
	}, nil
}
