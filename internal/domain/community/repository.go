package community

import "context"

// RatingSummary aggregates the reviews of one shelter. Average is 0 when
// there are no reviews.
type RatingSummary struct {
	Count   int
	Average float64
}

type Repository interface {
	AddFollow(ctx context.Context, f Follow) error
	RemoveFollow(ctx context.Context, shelterID, userID string) error
	IsFollowing(ctx context.Context, shelterID, userID string) (bool, error)
	CountFollowers(ctx context.Context, shelterID string) (int, error)
	ListFollowers(ctx context.Context, shelterID string) ([]Follow, error)

	AddReview(ctx context.Context, rv Review) error
	ListReviews(ctx context.Context, shelterID string) ([]Review, error)
	RatingSummary(ctx context.Context, shelterID string) (RatingSummary, error)
}
