package shelters

import "context"

// PetCounts is the pet breakdown for one shelter.
type PetCounts struct {
	Total     int
	Available int
	Adopted   int
}

// ReviewSummary aggregates the reviews of one shelter.
type ReviewSummary struct {
	Count   int
	Average float64
}

// Metric sources are narrow read-only contracts satisfied by the pets and
// community services. Declared here so this package stays a leaf.
type PetCounter interface {
	CountByShelter(ctx context.Context, shelterID string) (PetCounts, error)
}

type FollowerCounter interface {
	CountFollowers(ctx context.Context, shelterID string) (int, error)
}

type ReviewRater interface {
	RatingSummary(ctx context.Context, shelterID string) (ReviewSummary, error)
}

// MetricsSources bundles the three dependencies of Service.Metrics.
type MetricsSources struct {
	Pets      PetCounter
	Followers FollowerCounter
	Reviews   ReviewRater
}
