package pets

import "context"

// Counts is the per-shelter pet breakdown used for shelter metrics.
type Counts struct {
	Total     int
	Available int
	Adopted   int
}

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	Update(ctx context.Context, p Pet) error
	ListByShelter(ctx context.Context, shelterID string) ([]Pet, error)
	CountByShelter(ctx context.Context, shelterID string) (Counts, error)
}
