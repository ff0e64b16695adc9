package applications

import (
	"context"
	"time"
)

// Filter narrows application listings. All fields optional, combined with
// AND; the date bounds are inclusive.
type Filter struct {
	IsApproved    *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

// Matches reports whether an application satisfies every set predicate.
func (f Filter) Matches(a Application) bool {
	if f.IsApproved != nil && a.IsApproved != *f.IsApproved {
		return false
	}
	if f.CreatedAfter != nil && a.CreatedAt.Before(*f.CreatedAfter) {
		return false
	}
	if f.CreatedBefore != nil && a.CreatedAt.After(*f.CreatedBefore) {
		return false
	}
	return true
}

type Repository interface {
	Create(ctx context.Context, a Application) error
	GetByID(ctx context.Context, id string) (Application, error)
	Update(ctx context.Context, a Application) error
	List(ctx context.Context, f Filter) ([]Application, error)
}
