package shelters

import "context"

// Repository persists shelters. GetByID and List never return soft-deleted
// records; Delete persists an already-flagged entity (the service owns the
// IsDeleted mutation, the repository only stores it).
type Repository interface {
	Create(ctx context.Context, s Shelter) error
	GetByID(ctx context.Context, id string) (Shelter, error)
	Update(ctx context.Context, s Shelter) error
	Delete(ctx context.Context, s Shelter) error
	List(ctx context.Context, q Query) ([]Shelter, error)
}

// ManagerRepository persists shelter-manager role links.
type ManagerRepository interface {
	Add(ctx context.Context, link ManagerLink) error
	Remove(ctx context.Context, shelterID, userID string) error
	RemoveByShelter(ctx context.Context, shelterID string) error
	Exists(ctx context.Context, shelterID, userID string) (bool, error)
	ListByShelter(ctx context.Context, shelterID string) ([]ManagerLink, error)
}
