package postgres

import (
	"context"
	"database/sql"

	"pet-adoption-api/internal/domain/shelters"
)

type ManagersRepo struct {
	db *sql.DB
}

func NewManagersRepo(db *sql.DB) *ManagersRepo {
	return &ManagersRepo{db: db}
}

func (r *ManagersRepo) Add(ctx context.Context, link shelters.ManagerLink) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shelter_managers (shelter_id, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (shelter_id, user_id) DO NOTHING
	`, link.ShelterID, link.UserID, link.CreatedAt)
	return err
}

func (r *ManagersRepo) Remove(ctx context.Context, shelterID, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM shelter_managers
		WHERE shelter_id = $1 AND user_id = $2
	`, shelterID, userID)
	return err
}

func (r *ManagersRepo) RemoveByShelter(ctx context.Context, shelterID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM shelter_managers
		WHERE shelter_id = $1
	`, shelterID)
	return err
}

func (r *ManagersRepo) Exists(ctx context.Context, shelterID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM shelter_managers
			WHERE shelter_id = $1 AND user_id = $2
		)
	`, shelterID, userID).Scan(&exists)
	return exists, err
}

func (r *ManagersRepo) ListByShelter(ctx context.Context, shelterID string) ([]shelters.ManagerLink, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT shelter_id, user_id, created_at
		FROM shelter_managers
		WHERE shelter_id = $1
		ORDER BY user_id ASC
	`, shelterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]shelters.ManagerLink, 0)
	for rows.Next() {
		var link shelters.ManagerLink
		if err := rows.Scan(&link.ShelterID, &link.UserID, &link.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, link)
	}
	return out, rows.Err()
}
