package postgres

import (
	"context"
	"database/sql"

	"pet-adoption-api/internal/domain/community"
)

type CommunityRepo struct {
	db *sql.DB
}

func NewCommunityRepo(db *sql.DB) *CommunityRepo {
	return &CommunityRepo{db: db}
}

func (r *CommunityRepo) AddFollow(ctx context.Context, f community.Follow) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shelter_follows (shelter_id, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (shelter_id, user_id) DO NOTHING
	`, f.ShelterID, f.UserID, f.CreatedAt)
	return err
}

func (r *CommunityRepo) RemoveFollow(ctx context.Context, shelterID, userID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM shelter_follows
		WHERE shelter_id = $1 AND user_id = $2
	`, shelterID, userID)
	return err
}

func (r *CommunityRepo) IsFollowing(ctx context.Context, shelterID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM shelter_follows
			WHERE shelter_id = $1 AND user_id = $2
		)
	`, shelterID, userID).Scan(&exists)
	return exists, err
}

func (r *CommunityRepo) CountFollowers(ctx context.Context, shelterID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM shelter_follows WHERE shelter_id = $1
	`, shelterID).Scan(&n)
	return n, err
}

func (r *CommunityRepo) ListFollowers(ctx context.Context, shelterID string) ([]community.Follow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT shelter_id, user_id, created_at
		FROM shelter_follows
		WHERE shelter_id = $1
		ORDER BY user_id ASC
	`, shelterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]community.Follow, 0)
	for rows.Next() {
		var f community.Follow
		if err := rows.Scan(&f.ShelterID, &f.UserID, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *CommunityRepo) AddReview(ctx context.Context, rv community.Review) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shelter_reviews (id, shelter_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rv.ID, rv.ShelterID, rv.UserID, rv.Rating, rv.Comment, rv.CreatedAt)
	return err
}

func (r *CommunityRepo) ListReviews(ctx context.Context, shelterID string) ([]community.Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, shelter_id, user_id, rating, comment, created_at
		FROM shelter_reviews
		WHERE shelter_id = $1
		ORDER BY created_at DESC, id ASC
	`, shelterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]community.Review, 0)
	for rows.Next() {
		var rv community.Review
		if err := rows.Scan(&rv.ID, &rv.ShelterID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *CommunityRepo) RatingSummary(ctx context.Context, shelterID string) (community.RatingSummary, error) {
	var sum community.RatingSummary
	var avg sql.NullFloat64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), AVG(rating)
		FROM shelter_reviews
		WHERE shelter_id = $1
	`, shelterID).Scan(&sum.Count, &avg)
	if err != nil {
		return community.RatingSummary{}, err
	}
	if avg.Valid {
		sum.Average = avg.Float64
	}
	return sum, nil
}
