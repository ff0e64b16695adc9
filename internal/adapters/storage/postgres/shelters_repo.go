package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pet-adoption-api/internal/domain/shelters"
)

type SheltersRepo struct {
	db *sql.DB
}

func NewSheltersRepo(db *sql.DB) *SheltersRepo {
	return &SheltersRepo{db: db}
}

const shelterColumns = `
	id, name, description,
	phone_number, email, website, donation_url,
	street, city, state, postal_code, country,
	is_deleted, created_at, updated_at
`

func (r *SheltersRepo) Create(ctx context.Context, s shelters.Shelter) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shelters (
			id, name, description,
			phone_number, email, website, donation_url,
			street, city, state, postal_code, country,
			is_deleted, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		s.ID,
		s.Name,
		s.Description,
		s.PhoneNumber,
		s.Email,
		s.Website,
		s.DonationURL,
		s.Address.Street,
		s.Address.City,
		s.Address.State,
		s.Address.PostalCode,
		s.Address.Country,
		s.IsDeleted,
		s.CreatedAt,
		s.UpdatedAt,
	)
	return err
}

func (r *SheltersRepo) GetByID(ctx context.Context, id string) (shelters.Shelter, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return shelters.Shelter{}, shelters.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+shelterColumns+`
		FROM shelters
		WHERE id = $1 AND is_deleted = FALSE
	`, id)

	s, err := scanShelter(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return shelters.Shelter{}, shelters.ErrNotFound
		}
		return shelters.Shelter{}, err
	}
	return s, nil
}

func (r *SheltersRepo) Update(ctx context.Context, s shelters.Shelter) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE shelters
		SET
			name = $2,
			description = $3,
			phone_number = $4,
			email = $5,
			website = $6,
			donation_url = $7,
			street = $8,
			city = $9,
			state = $10,
			postal_code = $11,
			country = $12,
			updated_at = $13
		WHERE id = $1 AND is_deleted = FALSE
	`,
		s.ID,
		s.Name,
		s.Description,
		s.PhoneNumber,
		s.Email,
		s.Website,
		s.DonationURL,
		s.Address.Street,
		s.Address.City,
		s.Address.State,
		s.Address.PostalCode,
		s.Address.Country,
		s.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return shelters.ErrNotFound
	}
	return nil
}

// Delete persists the soft-delete flag the service already set. The row stays.
func (r *SheltersRepo) Delete(ctx context.Context, s shelters.Shelter) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE shelters
		SET is_deleted = TRUE, updated_at = $2
		WHERE id = $1 AND is_deleted = FALSE
	`, s.ID, s.UpdatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return shelters.ErrNotFound
	}
	return nil
}

func (r *SheltersRepo) List(ctx context.Context, q shelters.Query) ([]shelters.Shelter, error) {
	where := []string{"is_deleted = FALSE"}
	args := []any{}

	add := func(column, value string) {
		args = append(args, "%"+value+"%")
		where = append(where, fmt.Sprintf("%s ILIKE $%d", column, len(args)))
	}
	if q.Name != "" {
		add("name", q.Name)
	}
	if q.City != "" {
		add("city", q.City)
	}
	if q.State != "" {
		add("state", q.State)
	}
	if q.Email != "" {
		add("email", q.Email)
	}

	dir := "ASC"
	if q.SortDesc {
		dir = "DESC"
	}

	args = append(args, q.Limit, q.Offset)
	// q.SortBy is whitelisted by BuildQuery, safe to interpolate.
	query := fmt.Sprintf(`
		SELECT %s
		FROM shelters
		WHERE %s
		ORDER BY %s %s, id ASC
		LIMIT $%d OFFSET $%d
	`, shelterColumns, strings.Join(where, " AND "), q.SortBy, dir, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]shelters.Shelter, 0)
	for rows.Next() {
		s, err := scanShelter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShelter(row rowScanner) (shelters.Shelter, error) {
	var s shelters.Shelter
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&s.PhoneNumber,
		&s.Email,
		&s.Website,
		&s.DonationURL,
		&s.Address.Street,
		&s.Address.City,
		&s.Address.State,
		&s.Address.PostalCode,
		&s.Address.Country,
		&s.IsDeleted,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}
