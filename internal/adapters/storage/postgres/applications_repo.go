package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"pet-adoption-api/internal/domain/applications"
)

type ApplicationsRepo struct {
	db *sql.DB
}

func NewApplicationsRepo(db *sql.DB) *ApplicationsRepo {
	return &ApplicationsRepo{db: db}
}

const applicationColumns = `
	id, applicant_user_id, shelter_name, remarks,
	street, city, state, postal_code, country,
	status, is_approved, shelter_id,
	created_at, updated_at
`

func (r *ApplicationsRepo) Create(ctx context.Context, a applications.Application) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shelter_applications (
			id, applicant_user_id, shelter_name, remarks,
			street, city, state, postal_code, country,
			status, is_approved, shelter_id,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		a.ID,
		a.ApplicantUserID,
		a.ShelterName,
		a.Remarks,
		a.Address.Street,
		a.Address.City,
		a.Address.State,
		a.Address.PostalCode,
		a.Address.Country,
		string(a.Status),
		a.IsApproved,
		toNullString(a.ShelterID),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *ApplicationsRepo) GetByID(ctx context.Context, id string) (applications.Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return applications.Application{}, applications.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+applicationColumns+`
		FROM shelter_applications
		WHERE id = $1
	`, id)

	a, err := scanApplication(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return applications.Application{}, applications.ErrNotFound
		}
		return applications.Application{}, err
	}
	return a, nil
}

func (r *ApplicationsRepo) Update(ctx context.Context, a applications.Application) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE shelter_applications
		SET
			shelter_name = $2,
			remarks = $3,
			street = $4,
			city = $5,
			state = $6,
			postal_code = $7,
			country = $8,
			status = $9,
			is_approved = $10,
			shelter_id = $11,
			updated_at = $12
		WHERE id = $1
	`,
		a.ID,
		a.ShelterName,
		a.Remarks,
		a.Address.Street,
		a.Address.City,
		a.Address.State,
		a.Address.PostalCode,
		a.Address.Country,
		string(a.Status),
		a.IsApproved,
		toNullString(a.ShelterID),
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return applications.ErrNotFound
	}
	return nil
}

func (r *ApplicationsRepo) List(ctx context.Context, f applications.Filter) ([]applications.Application, error) {
	where := []string{"TRUE"}
	args := []any{}

	if f.IsApproved != nil {
		args = append(args, *f.IsApproved)
		where = append(where, fmt.Sprintf("is_approved = $%d", len(args)))
	}
	if f.CreatedAfter != nil {
		args = append(args, *f.CreatedAfter)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if f.CreatedBefore != nil {
		args = append(args, *f.CreatedBefore)
		where = append(where, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM shelter_applications
		WHERE %s
		ORDER BY created_at DESC, id ASC
	`, applicationColumns, strings.Join(where, " AND "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]applications.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanApplication(row rowScanner) (applications.Application, error) {
	var a applications.Application
	var status string
	var shelterID sql.NullString

	err := row.Scan(
		&a.ID,
		&a.ApplicantUserID,
		&a.ShelterName,
		&a.Remarks,
		&a.Address.Street,
		&a.Address.City,
		&a.Address.State,
		&a.Address.PostalCode,
		&a.Address.Country,
		&status,
		&a.IsApproved,
		&shelterID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return applications.Application{}, err
	}

	a.Status = applications.Status(status)
	if shelterID.Valid {
		a.ShelterID = shelterID.String
	}
	return a, nil
}

func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
