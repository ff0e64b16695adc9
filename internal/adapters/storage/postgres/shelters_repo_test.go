package postgres

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-adoption-api/internal/domain/addresses"
	"pet-adoption-api/internal/domain/shelters"
)

func shelterRows(list ...shelters.Shelter) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "name", "description",
		"phone_number", "email", "website", "donation_url",
		"street", "city", "state", "postal_code", "country",
		"is_deleted", "created_at", "updated_at",
	})
	for _, s := range list {
		rows.AddRow(
			s.ID, s.Name, s.Description,
			s.PhoneNumber, s.Email, s.Website, s.DonationURL,
			s.Address.Street, s.Address.City, s.Address.State, s.Address.PostalCode, s.Address.Country,
			s.IsDeleted, s.CreatedAt, s.UpdatedAt,
		)
	}
	return rows
}

func TestSheltersRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	s := shelters.Shelter{
		ID:    "shelter-1",
		Name:  "Happy Paws",
		Email: "contact@happypaws.org",
		Address: addresses.Address{
			City: "Lima",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO shelters").
		WithArgs(
			s.ID, s.Name, s.Description,
			s.PhoneNumber, s.Email, s.Website, s.DonationURL,
			s.Address.Street, s.Address.City, s.Address.State, s.Address.PostalCode, s.Address.Country,
			s.IsDeleted, s.CreatedAt, s.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewSheltersRepo(db).Create(context.Background(), s))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSheltersRepo_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	want := shelters.Shelter{
		ID:        "shelter-1",
		Name:      "Happy Paws",
		Address:   addresses.Address{City: "Lima"},
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectQuery("SELECT (.+) FROM shelters WHERE id = \\$1 AND is_deleted = FALSE").
		WithArgs("shelter-1").
		WillReturnRows(shelterRows(want))

	got, err := NewSheltersRepo(db).GetByID(context.Background(), "shelter-1")
	require.NoError(t, err)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, "Lima", got.Address.City)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSheltersRepo_GetByID_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM shelters WHERE id").
		WithArgs("nope").
		WillReturnRows(shelterRows())

	_, err = NewSheltersRepo(db).GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, shelters.ErrNotFound)
}

func TestSheltersRepo_Update_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE shelters").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewSheltersRepo(db).Update(context.Background(), shelters.Shelter{ID: "nope"})
	assert.ErrorIs(t, err, shelters.ErrNotFound)
}

func TestSheltersRepo_Delete_PersistsFlagOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectExec("UPDATE shelters SET is_deleted = TRUE").
		WithArgs("shelter-1", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewSheltersRepo(db).Delete(context.Background(), shelters.Shelter{
		ID:        "shelter-1",
		IsDeleted: true,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSheltersRepo_List_BuildsPredicatesAndOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	q := shelters.BuildQuery(shelters.Filter{
		Name:           "paws",
		City:           "lima",
		SortBy:         "created_at",
		SortDescending: true,
		PageNumber:     2,
		PageSize:       10,
	})

	mock.ExpectQuery("SELECT (.+) FROM shelters WHERE is_deleted = FALSE AND name ILIKE \\$1 AND city ILIKE \\$2 ORDER BY created_at DESC, id ASC LIMIT \\$3 OFFSET \\$4").
		WithArgs("%paws%", "%lima%", 10, 10).
		WillReturnRows(shelterRows())

	got, err := NewSheltersRepo(db).List(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
