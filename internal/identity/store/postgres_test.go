package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"counsel/internal/identity/models"
	id "counsel/pkg/domain"
	"counsel/pkg/platform/sentinel"
)

var lawyerRowColumns = []string{"id", "name", "email", "phone", "specialization", "location", "experience_years", "pro_bono", "active", "created_at"}

func newMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgres(db), mock
}

func TestPostgresFindPrisoner(t *testing.T) {
	store, mock := newMock(t)
	prisonerID := id.PrisonerID(uuid.New())
	now := time.Now()

	mock.ExpectQuery("SELECT id, name, email, phone, active, created_at FROM prisoners WHERE id = \\$1").
		WithArgs(prisonerID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "active", "created_at"}).
			AddRow(prisonerID.String(), "Ada Moss", "ada@example.org", "", true, now))

	p, err := store.FindPrisoner(context.Background(), prisonerID)
	require.NoError(t, err)
	assert.Equal(t, prisonerID, p.ID)
	assert.Equal(t, "Ada Moss", p.Name)
	assert.True(t, p.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindLawyerNotFound(t *testing.T) {
	store, mock := newMock(t)
	lawyerID := id.LawyerID(uuid.New())

	mock.ExpectQuery("FROM lawyers WHERE id = \\$1").
		WithArgs(lawyerID.String()).
		WillReturnRows(sqlmock.NewRows(lawyerRowColumns))

	_, err := store.FindLawyer(context.Background(), lawyerID)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindLawyerDriverError(t *testing.T) {
	store, mock := newMock(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery("FROM lawyers WHERE id = \\$1").WillReturnError(boom)

	_, err := store.FindLawyer(context.Background(), id.LawyerID(uuid.New()))
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, sentinel.ErrNotFound)
}

func TestPostgresListLawyers(t *testing.T) {
	store, mock := newMock(t)
	now := time.Now()
	first, second := uuid.New(), uuid.New()

	mock.ExpectQuery("FROM lawyers\\s+WHERE active AND \\(\\$1 = FALSE OR pro_bono\\)").
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(lawyerRowColumns).
			AddRow(first.String(), "Abe", "", "", "appeals", "Springfield", 3, true, true, now).
			AddRow(second.String(), "Bea", "", "", "", "", 10, true, true, now))

	lawyers, err := store.ListLawyers(context.Background(), models.LawyerFilter{ProBonoOnly: true})
	require.NoError(t, err)
	require.Len(t, lawyers, 2)
	assert.Equal(t, id.LawyerID(first), lawyers[0].ID)
	assert.Equal(t, "appeals", lawyers[0].Specialization)
	assert.Equal(t, 10, lawyers[1].ExperienceYears)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSaveLawyer(t *testing.T) {
	store, mock := newMock(t)
	l := &models.Lawyer{ID: id.LawyerID(uuid.New()), Name: "Jane", Active: true, CreatedAt: time.Now()}

	mock.ExpectExec("INSERT INTO lawyers").
		WithArgs(l.ID.String(), "Jane", "", "", "", "", 0, false, true, l.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.SaveLawyer(context.Background(), l))
	assert.NoError(t, mock.ExpectationsWereMet())
}
