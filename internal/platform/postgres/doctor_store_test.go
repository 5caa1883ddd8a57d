package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/clinic-api/internal/domain"
	"github.com/phrazzld/clinic-api/internal/platform/logger"
	"github.com/phrazzld/clinic-api/internal/store"
)

func newDoctorStore(t *testing.T) (*PostgresDoctorStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	log, _ := logger.NewTestLogger()
	return NewPostgresDoctorStore(db, log), mock
}

func doctorRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "specialty", "email"})
}

func strPtr(s string) *string { return &s }

func TestPostgresDoctorStore_List(t *testing.T) {
	s, mock := newDoctorStore(t)
	mock.ExpectQuery(listDoctorsSQL).WillReturnRows(doctorRows().
		AddRow(int64(1), "Ana", "Cardiology", "ana@clinic.test").
		AddRow(int64(2), "Bo", "Dermatology", nil))

	doctors, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 2)
	require.NotNil(t, doctors[0].Email)
	assert.Equal(t, "ana@clinic.test", *doctors[0].Email)
	assert.Nil(t, doctors[1].Email)
}

func TestPostgresDoctorStore_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		s, mock := newDoctorStore(t)
		mock.ExpectQuery(getDoctorSQL).WithArgs(int64(1)).
			WillReturnRows(doctorRows().AddRow(int64(1), "Ana", "Cardiology", nil))

		d, err := s.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Cardiology", d.Specialty)
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newDoctorStore(t)
		mock.ExpectQuery(getDoctorSQL).WithArgs(int64(5)).WillReturnError(sql.ErrNoRows)

		_, err := s.GetByID(context.Background(), 5)
		assert.ErrorIs(t, err, store.ErrDoctorNotFound)
	})
}

func TestPostgresDoctorStore_Create(t *testing.T) {
	t.Run("without email", func(t *testing.T) {
		s, mock := newDoctorStore(t)
		mock.ExpectQuery(insertDoctorSQL).WithArgs("Ana", "Cardiology", nil).
			WillReturnRows(doctorRows().AddRow(int64(1), "Ana", "Cardiology", nil))

		d, err := s.Create(context.Background(), domain.NewDoctor{
			Name:      strPtr("Ana"),
			Specialty: strPtr("Cardiology"),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), d.ID)
		assert.Nil(t, d.Email)
	})

	t.Run("duplicate email", func(t *testing.T) {
		s, mock := newDoctorStore(t)
		mock.ExpectQuery(insertDoctorSQL).WithArgs("Bo", "Surgery", "ana@clinic.test").
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "doctors_email_key"})

		_, err := s.Create(context.Background(), domain.NewDoctor{
			Name:      strPtr("Bo"),
			Specialty: strPtr("Surgery"),
			Email:     strPtr("ana@clinic.test"),
		})
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.True(t, store.IsDuplicateError(err))
	})

	t.Run("missing specialty", func(t *testing.T) {
		s, _ := newDoctorStore(t)

		_, err := s.Create(context.Background(), domain.NewDoctor{Name: strPtr("Ana")})
		require.Error(t, err)
		assert.Equal(t, "specialty required", err.Error())
	})
}

func TestPostgresDoctorStore_Update(t *testing.T) {
	t.Run("merges present fields", func(t *testing.T) {
		s, mock := newDoctorStore(t)
		mock.ExpectQuery(updateDoctorSQL).WithArgs(nil, "Neurology", nil, int64(1)).
			WillReturnRows(doctorRows().AddRow(int64(1), "Ana", "Neurology", "ana@clinic.test"))

		d, err := s.Update(context.Background(), 1, domain.DoctorPatch{
			Specialty: domain.Some("Neurology"),
			Email:     domain.Null[string](),
		})
		require.NoError(t, err)
		assert.Equal(t, "Neurology", d.Specialty)
		require.NotNil(t, d.Email)
	})

	t.Run("email taken by another doctor", func(t *testing.T) {
		s, mock := newDoctorStore(t)
		mock.ExpectQuery(updateDoctorSQL).WithArgs(nil, nil, "bo@clinic.test", int64(1)).
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

		_, err := s.Update(context.Background(), 1, domain.DoctorPatch{Email: domain.Some("bo@clinic.test")})
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("not found", func(t *testing.T) {
		s, mock := newDoctorStore(t)
		mock.ExpectQuery(updateDoctorSQL).WithArgs("Ana", nil, nil, int64(9)).
			WillReturnError(sql.ErrNoRows)

		_, err := s.Update(context.Background(), 9, domain.DoctorPatch{Name: domain.Some("Ana")})
		assert.ErrorIs(t, err, store.ErrDoctorNotFound)
	})

	t.Run("nothing to update", func(t *testing.T) {
		s, _ := newDoctorStore(t)

		_, err := s.Update(context.Background(), 1, domain.DoctorPatch{Name: domain.Null[string]()})
		assert.ErrorIs(t, err, domain.ErrEmptyPatch)
	})
}

func TestPostgresDoctorStore_Delete(t *testing.T) {
	s, mock := newDoctorStore(t)
	mock.ExpectExec(deleteDoctorSQL).WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.Delete(context.Background(), 4), store.ErrDoctorNotFound)
}
