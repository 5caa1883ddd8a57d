package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/clinic-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockResult implements sql.Result for testing
type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) {
	return 0, nil
}

func (m mockResult) RowsAffected() (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.rowsAffected, nil
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		expectedError error
	}{
		{
			name: "nil_error",
		},
		{
			name:          "sql_no_rows",
			err:           sql.ErrNoRows,
			expectedError: store.ErrNotFound,
		},
		{
			name:          "unique_violation",
			err:           &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "doctors_email_key"},
			expectedError: store.ErrDuplicate,
		},
		{
			name:          "wrapped_unique_violation",
			err:           fmt.Errorf("insert: %w", &pgconn.PgError{Code: uniqueViolationCode}),
			expectedError: store.ErrDuplicate,
		},
		{
			name:          "foreign_key_violation",
			err:           &pgconn.PgError{Code: foreignKeyViolationCode},
			expectedError: store.ErrInvalidEntity,
		},
		{
			name:          "check_violation",
			err:           &pgconn.PgError{Code: checkViolationCode},
			expectedError: store.ErrInvalidEntity,
		},
		{
			name:          "not_null_violation",
			err:           &pgconn.PgError{Code: notNullViolationCode, ColumnName: "name"},
			expectedError: store.ErrInvalidEntity,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mapped := MapError(tc.err)
			if tc.err == nil {
				assert.NoError(t, mapped)
				return
			}
			assert.ErrorIs(t, mapped, tc.expectedError)
		})
	}
}

func TestMapError_PassesThroughUnknownErrors(t *testing.T) {
	original := errors.New("connection reset by peer")
	assert.Same(t, original, MapError(original))

	undefinedTable := &pgconn.PgError{Code: "42P01", Message: `relation "clinic_schema.doctors" does not exist`}
	mapped := MapError(undefinedTable)
	assert.False(t, store.IsNotFoundError(mapped))
	assert.False(t, store.IsDuplicateError(mapped))
}

func TestMapUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: uniqueViolationCode, Detail: "Key (email)=(a@b.test) already exists."}

	mapped := MapUniqueViolation(pgErr, store.ErrEmailExists)
	assert.ErrorIs(t, mapped, store.ErrEmailExists)
	assert.ErrorIs(t, mapped, store.ErrDuplicate)

	other := MapUniqueViolation(sql.ErrNoRows, store.ErrEmailExists)
	assert.ErrorIs(t, other, store.ErrNotFound)
	assert.NotErrorIs(t, other, store.ErrEmailExists)

	generic := MapUniqueViolation(pgErr, nil)
	assert.ErrorIs(t, generic, store.ErrDuplicate)
}

func TestCheckRowsAffected(t *testing.T) {
	require.NoError(t, CheckRowsAffected(mockResult{rowsAffected: 1}, store.ErrDoctorNotFound))

	err := CheckRowsAffected(mockResult{rowsAffected: 0}, store.ErrDoctorNotFound)
	assert.ErrorIs(t, err, store.ErrDoctorNotFound)

	err = CheckRowsAffected(mockResult{rowsAffected: 0}, nil)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = CheckRowsAffected(mockResult{err: errors.New("driver gone")}, nil)
	assert.ErrorContains(t, err, "failed to get rows affected")

	err = CheckRowsAffected(nil, nil)
	assert.Error(t, err)
}
