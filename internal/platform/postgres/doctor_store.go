package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/clinic-api/internal/domain"
	"github.com/phrazzld/clinic-api/internal/platform/logger"
	"github.com/phrazzld/clinic-api/internal/store"
)

const (
	doctorColumns = `id, name, specialty, email`

	listDoctorsSQL = `SELECT ` + doctorColumns + ` FROM clinic_schema.doctors ORDER BY id ASC`

	getDoctorSQL = `SELECT ` + doctorColumns + ` FROM clinic_schema.doctors WHERE id = $1`

	insertDoctorSQL = `
		INSERT INTO clinic_schema.doctors(name, specialty, email)
		VALUES ($1, $2, $3)
		RETURNING ` + doctorColumns

	updateDoctorSQL = `
		UPDATE clinic_schema.doctors
		SET name = COALESCE($1, name),
		    specialty = COALESCE($2, specialty),
		    email = COALESCE($3, email)
		WHERE id = $4
		RETURNING ` + doctorColumns

	deleteDoctorSQL = `DELETE FROM clinic_schema.doctors WHERE id = $1`
)

// PostgresDoctorStore implements the store.DoctorStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDoctorStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDoctorStore creates a new PostgreSQL implementation of the DoctorStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresDoctorStore(db store.DBTX, logger *slog.Logger) *PostgresDoctorStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDoctorStore{
		db:     db,
		logger: logger.With(slog.String("component", "doctor_store")),
	}
}

// Ensure PostgresDoctorStore implements store.DoctorStore interface
var _ store.DoctorStore = (*PostgresDoctorStore)(nil)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDoctor(row scanner) (domain.Doctor, error) {
	var d domain.Doctor
	err := row.Scan(&d.ID, &d.Name, &d.Specialty, &d.Email)
	return d, err
}

// List implements store.DoctorStore.List
func (s *PostgresDoctorStore) List(ctx context.Context) ([]domain.Doctor, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, listDoctorsSQL)
	if err != nil {
		log.Error("failed to list doctors", slog.String("error", err.Error()))
		return nil, store.NewStoreError("doctor", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	doctors := make([]domain.Doctor, 0)
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			log.Error("failed to scan doctor", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		doctors = append(doctors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return doctors, nil
}

// GetByID implements store.DoctorStore.GetByID
func (s *PostgresDoctorStore) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	d, err := scanDoctor(s.db.QueryRowContext(ctx, getDoctorSQL, id))
	if err != nil {
		return nil, s.notFoundOr(log, "get", id, err)
	}
	return &d, nil
}

// Create implements store.DoctorStore.Create
// A taken email surfaces as store.ErrEmailExists; the row is never overwritten.
func (s *PostgresDoctorStore) Create(ctx context.Context, in domain.NewDoctor) (*domain.Doctor, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := in.Validate(); err != nil {
		return nil, err
	}

	d, err := scanDoctor(s.db.QueryRowContext(ctx, insertDoctorSQL, *in.Name, *in.Specialty, in.Email))
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("doctor email already exists", slog.String("error", err.Error()))
			return nil, MapUniqueViolation(err, store.ErrEmailExists)
		}
		log.Error("failed to create doctor", slog.String("error", err.Error()))
		return nil, store.NewStoreError("doctor", "create", "insert failed", MapError(err))
	}

	log.Info("doctor created", slog.Int64("doctor_id", d.ID))
	return &d, nil
}

// Update implements store.DoctorStore.Update
func (s *PostgresDoctorStore) Update(
	ctx context.Context,
	id int64,
	patch domain.DoctorPatch,
) (*domain.Doctor, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	d, err := scanDoctor(s.db.QueryRowContext(ctx, updateDoctorSQL,
		nullable(patch.Name),
		nullable(patch.Specialty),
		nullable(patch.Email),
		id,
	))
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("doctor email already exists",
				slog.String("error", err.Error()),
				slog.Int64("doctor_id", id))
			return nil, MapUniqueViolation(err, store.ErrEmailExists)
		}
		return nil, s.notFoundOr(log, "update", id, err)
	}

	log.Info("doctor updated", slog.Int64("doctor_id", id))
	return &d, nil
}

// Delete implements store.DoctorStore.Delete
func (s *PostgresDoctorStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, deleteDoctorSQL, id)
	if err != nil {
		log.Error("failed to delete doctor",
			slog.String("error", err.Error()),
			slog.Int64("doctor_id", id))
		return store.NewStoreError("doctor", "delete", "delete failed", MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrDoctorNotFound); err != nil {
		return err
	}

	log.Info("doctor deleted", slog.Int64("doctor_id", id))
	return nil
}

func (s *PostgresDoctorStore) notFoundOr(log *slog.Logger, op string, id int64, err error) error {
	mapped := MapError(err)
	if errors.Is(mapped, store.ErrNotFound) {
		log.Debug("doctor not found", slog.String("op", op), slog.Int64("doctor_id", id))
		return store.ErrDoctorNotFound
	}
	log.Error("doctor query failed",
		slog.String("op", op),
		slog.String("error", err.Error()),
		slog.Int64("doctor_id", id))
	return store.NewStoreError("doctor", op, "query failed", mapped)
}
