package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/openlot/dealership-api/internal/domain"
	"github.com/openlot/dealership-api/internal/platform/logger"
	"github.com/openlot/dealership-api/internal/store"
)

// PostgresCarStore implements the store.CarStore interface using a
// PostgreSQL database as the storage backend.
type PostgresCarStore struct {
	db     store.DBTX
	logger *slog.Logger
	spec   listSpec
}

// NewPostgresCarStore creates a new PostgreSQL implementation of the
// CarStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresCarStore(db store.DBTX, logger *slog.Logger) *PostgresCarStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCarStore{
		db:     db,
		logger: logger.With(slog.String("component", "car_store")),
		spec: listSpec{
			filterColumns: map[string]string{
				"status": "status",
				"price":  "price",
			},
			searchColumns: []string{"make", "model"},
			sortColumns: map[string]string{
				"createdAt": "created_at",
				"make":      "make",
				"model":     "model",
				"year":      "year",
				"price":     "price",
			},
			defaultSort: "created_at",
		},
	}
}

// Ensure PostgresCarStore implements store.CarStore interface
var _ store.CarStore = (*PostgresCarStore)(nil)

// Create implements store.CarStore.Create
func (s *PostgresCarStore) Create(ctx context.Context, car *domain.Car) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := car.Validate(); err != nil {
		log.Warn("car validation failed during create",
			slog.String("error", err.Error()),
			slog.String("car_id", car.ID.String()))
		return err
	}

	query := `
		INSERT INTO cars (id, make, model, year, price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		car.ID,
		car.Make,
		car.Model,
		car.Year,
		car.Price,
		car.Status,
		car.CreatedAt,
		car.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create car",
			slog.String("error", err.Error()),
			slog.String("car_id", car.ID.String()))
		return err
	}

	log.Info("car created",
		slog.String("car_id", car.ID.String()),
		slog.String("status", string(car.Status)))
	return nil
}

// GetByID implements store.CarStore.GetByID
// Returns store.ErrCarNotFound if the car does not exist.
func (s *PostgresCarStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, make, model, year, price, status, created_at, updated_at
		FROM cars
		WHERE id = $1
	`

	var car domain.Car
	var status string

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&car.ID,
		&car.Make,
		&car.Model,
		&car.Year,
		&car.Price,
		&status,
		&car.CreatedAt,
		&car.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCarNotFound
		}
		log.Error("failed to get car by ID",
			slog.String("error", err.Error()),
			slog.String("car_id", id.String()))
		return nil, err
	}

	car.Status = domain.CarStatus(status)
	return &car, nil
}

// List implements store.CarStore.List
func (s *PostgresCarStore) List(
	ctx context.Context,
	params store.ListParams,
) ([]*domain.Car, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := s.spec.whereClause(params)

	var total int
	countQuery := `SELECT COUNT(*) FROM cars` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count cars", slog.String("error", err.Error()))
		return nil, 0, err
	}

	tail, tailArgs := s.spec.orderLimitClause(params, len(args))
	query := `
		SELECT id, make, model, year, price, status, created_at, updated_at
		FROM cars` + where + tail

	rows, err := s.db.QueryContext(ctx, query, append(args, tailArgs...)...)
	if err != nil {
		log.Error("failed to query cars", slog.String("error", err.Error()))
		return nil, 0, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	cars := []*domain.Car{}
	for rows.Next() {
		var car domain.Car
		var status string

		err := rows.Scan(
			&car.ID,
			&car.Make,
			&car.Model,
			&car.Year,
			&car.Price,
			&status,
			&car.CreatedAt,
			&car.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan car row", slog.String("error", err.Error()))
			return nil, 0, err
		}

		car.Status = domain.CarStatus(status)
		cars = append(cars, &car)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, 0, err
	}

	return cars, total, nil
}

// Update implements store.CarStore.Update
// Returns store.ErrCarNotFound if the car does not exist.
func (s *PostgresCarStore) Update(ctx context.Context, car *domain.Car) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := car.Validate(); err != nil {
		log.Warn("car validation failed during update",
			slog.String("error", err.Error()),
			slog.String("car_id", car.ID.String()))
		return err
	}

	query := `
		UPDATE cars
		SET make = $1, model = $2, year = $3, price = $4, status = $5, updated_at = $6
		WHERE id = $7
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		car.Make,
		car.Model,
		car.Year,
		car.Price,
		car.Status,
		time.Now().UTC(),
		car.ID,
	)
	if err != nil {
		log.Error("failed to update car",
			slog.String("error", err.Error()),
			slog.String("car_id", car.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("car_id", car.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		return store.ErrCarNotFound
	}

	log.Info("car updated",
		slog.String("car_id", car.ID.String()),
		slog.String("status", string(car.Status)))
	return nil
}

// Delete implements store.CarStore.Delete
// Returns store.ErrCarNotFound if the car does not exist.
func (s *PostgresCarStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete car",
			slog.String("error", err.Error()),
			slog.String("car_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return store.ErrCarNotFound
	}

	log.Info("car deleted", slog.String("car_id", id.String()))
	return nil
}
