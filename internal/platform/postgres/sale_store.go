package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/openlot/dealership-api/internal/domain"
	"github.com/openlot/dealership-api/internal/platform/logger"
	"github.com/openlot/dealership-api/internal/store"
)

// saleSelect is the denormalized read shared by GetByID and List.
const saleSelect = `
	SELECT s.id, s.customer_id, s.employee_id, s.car_id, s.total_price, s.status, s.sale_date,
	       c.firstname, c.lastname,
	       e.fname, e.lname,
	       k.make, k.model, k.year
	FROM sales s
	JOIN customers c ON c.customer_id = s.customer_id
	JOIN employees e ON e.employee_id = s.employee_id
	JOIN cars k ON k.id = s.car_id`

// PostgresSaleStore implements the store.SaleStore interface using a
// PostgreSQL database as the storage backend.
//
// Unlike the other stores it holds a *sql.DB rather than a DBTX: Create and
// Delete open their own transactions so the sale row and the referenced
// car's status always change together.
type PostgresSaleStore struct {
	db     *sql.DB
	logger *slog.Logger
	spec   listSpec
}

// NewPostgresSaleStore creates a new PostgreSQL implementation of the
// SaleStore interface. If logger is nil, a default logger will be used.
func NewPostgresSaleStore(db *sql.DB, logger *slog.Logger) *PostgresSaleStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSaleStore{
		db:     db,
		logger: logger.With(slog.String("component", "sale_store")),
		spec: listSpec{
			filterColumns: map[string]string{
				"customerId": "s.customer_id",
				"employeeId": "s.employee_id",
				"status":     "s.status",
			},
			sortColumns: map[string]string{
				"saleDate":   "s.sale_date",
				"totalPrice": "s.total_price",
				"status":     "s.status",
			},
			defaultSort: "s.sale_date",
		},
	}
}

// Ensure PostgresSaleStore implements store.SaleStore interface
var _ store.SaleStore = (*PostgresSaleStore)(nil)

// Create implements store.SaleStore.Create
//
// The insert and the car status flip run in one transaction. The flip is
// guarded (WHERE status = 'AVAILABLE'): zero rows affected means another
// sale claimed the car between the caller's pre-check and this commit, so
// the transaction rolls back and store.ErrCarUnavailable is returned.
func (s *PostgresSaleStore) Create(ctx context.Context, sale *domain.Sale) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := sale.Validate(); err != nil {
		log.Warn("sale validation failed during create",
			slog.String("error", err.Error()),
			slog.String("sale_id", sale.ID.String()))
		return err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sales (id, customer_id, employee_id, car_id, total_price, status, sale_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			sale.ID,
			sale.CustomerID,
			sale.EmployeeID,
			sale.CarID,
			sale.TotalPrice,
			sale.Status,
			sale.SaleDate,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: sale references missing customer, employee or car",
					store.ErrInvalidReference)
			}
			return fmt.Errorf("insert sale: %w", err)
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE cars
			SET status = $1, updated_at = $2
			WHERE id = $3 AND status = $4`,
			domain.CarStatusSold,
			time.Now().UTC(),
			sale.CarID,
			domain.CarStatusAvailable,
		)
		if err != nil {
			return fmt.Errorf("mark car sold: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return store.ErrCarUnavailable
		}

		return nil
	})
	if err != nil {
		if !errors.Is(err, store.ErrCarUnavailable) && !errors.Is(err, store.ErrInvalidReference) {
			log.Error("failed to create sale",
				slog.String("error", err.Error()),
				slog.String("sale_id", sale.ID.String()),
				slog.String("car_id", sale.CarID.String()))
		}
		return err
	}

	log.Info("sale created",
		slog.String("sale_id", sale.ID.String()),
		slog.String("car_id", sale.CarID.String()))
	return nil
}

// GetByID implements store.SaleStore.GetByID
// Returns store.ErrSaleNotFound if the sale does not exist.
func (s *PostgresSaleStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.SaleDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var detail domain.SaleDetail
	var status string

	err := s.db.QueryRowContext(ctx, saleSelect+` WHERE s.id = $1`, id).Scan(
		&detail.ID,
		&detail.CustomerID,
		&detail.EmployeeID,
		&detail.CarID,
		&detail.TotalPrice,
		&status,
		&detail.SaleDate,
		&detail.CustomerFirstname,
		&detail.CustomerLastname,
		&detail.EmployeeFname,
		&detail.EmployeeLname,
		&detail.CarMake,
		&detail.CarModel,
		&detail.CarYear,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSaleNotFound
		}
		log.Error("failed to get sale by ID",
			slog.String("error", err.Error()),
			slog.String("sale_id", id.String()))
		return nil, err
	}

	detail.Status = domain.SaleStatus(status)
	return &detail, nil
}

// List implements store.SaleStore.List
func (s *PostgresSaleStore) List(
	ctx context.Context,
	params store.ListParams,
) ([]*domain.SaleDetail, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := s.spec.whereClause(params)

	var total int
	countQuery := `SELECT COUNT(*) FROM sales s` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count sales", slog.String("error", err.Error()))
		return nil, 0, err
	}

	tail, tailArgs := s.spec.orderLimitClause(params, len(args))
	query := saleSelect + where + tail

	rows, err := s.db.QueryContext(ctx, query, append(args, tailArgs...)...)
	if err != nil {
		log.Error("failed to query sales", slog.String("error", err.Error()))
		return nil, 0, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	sales := []*domain.SaleDetail{}
	for rows.Next() {
		var detail domain.SaleDetail
		var status string

		err := rows.Scan(
			&detail.ID,
			&detail.CustomerID,
			&detail.EmployeeID,
			&detail.CarID,
			&detail.TotalPrice,
			&status,
			&detail.SaleDate,
			&detail.CustomerFirstname,
			&detail.CustomerLastname,
			&detail.EmployeeFname,
			&detail.EmployeeLname,
			&detail.CarMake,
			&detail.CarModel,
			&detail.CarYear,
		)
		if err != nil {
			log.Error("failed to scan sale row", slog.String("error", err.Error()))
			return nil, 0, err
		}

		detail.Status = domain.SaleStatus(status)
		sales = append(sales, &detail)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, 0, err
	}

	return sales, total, nil
}

// Update implements store.SaleStore.Update
// Pure field update; the referenced car is never touched.
// Returns store.ErrSaleNotFound if the sale does not exist.
func (s *PostgresSaleStore) Update(
	ctx context.Context,
	id uuid.UUID,
	totalPrice float64,
	status domain.SaleStatus,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		UPDATE sales
		SET total_price = $1, status = $2
		WHERE id = $3`,
		totalPrice, status, id,
	)
	if err != nil {
		log.Error("failed to update sale",
			slog.String("error", err.Error()),
			slog.String("sale_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return store.ErrSaleNotFound
	}

	log.Info("sale updated",
		slog.String("sale_id", id.String()),
		slog.String("status", string(status)))
	return nil
}

// Delete implements store.SaleStore.Delete
//
// The sale row is removed and the referenced car reverted to AVAILABLE in
// one transaction. The revert is unconditional; sale deletion is the only
// path that releases a car in this system.
func (s *PostgresSaleStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var carID uuid.UUID
		err := tx.QueryRowContext(ctx,
			`DELETE FROM sales WHERE id = $1 RETURNING car_id`, id).Scan(&carID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return store.ErrSaleNotFound
			}
			return fmt.Errorf("delete sale: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE cars
			SET status = $1, updated_at = $2
			WHERE id = $3`,
			domain.CarStatusAvailable,
			time.Now().UTC(),
			carID,
		)
		if err != nil {
			return fmt.Errorf("release car: %w", err)
		}

		return nil
	})
	if err != nil {
		if !errors.Is(err, store.ErrSaleNotFound) {
			log.Error("failed to delete sale",
				slog.String("error", err.Error()),
				slog.String("sale_id", id.String()))
		}
		return err
	}

	log.Info("sale deleted", slog.String("sale_id", id.String()))
	return nil
}
