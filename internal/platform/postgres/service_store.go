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

// PostgresServiceStore implements the store.ServiceStore interface using a
// PostgreSQL database as the storage backend. Like the sale store it holds a
// *sql.DB because create/update maintain the customer links in the same
// transaction as the service row.
type PostgresServiceStore struct {
	db     *sql.DB
	logger *slog.Logger
	spec   listSpec
}

// NewPostgresServiceStore creates a new PostgreSQL implementation of the
// ServiceStore interface. If logger is nil, a default logger will be used.
func NewPostgresServiceStore(db *sql.DB, logger *slog.Logger) *PostgresServiceStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresServiceStore{
		db:     db,
		logger: logger.With(slog.String("component", "service_store")),
		spec: listSpec{
			filterColumns: map[string]string{
				"serviceType": "service_type",
				"cost":        "cost",
			},
			sortColumns: map[string]string{
				"serviceDate": "service_date",
				"cost":        "cost",
				"serviceType": "service_type",
			},
			defaultSort: "service_date",
		},
	}
}

// Ensure PostgresServiceStore implements store.ServiceStore interface
var _ store.ServiceStore = (*PostgresServiceStore)(nil)

// Create implements store.ServiceStore.Create
func (s *PostgresServiceStore) Create(
	ctx context.Context,
	service *domain.Service,
	customerIDs []string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := service.Validate(); err != nil {
		log.Warn("service validation failed during create",
			slog.String("error", err.Error()),
			slog.String("service_id", service.ID.String()))
		return err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO services (id, service_type, description, cost, service_date, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			service.ID,
			service.ServiceType,
			service.Description,
			service.Cost,
			service.ServiceDate,
			service.CreatedAt,
			service.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert service: %w", err)
		}

		return linkCustomers(ctx, tx, service.ID, customerIDs)
	})
	if err != nil {
		if !errors.Is(err, store.ErrInvalidReference) {
			log.Error("failed to create service",
				slog.String("error", err.Error()),
				slog.String("service_id", service.ID.String()))
		}
		return err
	}

	log.Info("service created",
		slog.String("service_id", service.ID.String()),
		slog.Int("linked_customers", len(customerIDs)))
	return nil
}

// linkCustomers inserts customer_services rows for the given IDs.
func linkCustomers(ctx context.Context, tx *sql.Tx, serviceID uuid.UUID, customerIDs []string) error {
	for _, customerID := range customerIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO customer_services (customer_id, service_id, created_at)
			VALUES ($1, $2, $3)`,
			customerID, serviceID, time.Now().UTC(),
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: customer %s", store.ErrInvalidReference, customerID)
			}
			if isUniqueViolation(err, "") {
				return store.ErrCustomerServiceExists
			}
			return fmt.Errorf("link customer %s: %w", customerID, err)
		}
	}
	return nil
}

// GetByID implements store.ServiceStore.GetByID
// Returns store.ErrServiceNotFound if the service does not exist.
func (s *PostgresServiceStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.ServiceDetail, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var detail domain.ServiceDetail
	err := s.db.QueryRowContext(ctx, `
		SELECT id, service_type, description, cost, service_date, created_at, updated_at
		FROM services
		WHERE id = $1`, id).Scan(
		&detail.ID,
		&detail.ServiceType,
		&detail.Description,
		&detail.Cost,
		&detail.ServiceDate,
		&detail.CreatedAt,
		&detail.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrServiceNotFound
		}
		log.Error("failed to get service by ID",
			slog.String("error", err.Error()),
			slog.String("service_id", id.String()))
		return nil, err
	}

	customers, err := s.customersForService(ctx, id)
	if err != nil {
		log.Error("failed to load service customers",
			slog.String("error", err.Error()),
			slog.String("service_id", id.String()))
		return nil, err
	}
	detail.Customers = customers

	return &detail, nil
}

// customersForService loads the linked customers of a service.
func (s *PostgresServiceStore) customersForService(
	ctx context.Context,
	serviceID uuid.UUID,
) ([]domain.ServiceCustomer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.customer_id, c.firstname, c.lastname
		FROM customer_services cs
		JOIN customers c ON c.customer_id = cs.customer_id
		WHERE cs.service_id = $1
		ORDER BY c.customer_id`, serviceID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	customers := []domain.ServiceCustomer{}
	for rows.Next() {
		var c domain.ServiceCustomer
		if err := rows.Scan(&c.CustomerID, &c.Firstname, &c.Lastname); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	return customers, rows.Err()
}

// List implements store.ServiceStore.List
func (s *PostgresServiceStore) List(
	ctx context.Context,
	params store.ListParams,
) ([]*domain.ServiceDetail, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := s.spec.whereClause(params)

	var total int
	countQuery := `SELECT COUNT(*) FROM services` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count services", slog.String("error", err.Error()))
		return nil, 0, err
	}

	tail, tailArgs := s.spec.orderLimitClause(params, len(args))
	query := `
		SELECT id, service_type, description, cost, service_date, created_at, updated_at
		FROM services` + where + tail

	rows, err := s.db.QueryContext(ctx, query, append(args, tailArgs...)...)
	if err != nil {
		log.Error("failed to query services", slog.String("error", err.Error()))
		return nil, 0, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	services := []*domain.ServiceDetail{}
	for rows.Next() {
		var detail domain.ServiceDetail
		err := rows.Scan(
			&detail.ID,
			&detail.ServiceType,
			&detail.Description,
			&detail.Cost,
			&detail.ServiceDate,
			&detail.CreatedAt,
			&detail.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan service row", slog.String("error", err.Error()))
			return nil, 0, err
		}
		services = append(services, &detail)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, 0, err
	}

	for _, detail := range services {
		customers, err := s.customersForService(ctx, detail.ID)
		if err != nil {
			log.Error("failed to load service customers",
				slog.String("error", err.Error()),
				slog.String("service_id", detail.ID.String()))
			return nil, 0, err
		}
		detail.Customers = customers
	}

	return services, total, nil
}

// Update implements store.ServiceStore.Update
// A non-nil customerIDs replaces the existing links inside the transaction.
// Returns store.ErrServiceNotFound if the service does not exist.
func (s *PostgresServiceStore) Update(
	ctx context.Context,
	service *domain.Service,
	customerIDs []string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := service.Validate(); err != nil {
		log.Warn("service validation failed during update",
			slog.String("error", err.Error()),
			slog.String("service_id", service.ID.String()))
		return err
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE services
			SET service_type = $1, description = $2, cost = $3, updated_at = $4
			WHERE id = $5`,
			service.ServiceType,
			service.Description,
			service.Cost,
			time.Now().UTC(),
			service.ID,
		)
		if err != nil {
			return fmt.Errorf("update service: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return store.ErrServiceNotFound
		}

		if customerIDs == nil {
			return nil
		}

		_, err = tx.ExecContext(ctx,
			`DELETE FROM customer_services WHERE service_id = $1`, service.ID)
		if err != nil {
			return fmt.Errorf("clear customer links: %w", err)
		}

		return linkCustomers(ctx, tx, service.ID, customerIDs)
	})
	if err != nil {
		if !errors.Is(err, store.ErrServiceNotFound) && !errors.Is(err, store.ErrInvalidReference) {
			log.Error("failed to update service",
				slog.String("error", err.Error()),
				slog.String("service_id", service.ID.String()))
		}
		return err
	}

	log.Info("service updated", slog.String("service_id", service.ID.String()))
	return nil
}

// Delete implements store.ServiceStore.Delete
// Returns store.ErrServiceNotFound if the service does not exist.
// Customer links are removed by the ON DELETE CASCADE on customer_services.
func (s *PostgresServiceStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete service",
			slog.String("error", err.Error()),
			slog.String("service_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return store.ErrServiceNotFound
	}

	log.Info("service deleted", slog.String("service_id", id.String()))
	return nil
}

// AddCustomer implements store.ServiceStore.AddCustomer
// Returns store.ErrCustomerServiceExists if the pair already exists and
// store.ErrInvalidReference if either side is missing.
func (s *PostgresServiceStore) AddCustomer(
	ctx context.Context,
	serviceID uuid.UUID,
	customerID string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO customer_services (customer_id, service_id, created_at)
		VALUES ($1, $2, $3)`,
		customerID, serviceID, time.Now().UTC(),
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return store.ErrCustomerServiceExists
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: customer %s or service %s",
				store.ErrInvalidReference, customerID, serviceID)
		}
		log.Error("failed to add customer to service",
			slog.String("error", err.Error()),
			slog.String("service_id", serviceID.String()),
			slog.String("customer_id", customerID))
		return err
	}

	log.Info("customer added to service",
		slog.String("service_id", serviceID.String()),
		slog.String("customer_id", customerID))
	return nil
}
