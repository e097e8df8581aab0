package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/openlot/dealership-api/internal/domain"
	"github.com/openlot/dealership-api/internal/platform/logger"
	"github.com/openlot/dealership-api/internal/store"
)

// Unique constraint names from the customers migration, used to tell a
// duplicate customer ID apart from a duplicate email.
const (
	customerPKConstraint    = "customers_pkey"
	customerEmailConstraint = "customers_email_key"
)

// PostgresCustomerStore implements the store.CustomerStore interface using a
// PostgreSQL database as the storage backend.
type PostgresCustomerStore struct {
	db     store.DBTX
	logger *slog.Logger
	spec   listSpec
}

// NewPostgresCustomerStore creates a new PostgreSQL implementation of the
// CustomerStore interface. If logger is nil, a default logger will be used.
func NewPostgresCustomerStore(db store.DBTX, logger *slog.Logger) *PostgresCustomerStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCustomerStore{
		db:     db,
		logger: logger.With(slog.String("component", "customer_store")),
		spec: listSpec{
			searchColumns: []string{"customer_id", "firstname", "lastname", "email", "phone"},
			sortColumns: map[string]string{
				"createdAt": "created_at",
				"firstname": "firstname",
				"lastname":  "lastname",
				"email":     "email",
			},
			defaultSort: "created_at",
		},
	}
}

// Ensure PostgresCustomerStore implements store.CustomerStore interface
var _ store.CustomerStore = (*PostgresCustomerStore)(nil)

// Create implements store.CustomerStore.Create
// Returns store.ErrCustomerIDExists or store.ErrEmailExists on unique
// violations.
func (s *PostgresCustomerStore) Create(ctx context.Context, customer *domain.Customer) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := customer.Validate(); err != nil {
		log.Warn("customer validation failed during create",
			slog.String("error", err.Error()),
			slog.String("customer_id", customer.CustomerID))
		return err
	}

	query := `
		INSERT INTO customers (customer_id, firstname, lastname, phone, address, email, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		customer.CustomerID,
		customer.Firstname,
		customer.Lastname,
		customer.Phone,
		customer.Address,
		customer.Email,
		customer.HashedPassword,
		customer.CreatedAt,
		customer.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err, customerPKConstraint):
			return store.ErrCustomerIDExists
		case isUniqueViolation(err, customerEmailConstraint):
			return store.ErrEmailExists
		}
		log.Error("failed to create customer",
			slog.String("error", err.Error()),
			slog.String("customer_id", customer.CustomerID))
		return err
	}

	log.Info("customer created", slog.String("customer_id", customer.CustomerID))
	return nil
}

// GetByID implements store.CustomerStore.GetByID
// Returns store.ErrCustomerNotFound if the customer does not exist.
func (s *PostgresCustomerStore) GetByID(
	ctx context.Context,
	customerID string,
) (*domain.Customer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT customer_id, firstname, lastname, phone, address, email, hashed_password, created_at, updated_at
		FROM customers
		WHERE customer_id = $1
	`

	var customer domain.Customer
	err := s.db.QueryRowContext(ctx, query, customerID).Scan(
		&customer.CustomerID,
		&customer.Firstname,
		&customer.Lastname,
		&customer.Phone,
		&customer.Address,
		&customer.Email,
		&customer.HashedPassword,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCustomerNotFound
		}
		log.Error("failed to get customer by ID",
			slog.String("error", err.Error()),
			slog.String("customer_id", customerID))
		return nil, err
	}

	return &customer, nil
}

// GetByEmail implements store.CustomerStore.GetByEmail
// Returns store.ErrCustomerNotFound if no customer has the email.
func (s *PostgresCustomerStore) GetByEmail(
	ctx context.Context,
	email string,
) (*domain.Customer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT customer_id, firstname, lastname, phone, address, email, hashed_password, created_at, updated_at
		FROM customers
		WHERE email = $1
	`

	var customer domain.Customer
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&customer.CustomerID,
		&customer.Firstname,
		&customer.Lastname,
		&customer.Phone,
		&customer.Address,
		&customer.Email,
		&customer.HashedPassword,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCustomerNotFound
		}
		log.Error("failed to get customer by email",
			slog.String("error", err.Error()))
		return nil, err
	}

	return &customer, nil
}

// List implements store.CustomerStore.List
func (s *PostgresCustomerStore) List(
	ctx context.Context,
	params store.ListParams,
) ([]*domain.Customer, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := s.spec.whereClause(params)

	var total int
	countQuery := `SELECT COUNT(*) FROM customers` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count customers", slog.String("error", err.Error()))
		return nil, 0, err
	}

	tail, tailArgs := s.spec.orderLimitClause(params, len(args))
	query := `
		SELECT customer_id, firstname, lastname, phone, address, email, hashed_password, created_at, updated_at
		FROM customers` + where + tail

	rows, err := s.db.QueryContext(ctx, query, append(args, tailArgs...)...)
	if err != nil {
		log.Error("failed to query customers", slog.String("error", err.Error()))
		return nil, 0, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	customers := []*domain.Customer{}
	for rows.Next() {
		var customer domain.Customer
		err := rows.Scan(
			&customer.CustomerID,
			&customer.Firstname,
			&customer.Lastname,
			&customer.Phone,
			&customer.Address,
			&customer.Email,
			&customer.HashedPassword,
			&customer.CreatedAt,
			&customer.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan customer row", slog.String("error", err.Error()))
			return nil, 0, err
		}
		customers = append(customers, &customer)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, 0, err
	}

	return customers, total, nil
}

// Update implements store.CustomerStore.Update
// Returns store.ErrCustomerNotFound if absent, store.ErrEmailExists if the
// new email collides with another customer.
func (s *PostgresCustomerStore) Update(ctx context.Context, customer *domain.Customer) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := customer.Validate(); err != nil {
		log.Warn("customer validation failed during update",
			slog.String("error", err.Error()),
			slog.String("customer_id", customer.CustomerID))
		return err
	}

	query := `
		UPDATE customers
		SET firstname = $1, lastname = $2, phone = $3, address = $4, email = $5, updated_at = $6
		WHERE customer_id = $7
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		customer.Firstname,
		customer.Lastname,
		customer.Phone,
		customer.Address,
		customer.Email,
		time.Now().UTC(),
		customer.CustomerID,
	)
	if err != nil {
		if isUniqueViolation(err, customerEmailConstraint) {
			return store.ErrEmailExists
		}
		log.Error("failed to update customer",
			slog.String("error", err.Error()),
			slog.String("customer_id", customer.CustomerID))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return store.ErrCustomerNotFound
	}

	log.Info("customer updated", slog.String("customer_id", customer.CustomerID))
	return nil
}

// Delete implements store.CustomerStore.Delete
// Returns store.ErrCustomerNotFound if the customer does not exist.
func (s *PostgresCustomerStore) Delete(ctx context.Context, customerID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx, `DELETE FROM customers WHERE customer_id = $1`, customerID)
	if err != nil {
		log.Error("failed to delete customer",
			slog.String("error", err.Error()),
			slog.String("customer_id", customerID))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return store.ErrCustomerNotFound
	}

	log.Info("customer deleted", slog.String("customer_id", customerID))
	return nil
}
