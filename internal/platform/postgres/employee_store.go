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

// PostgresEmployeeStore implements the store.EmployeeStore interface using a
// PostgreSQL database as the storage backend.
type PostgresEmployeeStore struct {
	db     store.DBTX
	logger *slog.Logger
	spec   listSpec
}

// NewPostgresEmployeeStore creates a new PostgreSQL implementation of the
// EmployeeStore interface. If logger is nil, a default logger will be used.
func NewPostgresEmployeeStore(db store.DBTX, logger *slog.Logger) *PostgresEmployeeStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresEmployeeStore{
		db:     db,
		logger: logger.With(slog.String("component", "employee_store")),
		spec: listSpec{
			filterColumns: map[string]string{
				"role": "role",
			},
			searchColumns: []string{"employee_id", "fname", "lname"},
			sortColumns: map[string]string{
				"createdAt": "created_at",
				"fname":     "fname",
				"lname":     "lname",
				"role":      "role",
			},
			defaultSort: "created_at",
		},
	}
}

// Ensure PostgresEmployeeStore implements store.EmployeeStore interface
var _ store.EmployeeStore = (*PostgresEmployeeStore)(nil)

// Create implements store.EmployeeStore.Create
// Returns store.ErrEmployeeIDExists on a unique violation.
func (s *PostgresEmployeeStore) Create(ctx context.Context, employee *domain.Employee) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := employee.Validate(); err != nil {
		log.Warn("employee validation failed during create",
			slog.String("error", err.Error()),
			slog.String("employee_id", employee.EmployeeID))
		return err
	}

	query := `
		INSERT INTO employees (employee_id, fname, lname, phone, role, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		employee.EmployeeID,
		employee.Fname,
		employee.Lname,
		employee.Phone,
		employee.Role,
		employee.HashedPassword,
		employee.CreatedAt,
		employee.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return store.ErrEmployeeIDExists
		}
		log.Error("failed to create employee",
			slog.String("error", err.Error()),
			slog.String("employee_id", employee.EmployeeID))
		return err
	}

	log.Info("employee created",
		slog.String("employee_id", employee.EmployeeID),
		slog.String("role", string(employee.Role)))
	return nil
}

// GetByID implements store.EmployeeStore.GetByID
// Returns store.ErrEmployeeNotFound if the employee does not exist.
func (s *PostgresEmployeeStore) GetByID(
	ctx context.Context,
	employeeID string,
) (*domain.Employee, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT employee_id, fname, lname, phone, role, hashed_password, created_at, updated_at
		FROM employees
		WHERE employee_id = $1
	`

	var employee domain.Employee
	var role string

	err := s.db.QueryRowContext(ctx, query, employeeID).Scan(
		&employee.EmployeeID,
		&employee.Fname,
		&employee.Lname,
		&employee.Phone,
		&role,
		&employee.HashedPassword,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrEmployeeNotFound
		}
		log.Error("failed to get employee by ID",
			slog.String("error", err.Error()),
			slog.String("employee_id", employeeID))
		return nil, err
	}

	employee.Role = domain.EmployeeRole(role)
	return &employee, nil
}

// List implements store.EmployeeStore.List
func (s *PostgresEmployeeStore) List(
	ctx context.Context,
	params store.ListParams,
) ([]*domain.Employee, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := s.spec.whereClause(params)

	var total int
	countQuery := `SELECT COUNT(*) FROM employees` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count employees", slog.String("error", err.Error()))
		return nil, 0, err
	}

	tail, tailArgs := s.spec.orderLimitClause(params, len(args))
	query := `
		SELECT employee_id, fname, lname, phone, role, hashed_password, created_at, updated_at
		FROM employees` + where + tail

	rows, err := s.db.QueryContext(ctx, query, append(args, tailArgs...)...)
	if err != nil {
		log.Error("failed to query employees", slog.String("error", err.Error()))
		return nil, 0, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	employees := []*domain.Employee{}
	for rows.Next() {
		var employee domain.Employee
		var role string

		err := rows.Scan(
			&employee.EmployeeID,
			&employee.Fname,
			&employee.Lname,
			&employee.Phone,
			&role,
			&employee.HashedPassword,
			&employee.CreatedAt,
			&employee.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan employee row", slog.String("error", err.Error()))
			return nil, 0, err
		}

		employee.Role = domain.EmployeeRole(role)
		employees = append(employees, &employee)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, 0, err
	}

	return employees, total, nil
}

// Update implements store.EmployeeStore.Update
// Returns store.ErrEmployeeNotFound if the employee does not exist.
func (s *PostgresEmployeeStore) Update(ctx context.Context, employee *domain.Employee) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := employee.Validate(); err != nil {
		log.Warn("employee validation failed during update",
			slog.String("error", err.Error()),
			slog.String("employee_id", employee.EmployeeID))
		return err
	}

	query := `
		UPDATE employees
		SET fname = $1, lname = $2, phone = $3, role = $4, updated_at = $5
		WHERE employee_id = $6
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		employee.Fname,
		employee.Lname,
		employee.Phone,
		employee.Role,
		time.Now().UTC(),
		employee.EmployeeID,
	)
	if err != nil {
		log.Error("failed to update employee",
			slog.String("error", err.Error()),
			slog.String("employee_id", employee.EmployeeID))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return store.ErrEmployeeNotFound
	}

	log.Info("employee updated", slog.String("employee_id", employee.EmployeeID))
	return nil
}

// Delete implements store.EmployeeStore.Delete
// Returns store.ErrEmployeeNotFound if the employee does not exist.
func (s *PostgresEmployeeStore) Delete(ctx context.Context, employeeID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx, `DELETE FROM employees WHERE employee_id = $1`, employeeID)
	if err != nil {
		log.Error("failed to delete employee",
			slog.String("error", err.Error()),
			slog.String("employee_id", employeeID))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return store.ErrEmployeeNotFound
	}

	log.Info("employee deleted", slog.String("employee_id", employeeID))
	return nil
}
