package store

import (
	"context"

	"github.com/openlot/dealership-api/internal/domain"
)

// EmployeeStore defines the persistence operations for employees.
type EmployeeStore interface {
	// Create saves a new employee.
	// Returns ErrEmployeeIDExists on a unique violation.
	Create(ctx context.Context, employee *domain.Employee) error

	// GetByID retrieves an employee by its user-chosen ID.
	// Returns ErrEmployeeNotFound if the employee does not exist.
	GetByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// List returns the page of employees matching the params together with
	// the total match count before paging.
	List(ctx context.Context, params ListParams) ([]*domain.Employee, int, error)

	// Update replaces the profile fields of an existing employee. The
	// password is not touched.
	// Returns ErrEmployeeNotFound if the employee does not exist.
	Update(ctx context.Context, employee *domain.Employee) error

	// Delete removes an employee by its ID.
	// Returns ErrEmployeeNotFound if the employee does not exist.
	Delete(ctx context.Context, employeeID string) error
}
