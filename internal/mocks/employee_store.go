package mocks

import (
	"context"
	"sync"

	"github.com/openlot/dealership-api/internal/domain"
	"github.com/openlot/dealership-api/internal/store"
)

// MockEmployeeStore implements store.EmployeeStore for testing.
type MockEmployeeStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, employee *domain.Employee) error
	GetByIDFn func(ctx context.Context, employeeID string) (*domain.Employee, error)
	ListFn    func(ctx context.Context, params store.ListParams) ([]*domain.Employee, int, error)
	UpdateFn  func(ctx context.Context, employee *domain.Employee) error
	DeleteFn  func(ctx context.Context, employeeID string) error

	mu        sync.Mutex
	Employees map[string]*domain.Employee
}

// NewMockEmployeeStore creates a new mock store with initialized defaults.
func NewMockEmployeeStore() *MockEmployeeStore {
	return &MockEmployeeStore{
		Employees: make(map[string]*domain.Employee),
	}
}

var _ store.EmployeeStore = (*MockEmployeeStore)(nil)

// Create implements the EmployeeStore interface.
func (m *MockEmployeeStore) Create(ctx context.Context, employee *domain.Employee) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, employee)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.Employees[employee.EmployeeID]; exists {
		return store.ErrEmployeeIDExists
	}
	copied := *employee
	m.Employees[employee.EmployeeID] = &copied
	return nil
}

// GetByID implements the EmployeeStore interface.
func (m *MockEmployeeStore) GetByID(
	ctx context.Context,
	employeeID string,
) (*domain.Employee, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, employeeID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	employee, ok := m.Employees[employeeID]
	if !ok {
		return nil, store.ErrEmployeeNotFound
	}
	copied := *employee
	return &copied, nil
}

// List implements the EmployeeStore interface.
func (m *MockEmployeeStore) List(
	ctx context.Context,
	params store.ListParams,
) ([]*domain.Employee, int, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, params)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	employees := make([]*domain.Employee, 0, len(m.Employees))
	for _, employee := range m.Employees {
		copied := *employee
		employees = append(employees, &copied)
	}
	return employees, len(employees), nil
}

// Update implements the EmployeeStore interface.
func (m *MockEmployeeStore) Update(ctx context.Context, employee *domain.Employee) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, employee)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Employees[employee.EmployeeID]; !ok {
		return store.ErrEmployeeNotFound
	}
	copied := *employee
	m.Employees[employee.EmployeeID] = &copied
	return nil
}

// Delete implements the EmployeeStore interface.
func (m *MockEmployeeStore) Delete(ctx context.Context, employeeID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, employeeID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Employees[employeeID]; !ok {
		return store.ErrEmployeeNotFound
	}
	delete(m.Employees, employeeID)
	return nil
}
