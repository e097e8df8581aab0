package mocks

import (
	"context"
	"sync"

	"github.com/openlot/dealership-api/internal/domain"
	"github.com/openlot/dealership-api/internal/store"
)

// MockCustomerStore implements store.CustomerStore for testing.
type MockCustomerStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, customer *domain.Customer) error
	GetByIDFn    func(ctx context.Context, customerID string) (*domain.Customer, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.Customer, error)
	ListFn       func(ctx context.Context, params store.ListParams) ([]*domain.Customer, int, error)
	UpdateFn     func(ctx context.Context, customer *domain.Customer) error
	DeleteFn     func(ctx context.Context, customerID string) error

	mu        sync.Mutex
	Customers map[string]*domain.Customer
}

// NewMockCustomerStore creates a new mock store with initialized defaults.
func NewMockCustomerStore() *MockCustomerStore {
	return &MockCustomerStore{
		Customers: make(map[string]*domain.Customer),
	}
}

var _ store.CustomerStore = (*MockCustomerStore)(nil)

// Create implements the CustomerStore interface.
func (m *MockCustomerStore) Create(ctx context.Context, customer *domain.Customer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, customer)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.Customers[customer.CustomerID]; exists {
		return store.ErrCustomerIDExists
	}
	for _, c := range m.Customers {
		if c.Email == customer.Email {
			return store.ErrEmailExists
		}
	}
	copied := *customer
	m.Customers[customer.CustomerID] = &copied
	return nil
}

// GetByID implements the CustomerStore interface.
func (m *MockCustomerStore) GetByID(
	ctx context.Context,
	customerID string,
) (*domain.Customer, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, customerID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	customer, ok := m.Customers[customerID]
	if !ok {
		return nil, store.ErrCustomerNotFound
	}
	copied := *customer
	return &copied, nil
}

// GetByEmail implements the CustomerStore interface.
func (m *MockCustomerStore) GetByEmail(
	ctx context.Context,
	email string,
) (*domain.Customer, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, customer := range m.Customers {
		if customer.Email == email {
			copied := *customer
			return &copied, nil
		}
	}
	return nil, store.ErrCustomerNotFound
}

// List implements the CustomerStore interface.
func (m *MockCustomerStore) List(
	ctx context.Context,
	params store.ListParams,
) ([]*domain.Customer, int, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, params)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	customers := make([]*domain.Customer, 0, len(m.Customers))
	for _, customer := range m.Customers {
		copied := *customer
		customers = append(customers, &copied)
	}
	return customers, len(customers), nil
}

// Update implements the CustomerStore interface.
func (m *MockCustomerStore) Update(ctx context.Context, customer *domain.Customer) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, customer)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Customers[customer.CustomerID]; !ok {
		return store.ErrCustomerNotFound
	}
	for id, c := range m.Customers {
		if id != customer.CustomerID && c.Email == customer.Email {
			return store.ErrEmailExists
		}
	}
	copied := *customer
	m.Customers[customer.CustomerID] = &copied
	return nil
}

// Delete implements the CustomerStore interface.
func (m *MockCustomerStore) Delete(ctx context.Context, customerID string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, customerID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Customers[customerID]; !ok {
		return store.ErrCustomerNotFound
	}
	delete(m.Customers, customerID)
	return nil
}
