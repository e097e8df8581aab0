package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/openlot/dealership-api/internal/domain"
	"github.com/openlot/dealership-api/internal/store"
)

// MockServiceStore implements store.ServiceStore for testing.
type MockServiceStore struct {
	// Function fields for customizable behavior
	CreateFn      func(ctx context.Context, service *domain.Service, customerIDs []string) error
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.ServiceDetail, error)
	ListFn        func(ctx context.Context, params store.ListParams) ([]*domain.ServiceDetail, int, error)
	UpdateFn      func(ctx context.Context, service *domain.Service, customerIDs []string) error
	DeleteFn      func(ctx context.Context, id uuid.UUID) error
	AddCustomerFn func(ctx context.Context, serviceID uuid.UUID, customerID string) error

	mu       sync.Mutex
	Services map[uuid.UUID]*domain.Service
	Links    map[uuid.UUID][]string
}

// NewMockServiceStore creates a new mock store with initialized defaults.
func NewMockServiceStore() *MockServiceStore {
	return &MockServiceStore{
		Services: make(map[uuid.UUID]*domain.Service),
		Links:    make(map[uuid.UUID][]string),
	}
}

var _ store.ServiceStore = (*MockServiceStore)(nil)

// Create implements the ServiceStore interface.
func (m *MockServiceStore) Create(
	ctx context.Context,
	service *domain.Service,
	customerIDs []string,
) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, service, customerIDs)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *service
	m.Services[service.ID] = &copied
	if len(customerIDs) > 0 {
		m.Links[service.ID] = append([]string(nil), customerIDs...)
	}
	return nil
}

// GetByID implements the ServiceStore interface.
func (m *MockServiceStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.ServiceDetail, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.detail(id)
}

// List implements the ServiceStore interface.
func (m *MockServiceStore) List(
	ctx context.Context,
	params store.ListParams,
) ([]*domain.ServiceDetail, int, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, params)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	services := make([]*domain.ServiceDetail, 0, len(m.Services))
	for id := range m.Services {
		d, err := m.detail(id)
		if err != nil {
			return nil, 0, err
		}
		services = append(services, d)
	}
	return services, len(services), nil
}

// Update implements the ServiceStore interface.
func (m *MockServiceStore) Update(
	ctx context.Context,
	service *domain.Service,
	customerIDs []string,
) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, service, customerIDs)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Services[service.ID]; !ok {
		return store.ErrServiceNotFound
	}
	copied := *service
	m.Services[service.ID] = &copied
	if customerIDs != nil {
		m.Links[service.ID] = append([]string(nil), customerIDs...)
	}
	return nil
}

// Delete implements the ServiceStore interface.
func (m *MockServiceStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Services[id]; !ok {
		return store.ErrServiceNotFound
	}
	delete(m.Services, id)
	delete(m.Links, id)
	return nil
}

// AddCustomer implements the ServiceStore interface.
func (m *MockServiceStore) AddCustomer(
	ctx context.Context,
	serviceID uuid.UUID,
	customerID string,
) error {
	if m.AddCustomerFn != nil {
		return m.AddCustomerFn(ctx, serviceID, customerID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Services[serviceID]; !ok {
		return store.ErrInvalidReference
	}
	for _, id := range m.Links[serviceID] {
		if id == customerID {
			return store.ErrCustomerServiceExists
		}
	}
	m.Links[serviceID] = append(m.Links[serviceID], customerID)
	return nil
}

// detail builds a ServiceDetail from the stored service and its links.
// Callers must hold m.mu.
func (m *MockServiceStore) detail(id uuid.UUID) (*domain.ServiceDetail, error) {
	service, ok := m.Services[id]
	if !ok {
		return nil, store.ErrServiceNotFound
	}

	d := &domain.ServiceDetail{Service: *service, Customers: []domain.ServiceCustomer{}}
	for _, customerID := range m.Links[id] {
		d.Customers = append(d.Customers, domain.ServiceCustomer{CustomerID: customerID})
	}
	return d, nil
}
