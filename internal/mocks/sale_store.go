package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/openlot/dealership-api/internal/domain"
	"github.com/openlot/dealership-api/internal/store"
)

// MockSaleStore implements store.SaleStore for testing. It shares state with
// a MockCarStore so Create and Delete reproduce the real store's atomic car
// status transitions: Create performs the guarded AVAILABLE-to-SOLD flip and
// fails with ErrCarUnavailable when the guard misses, Delete reverts the car
// unconditionally.
type MockSaleStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, sale *domain.Sale) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.SaleDetail, error)
	ListFn    func(ctx context.Context, params store.ListParams) ([]*domain.SaleDetail, int, error)
	UpdateFn  func(ctx context.Context, id uuid.UUID, totalPrice float64, status domain.SaleStatus) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error

	cars *MockCarStore

	mu    sync.Mutex
	Sales map[uuid.UUID]*domain.Sale
}

// NewMockSaleStore creates a new mock sale store backed by the given car
// store.
func NewMockSaleStore(cars *MockCarStore) *MockSaleStore {
	return &MockSaleStore{
		cars:  cars,
		Sales: make(map[uuid.UUID]*domain.Sale),
	}
}

var _ store.SaleStore = (*MockSaleStore)(nil)

// Create implements the SaleStore interface with the guarded status flip.
func (m *MockSaleStore) Create(ctx context.Context, sale *domain.Sale) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, sale)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.cars.GetByID(ctx, sale.CarID); err != nil {
		return store.ErrInvalidReference
	}

	if !m.cars.setStatus(sale.CarID, domain.CarStatusAvailable, domain.CarStatusSold) {
		return store.ErrCarUnavailable
	}

	copied := *sale
	m.Sales[sale.ID] = &copied
	return nil
}

// GetByID implements the SaleStore interface.
func (m *MockSaleStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.SaleDetail, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	sale, ok := m.Sales[id]
	if !ok {
		return nil, store.ErrSaleNotFound
	}
	return m.detail(ctx, sale), nil
}

// List implements the SaleStore interface.
func (m *MockSaleStore) List(
	ctx context.Context,
	params store.ListParams,
) ([]*domain.SaleDetail, int, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, params)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	sales := make([]*domain.SaleDetail, 0, len(m.Sales))
	for _, sale := range m.Sales {
		sales = append(sales, m.detail(ctx, sale))
	}
	return sales, len(sales), nil
}

// Update implements the SaleStore interface.
func (m *MockSaleStore) Update(
	ctx context.Context,
	id uuid.UUID,
	totalPrice float64,
	status domain.SaleStatus,
) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, totalPrice, status)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	sale, ok := m.Sales[id]
	if !ok {
		return store.ErrSaleNotFound
	}
	sale.TotalPrice = totalPrice
	sale.Status = status
	return nil
}

// Delete implements the SaleStore interface with the unconditional car
// release.
func (m *MockSaleStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	sale, ok := m.Sales[id]
	if !ok {
		return store.ErrSaleNotFound
	}

	m.cars.setStatus(sale.CarID, "", domain.CarStatusAvailable)
	delete(m.Sales, id)
	return nil
}

// detail builds a SaleDetail, filling the car display fields from the shared
// car store when the car still exists. Callers must hold m.mu.
func (m *MockSaleStore) detail(ctx context.Context, sale *domain.Sale) *domain.SaleDetail {
	d := &domain.SaleDetail{Sale: *sale}
	if car, err := m.cars.GetByID(ctx, sale.CarID); err == nil {
		d.CarMake = car.Make
		d.CarModel = car.Model
		d.CarYear = car.Year
	}
	return d
}
