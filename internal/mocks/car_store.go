package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/openlot/dealership-api/internal/domain"
	"github.com/openlot/dealership-api/internal/store"
)

// MockCarStore implements store.CarStore for testing.
type MockCarStore struct {
	// Function fields for customizable behavior
	CreateFn  func(ctx context.Context, car *domain.Car) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Car, error)
	ListFn    func(ctx context.Context, params store.ListParams) ([]*domain.Car, int, error)
	UpdateFn  func(ctx context.Context, car *domain.Car) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error

	mu   sync.Mutex
	Cars map[uuid.UUID]*domain.Car
}

// NewMockCarStore creates a new mock store with initialized defaults.
func NewMockCarStore() *MockCarStore {
	return &MockCarStore{
		Cars: make(map[uuid.UUID]*domain.Car),
	}
}

var _ store.CarStore = (*MockCarStore)(nil)

// Create implements the CarStore interface.
func (m *MockCarStore) Create(ctx context.Context, car *domain.Car) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, car)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *car
	m.Cars[car.ID] = &copied
	return nil
}

// GetByID implements the CarStore interface.
func (m *MockCarStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	car, ok := m.Cars[id]
	if !ok {
		return nil, store.ErrCarNotFound
	}
	copied := *car
	return &copied, nil
}

// List implements the CarStore interface.
func (m *MockCarStore) List(
	ctx context.Context,
	params store.ListParams,
) ([]*domain.Car, int, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, params)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	cars := make([]*domain.Car, 0, len(m.Cars))
	for _, car := range m.Cars {
		copied := *car
		cars = append(cars, &copied)
	}
	return cars, len(cars), nil
}

// Update implements the CarStore interface.
func (m *MockCarStore) Update(ctx context.Context, car *domain.Car) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, car)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Cars[car.ID]; !ok {
		return store.ErrCarNotFound
	}
	copied := *car
	m.Cars[car.ID] = &copied
	return nil
}

// Delete implements the CarStore interface.
func (m *MockCarStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Cars[id]; !ok {
		return store.ErrCarNotFound
	}
	delete(m.Cars, id)
	return nil
}

// setStatus transitions a car's status under the store lock. When guard is
// non-empty the transition only happens if the current status matches,
// mirroring the real store's guarded UPDATE. Returns false when the guard
// fails or the car is missing.
func (m *MockCarStore) setStatus(id uuid.UUID, guard, next domain.CarStatus) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	car, ok := m.Cars[id]
	if !ok {
		return false
	}
	if guard != "" && car.Status != guard {
		return false
	}
	car.Status = next
	return true
}
