package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/openlot/dealership-api/internal/domain"
)

// CarStore defines the persistence operations for cars.
type CarStore interface {
	// Create saves a new car.
	Create(ctx context.Context, car *domain.Car) error

	// GetByID retrieves a car by its ID.
	// Returns ErrCarNotFound if the car does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error)

	// List returns the page of cars matching the params together with the
	// total match count before paging.
	List(ctx context.Context, params ListParams) ([]*domain.Car, int, error)

	// Update replaces all mutable fields of an existing car.
	// Returns ErrCarNotFound if the car does not exist.
	//
	// Updating Status here bypasses the sale manager's invariant; it is the
	// administrative escape hatch and is not arbitrated by the sale flow.
	Update(ctx context.Context, car *domain.Car) error

	// Delete removes a car by its ID.
	// Returns ErrCarNotFound if the car does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
