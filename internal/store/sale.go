package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/openlot/dealership-api/internal/domain"
)

// SaleStore defines the persistence operations for sales.
//
// Create and Delete are two-statement atomic units: the sale row and the
// referenced car's status change together or not at all.
type SaleStore interface {
	// Create inserts the sale and flips the referenced car from AVAILABLE to
	// SOLD in one transaction. The status flip is a guarded update
	// (WHERE status = 'AVAILABLE'); if it affects zero rows the whole
	// transaction rolls back and ErrCarUnavailable is returned. This closes
	// the race window between the caller's availability pre-check and the
	// commit.
	// Returns ErrInvalidReference if the customer, employee or car does not
	// exist.
	Create(ctx context.Context, sale *domain.Sale) error

	// GetByID retrieves a sale with its denormalized display fields.
	// Returns ErrSaleNotFound if the sale does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SaleDetail, error)

	// List returns the page of sales matching the params together with the
	// total match count before paging.
	List(ctx context.Context, params ListParams) ([]*domain.SaleDetail, int, error)

	// Update changes the sale's total price and status. It never touches the
	// referenced car.
	// Returns ErrSaleNotFound if the sale does not exist.
	Update(ctx context.Context, id uuid.UUID, totalPrice float64, status domain.SaleStatus) error

	// Delete removes the sale and sets the referenced car back to AVAILABLE
	// in one transaction. The revert is unconditional: deletion is the only
	// write path that releases a car in this system.
	// Returns ErrSaleNotFound if the sale does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
