// Package service contains the application services that orchestrate domain
// operations across stores. The sale service is the owner of the inventory
// consistency invariant: a car is SOLD exactly while an active sale
// references it.
package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/openlot/dealership-api/internal/domain"
	"github.com/openlot/dealership-api/internal/store"
)

// SaleService coordinates sale creation and deletion with the referenced
// car's status. The store performs the two-statement atomic unit; this
// service owns validation, the availability pre-check and the denormalized
// read-back.
type SaleService struct {
	saleStore store.SaleStore
	carStore  store.CarStore
	logger    *slog.Logger
}

// NewSaleService creates a SaleService with the given stores.
// If logger is nil, the default logger is used.
func NewSaleService(saleStore store.SaleStore, carStore store.CarStore, logger *slog.Logger) *SaleService {
	if logger == nil {
		logger = slog.Default()
	}

	return &SaleService{
		saleStore: saleStore,
		carStore:  carStore,
		logger:    logger.With(slog.String("component", "sale_service")),
	}
}

// CreateSale records a sale of the given car and marks the car SOLD.
//
// The availability pre-check here is advisory: it produces a fast, friendly
// error for the common case. The authoritative check is the guarded status
// flip inside the store's transaction, so two concurrent calls on the same
// AVAILABLE car cannot both succeed.
//
// Returns store.ErrCarNotFound, store.ErrCarUnavailable,
// store.ErrInvalidReference or a domain validation error.
func (s *SaleService) CreateSale(
	ctx context.Context,
	customerID, employeeID string,
	carID uuid.UUID,
	totalPrice float64,
	status domain.SaleStatus,
) (*domain.SaleDetail, error) {
	sale, err := domain.NewSale(customerID, employeeID, carID, totalPrice, status)
	if err != nil {
		return nil, err
	}

	car, err := s.carStore.GetByID(ctx, carID)
	if err != nil {
		return nil, err
	}

	if car.Status != domain.CarStatusAvailable {
		s.logger.Debug("sale rejected, car not available",
			slog.String("car_id", carID.String()),
			slog.String("car_status", string(car.Status)))
		return nil, store.ErrCarUnavailable
	}

	if err := s.saleStore.Create(ctx, sale); err != nil {
		return nil, err
	}

	s.logger.Info("sale created",
		slog.String("sale_id", sale.ID.String()),
		slog.String("car_id", carID.String()),
		slog.String("customer_id", customerID),
		slog.String("employee_id", employeeID))

	return s.saleStore.GetByID(ctx, sale.ID)
}

// GetSale retrieves a sale with its denormalized display fields.
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*domain.SaleDetail, error) {
	return s.saleStore.GetByID(ctx, id)
}

// ListSales returns the page of sales matching the params and the total
// match count.
func (s *SaleService) ListSales(
	ctx context.Context,
	params store.ListParams,
) ([]*domain.SaleDetail, int, error) {
	return s.saleStore.List(ctx, params)
}

// UpdateSale changes the sale's total price and status. It never touches the
// referenced car's status.
func (s *SaleService) UpdateSale(
	ctx context.Context,
	id uuid.UUID,
	totalPrice float64,
	status domain.SaleStatus,
) (*domain.SaleDetail, error) {
	if totalPrice <= 0 {
		return nil, domain.ErrInvalidSalePrice
	}

	if !status.IsValid() {
		return nil, domain.ErrInvalidSaleStatus
	}

	if err := s.saleStore.Update(ctx, id, totalPrice, status); err != nil {
		return nil, err
	}

	return s.saleStore.GetByID(ctx, id)
}

// DeleteSale removes the sale and releases the referenced car back to
// AVAILABLE. The revert is unconditional: no other write path releases cars
// in this system, so the sale's existence fully determines the resting state.
func (s *SaleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	if err := s.saleStore.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("sale deleted", slog.String("sale_id", id.String()))
	return nil
}
