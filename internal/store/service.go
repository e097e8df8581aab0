package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/openlot/dealership-api/internal/domain"
)

// ServiceStore defines the persistence operations for services and their
// customer links.
type ServiceStore interface {
	// Create saves a new service and, when customerIDs is non-empty, links
	// the given customers in the same transaction.
	// Returns ErrInvalidReference if a customer ID does not exist.
	Create(ctx context.Context, service *domain.Service, customerIDs []string) error

	// GetByID retrieves a service with its linked customers.
	// Returns ErrServiceNotFound if the service does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ServiceDetail, error)

	// List returns the page of services matching the params together with
	// the total match count before paging.
	List(ctx context.Context, params ListParams) ([]*domain.ServiceDetail, int, error)

	// Update replaces the service fields. A non-nil customerIDs replaces the
	// existing customer links; nil leaves them untouched.
	// Returns ErrServiceNotFound if the service does not exist.
	Update(ctx context.Context, service *domain.Service, customerIDs []string) error

	// Delete removes a service and its links.
	// Returns ErrServiceNotFound if the service does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddCustomer links a customer to a service.
	// Returns ErrCustomerServiceExists if the pair already exists and
	// ErrInvalidReference if either side is missing.
	AddCustomer(ctx context.Context, serviceID uuid.UUID, customerID string) error
}
