package store

import (
	"context"

	"github.com/openlot/dealership-api/internal/domain"
)

// CustomerStore defines the persistence operations for customers.
type CustomerStore interface {
	// Create saves a new customer.
	// Returns ErrCustomerIDExists or ErrEmailExists on unique violations.
	Create(ctx context.Context, customer *domain.Customer) error

	// GetByID retrieves a customer by its user-chosen ID.
	// Returns ErrCustomerNotFound if the customer does not exist.
	GetByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// GetByEmail retrieves a customer by email, which is unique. Used by
	// login.
	// Returns ErrCustomerNotFound if no customer has the email.
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)

	// List returns the page of customers matching the params together with
	// the total match count before paging.
	List(ctx context.Context, params ListParams) ([]*domain.Customer, int, error)

	// Update replaces the profile fields of an existing customer. The
	// password is not touched.
	// Returns ErrCustomerNotFound if absent, ErrEmailExists if the new email
	// belongs to another customer.
	Update(ctx context.Context, customer *domain.Customer) error

	// Delete removes a customer by its ID.
	// Returns ErrCustomerNotFound if the customer does not exist.
	Delete(ctx context.Context, customerID string) error
}
