package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. Entity-specific variants below wrap it so callers can match
	// either the generic or the specific error.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a unique
	// constraint (e.g. a customer with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidReference is returned when a create or update references an
	// entity that does not exist (foreign key violation).
	ErrInvalidReference = errors.New("referenced entity not found")

	// ErrCarUnavailable is returned by the sale transaction when the guarded
	// status flip affects zero rows, meaning the car was not AVAILABLE at
	// commit time. The whole transaction rolls back.
	ErrCarUnavailable = errors.New("car is not available")

	// Entity-specific "not found" errors

	ErrCarNotFound      = fmt.Errorf("%w: car", ErrNotFound)
	ErrCustomerNotFound = fmt.Errorf("%w: customer", ErrNotFound)
	ErrEmployeeNotFound = fmt.Errorf("%w: employee", ErrNotFound)
	ErrSaleNotFound     = fmt.Errorf("%w: sale", ErrNotFound)
	ErrServiceNotFound  = fmt.Errorf("%w: service", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrCustomerIDExists indicates the user-chosen customer ID is taken.
	ErrCustomerIDExists = fmt.Errorf("%w: customer ID", ErrDuplicate)

	// ErrEmailExists indicates a customer with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrEmployeeIDExists indicates the user-chosen employee ID is taken.
	ErrEmployeeIDExists = fmt.Errorf("%w: employee ID", ErrDuplicate)

	// ErrCustomerServiceExists indicates the customer is already linked to
	// the service.
	ErrCustomerServiceExists = fmt.Errorf("%w: customer service link", ErrDuplicate)
)

// IsNotFound reports whether the error is any kind of "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicate reports whether the error is any kind of unique-constraint
// violation.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
