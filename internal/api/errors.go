package api

import (
	"errors"
	"net/http"

	"github.com/openlot/dealership-api/internal/domain"
	"github.com/openlot/dealership-api/internal/service/auth"
	"github.com/openlot/dealership-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes. This keeps the taxonomy in one place and prevents leaking internal
// error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Not found errors
	case store.IsNotFound(err):
		return http.StatusNotFound

	// Conflict errors: unique violations and the car availability guard
	case store.IsDuplicate(err),
		errors.Is(err, store.ErrCarUnavailable):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidReference),
		isDomainValidationError(err):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly message for the
// error, never echoing internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, store.ErrCarNotFound):
		return "Car not found"
	case errors.Is(err, store.ErrCustomerNotFound):
		return "Customer not found"
	case errors.Is(err, store.ErrEmployeeNotFound):
		return "Employee not found"
	case errors.Is(err, store.ErrSaleNotFound):
		return "Sale not found"
	case errors.Is(err, store.ErrServiceNotFound):
		return "Service not found"

	case errors.Is(err, store.ErrCarUnavailable):
		return "Car is not available for sale"
	case errors.Is(err, store.ErrCustomerIDExists):
		return "Customer ID already exists"
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, store.ErrEmployeeIDExists):
		return "Employee ID already exists"
	case errors.Is(err, store.ErrCustomerServiceExists):
		return "Customer is already associated with this service"

	case errors.Is(err, store.ErrInvalidReference):
		return "Referenced entity not found"

	case isDomainValidationError(err):
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}

// domainValidationErrors are the domain-level validation sentinels that can
// surface from service calls after request validation has passed. They are
// safe to echo to clients.
var domainValidationErrors = []error{
	domain.ErrInvalidCarYear,
	domain.ErrInvalidCarPrice,
	domain.ErrInvalidCarStatus,
	domain.ErrInvalidSalePrice,
	domain.ErrInvalidSaleStatus,
	domain.ErrInvalidRole,
	domain.ErrInvalidEmail,
	domain.ErrInvalidCost,
	domain.ErrPasswordTooShort,
	domain.ErrPasswordTooLong,
}

func isDomainValidationError(err error) bool {
	for _, target := range domainValidationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
