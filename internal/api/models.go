package api

import (
	"github.com/google/uuid"

	"github.com/openlot/dealership-api/internal/domain"
	"github.com/openlot/dealership-api/internal/store"
)

// CustomerSignupRequest is the request for customer registration.
type CustomerSignupRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	Firstname  string `json:"firstname" validate:"required"`
	Lastname   string `json:"lastname" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Address    string `json:"address" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
}

// CustomerLoginRequest is the request for customer login.
type CustomerLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CustomerUpdateRequest is the request for updating a customer profile.
type CustomerUpdateRequest struct {
	Firstname string `json:"firstname" validate:"required"`
	Lastname  string `json:"lastname" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Address   string `json:"address" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}

// EmployeeSignupRequest is the request for employee registration.
type EmployeeSignupRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Fname      string `json:"fname" validate:"required"`
	Lname      string `json:"lname" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Role       string `json:"role" validate:"required,oneof=ADMIN MANAGER SALES"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
}

// EmployeeLoginRequest is the request for employee login.
type EmployeeLoginRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// EmployeeLoginResponse is returned on successful employee login.
type EmployeeLoginResponse struct {
	Message  string           `json:"message"`
	Token    string           `json:"token"`
	Employee *domain.Employee `json:"employee"`
}

// EmployeeUpdateRequest is the request for updating an employee profile.
type EmployeeUpdateRequest struct {
	Fname string `json:"fname" validate:"required"`
	Lname string `json:"lname" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Role  string `json:"role" validate:"required,oneof=ADMIN MANAGER SALES"`
}

// CarCreateRequest is the request for adding a car to the inventory.
type CarCreateRequest struct {
	Make   string  `json:"make" validate:"required"`
	Model  string  `json:"model" validate:"required"`
	Year   int     `json:"year" validate:"required,min=1900"`
	Price  float64 `json:"price" validate:"required,gt=0"`
	Status string  `json:"status" validate:"omitempty,oneof=AVAILABLE SOLD PENDING"`
}

// CarUpdateRequest is the request for updating a car. Status here is the
// administrative escape hatch that bypasses the sale flow.
type CarUpdateRequest struct {
	Make   string  `json:"make" validate:"required"`
	Model  string  `json:"model" validate:"required"`
	Year   int     `json:"year" validate:"required,min=1900"`
	Price  float64 `json:"price" validate:"required,gt=0"`
	Status string  `json:"status" validate:"required,oneof=AVAILABLE SOLD PENDING"`
}

// SaleCreateRequest is the request for recording a sale.
type SaleCreateRequest struct {
	CustomerID string    `json:"customer_id" validate:"required"`
	EmployeeID string    `json:"employee_id" validate:"required"`
	CarID      uuid.UUID `json:"car_id" validate:"required"`
	TotalPrice float64   `json:"total_price" validate:"required,gt=0"`
	Status     string    `json:"status" validate:"omitempty,oneof=COMPLETED PENDING CANCELLED"`
}

// SaleUpdateRequest is the request for updating a sale's price and status.
type SaleUpdateRequest struct {
	TotalPrice float64 `json:"total_price" validate:"required,gt=0"`
	Status     string  `json:"status" validate:"required,oneof=COMPLETED PENDING CANCELLED"`
}

// ServiceCreateRequest is the request for creating a service, optionally
// linking customers at creation time.
type ServiceCreateRequest struct {
	ServiceType string   `json:"service_type" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Cost        float64  `json:"cost" validate:"required,gt=0"`
	CustomerIDs []string `json:"customer_ids" validate:"omitempty,dive,required"`
}

// ServiceUpdateRequest is the request for updating a service. A non-nil
// CustomerIDs replaces the existing customer links; omitting the field
// leaves them untouched.
type ServiceUpdateRequest struct {
	ServiceType string   `json:"service_type" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Cost        float64  `json:"cost" validate:"required,gt=0"`
	CustomerIDs []string `json:"customer_ids" validate:"omitempty,dive,required"`
}

// AddCustomerToServiceRequest is the request for linking a customer to an
// existing service.
type AddCustomerToServiceRequest struct {
	ServiceID  uuid.UUID `json:"service_id" validate:"required"`
	CustomerID string    `json:"customer_id" validate:"required"`
}

// ListResponse is the envelope for every paginated collection response.
type ListResponse struct {
	Items      interface{}      `json:"items"`
	Pagination store.Pagination `json:"pagination"`
}

// MessageResponse is a simple confirmation response.
type MessageResponse struct {
	Message string `json:"message"`
}
