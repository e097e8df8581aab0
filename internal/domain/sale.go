package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// SaleStatus represents the state of a sale record itself, independent of
// the referenced car's availability.
type SaleStatus string

// Valid sale statuses. A created sale defaults to COMPLETED.
const (
	SaleStatusCompleted SaleStatus = "COMPLETED"
	SaleStatusPending   SaleStatus = "PENDING"
	SaleStatusCancelled SaleStatus = "CANCELLED"
)

// Sale validation errors.
var (
	ErrEmptySaleID         = errors.New("sale ID cannot be empty")
	ErrEmptySaleCustomer   = errors.New("sale customer ID cannot be empty")
	ErrEmptySaleEmployee   = errors.New("sale employee ID cannot be empty")
	ErrEmptySaleCar        = errors.New("sale car ID cannot be empty")
	ErrInvalidSalePrice    = errors.New("sale total price must be greater than 0")
	ErrInvalidSaleStatus   = errors.New("invalid sale status")
	ErrCarNotAvailable     = errors.New("car is not available for sale")
	ErrSaleAlreadyRecorded = errors.New("car already has an active sale")
)

// Sale links a Car to the Customer who bought it and the Employee who sold
// it. Creating a sale marks the car SOLD, deleting it releases the car back
// to AVAILABLE; the two writes are a single atomic unit.
type Sale struct {
	ID         uuid.UUID  `json:"id"`
	CustomerID string     `json:"customer_id"`
	EmployeeID string     `json:"employee_id"`
	CarID      uuid.UUID  `json:"car_id"`
	TotalPrice float64    `json:"total_price"`
	Status     SaleStatus `json:"status"`
	SaleDate   time.Time  `json:"sale_date"`
}

// SaleDetail is a Sale enriched with display fields from the related
// customer, employee and car rows, for immediate response use.
type SaleDetail struct {
	Sale
	CustomerFirstname string `json:"customer_firstname"`
	CustomerLastname  string `json:"customer_lastname"`
	EmployeeFname     string `json:"employee_fname"`
	EmployeeLname     string `json:"employee_lname"`
	CarMake           string `json:"car_make"`
	CarModel          string `json:"car_model"`
	CarYear           int    `json:"car_year"`
}

// NewSale creates a new Sale with a generated ID and the current sale date.
// An empty status defaults to COMPLETED. Returns an error if validation fails.
func NewSale(customerID, employeeID string, carID uuid.UUID, totalPrice float64, status SaleStatus) (*Sale, error) {
	if status == "" {
		status = SaleStatusCompleted
	}

	sale := &Sale{
		ID:         uuid.New(),
		CustomerID: customerID,
		EmployeeID: employeeID,
		CarID:      carID,
		TotalPrice: totalPrice,
		Status:     status,
		SaleDate:   time.Now().UTC(),
	}

	if err := sale.Validate(); err != nil {
		return nil, err
	}

	return sale, nil
}

// Validate checks if the Sale has valid data.
func (s *Sale) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySaleID
	}

	if s.CustomerID == "" {
		return ErrEmptySaleCustomer
	}

	if s.EmployeeID == "" {
		return ErrEmptySaleEmployee
	}

	if s.CarID == uuid.Nil {
		return ErrEmptySaleCar
	}

	if s.TotalPrice <= 0 {
		return ErrInvalidSalePrice
	}

	if !s.Status.IsValid() {
		return ErrInvalidSaleStatus
	}

	return nil
}

// IsValid reports whether the status is one of the defined sale statuses.
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusCompleted, SaleStatusPending, SaleStatusCancelled:
		return true
	}
	return false
}
