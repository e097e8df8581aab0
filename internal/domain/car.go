package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CarStatus represents the availability state of a car on the lot.
type CarStatus string

// Valid car statuses. A car moves AVAILABLE -> SOLD when a sale is created
// and back to AVAILABLE when that sale is deleted. PENDING exists for cars
// held by an administrator outside the sale flow.
const (
	CarStatusAvailable CarStatus = "AVAILABLE"
	CarStatusSold      CarStatus = "SOLD"
	CarStatusPending   CarStatus = "PENDING"
)

// Car validation errors.
var (
	ErrEmptyCarID       = errors.New("car ID cannot be empty")
	ErrEmptyCarMake     = errors.New("car make cannot be empty")
	ErrEmptyCarModel    = errors.New("car model cannot be empty")
	ErrInvalidCarYear   = errors.New("car year must be between 1900 and next year")
	ErrInvalidCarPrice  = errors.New("car price must be greater than 0")
	ErrInvalidCarStatus = errors.New("invalid car status")
)

// Car represents a vehicle in the dealership inventory.
// Status is mutated by the sale manager (AVAILABLE <-> SOLD) or directly by
// an administrative update, which bypasses the sale invariant.
type Car struct {
	ID        uuid.UUID `json:"id"`
	Make      string    `json:"make"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
	Price     float64   `json:"price"`
	Status    CarStatus `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCar creates a new Car with a generated ID and timestamps.
// An empty status defaults to AVAILABLE. Returns an error if validation fails.
func NewCar(make, model string, year int, price float64, status CarStatus) (*Car, error) {
	if status == "" {
		status = CarStatusAvailable
	}

	now := time.Now().UTC()
	car := &Car{
		ID:        uuid.New(),
		Make:      strings.TrimSpace(make),
		Model:     strings.TrimSpace(model),
		Year:      year,
		Price:     price,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := car.Validate(); err != nil {
		return nil, err
	}

	return car, nil
}

// Validate checks if the Car has valid data.
func (c *Car) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCarID
	}

	if c.Make == "" {
		return ErrEmptyCarMake
	}

	if c.Model == "" {
		return ErrEmptyCarModel
	}

	if c.Year < 1900 || c.Year > time.Now().Year()+1 {
		return ErrInvalidCarYear
	}

	if c.Price <= 0 {
		return ErrInvalidCarPrice
	}

	if !c.Status.IsValid() {
		return ErrInvalidCarStatus
	}

	return nil
}

// IsValid reports whether the status is one of the defined car statuses.
func (s CarStatus) IsValid() bool {
	switch s {
	case CarStatusAvailable, CarStatusSold, CarStatusPending:
		return true
	}
	return false
}
