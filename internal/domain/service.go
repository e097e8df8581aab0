package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service validation errors.
var (
	ErrEmptyServiceID   = errors.New("service ID cannot be empty")
	ErrEmptyServiceType = errors.New("service type cannot be empty")
	ErrEmptyServiceDesc = errors.New("service description cannot be empty")
	ErrInvalidCost      = errors.New("service cost must be greater than 0")
)

// Service represents a maintenance or repair offering. Customers are linked
// many-to-many through CustomerService records.
type Service struct {
	ID          uuid.UUID `json:"id"`
	ServiceType string    `json:"service_type"`
	Description string    `json:"description"`
	Cost        float64   `json:"cost"`
	ServiceDate time.Time `json:"service_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CustomerService is the join record between a Customer and a Service.
// The (CustomerID, ServiceID) pair is unique.
type CustomerService struct {
	CustomerID string    `json:"customer_id"`
	ServiceID  uuid.UUID `json:"service_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// ServiceCustomer is a linked customer as embedded in service responses.
type ServiceCustomer struct {
	CustomerID string `json:"customer_id"`
	Firstname  string `json:"firstname"`
	Lastname   string `json:"lastname"`
}

// ServiceDetail is a Service together with its linked customers.
type ServiceDetail struct {
	Service
	Customers []ServiceCustomer `json:"customers"`
}

// NewService creates a new Service with a generated ID and timestamps.
func NewService(serviceType, description string, cost float64) (*Service, error) {
	now := time.Now().UTC()
	service := &Service{
		ID:          uuid.New(),
		ServiceType: strings.TrimSpace(serviceType),
		Description: strings.TrimSpace(description),
		Cost:        cost,
		ServiceDate: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := service.Validate(); err != nil {
		return nil, err
	}

	return service, nil
}

// Validate checks if the Service has valid data.
func (s *Service) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptyServiceID
	}

	if s.ServiceType == "" {
		return ErrEmptyServiceType
	}

	if s.Description == "" {
		return ErrEmptyServiceDesc
	}

	if s.Cost <= 0 {
		return ErrInvalidCost
	}

	return nil
}
