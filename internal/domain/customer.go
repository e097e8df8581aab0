package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Customer validation errors.
var (
	ErrEmptyCustomerID     = errors.New("customer ID cannot be empty")
	ErrEmptyCustomerName   = errors.New("customer first and last name cannot be empty")
	ErrEmptyCustomerPhone  = errors.New("customer phone cannot be empty")
	ErrEmptyCustomerAddr   = errors.New("customer address cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// NormalizeEmail trims whitespace and lower-cases an email address. Every
// path that stores or looks up an email must go through this so lookups
// match regardless of input casing.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Customer represents a registered dealership customer. The CustomerID is
// user-chosen and unique, matching the public-facing account identifier.
type Customer struct {
	CustomerID     string    `json:"customer_id"`
	Firstname      string    `json:"firstname"`
	Lastname       string    `json:"lastname"`
	Phone          string    `json:"phone"`
	Address        string    `json:"address"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, only set during signup; hashed before storage
	HashedPassword string    `json:"-"` // Never expose the hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewCustomer creates a Customer from signup input, trimming fields and
// lower-casing the email. The caller must hash Password before storing.
func NewCustomer(customerID, firstname, lastname, phone, address, email, password string) (*Customer, error) {
	now := time.Now().UTC()
	customer := &Customer{
		CustomerID: strings.TrimSpace(customerID),
		Firstname:  strings.TrimSpace(firstname),
		Lastname:   strings.TrimSpace(lastname),
		Phone:      strings.TrimSpace(phone),
		Address:    strings.TrimSpace(address),
		Email:      NormalizeEmail(email),
		Password:   password,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := customer.Validate(); err != nil {
		return nil, err
	}

	return customer, nil
}

// Validate checks if the Customer has valid data.
func (c *Customer) Validate() error {
	if c.CustomerID == "" {
		return ErrEmptyCustomerID
	}

	if c.Firstname == "" || c.Lastname == "" {
		return ErrEmptyCustomerName
	}

	if c.Phone == "" {
		return ErrEmptyCustomerPhone
	}

	if c.Address == "" {
		return ErrEmptyCustomerAddr
	}

	if c.Email == "" {
		return ErrEmptyEmail
	}

	if !emailPattern.MatchString(c.Email) {
		return ErrInvalidEmail
	}

	if c.Password != "" {
		if len(c.Password) < 6 {
			return ErrPasswordTooShort
		}
		if len(c.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if c.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}

	return nil
}
