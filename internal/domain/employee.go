package domain

import (
	"errors"
	"strings"
	"time"
)

// EmployeeRole determines what an employee is authorized to do.
// Destructive operations on cars, employees, services and sales require ADMIN.
type EmployeeRole string

// Valid employee roles.
const (
	RoleAdmin   EmployeeRole = "ADMIN"
	RoleManager EmployeeRole = "MANAGER"
	RoleSales   EmployeeRole = "SALES"
)

// Employee validation errors.
var (
	ErrEmptyEmployeeID    = errors.New("employee ID cannot be empty")
	ErrEmptyEmployeeName  = errors.New("employee first and last name cannot be empty")
	ErrEmptyEmployeePhone = errors.New("employee phone cannot be empty")
	ErrInvalidRole        = errors.New("invalid employee role")
)

// Employee represents a dealership employee who can act as the selling agent
// on a Sale. The EmployeeID is user-chosen and unique.
type Employee struct {
	EmployeeID     string       `json:"employee_id"`
	Fname          string       `json:"fname"`
	Lname          string       `json:"lname"`
	Phone          string       `json:"phone"`
	Role           EmployeeRole `json:"role"`
	Password       string       `json:"-"`
	HashedPassword string       `json:"-"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// NewEmployee creates an Employee from signup input. The caller must hash
// Password before storing.
func NewEmployee(employeeID, fname, lname, phone string, role EmployeeRole, password string) (*Employee, error) {
	now := time.Now().UTC()
	employee := &Employee{
		EmployeeID: strings.TrimSpace(employeeID),
		Fname:      strings.TrimSpace(fname),
		Lname:      strings.TrimSpace(lname),
		Phone:      strings.TrimSpace(phone),
		Role:       role,
		Password:   password,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := employee.Validate(); err != nil {
		return nil, err
	}

	return employee, nil
}

// Validate checks if the Employee has valid data.
func (e *Employee) Validate() error {
	if e.EmployeeID == "" {
		return ErrEmptyEmployeeID
	}

	if e.Fname == "" || e.Lname == "" {
		return ErrEmptyEmployeeName
	}

	if e.Phone == "" {
		return ErrEmptyEmployeePhone
	}

	if !e.Role.IsValid() {
		return ErrInvalidRole
	}

	if e.Password != "" {
		if len(e.Password) < 6 {
			return ErrPasswordTooShort
		}
		if len(e.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if e.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}

	return nil
}

// IsValid reports whether the role is one of the defined employee roles.
func (r EmployeeRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleSales:
		return true
	}
	return false
}
