// Package auth provides token issuance/validation and password hashing for
// the dealership API. Tokens are issued to employees and carry the employee
// ID and role used by the authorization middleware.
package auth

import (
	"context"
	"time"

	"github.com/openlot/dealership-api/internal/domain"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token carrying the
	// employee's identity and role.
	GenerateToken(ctx context.Context, employeeID string, role domain.EmployeeRole) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns an error if validation fails (expired, invalid
	// signature, malformed token).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the custom claims carried by an access token.
type Claims struct {
	// EmployeeID is the identifier of the employee the token was issued for.
	EmployeeID string `json:"employee_id"`

	// Role is the employee's role, used for route authorization.
	Role domain.EmployeeRole `json:"role"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
