package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/openlot/dealership-api/internal/config"
	"github.com/openlot/dealership-api/internal/domain"
	"github.com/openlot/dealership-api/internal/mocks"
	"github.com/openlot/dealership-api/internal/service/auth"
)

type employeeHandlerFixture struct {
	router     *chi.Mux
	employees  *mocks.MockEmployeeStore
	jwtService auth.JWTService
}

func newEmployeeHandlerFixture(t *testing.T) *employeeHandlerFixture {
	t.Helper()

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "test-secret-key-thats-long-enough-for-hmac",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	employees := mocks.NewMockEmployeeStore()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	handler := NewEmployeeHandler(employees, jwtService, hasher, hasher)

	r := chi.NewRouter()
	r.Post("/api/employees/signup", handler.Signup)
	r.Post("/api/employees/login", handler.Login)
	r.Get("/api/employees/{id}", handler.Get)
	r.Put("/api/employees/{id}", handler.Update)
	r.Delete("/api/employees/{id}", handler.Delete)

	return &employeeHandlerFixture{router: r, employees: employees, jwtService: jwtService}
}

func (f *employeeHandlerFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func employeeSignupBody() map[string]any {
	return map[string]any{
		"employee_id": "EMP1",
		"fname":       "Sam",
		"lname":       "Rivera",
		"phone":       "555-0200",
		"role":        "MANAGER",
		"password":    "secret1",
	}
}

func TestEmployeeSignup(t *testing.T) {
	t.Parallel()

	t.Run("registers employee with role", func(t *testing.T) {
		t.Parallel()

		f := newEmployeeHandlerFixture(t)

		rec := f.do(t, http.MethodPost, "/api/employees/signup", employeeSignupBody())
		require.Equal(t, http.StatusCreated, rec.Code)

		stored, err := f.employees.GetByID(context.Background(), "EMP1")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleManager, stored.Role)
		assert.NotEmpty(t, stored.HashedPassword)
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		t.Parallel()

		f := newEmployeeHandlerFixture(t)

		body := employeeSignupBody()
		body["role"] = "JANITOR"
		rec := f.do(t, http.MethodPost, "/api/employees/signup", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("conflict on duplicate ID", func(t *testing.T) {
		t.Parallel()

		f := newEmployeeHandlerFixture(t)

		require.Equal(t, http.StatusCreated,
			f.do(t, http.MethodPost, "/api/employees/signup", employeeSignupBody()).Code)

		rec := f.do(t, http.MethodPost, "/api/employees/signup", employeeSignupBody())
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestEmployeeLogin(t *testing.T) {
	t.Parallel()

	t.Run("returns a valid token carrying the role", func(t *testing.T) {
		t.Parallel()

		f := newEmployeeHandlerFixture(t)
		require.Equal(t, http.StatusCreated,
			f.do(t, http.MethodPost, "/api/employees/signup", employeeSignupBody()).Code)

		rec := f.do(t, http.MethodPost, "/api/employees/login", map[string]any{
			"employee_id": "EMP1",
			"password":    "secret1",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp EmployeeLoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Token)

		claims, err := f.jwtService.ValidateToken(context.Background(), resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "EMP1", claims.EmployeeID)
		assert.Equal(t, domain.RoleManager, claims.Role)
	})

	t.Run("unauthorized on wrong password", func(t *testing.T) {
		t.Parallel()

		f := newEmployeeHandlerFixture(t)
		require.Equal(t, http.StatusCreated,
			f.do(t, http.MethodPost, "/api/employees/signup", employeeSignupBody()).Code)

		rec := f.do(t, http.MethodPost, "/api/employees/login", map[string]any{
			"employee_id": "EMP1",
			"password":    "wrong",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unauthorized on unknown employee", func(t *testing.T) {
		t.Parallel()

		f := newEmployeeHandlerFixture(t)

		rec := f.do(t, http.MethodPost, "/api/employees/login", map[string]any{
			"employee_id": "GHOST",
			"password":    "secret1",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
