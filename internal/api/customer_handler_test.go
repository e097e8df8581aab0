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

	"github.com/openlot/dealership-api/internal/domain"
	"github.com/openlot/dealership-api/internal/mocks"
	"github.com/openlot/dealership-api/internal/service/auth"
)

type customerHandlerFixture struct {
	router    *chi.Mux
	customers *mocks.MockCustomerStore
}

func newCustomerHandlerFixture(t *testing.T) *customerHandlerFixture {
	t.Helper()

	customers := mocks.NewMockCustomerStore()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	handler := NewCustomerHandler(customers, hasher, hasher)

	r := chi.NewRouter()
	r.Post("/api/customers/signup", handler.Signup)
	r.Post("/api/customers/login", handler.Login)
	r.Get("/api/customers", handler.List)
	r.Get("/api/customers/{id}", handler.Get)
	r.Put("/api/customers/{id}", handler.Update)
	r.Delete("/api/customers/{id}", handler.Delete)

	return &customerHandlerFixture{router: r, customers: customers}
}

func (f *customerHandlerFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
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

func signupBody() map[string]any {
	return map[string]any{
		"customer_id": "CUST1",
		"firstname":   "Jordan",
		"lastname":    "Lee",
		"phone":       "555-0100",
		"address":     "1 Main St",
		"email":       "jordan@example.com",
		"password":    "secret1",
	}
}

func TestCustomerSignup(t *testing.T) {
	t.Parallel()

	t.Run("registers and stores a hashed password", func(t *testing.T) {
		t.Parallel()

		f := newCustomerHandlerFixture(t)

		rec := f.do(t, http.MethodPost, "/api/customers/signup", signupBody())
		require.Equal(t, http.StatusCreated, rec.Code)

		stored, err := f.customers.GetByID(context.Background(), "CUST1")
		require.NoError(t, err)
		assert.NotEmpty(t, stored.HashedPassword)
		assert.NotEqual(t, "secret1", stored.HashedPassword)

		// The hash never leaks into the response
		assert.NotContains(t, rec.Body.String(), stored.HashedPassword)
	})

	t.Run("conflict on duplicate ID", func(t *testing.T) {
		t.Parallel()

		f := newCustomerHandlerFixture(t)

		require.Equal(t, http.StatusCreated,
			f.do(t, http.MethodPost, "/api/customers/signup", signupBody()).Code)

		dup := signupBody()
		dup["email"] = "other@example.com"
		rec := f.do(t, http.MethodPost, "/api/customers/signup", dup)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("conflict on duplicate email", func(t *testing.T) {
		t.Parallel()

		f := newCustomerHandlerFixture(t)

		require.Equal(t, http.StatusCreated,
			f.do(t, http.MethodPost, "/api/customers/signup", signupBody()).Code)

		dup := signupBody()
		dup["customer_id"] = "CUST2"
		rec := f.do(t, http.MethodPost, "/api/customers/signup", dup)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("bad request on invalid email", func(t *testing.T) {
		t.Parallel()

		f := newCustomerHandlerFixture(t)

		body := signupBody()
		body["email"] = "not-an-email"
		rec := f.do(t, http.MethodPost, "/api/customers/signup", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad request on short password", func(t *testing.T) {
		t.Parallel()

		f := newCustomerHandlerFixture(t)

		body := signupBody()
		body["password"] = "abc"
		rec := f.do(t, http.MethodPost, "/api/customers/signup", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCustomerLogin(t *testing.T) {
	t.Parallel()

	t.Run("returns profile on valid credentials", func(t *testing.T) {
		t.Parallel()

		f := newCustomerHandlerFixture(t)
		require.Equal(t, http.StatusCreated,
			f.do(t, http.MethodPost, "/api/customers/signup", signupBody()).Code)

		rec := f.do(t, http.MethodPost, "/api/customers/login", map[string]any{
			"email":    "jordan@example.com",
			"password": "secret1",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Message  string          `json:"message"`
			Customer domain.Customer `json:"customer"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "CUST1", resp.Customer.CustomerID)

		// No token field in customer logins
		assert.NotContains(t, rec.Body.String(), "token")
	})

	t.Run("unauthorized on wrong password", func(t *testing.T) {
		t.Parallel()

		f := newCustomerHandlerFixture(t)
		require.Equal(t, http.StatusCreated,
			f.do(t, http.MethodPost, "/api/customers/signup", signupBody()).Code)

		rec := f.do(t, http.MethodPost, "/api/customers/login", map[string]any{
			"email":    "jordan@example.com",
			"password": "wrong-password",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unauthorized on unknown email", func(t *testing.T) {
		t.Parallel()

		f := newCustomerHandlerFixture(t)

		rec := f.do(t, http.MethodPost, "/api/customers/login", map[string]any{
			"email":    "nobody@example.com",
			"password": "secret1",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestCustomerUpdateNormalizesEmail(t *testing.T) {
	t.Parallel()

	f := newCustomerHandlerFixture(t)
	require.Equal(t, http.StatusCreated,
		f.do(t, http.MethodPost, "/api/customers/signup", signupBody()).Code)

	rec := f.do(t, http.MethodPut, "/api/customers/CUST1", map[string]any{
		"firstname": "Jordan",
		"lastname":  "Lee",
		"phone":     "555-0100",
		"address":   "1 Main St",
		"email":     " Jordan.Lee@Example.COM ",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := f.customers.GetByID(context.Background(), "CUST1")
	require.NoError(t, err)
	assert.Equal(t, "jordan.lee@example.com", stored.Email)

	// Login must still work with any casing of the new address
	for _, email := range []string{"jordan.lee@example.com", "Jordan.Lee@Example.COM"} {
		rec := f.do(t, http.MethodPost, "/api/customers/login", map[string]any{
			"email":    email,
			"password": "secret1",
		})
		assert.Equal(t, http.StatusOK, rec.Code, "login with %q", email)
	}
}

func TestCustomerUpdateAndDelete(t *testing.T) {
	t.Parallel()

	f := newCustomerHandlerFixture(t)
	require.Equal(t, http.StatusCreated,
		f.do(t, http.MethodPost, "/api/customers/signup", signupBody()).Code)

	rec := f.do(t, http.MethodPut, "/api/customers/CUST1", map[string]any{
		"firstname": "Jordan",
		"lastname":  "Lee-Smith",
		"phone":     "555-0199",
		"address":   "2 Oak Ave",
		"email":     "jordan@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	updated, err := f.customers.GetByID(context.Background(), "CUST1")
	require.NoError(t, err)
	assert.Equal(t, "Lee-Smith", updated.Lastname)
	assert.Equal(t, "2 Oak Ave", updated.Address)
	assert.NotEmpty(t, updated.HashedPassword)

	require.Equal(t, http.StatusOK,
		f.do(t, http.MethodDelete, "/api/customers/CUST1", nil).Code)

	assert.Equal(t, http.StatusNotFound,
		f.do(t, http.MethodGet, "/api/customers/CUST1", nil).Code)
}
