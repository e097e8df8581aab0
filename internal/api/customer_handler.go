package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/openlot/dealership-api/internal/api/shared"
	"github.com/openlot/dealership-api/internal/domain"
	"github.com/openlot/dealership-api/internal/platform/logger"
	"github.com/openlot/dealership-api/internal/service/auth"
	"github.com/openlot/dealership-api/internal/store"
)

// CustomerHandler handles customer account and profile endpoints.
type CustomerHandler struct {
	customerStore    store.CustomerStore
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	validate         *validator.Validate
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(
	customerStore store.CustomerStore,
	passwordHasher auth.PasswordHasher,
	passwordVerifier auth.PasswordVerifier,
) *CustomerHandler {
	return &CustomerHandler{
		customerStore:    customerStore,
		passwordHasher:   passwordHasher,
		passwordVerifier: passwordVerifier,
		validate:         validator.New(),
	}
}

// Signup handles POST /api/customers/signup.
func (h *CustomerHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req CustomerSignupRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	customer, err := domain.NewCustomer(
		req.CustomerID, req.Firstname, req.Lastname, req.Phone, req.Address, req.Email, req.Password)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	hashed, err := h.passwordHasher.Hash(customer.Password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create customer", err)
		return
	}
	customer.HashedPassword = hashed
	customer.Password = ""

	if err := h.customerStore.Create(ctx, customer); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("customer registered", "customer_id", customer.CustomerID)

	shared.RespondWithJSON(w, r, http.StatusCreated, map[string]interface{}{
		"message":  "Customer registered successfully",
		"customer": customer,
	})
}

// Login handles POST /api/customers/login. Customer sessions carry no token;
// a successful login returns the profile only.
func (h *CustomerHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req CustomerLoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	customer, err := h.customerStore.GetByEmail(ctx, domain.NormalizeEmail(req.Email))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid credentials", err)
		return
	}

	if err := h.passwordVerifier.Compare(customer.HashedPassword, req.Password); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid credentials", err)
		return
	}

	log.Info("customer logged in", "customer_id", customer.CustomerID)

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"message":  "Login successful",
		"customer": customer,
	})
}

// Get handles GET /api/customers/{id}.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "id")

	customer, err := h.customerStore.GetByID(r.Context(), customerID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, customer)
}

// List handles GET /api/customers. Supports free-text search over name and
// email.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	params := ParseListParams(r).WithSearch(r.URL.Query().Get("search"))

	customers, total, err := h.customerStore.List(r.Context(), params)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListResponse{
		Items:      customers,
		Pagination: store.NewPagination(params, total),
	})
}

// Update handles PUT /api/customers/{id}.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	customerID := chi.URLParam(r, "id")

	var req CustomerUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	customer, err := h.customerStore.GetByID(ctx, customerID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	customer.Firstname = req.Firstname
	customer.Lastname = req.Lastname
	customer.Phone = req.Phone
	customer.Address = req.Address
	customer.Email = domain.NormalizeEmail(req.Email)
	customer.UpdatedAt = time.Now().UTC()

	if err := customer.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.customerStore.Update(ctx, customer); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("customer updated", "customer_id", customerID)

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"message":  "Customer updated successfully",
		"customer": customer,
	})
}

// Delete handles DELETE /api/customers/{id}.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	customerID := chi.URLParam(r, "id")

	if err := h.customerStore.Delete(ctx, customerID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("customer deleted", "customer_id", customerID)

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Customer deleted successfully"})
}
