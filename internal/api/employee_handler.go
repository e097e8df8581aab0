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

// EmployeeHandler handles employee account and profile endpoints. Employee
// login is the only place access tokens are issued.
type EmployeeHandler struct {
	employeeStore    store.EmployeeStore
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	validate         *validator.Validate
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(
	employeeStore store.EmployeeStore,
	jwtService auth.JWTService,
	passwordHasher auth.PasswordHasher,
	passwordVerifier auth.PasswordVerifier,
) *EmployeeHandler {
	return &EmployeeHandler{
		employeeStore:    employeeStore,
		jwtService:       jwtService,
		passwordHasher:   passwordHasher,
		passwordVerifier: passwordVerifier,
		validate:         validator.New(),
	}
}

// Signup handles POST /api/employees/signup.
func (h *EmployeeHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req EmployeeSignupRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	employee, err := domain.NewEmployee(
		req.EmployeeID, req.Fname, req.Lname, req.Phone, domain.EmployeeRole(req.Role), req.Password)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	hashed, err := h.passwordHasher.Hash(employee.Password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to create employee", err)
		return
	}
	employee.HashedPassword = hashed
	employee.Password = ""

	if err := h.employeeStore.Create(ctx, employee); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("employee registered",
		"employee_id", employee.EmployeeID,
		"role", string(employee.Role))

	shared.RespondWithJSON(w, r, http.StatusCreated, map[string]interface{}{
		"message":  "Employee registered successfully",
		"employee": employee,
	})
}

// Login handles POST /api/employees/login and returns a signed access token.
func (h *EmployeeHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req EmployeeLoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	employee, err := h.employeeStore.GetByID(ctx, req.EmployeeID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid credentials", err)
		return
	}

	if err := h.passwordVerifier.Compare(employee.HashedPassword, req.Password); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized, "Invalid credentials", err)
		return
	}

	token, err := h.jwtService.GenerateToken(ctx, employee.EmployeeID, employee.Role)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate token", err)
		return
	}

	log.Info("employee logged in",
		"employee_id", employee.EmployeeID,
		"role", string(employee.Role))

	shared.RespondWithJSON(w, r, http.StatusOK, EmployeeLoginResponse{
		Message:  "Login successful",
		Token:    token,
		Employee: employee,
	})
}

// Get handles GET /api/employees/{id}.
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	employee, err := h.employeeStore.GetByID(r.Context(), employeeID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, employee)
}

// List handles GET /api/employees. Supports free-text search over name and
// a role filter.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := ParseListParams(r).
		WithSearch(q.Get("search")).
		WithFilter("role", store.OpEq, q.Get("role"))

	employees, total, err := h.employeeStore.List(r.Context(), params)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListResponse{
		Items:      employees,
		Pagination: store.NewPagination(params, total),
	})
}

// Update handles PUT /api/employees/{id}.
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	employeeID := chi.URLParam(r, "id")

	var req EmployeeUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	employee, err := h.employeeStore.GetByID(ctx, employeeID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	employee.Fname = req.Fname
	employee.Lname = req.Lname
	employee.Phone = req.Phone
	employee.Role = domain.EmployeeRole(req.Role)
	employee.UpdatedAt = time.Now().UTC()

	if err := employee.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.employeeStore.Update(ctx, employee); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("employee updated", "employee_id", employeeID)

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"message":  "Employee updated successfully",
		"employee": employee,
	})
}

// Delete handles DELETE /api/employees/{id}.
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	employeeID := chi.URLParam(r, "id")

	if err := h.employeeStore.Delete(ctx, employeeID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("employee deleted", "employee_id", employeeID)

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Employee deleted successfully"})
}
