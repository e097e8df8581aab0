package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/openlot/dealership-api/internal/api/shared"
	"github.com/openlot/dealership-api/internal/domain"
	"github.com/openlot/dealership-api/internal/platform/logger"
	"github.com/openlot/dealership-api/internal/store"
)

// ServiceHandler handles maintenance service endpoints, including the
// customer-to-service links.
type ServiceHandler struct {
	serviceStore store.ServiceStore
	validate     *validator.Validate
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(serviceStore store.ServiceStore) *ServiceHandler {
	return &ServiceHandler{
		serviceStore: serviceStore,
		validate:     validator.New(),
	}
}

// Create handles POST /api/services. Customers named in the request are
// linked in the same transaction as the insert.
func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req ServiceCreateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	svc, err := domain.NewService(req.ServiceType, req.Description, req.Cost)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.serviceStore.Create(ctx, svc, req.CustomerIDs); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	detail, err := h.serviceStore.GetByID(ctx, svc.ID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("service created",
		"service_id", svc.ID.String(),
		"service_type", svc.ServiceType,
		"customers", len(req.CustomerIDs))

	shared.RespondWithJSON(w, r, http.StatusCreated, map[string]interface{}{
		"message": "Service created successfully",
		"service": detail,
	})
}

// Get handles GET /api/services/{id}.
func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid service ID")
		return
	}

	svc, err := h.serviceStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, svc)
}

// List handles GET /api/services. Supports serviceType and cost-range
// filters.
func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := ParseListParams(r).
		WithFilter("serviceType", store.OpEq, q.Get("serviceType"))

	if minCost, err := strconv.ParseFloat(q.Get("minCost"), 64); err == nil {
		params = params.WithFilter("cost", store.OpGte, minCost)
	}
	if maxCost, err := strconv.ParseFloat(q.Get("maxCost"), 64); err == nil {
		params = params.WithFilter("cost", store.OpLte, maxCost)
	}

	services, total, err := h.serviceStore.List(r.Context(), params)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListResponse{
		Items:      services,
		Pagination: store.NewPagination(params, total),
	})
}

// Update handles PUT /api/services/{id}. A customer_ids field present in the
// request replaces the existing links; omitting it leaves them untouched.
func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	id, err := URLParamUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid service ID")
		return
	}

	var req ServiceUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	existing, err := h.serviceStore.GetByID(ctx, id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	svc := existing.Service
	svc.ServiceType = req.ServiceType
	svc.Description = req.Description
	svc.Cost = req.Cost
	svc.UpdatedAt = time.Now().UTC()

	if err := svc.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.serviceStore.Update(ctx, &svc, req.CustomerIDs); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	detail, err := h.serviceStore.GetByID(ctx, id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("service updated", "service_id", id.String())

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "Service updated successfully",
		"service": detail,
	})
}

// Delete handles DELETE /api/services/{id}.
func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	id, err := URLParamUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid service ID")
		return
	}

	if err := h.serviceStore.Delete(ctx, id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("service deleted", "service_id", id.String())

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Service deleted successfully"})
}

// AddCustomer handles POST /api/services/add-customer.
func (h *ServiceHandler) AddCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req AddCustomerToServiceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if err := h.serviceStore.AddCustomer(ctx, req.ServiceID, req.CustomerID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	detail, err := h.serviceStore.GetByID(ctx, req.ServiceID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("customer added to service",
		"service_id", req.ServiceID.String(),
		"customer_id", req.CustomerID)

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "Customer added to service",
		"service": detail,
	})
}
