package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/openlot/dealership-api/internal/api/shared"
	"github.com/openlot/dealership-api/internal/domain"
	"github.com/openlot/dealership-api/internal/service"
	"github.com/openlot/dealership-api/internal/store"
)

// SaleHandler handles sale endpoints. All inventory consequences of a sale
// (the car's SOLD flip on create, the release on delete) go through the
// sale service.
type SaleHandler struct {
	saleService *service.SaleService
	validate    *validator.Validate
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
		validate:    validator.New(),
	}
}

// Create handles POST /api/sales. A 409 means the car was not AVAILABLE,
// either at the pre-check or at commit time when another sale won the race.
func (h *SaleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req SaleCreateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	sale, err := h.saleService.CreateSale(
		r.Context(),
		req.CustomerID,
		req.EmployeeID,
		req.CarID,
		req.TotalPrice,
		domain.SaleStatus(req.Status),
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, map[string]interface{}{
		"message": "Sale recorded successfully",
		"sale":    sale,
	})
}

// Get handles GET /api/sales/{id}.
func (h *SaleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sale)
}

// List handles GET /api/sales. Supports customerId, employeeId and status
// filters.
func (h *SaleHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := ParseListParams(r).
		WithFilter("customerId", store.OpEq, q.Get("customerId")).
		WithFilter("employeeId", store.OpEq, q.Get("employeeId")).
		WithFilter("status", store.OpEq, q.Get("status"))

	sales, total, err := h.saleService.ListSales(r.Context(), params)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListResponse{
		Items:      sales,
		Pagination: store.NewPagination(params, total),
	})
}

// Update handles PUT /api/sales/{id}. Only the price and sale status change;
// the referenced car is never touched here.
func (h *SaleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid sale ID")
		return
	}

	var req SaleUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	sale, err := h.saleService.UpdateSale(r.Context(), id, req.TotalPrice, domain.SaleStatus(req.Status))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "Sale updated successfully",
		"sale":    sale,
	})
}

// Delete handles DELETE /api/sales/{id} and releases the car back to
// AVAILABLE.
func (h *SaleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid sale ID")
		return
	}

	if err := h.saleService.DeleteSale(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Sale deleted and car released"})
}
