package api

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/openlot/dealership-api/internal/api/shared"
	"github.com/openlot/dealership-api/internal/domain"
	"github.com/openlot/dealership-api/internal/platform/logger"
	"github.com/openlot/dealership-api/internal/store"
)

// CarHandler handles inventory endpoints.
type CarHandler struct {
	carStore store.CarStore
	validate *validator.Validate
}

// NewCarHandler creates a new CarHandler.
func NewCarHandler(carStore store.CarStore) *CarHandler {
	return &CarHandler{
		carStore: carStore,
		validate: validator.New(),
	}
}

// Create handles POST /api/cars.
func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req CarCreateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	car, err := domain.NewCar(req.Make, req.Model, req.Year, req.Price, domain.CarStatus(req.Status))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.carStore.Create(ctx, car); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("car created",
		"car_id", car.ID.String(),
		"make", car.Make,
		"model", car.Model)

	shared.RespondWithJSON(w, r, http.StatusCreated, map[string]interface{}{
		"message": "Car added successfully",
		"car":     car,
	})
}

// Get handles GET /api/cars/{id}.
func (h *CarHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := URLParamUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid car ID")
		return
	}

	car, err := h.carStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, car)
}

// List handles GET /api/cars. Supports free-text search over make and model
// plus status and price-range filters.
func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := ParseListParams(r).
		WithSearch(q.Get("search")).
		WithFilter("status", store.OpEq, q.Get("status"))

	if minPrice, err := strconv.ParseFloat(q.Get("minPrice"), 64); err == nil {
		params = params.WithFilter("price", store.OpGte, minPrice)
	}
	if maxPrice, err := strconv.ParseFloat(q.Get("maxPrice"), 64); err == nil {
		params = params.WithFilter("price", store.OpLte, maxPrice)
	}

	cars, total, err := h.carStore.List(r.Context(), params)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListResponse{
		Items:      cars,
		Pagination: store.NewPagination(params, total),
	})
}

// Update handles PUT /api/cars/{id}. Setting Status here is the
// administrative escape hatch; it does not consult the sale flow.
func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	id, err := URLParamUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid car ID")
		return
	}

	var req CarUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	car, err := h.carStore.GetByID(ctx, id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	car.Make = req.Make
	car.Model = req.Model
	car.Year = req.Year
	car.Price = req.Price
	car.Status = domain.CarStatus(req.Status)

	if err := car.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.carStore.Update(ctx, car); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("car updated", "car_id", id.String(), "status", string(car.Status))

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "Car updated successfully",
		"car":     car,
	})
}

// Delete handles DELETE /api/cars/{id}.
func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	id, err := URLParamUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid car ID")
		return
	}

	if err := h.carStore.Delete(ctx, id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("car deleted", "car_id", id.String())

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Car deleted successfully"})
}
