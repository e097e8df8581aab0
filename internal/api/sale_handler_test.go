package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlot/dealership-api/internal/domain"
	"github.com/openlot/dealership-api/internal/mocks"
	"github.com/openlot/dealership-api/internal/service"
	"github.com/openlot/dealership-api/internal/store"
)

type saleHandlerFixture struct {
	router *chi.Mux
	cars   *mocks.MockCarStore
	sales  *mocks.MockSaleStore
}

func newSaleHandlerFixture(t *testing.T) *saleHandlerFixture {
	t.Helper()

	cars := mocks.NewMockCarStore()
	sales := mocks.NewMockSaleStore(cars)
	handler := NewSaleHandler(service.NewSaleService(sales, cars, nil))

	r := chi.NewRouter()
	r.Post("/api/sales", handler.Create)
	r.Get("/api/sales", handler.List)
	r.Get("/api/sales/{id}", handler.Get)
	r.Put("/api/sales/{id}", handler.Update)
	r.Delete("/api/sales/{id}", handler.Delete)

	return &saleHandlerFixture{router: r, cars: cars, sales: sales}
}

func (f *saleHandlerFixture) addCar(t *testing.T, status domain.CarStatus) *domain.Car {
	t.Helper()
	car, err := domain.NewCar("Honda", "Civic", 2023, 24000, status)
	require.NoError(t, err)
	require.NoError(t, f.cars.Create(context.Background(), car))
	return car
}

func (f *saleHandlerFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
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

func saleCreateBody(carID uuid.UUID) map[string]any {
	return map[string]any{
		"customer_id": "CUST1",
		"employee_id": "EMP1",
		"car_id":      carID,
		"total_price": 23500.0,
	}
}

func TestSaleHandlerCreate(t *testing.T) {
	t.Parallel()

	t.Run("records sale and marks car sold", func(t *testing.T) {
		t.Parallel()

		f := newSaleHandlerFixture(t)
		car := f.addCar(t, domain.CarStatusAvailable)

		rec := f.do(t, http.MethodPost, "/api/sales", saleCreateBody(car.ID))
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			Message string            `json:"message"`
			Sale    domain.SaleDetail `json:"sale"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		assert.Equal(t, "Sale recorded successfully", resp.Message)
		assert.Equal(t, car.ID, resp.Sale.CarID)
		assert.Equal(t, domain.SaleStatusCompleted, resp.Sale.Status)
		assert.Equal(t, "Honda", resp.Sale.CarMake)

		sold, err := f.cars.GetByID(context.Background(), car.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.CarStatusSold, sold.Status)
	})

	t.Run("conflict when car already sold", func(t *testing.T) {
		t.Parallel()

		f := newSaleHandlerFixture(t)
		car := f.addCar(t, domain.CarStatusSold)

		rec := f.do(t, http.MethodPost, "/api/sales", saleCreateBody(car.ID))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "not available")
		assert.Empty(t, f.sales.Sales)
	})

	t.Run("second sale of the same car conflicts", func(t *testing.T) {
		t.Parallel()

		f := newSaleHandlerFixture(t)
		car := f.addCar(t, domain.CarStatusAvailable)

		first := f.do(t, http.MethodPost, "/api/sales", saleCreateBody(car.ID))
		require.Equal(t, http.StatusCreated, first.Code)

		second := f.do(t, http.MethodPost, "/api/sales", saleCreateBody(car.ID))
		assert.Equal(t, http.StatusConflict, second.Code)
		assert.Len(t, f.sales.Sales, 1)
	})

	t.Run("not found when car does not exist", func(t *testing.T) {
		t.Parallel()

		f := newSaleHandlerFixture(t)

		rec := f.do(t, http.MethodPost, "/api/sales", saleCreateBody(uuid.New()))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad request on missing fields", func(t *testing.T) {
		t.Parallel()

		f := newSaleHandlerFixture(t)

		rec := f.do(t, http.MethodPost, "/api/sales", map[string]any{"total_price": 100})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad request on malformed JSON", func(t *testing.T) {
		t.Parallel()

		f := newSaleHandlerFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/api/sales", bytes.NewBufferString("{nope"))
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSaleHandlerGet(t *testing.T) {
	t.Parallel()

	t.Run("returns sale detail", func(t *testing.T) {
		t.Parallel()

		f := newSaleHandlerFixture(t)
		car := f.addCar(t, domain.CarStatusAvailable)

		created := f.do(t, http.MethodPost, "/api/sales", saleCreateBody(car.ID))
		require.Equal(t, http.StatusCreated, created.Code)

		var createResp struct {
			Sale domain.SaleDetail `json:"sale"`
		}
		require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createResp))

		rec := f.do(t, http.MethodGet, "/api/sales/"+createResp.Sale.ID.String(), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var sale domain.SaleDetail
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sale))
		assert.Equal(t, createResp.Sale.ID, sale.ID)
	})

	t.Run("not found for unknown sale", func(t *testing.T) {
		t.Parallel()

		f := newSaleHandlerFixture(t)

		rec := f.do(t, http.MethodGet, "/api/sales/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad request for malformed ID", func(t *testing.T) {
		t.Parallel()

		f := newSaleHandlerFixture(t)

		rec := f.do(t, http.MethodGet, "/api/sales/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSaleHandlerList(t *testing.T) {
	t.Parallel()

	t.Run("returns items envelope with pagination", func(t *testing.T) {
		t.Parallel()

		f := newSaleHandlerFixture(t)

		// Page 2 of 12 sales at 5 per page
		f.sales.ListFn = func(
			ctx context.Context,
			params store.ListParams,
		) ([]*domain.SaleDetail, int, error) {
			assert.Equal(t, 2, params.Page)
			assert.Equal(t, 5, params.Limit)

			page := make([]*domain.SaleDetail, 5)
			for i := range page {
				page[i] = &domain.SaleDetail{}
			}
			return page, 12, nil
		}

		rec := f.do(t, http.MethodGet, "/api/sales?page=2&limit=5", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Items      []json.RawMessage `json:"items"`
			Pagination store.Pagination  `json:"pagination"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		assert.Len(t, resp.Items, 5)
		assert.Equal(t, 2, resp.Pagination.CurrentPage)
		assert.Equal(t, 3, resp.Pagination.TotalPages)
		assert.Equal(t, 12, resp.Pagination.TotalItems)
		assert.Equal(t, 5, resp.Pagination.ItemsPerPage)
	})

	t.Run("forwards status filter", func(t *testing.T) {
		t.Parallel()

		f := newSaleHandlerFixture(t)

		var seen store.ListParams
		f.sales.ListFn = func(
			ctx context.Context,
			params store.ListParams,
		) ([]*domain.SaleDetail, int, error) {
			seen = params
			return nil, 0, nil
		}

		rec := f.do(t, http.MethodGet, "/api/sales?status=PENDING&customerId=CUST9", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		require.Len(t, seen.Filters, 2)
		assert.Equal(t, "customerId", seen.Filters[0].Field)
		assert.Equal(t, "CUST9", seen.Filters[0].Value)
		assert.Equal(t, "status", seen.Filters[1].Field)
		assert.Equal(t, "PENDING", seen.Filters[1].Value)
	})
}

func TestSaleHandlerUpdate(t *testing.T) {
	t.Parallel()

	f := newSaleHandlerFixture(t)
	car := f.addCar(t, domain.CarStatusAvailable)

	created := f.do(t, http.MethodPost, "/api/sales", saleCreateBody(car.ID))
	require.Equal(t, http.StatusCreated, created.Code)

	var createResp struct {
		Sale domain.SaleDetail `json:"sale"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createResp))

	rec := f.do(t, http.MethodPut, "/api/sales/"+createResp.Sale.ID.String(), map[string]any{
		"total_price": 22000.0,
		"status":      "PENDING",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Sale domain.SaleDetail `json:"sale"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 22000.0, resp.Sale.TotalPrice)
	assert.Equal(t, domain.SaleStatusPending, resp.Sale.Status)

	// The car stays sold through a sale update
	sold, err := f.cars.GetByID(context.Background(), car.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CarStatusSold, sold.Status)
}

func TestSaleHandlerDelete(t *testing.T) {
	t.Parallel()

	t.Run("releases the car", func(t *testing.T) {
		t.Parallel()

		f := newSaleHandlerFixture(t)
		car := f.addCar(t, domain.CarStatusAvailable)

		created := f.do(t, http.MethodPost, "/api/sales", saleCreateBody(car.ID))
		require.Equal(t, http.StatusCreated, created.Code)

		var createResp struct {
			Sale domain.SaleDetail `json:"sale"`
		}
		require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createResp))

		rec := f.do(t, http.MethodDelete, "/api/sales/"+createResp.Sale.ID.String(), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		released, err := f.cars.GetByID(context.Background(), car.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.CarStatusAvailable, released.Status)
	})

	t.Run("not found for unknown sale", func(t *testing.T) {
		t.Parallel()

		f := newSaleHandlerFixture(t)

		rec := f.do(t, http.MethodDelete, fmt.Sprintf("/api/sales/%s", uuid.New()), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
