package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlot/dealership-api/internal/domain"
	"github.com/openlot/dealership-api/internal/mocks"
)

type serviceHandlerFixture struct {
	router   *chi.Mux
	services *mocks.MockServiceStore
}

func newServiceHandlerFixture(t *testing.T) *serviceHandlerFixture {
	t.Helper()

	services := mocks.NewMockServiceStore()
	handler := NewServiceHandler(services)

	r := chi.NewRouter()
	r.Post("/api/services", handler.Create)
	r.Get("/api/services/{id}", handler.Get)
	r.Put("/api/services/{id}", handler.Update)
	r.Delete("/api/services/{id}", handler.Delete)
	r.Post("/api/services/add-customer", handler.AddCustomer)

	return &serviceHandlerFixture{router: r, services: services}
}

func (f *serviceHandlerFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
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

type serviceResponse struct {
	Message string               `json:"message"`
	Service domain.ServiceDetail `json:"service"`
}

func TestServiceHandlerCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates service with linked customers", func(t *testing.T) {
		t.Parallel()

		f := newServiceHandlerFixture(t)

		rec := f.do(t, http.MethodPost, "/api/services", map[string]any{
			"service_type": "Oil Change",
			"description":  "Full synthetic oil change",
			"cost":         79.99,
			"customer_ids": []string{"CUST1", "CUST2"},
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp serviceResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Oil Change", resp.Service.ServiceType)
		assert.Len(t, resp.Service.Customers, 2)
	})

	t.Run("bad request on non-positive cost", func(t *testing.T) {
		t.Parallel()

		f := newServiceHandlerFixture(t)

		rec := f.do(t, http.MethodPost, "/api/services", map[string]any{
			"service_type": "Oil Change",
			"description":  "Full synthetic oil change",
			"cost":         0,
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServiceHandlerAddCustomer(t *testing.T) {
	t.Parallel()

	createService := func(t *testing.T, f *serviceHandlerFixture) uuid.UUID {
		t.Helper()

		rec := f.do(t, http.MethodPost, "/api/services", map[string]any{
			"service_type": "Detailing",
			"description":  "Interior and exterior detail",
			"cost":         150.0,
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp serviceResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp.Service.ID
	}

	t.Run("links a customer", func(t *testing.T) {
		t.Parallel()

		f := newServiceHandlerFixture(t)
		serviceID := createService(t, f)

		rec := f.do(t, http.MethodPost, "/api/services/add-customer", map[string]any{
			"service_id":  serviceID,
			"customer_id": "CUST1",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp serviceResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Service.Customers, 1)
		assert.Equal(t, "CUST1", resp.Service.Customers[0].CustomerID)
	})

	t.Run("conflict on duplicate link", func(t *testing.T) {
		t.Parallel()

		f := newServiceHandlerFixture(t)
		serviceID := createService(t, f)

		body := map[string]any{
			"service_id":  serviceID,
			"customer_id": "CUST1",
		}

		require.Equal(t, http.StatusOK,
			f.do(t, http.MethodPost, "/api/services/add-customer", body).Code)

		rec := f.do(t, http.MethodPost, "/api/services/add-customer", body)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("bad request when service missing", func(t *testing.T) {
		t.Parallel()

		f := newServiceHandlerFixture(t)

		rec := f.do(t, http.MethodPost, "/api/services/add-customer", map[string]any{
			"service_id":  uuid.New(),
			"customer_id": "CUST1",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServiceHandlerUpdate(t *testing.T) {
	t.Parallel()

	t.Run("omitted customer_ids leaves links untouched", func(t *testing.T) {
		t.Parallel()

		f := newServiceHandlerFixture(t)

		created := f.do(t, http.MethodPost, "/api/services", map[string]any{
			"service_type": "Detailing",
			"description":  "Interior and exterior detail",
			"cost":         150.0,
			"customer_ids": []string{"CUST1"},
		})
		require.Equal(t, http.StatusCreated, created.Code)

		var createResp serviceResponse
		require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createResp))

		rec := f.do(t, http.MethodPut, "/api/services/"+createResp.Service.ID.String(), map[string]any{
			"service_type": "Detailing",
			"description":  "Exterior detail only",
			"cost":         120.0,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp serviceResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 120.0, resp.Service.Cost)
		assert.Len(t, resp.Service.Customers, 1)
	})

	t.Run("replaces links when customer_ids present", func(t *testing.T) {
		t.Parallel()

		f := newServiceHandlerFixture(t)

		created := f.do(t, http.MethodPost, "/api/services", map[string]any{
			"service_type": "Detailing",
			"description":  "Interior and exterior detail",
			"cost":         150.0,
			"customer_ids": []string{"CUST1", "CUST2"},
		})
		require.Equal(t, http.StatusCreated, created.Code)

		var createResp serviceResponse
		require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createResp))

		rec := f.do(t, http.MethodPut, "/api/services/"+createResp.Service.ID.String(), map[string]any{
			"service_type": "Detailing",
			"description":  "Interior and exterior detail",
			"cost":         150.0,
			"customer_ids": []string{"CUST3"},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp serviceResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Service.Customers, 1)
		assert.Equal(t, "CUST3", resp.Service.Customers[0].CustomerID)
	})
}

func TestServiceHandlerDelete(t *testing.T) {
	t.Parallel()

	f := newServiceHandlerFixture(t)

	created := f.do(t, http.MethodPost, "/api/services", map[string]any{
		"service_type": "Tire Rotation",
		"description":  "Rotate and balance all four tires",
		"cost":         60.0,
	})
	require.Equal(t, http.StatusCreated, created.Code)

	var createResp serviceResponse
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &createResp))
	id := createResp.Service.ID.String()

	require.Equal(t, http.StatusOK, f.do(t, http.MethodDelete, "/api/services/"+id, nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/services/"+id, nil).Code)
}
