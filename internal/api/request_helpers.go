package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/openlot/dealership-api/internal/store"
)

// ParseListParams extracts the shared pagination and sorting query
// parameters (page, limit, sortBy, sortOrder). Missing or malformed values
// fall back to the defaults.
func ParseListParams(r *http.Request) store.ListParams {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	return store.NewListParams(page, limit, q.Get("sortBy"), q.Get("sortOrder"))
}

// URLParamUUID parses the named chi URL parameter as a UUID.
func URLParamUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}
