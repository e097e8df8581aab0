package store

import "strings"

// Defaults and bounds for list queries.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// SortOrder is the direction of a list sort.
type SortOrder string

// Valid sort orders.
const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FilterOp is the comparison operator of a list filter.
type FilterOp int

// Supported filter operators. Contains is a case-insensitive substring
// match; Gte and Lte are inclusive numeric bounds.
const (
	OpEq FilterOp = iota
	OpContains
	OpGte
	OpLte
)

// Filter is a single tagged filter composed by handlers and compiled by the
// store layer. Filters with an empty string value are treated as "no filter"
// and must be skipped before reaching a store.
type Filter struct {
	Field string
	Op    FilterOp
	Value any
}

// ListParams carries the shared pagination and sorting inputs of every list
// query. Construct with NewListParams so defaults and bounds are applied.
type ListParams struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder SortOrder

	// Search is a free-text term matched case-insensitively as a substring
	// against a fixed, store-specific set of string columns, OR-combined.
	// Empty means no search.
	Search string

	// Filters are AND-combined tagged filters.
	Filters []Filter
}

// NewListParams builds ListParams from raw request values, applying
// defaults: page 1, limit 10 (capped at MaxLimit), descending order. Values
// below the minimums fall back to the defaults rather than being rejected.
func NewListParams(page, limit int, sortBy, sortOrder string) ListParams {
	if page < 1 {
		page = DefaultPage
	}

	if limit < 1 {
		limit = DefaultLimit
	} else if limit > MaxLimit {
		limit = MaxLimit
	}

	order := SortDesc
	if strings.EqualFold(sortOrder, string(SortAsc)) {
		order = SortAsc
	}

	return ListParams{
		Page:      page,
		Limit:     limit,
		SortBy:    sortBy,
		SortOrder: order,
	}
}

// Offset returns the number of rows to skip for the current page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// WithFilter appends a filter unless its value is the empty string, which
// means "no filter" rather than "match empty".
func (p ListParams) WithFilter(field string, op FilterOp, value any) ListParams {
	if s, ok := value.(string); ok && s == "" {
		return p
	}
	p.Filters = append(p.Filters, Filter{Field: field, Op: op, Value: value})
	return p
}

// WithSearch sets the free-text search term. Empty means no search.
func (p ListParams) WithSearch(search string) ListParams {
	p.Search = search
	return p
}

// Pagination describes the page of results returned by a list query.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// NewPagination computes the pagination envelope for a list response.
// TotalPages is ceil(totalItems / limit).
func NewPagination(params ListParams, totalItems int) Pagination {
	totalPages := 0
	if totalItems > 0 {
		totalPages = (totalItems + params.Limit - 1) / params.Limit
	}

	return Pagination{
		CurrentPage:  params.Page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: params.Limit,
	}
}
