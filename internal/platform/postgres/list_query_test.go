package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openlot/dealership-api/internal/store"
)

func testSpec() listSpec {
	return listSpec{
		filterColumns: map[string]string{
			"status": "status",
			"price":  "price",
		},
		searchColumns: []string{"make", "model"},
		sortColumns: map[string]string{
			"createdAt": "created_at",
			"price":     "price",
		},
		defaultSort: "created_at",
	}
}

func TestWhereClause(t *testing.T) {
	t.Parallel()

	t.Run("empty params produce no clause", func(t *testing.T) {
		t.Parallel()

		where, args := testSpec().whereClause(store.NewListParams(1, 10, "", ""))

		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("search expands to OR group with single placeholder", func(t *testing.T) {
		t.Parallel()

		params := store.NewListParams(1, 10, "", "").WithSearch("civic")
		where, args := testSpec().whereClause(params)

		assert.Equal(t, " WHERE (make ILIKE $1 OR model ILIKE $1)", where)
		assert.Equal(t, []any{"%civic%"}, args)
	})

	t.Run("filters are AND-combined with numbered placeholders", func(t *testing.T) {
		t.Parallel()

		params := store.NewListParams(1, 10, "", "").
			WithFilter("status", store.OpEq, "AVAILABLE").
			WithFilter("price", store.OpGte, 5000.0).
			WithFilter("price", store.OpLte, 20000.0)
		where, args := testSpec().whereClause(params)

		assert.Equal(t, " WHERE status = $1 AND price >= $2 AND price <= $3", where)
		assert.Equal(t, []any{"AVAILABLE", 5000.0, 20000.0}, args)
	})

	t.Run("search and filters combine", func(t *testing.T) {
		t.Parallel()

		params := store.NewListParams(1, 10, "", "").
			WithSearch("toyota").
			WithFilter("status", store.OpEq, "SOLD")
		where, args := testSpec().whereClause(params)

		assert.Equal(t, " WHERE (make ILIKE $1 OR model ILIKE $1) AND status = $2", where)
		assert.Equal(t, []any{"%toyota%", "SOLD"}, args)
	})

	t.Run("non-whitelisted filter fields are ignored", func(t *testing.T) {
		t.Parallel()

		params := store.NewListParams(1, 10, "", "").
			WithFilter("hashed_password", store.OpEq, "x' OR 1=1 --")
		where, args := testSpec().whereClause(params)

		assert.Empty(t, where)
		assert.Empty(t, args)
	})

	t.Run("contains filter uses ILIKE", func(t *testing.T) {
		t.Parallel()

		spec := testSpec()
		spec.filterColumns["make"] = "make"

		params := store.NewListParams(1, 10, "", "").
			WithFilter("make", store.OpContains, "hon")
		where, args := spec.whereClause(params)

		assert.Equal(t, " WHERE make ILIKE $1", where)
		assert.Equal(t, []any{"%hon%"}, args)
	})
}

func TestOrderLimitClause(t *testing.T) {
	t.Parallel()

	t.Run("default sort and direction", func(t *testing.T) {
		t.Parallel()

		clause, args := testSpec().orderLimitClause(store.NewListParams(1, 10, "", ""), 0)

		assert.Equal(t, " ORDER BY created_at DESC LIMIT $1 OFFSET $2", clause)
		assert.Equal(t, []any{10, 0}, args)
	})

	t.Run("whitelisted sort column ascending", func(t *testing.T) {
		t.Parallel()

		params := store.NewListParams(2, 5, "price", "asc")
		clause, args := testSpec().orderLimitClause(params, 3)

		assert.Equal(t, " ORDER BY price ASC LIMIT $4 OFFSET $5", clause)
		assert.Equal(t, []any{5, 5}, args)
	})

	t.Run("unknown sort key falls back to default", func(t *testing.T) {
		t.Parallel()

		params := store.NewListParams(1, 10, "hashed_password; DROP TABLE cars", "asc")
		clause, _ := testSpec().orderLimitClause(params, 0)

		assert.Equal(t, " ORDER BY created_at ASC LIMIT $1 OFFSET $2", clause)
	})
}
