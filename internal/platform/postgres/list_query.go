package postgres

import (
	"fmt"
	"strings"

	"github.com/openlot/dealership-api/internal/store"
)

// listSpec describes how a store compiles store.ListParams into SQL. The
// maps act as whitelists: filter fields and sort keys not present here are
// silently ignored, so request input never reaches the SQL text.
type listSpec struct {
	// filterColumns maps tagged-filter field names to table columns.
	filterColumns map[string]string

	// searchColumns is the fixed set of columns the free-text search term is
	// matched against, OR-combined.
	searchColumns []string

	// sortColumns maps sortBy request values to table columns.
	sortColumns map[string]string

	// defaultSort is the column used when sortBy is empty or not whitelisted.
	defaultSort string
}

// whereClause compiles the search term and filters into a WHERE fragment
// with numbered placeholders starting at $1. Returns an empty string and no
// args when nothing filters.
func (s listSpec) whereClause(params store.ListParams) (string, []any) {
	var conds []string
	var args []any

	if params.Search != "" && len(s.searchColumns) > 0 {
		args = append(args, "%"+params.Search+"%")
		placeholder := fmt.Sprintf("$%d", len(args))

		ors := make([]string, len(s.searchColumns))
		for i, col := range s.searchColumns {
			ors[i] = fmt.Sprintf("%s ILIKE %s", col, placeholder)
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	for _, f := range params.Filters {
		col, ok := s.filterColumns[f.Field]
		if !ok {
			continue
		}

		switch f.Op {
		case store.OpEq:
			args = append(args, f.Value)
			conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
		case store.OpContains:
			args = append(args, fmt.Sprintf("%%%v%%", f.Value))
			conds = append(conds, fmt.Sprintf("%s ILIKE $%d", col, len(args)))
		case store.OpGte:
			args = append(args, f.Value)
			conds = append(conds, fmt.Sprintf("%s >= $%d", col, len(args)))
		case store.OpLte:
			args = append(args, f.Value)
			conds = append(conds, fmt.Sprintf("%s <= $%d", col, len(args)))
		}
	}

	if len(conds) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderLimitClause compiles the sort and page inputs into an
// ORDER BY ... LIMIT ... OFFSET fragment. Placeholder numbering continues
// from argOffset, the number of args already bound by the WHERE clause.
func (s listSpec) orderLimitClause(params store.ListParams, argOffset int) (string, []any) {
	col, ok := s.sortColumns[params.SortBy]
	if !ok {
		col = s.defaultSort
	}

	dir := "DESC"
	if params.SortOrder == store.SortAsc {
		dir = "ASC"
	}

	clause := fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d",
		col, dir, argOffset+1, argOffset+2)

	return clause, []any{params.Limit, params.Offset()}
}
