// Package query translates request parameters into predicates over the
// stored hero attributes.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dom/hero-service/internal/domain"
)

type Op string

const (
	OpEq  Op = "="
	OpGte Op = ">="
	OpLte Op = "<="
)

// Filter is a single comparison against one stored column. Filters combine
// with AND semantics; there is no OR.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

// Condition returns the SQL fragment and bind argument for the filter.
func (f Filter) Condition() (string, any) {
	return fmt.Sprintf("%s %s ?", f.Column, f.Op), f.Value
}

// The filterable numeric attributes form a closed set; parameter names are
// built from them rather than inspected dynamically.
var numericColumns = []string{"intelligence", "strength", "speed", "power"}

var numericOps = []struct {
	suffix string
	op     Op
}{
	{"", OpEq},
	{"__gte", OpGte},
	{"__lte", OpLte},
}

// ParseFilters builds the conjunction of predicates described by the query
// string. Unrecognized parameters are ignored. A non-numeric value for a
// numeric parameter fails with domain.ErrInvalidFilter; an empty parameter
// set yields an empty filter list (match everything).
func ParseFilters(values url.Values) ([]Filter, error) {
	var filters []Filter

	if name := values.Get("name"); name != "" {
		filters = append(filters, Filter{Column: "name", Op: OpEq, Value: name})
	}

	for _, column := range numericColumns {
		for _, no := range numericOps {
			raw := values.Get(column + no.suffix)
			if raw == "" {
				continue
			}
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return nil, fmt.Errorf("%w: %s=%q", domain.ErrInvalidFilter, column+no.suffix, raw)
			}
			filters = append(filters, Filter{Column: column, Op: no.op, Value: n})
		}
	}

	return filters, nil
}
