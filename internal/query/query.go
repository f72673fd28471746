// Package query shapes product listing queries: filters, ordering and
// pagination parsed from the request URL, emitted as parameterized SQL
// fragments for the product repository.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultPageSize is the page size applied when the client does not ask
	// for one.
	DefaultPageSize = 2

	// MaxPageSize caps the client-supplied page size.
	MaxPageSize = 8
)

// orderColumns whitelists the fields a listing may be ordered by.
var orderColumns = map[string]string{
	"name":  "name",
	"price": "price",
	"stock": "stock",
}

// ProductQuery narrows and pages a product listing.
type ProductQuery struct {
	// Name filters on an exact name match.
	Name string

	// Description filters on a case-insensitive substring match.
	Description string

	// Search matches either the exact name or a description substring.
	Search string

	// OrderBy is a whitelisted column; empty means primary-key order.
	OrderBy    string
	Descending bool

	// Page is 1-based.
	Page int
	Size int
}

// Parse builds a ProductQuery from URL query parameters. Unknown ordering
// fields and malformed numbers are rejected here, before any query runs.
func Parse(values url.Values) (ProductQuery, error) {
	q := ProductQuery{
		Name:        values.Get("name"),
		Description: values.Get("description"),
		Search:      values.Get("search"),
		Page:        1,
		Size:        DefaultPageSize,
	}

	if ordering := values.Get("ordering"); ordering != "" {
		field := ordering
		if strings.HasPrefix(ordering, "-") {
			q.Descending = true
			field = ordering[1:]
		}
		column, ok := orderColumns[field]
		if !ok {
			return ProductQuery{}, fmt.Errorf("invalid ordering field: %q", field)
		}
		q.OrderBy = column
	}

	if page := values.Get("page-num"); page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			return ProductQuery{}, fmt.Errorf("invalid page-num parameter: %q", page)
		}
		q.Page = n
	}

	if size := values.Get("size"); size != "" {
		n, err := strconv.Atoi(size)
		if err != nil || n < 1 {
			return ProductQuery{}, fmt.Errorf("invalid size parameter: %q", size)
		}
		if n > MaxPageSize {
			n = MaxPageSize
		}
		q.Size = n
	}

	return q, nil
}

// Offset returns the row offset for the requested page.
func (q ProductQuery) Offset() int {
	return (q.Page - 1) * q.Size
}

// where builds the WHERE fragment. The in-stock predicate is always applied,
// independent of client filters.
func (q ProductQuery) where() (string, []any) {
	conditions := []string{"stock > 0"}
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Name != "" {
		conditions = append(conditions, fmt.Sprintf("name = %s", arg(q.Name)))
	}
	if q.Description != "" {
		conditions = append(conditions, fmt.Sprintf("description ILIKE %s", arg("%"+q.Description+"%")))
	}
	if q.Search != "" {
		nameArg := arg(q.Search)
		descArg := arg("%" + q.Search + "%")
		conditions = append(conditions, fmt.Sprintf("(name = %s OR description ILIKE %s)", nameArg, descArg))
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

// Clauses returns the WHERE/ORDER BY/LIMIT/OFFSET suffix for the listing
// query, with its positional arguments.
func (q ProductQuery) Clauses() (string, []any) {
	clause, args := q.where()

	if q.OrderBy != "" {
		direction := "ASC"
		if q.Descending {
			direction = "DESC"
		}
		clause += fmt.Sprintf(" ORDER BY %s %s", q.OrderBy, direction)
	} else {
		clause += " ORDER BY id"
	}

	args = append(args, q.Size, q.Offset())
	clause += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return clause, args
}

// CountClauses returns the WHERE suffix only, for the total count query that
// backs the pagination envelope.
func (q ProductQuery) CountClauses() (string, []any) {
	return q.where()
}
