package database

import (
	"fmt"

	"gorm.io/gorm"
)

// SortDirection represents sort direction.
type SortDirection int

// SortDirection values.
const (
	SortAsc SortDirection = iota
	SortDesc
)

// String returns the SQL representation.
func (s SortDirection) String() string {
	if s == SortDesc {
		return "DESC"
	}
	return "ASC"
}

// condition is a single WHERE clause fragment with its arguments.
type condition struct {
	clause string
	args   []any
}

// orderBy represents a sort specification.
type orderBy struct {
	field     string
	direction SortDirection
}

// Query represents a database query with filters, ordering, and pagination.
// The zero value is an unrestricted query.
type Query struct {
	conditions []condition
	orders     []orderBy
	limit      int
	offset     int
}

// NewQuery creates a new empty Query.
func NewQuery() Query {
	return Query{}
}

// Where adds a raw WHERE fragment with positional arguments.
func (q Query) Where(clause string, args ...any) Query {
	q.conditions = append(q.conditions, condition{clause: clause, args: args})
	return q
}

// Equal adds an equality filter.
func (q Query) Equal(field string, value any) Query {
	return q.Where(fmt.Sprintf("%s = ?", field), value)
}

// Like adds a LIKE filter.
func (q Query) Like(field string, pattern string) Query {
	return q.Where(fmt.Sprintf("%s LIKE ?", field), pattern)
}

// ILike adds a case-insensitive LIKE filter. Implemented with LOWER() so it
// behaves the same on SQLite and PostgreSQL.
func (q Query) ILike(field string, pattern string) Query {
	return q.Where(fmt.Sprintf("LOWER(%s) LIKE LOWER(?)", field), pattern)
}

// Order adds an ordering specification.
func (q Query) Order(field string, direction SortDirection) Query {
	q.orders = append(q.orders, orderBy{field: field, direction: direction})
	return q
}

// Limit sets the result limit.
func (q Query) Limit(limit int) Query {
	q.limit = limit
	return q
}

// Offset sets the result offset.
func (q Query) Offset(offset int) Query {
	q.offset = offset
	return q
}

// Paginate sets both limit and offset for pagination.
func (q Query) Paginate(page, pageSize int) Query {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	q.limit = pageSize
	q.offset = (page - 1) * pageSize
	return q
}

// LimitValue returns the limit value (0 means no limit).
func (q Query) LimitValue() int {
	return q.limit
}

// OffsetValue returns the offset value.
func (q Query) OffsetValue() int {
	return q.offset
}

// Apply applies the query to a GORM database session.
func (q Query) Apply(db *gorm.DB) *gorm.DB {
	result := q.ApplyConditions(db)

	for _, ord := range q.orders {
		result = result.Order(fmt.Sprintf("%s %s", ord.field, ord.direction.String()))
	}

	if q.limit > 0 {
		result = result.Limit(q.limit)
	}
	if q.offset > 0 {
		result = result.Offset(q.offset)
	}

	return result
}

// ApplyConditions applies only WHERE conditions (no limit/offset/order),
// for COUNT queries.
func (q Query) ApplyConditions(db *gorm.DB) *gorm.DB {
	result := db
	for _, cond := range q.conditions {
		result = result.Where(cond.clause, cond.args...)
	}
	return result
}
