package gokeyset

import (
	"context"
	"fmt"
	"slices"

	"gorm.io/gorm"
)

// Query is an immutable fetch description handed to an Executor. Every
// With* method returns a modified copy; the receiver is never changed, so a
// base Query can be shared between pagination calls.
type Query struct {
	predicates []Predicate
	orderings  Orderings
	limit      int
}

// NewQuery returns an empty query: no predicates, no ordering, no limit.
func NewQuery() Query {
	return Query{}
}

// WithPredicate returns a copy of q with p conjoined to its predicates.
// Empty predicates are ignored.
func (q Query) WithPredicate(p Predicate) Query {
	if p.IsEmpty() {
		return q
	}

	q.predicates = append(slices.Clip(q.predicates), p)

	return q
}

// WithOrder returns a copy of q ordered by the given orderings.
func (q Query) WithOrder(orderBy ...OrderBy) Query {
	q.orderings = slices.Clone(orderBy)

	return q
}

// WithLimit returns a copy of q fetching at most limit rows. Zero means no limit.
func (q Query) WithLimit(limit int) Query {
	q.limit = limit

	return q
}

// Predicates returns the conjoined predicates of the query.
func (q Query) Predicates() []Predicate {
	return slices.Clone(q.predicates)
}

// Orderings returns the ordering of the query.
func (q Query) Orderings() Orderings {
	return slices.Clone(q.orderings)
}

// Limit returns the row limit of the query; zero means no limit.
func (q Query) Limit() int {
	return q.limit
}

// Match reports whether a row satisfies every predicate of the query.
func (q Query) Match(value func(column string) any) bool {
	for _, p := range q.predicates {
		if !p.Match(value) {
			return false
		}
	}

	return true
}

// Apply applies predicates, ordering and limit to a gorm query. Predicates
// are ANDed with any condition already present on db. An invalid ordering is
// reported through the returned db's Error and nothing is applied.
func (q Query) Apply(db *gorm.DB) *gorm.DB {
	if err := q.orderings.validate(); err != nil {
		db = db.Session(&gorm.Session{})
		_ = db.AddError(fmt.Errorf("cannot apply query: %w", err))
		return db
	}

	for _, p := range q.predicates {
		if exp := p.ToGORMExpression(); exp != nil {
			db = db.Clauses(exp)
		}
	}

	db = q.orderings.Apply(db)

	if q.limit > 0 {
		db = db.Limit(q.limit)
	}

	return db
}

// Executor runs a Query and returns the matching records in query order.
type Executor[T any] interface {
	Execute(ctx context.Context, q Query) ([]T, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc[T any] func(ctx context.Context, q Query) ([]T, error)

// Execute - implements Executor.
func (f ExecutorFunc[T]) Execute(ctx context.Context, q Query) ([]T, error) {
	return f(ctx, q)
}

var _ Executor[struct{}] = ExecutorFunc[struct{}](nil)
