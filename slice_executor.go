package gokeyset

import (
	"context"
	"fmt"
	"slices"
)

// Columns maps column names (as they appear in predicates and orderings) to
// record getters. It is the in-memory counterpart of a table schema.
type Columns[T any] map[string]func(T) any

// SliceExecutor executes queries against an in-memory slice of records. It
// evaluates predicates with SQL NULL semantics and sorts NULLs first in
// ascending order (last in descending order).
type SliceExecutor[T any] struct {
	records []T
	columns Columns[T]
}

// NewSliceExecutor returns an executor over a copy of records.
func NewSliceExecutor[T any](records []T, columns Columns[T]) *SliceExecutor[T] {
	return &SliceExecutor[T]{
		records: slices.Clone(records),
		columns: columns,
	}
}

// Execute - implements Executor.
func (e *SliceExecutor[T]) Execute(ctx context.Context, q Query) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := q.Orderings().validate(); err != nil {
		return nil, fmt.Errorf("cannot execute query: %w", err)
	}

	rows := make([]T, 0, len(e.records))
	for _, record := range e.records {
		if q.Match(e.valueFunc(record)) {
			rows = append(rows, record)
		}
	}

	orderings := q.Orderings()
	slices.SortStableFunc(rows, func(a, b T) int {
		av, bv := e.valueFunc(a), e.valueFunc(b)
		for _, o := range orderings {
			res := compareNullable(av(o.Column), bv(o.Column))
			if o.Direction == DirectionDESC {
				res = -res
			}
			if res != 0 {
				return res
			}
		}

		return 0
	})

	if q.Limit() > 0 && len(rows) > q.Limit() {
		rows = rows[:q.Limit()]
	}

	return rows, nil
}

func (e *SliceExecutor[T]) valueFunc(record T) func(column string) any {
	return func(column string) any {
		get, ok := e.columns[column]
		if !ok {
			return nil
		}

		return get(record)
	}
}

// compareNullable orders values with NULL as the smallest value.
func compareNullable(a, b any) int {
	a, _ = indirectValue(a)
	b, _ = indirectValue(b)

	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	res, _ := compareValues(a, b)

	return res
}

var _ Executor[struct{}] = (*SliceExecutor[struct{}])(nil)
