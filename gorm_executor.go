package gokeyset

import (
	"context"

	"gorm.io/gorm"
)

// GORMExecutor executes queries on top of a base gorm query. The base query
// may carry its own table, joins, selects and conditions; it is never
// mutated, so one executor can serve many pagination calls.
//
// Usage:
//
//	exec := gokeyset.NewGORMExecutor[User](db.Model(&User{}).Where("active = ?", true))
//	res, err := pager.Paginate(ctx, exec)
type GORMExecutor[T any] struct {
	db *gorm.DB
}

func NewGORMExecutor[T any](db *gorm.DB) *GORMExecutor[T] {
	return &GORMExecutor[T]{db: db}
}

// Execute - implements Executor.
func (e *GORMExecutor[T]) Execute(ctx context.Context, q Query) ([]T, error) {
	var rows []T

	err := q.Apply(e.db.WithContext(ctx)).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

var _ Executor[struct{}] = (*GORMExecutor[struct{}])(nil)
