package gokeyset

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Paginator drives one keyset pagination call: it plans the window, builds
// the seek predicate, fetches limit+1 rows through an Executor and emits the
// boundary cursors of the page.
//
// IMPORTANT:
// A Paginator is consumed by a single Paginate call and is not safe for
// concurrent use. Configure a fresh instance for every request.
//
// Usage:
//
//	pager := gokeyset.NewPaginator[User]().
//		WithAlias("u").
//		WithKeys(gokeyset.Key[User]("score", gokeyset.KeyTypeNumeric, func(u User) any { return u.Score })).
//		WithUniqueKey(gokeyset.Key[User]("id", gokeyset.KeyTypeNumeric, func(u User) any { return u.ID })).
//		WithLimit(req.Limit).
//		WithAfterCursor(req.After)
//
//	res, err := pager.Paginate(ctx, gokeyset.NewGORMExecutor[User](db.Table("users AS u")))
type Paginator[T any] struct {
	cfg          Config
	alias        string
	keys         []OrderingKey[T]
	uniqueKey    *OrderingKey[T]
	limit        int
	order        Direction
	afterCursor  Cursor
	beforeCursor Cursor
	logger       *zap.Logger

	consumed         bool
	nextAfterCursor  Cursor
	nextBeforeCursor Cursor
}

// NewPaginator returns a paginator with DefaultConfig: limit 100, DESC order.
func NewPaginator[T any]() *Paginator[T] {
	return &Paginator[T]{
		cfg:    DefaultConfig(),
		logger: zap.NewNop(),
	}
}

// WithConfig replaces the defaults used for the limit and the order.
func (c *Paginator[T]) WithConfig(cfg Config) *Paginator[T] {
	if c == nil {
		c = NewPaginator[T]()
	}

	c.cfg = cfg

	return c
}

// WithAlias sets the alias qualifying bare field key names, e.g. "u" turns
// key "id" into column "u.id".
func (c *Paginator[T]) WithAlias(alias string) *Paginator[T] {
	if c == nil {
		c = NewPaginator[T]()
	}

	c.alias = alias

	return c
}

// WithKeys sets the ordering keys in priority order, replacing previous ones.
func (c *Paginator[T]) WithKeys(keys ...OrderingKey[T]) *Paginator[T] {
	if c == nil {
		c = NewPaginator[T]()
	}

	c.keys = slices.Clone(keys)

	return c
}

// WithUniqueKey sets the tie-breaking key. Its values must be unique across
// all records. It may also be one of the ordering keys.
func (c *Paginator[T]) WithUniqueKey(key OrderingKey[T]) *Paginator[T] {
	if c == nil {
		c = NewPaginator[T]()
	}

	c.uniqueKey = &key

	return c
}

// WithLimit sets the page size. Non-positive values select the configured
// default; values above the configured maximum are clamped.
func (c *Paginator[T]) WithLimit(limit int) *Paginator[T] {
	if c == nil {
		c = NewPaginator[T]()
	}

	c.limit = limit

	return c
}

// WithOrder sets the declared order of the keys.
func (c *Paginator[T]) WithOrder(order Direction) *Paginator[T] {
	if c == nil {
		c = NewPaginator[T]()
	}

	c.order = order

	return c
}

// WithAfterCursor requests the page following the cursor position.
func (c *Paginator[T]) WithAfterCursor(cursor Cursor) *Paginator[T] {
	if c == nil {
		c = NewPaginator[T]()
	}

	c.afterCursor = cursor

	return c
}

// WithBeforeCursor requests the page preceding the cursor position. It is
// ignored for the predicate when an after cursor is set as well.
func (c *Paginator[T]) WithBeforeCursor(cursor Cursor) *Paginator[T] {
	if c == nil {
		c = NewPaginator[T]()
	}

	c.beforeCursor = cursor

	return c
}

// WithLogger sets the logger; nil restores the no-op logger.
func (c *Paginator[T]) WithLogger(logger *zap.Logger) *Paginator[T] {
	if c == nil {
		c = NewPaginator[T]()
	}

	c.logger = lo.Ternary(logger == nil, zap.NewNop(), logger)

	return c
}

// GetLimit returns the effective page size.
func (c *Paginator[T]) GetLimit() int {
	if c == nil {
		return 0
	}

	return c.cfg.normalizeLimit(c.limit)
}

// GetOrder returns the effective declared order.
func (c *Paginator[T]) GetOrder() Direction {
	if c == nil {
		return ""
	}

	return lo.Ternary(c.order == "", c.cfg.DefaultOrder, c.order)
}

// NextAfterCursor returns the after cursor emitted by Paginate.
func (c *Paginator[T]) NextAfterCursor() Cursor {
	if c == nil {
		return ""
	}

	return c.nextAfterCursor
}

// NextBeforeCursor returns the before cursor emitted by Paginate.
func (c *Paginator[T]) NextBeforeCursor() Cursor {
	if c == nil {
		return ""
	}

	return c.nextBeforeCursor
}

// Plan validates the configuration, decodes the active cursor and returns
// the query that Paginate would execute. It does not consume the paginator.
// Use it to paginate raw SQL:
//
//	q, err := pager.Plan()
//	where, args := q.Predicates()[0].ToSQL()
func (c *Paginator[T]) Plan() (Query, error) {
	if c == nil {
		return Query{}, fmt.Errorf("%w: paginator is nil", ErrInvalidConfig)
	}

	q, _, err := c.plan()

	return q, err
}

// Paginate fetches one page through exec.
//
// Errors from exec are returned wrapped; use errors.Is to inspect them. An
// unparseable cursor fails with ErrInvalidCursor before exec is called.
func (c *Paginator[T]) Paginate(ctx context.Context, exec Executor[T]) (*PagingResult[T], error) {
	if c == nil {
		return nil, fmt.Errorf("cannot paginate: %w: paginator is nil", ErrInvalidConfig)
	}
	if c.consumed {
		return nil, fmt.Errorf("cannot paginate: %w", ErrPaginatorConsumed)
	}
	c.consumed = true

	q, window, err := c.plan()
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	limit := c.GetLimit()
	hasAfter, hasBefore := !c.afterCursor.IsEmpty(), !c.beforeCursor.IsEmpty()

	c.logger.Debug("keyset window planned",
		zap.String("operator", string(window.operator)),
		zap.String("direction", string(window.direction)),
		zap.Int("limit", limit),
		zap.Bool("after_cursor", hasAfter),
		zap.Bool("before_cursor", hasBefore),
	)

	rows, err := exec.Execute(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("cannot paginate: %w", err)
	}

	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}

	c.logger.Debug("keyset page fetched",
		zap.Int("rows", len(rows)),
		zap.Bool("has_more", hasMore),
	)

	if len(rows) == 0 {
		return &PagingResult[T]{Data: []T{}}, nil
	}

	if window.backward {
		slices.Reverse(rows)
	}

	keys := c.cursorKeys()
	if hasBefore || hasMore {
		c.nextAfterCursor, err = EncodeCursor(keys, lo.LastOrEmpty(rows))
		if err != nil {
			return nil, fmt.Errorf("cannot build after cursor: %w", err)
		}
	}
	if hasAfter || (hasMore && hasBefore) {
		c.nextBeforeCursor, err = EncodeCursor(keys, lo.FirstOrEmpty(rows))
		if err != nil {
			return nil, fmt.Errorf("cannot build before cursor: %w", err)
		}
	}

	return &PagingResult[T]{
		Data: rows,
		Cursor: PagingCursor{
			Before: c.nextBeforeCursor,
			After:  c.nextAfterCursor,
		},
	}, nil
}

// plan builds the query for the configured window.
func (c *Paginator[T]) plan() (Query, windowPlan, error) {
	err := c.validate()
	if err != nil {
		return Query{}, windowPlan{}, err
	}

	hasAfter, hasBefore := !c.afterCursor.IsEmpty(), !c.beforeCursor.IsEmpty()
	window := planWindow(c.GetOrder(), hasAfter, hasBefore)
	keys := c.cursorKeys()

	q := NewQuery().
		WithOrder(lo.Map(keys, func(k OrderingKey[T], _ int) OrderBy {
			return OrderBy{Column: k.column(c.alias), Direction: window.direction}
		})...).
		WithLimit(c.GetLimit() + 1)

	active := lo.Ternary(hasAfter, c.afterCursor, c.beforeCursor)
	if active.IsEmpty() {
		return q, window, nil
	}

	param, err := DecodeCursor(active, RegistryOf(keys...))
	if err != nil {
		return Query{}, windowPlan{}, err
	}

	seekKeys := lo.Map(c.keys, func(k OrderingKey[T], _ int) seekColumn {
		return seekColumn{name: k.name, column: k.column(c.alias)}
	})
	unique := seekColumn{name: c.uniqueKey.name, column: c.uniqueKey.column(c.alias)}

	return q.WithPredicate(buildSeekPredicate(seekKeys, unique, window.operator, param)), window, nil
}

// cursorKeys returns the ordering keys followed by the unique key unless it
// is one of them.
func (c *Paginator[T]) cursorKeys() []OrderingKey[T] {
	keys := slices.Clone(c.keys)
	if !lo.ContainsBy(keys, func(k OrderingKey[T]) bool { return k.name == c.uniqueKey.name }) {
		keys = append(keys, *c.uniqueKey)
	}

	return keys
}

func (c *Paginator[T]) validate() error {
	var errs []error

	if err := c.cfg.validate(); err != nil {
		errs = append(errs, err)
	}

	if c.uniqueKey == nil {
		errs = append(errs, fmt.Errorf("unique key is not set"))
	} else if err := c.uniqueKey.validate(); err != nil {
		errs = append(errs, err)
	}

	if c.alias != "" {
		if err := validateColumnName(c.alias); err != nil {
			errs = append(errs, fmt.Errorf("alias: %w", err))
		}
	}

	if order := c.GetOrder(); !order.Valid() {
		errs = append(errs, fmt.Errorf("invalid ordering direction '%s'", order))
	}

	seen := make(map[string]struct{}, len(c.keys))
	for _, k := range c.keys {
		if err := k.validate(); err != nil {
			errs = append(errs, err)
		}
		if _, dup := seen[k.name]; dup {
			errs = append(errs, fmt.Errorf("duplicate ordering key '%s'", k.name))
		}
		seen[k.name] = struct{}{}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}
