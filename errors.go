package gokeyset

import "errors"

var (
	// ErrInvalidCursor is returned when a cursor token cannot be parsed. The
	// request must be rejected; an unparseable cursor never degrades to "no cursor".
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrUnsafeCursorValue is returned by EncodeCursor when a key name or a
	// serialized value contains one of the cursor separators.
	ErrUnsafeCursorValue = errors.New("unsafe cursor value")

	// ErrInvalidConfig is returned when the paginator is misconfigured.
	ErrInvalidConfig = errors.New("invalid paginator config")

	// ErrPaginatorConsumed is returned on a second Paginate call on the same instance.
	ErrPaginatorConsumed = errors.New("paginator already consumed")
)
