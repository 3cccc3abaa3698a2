package gokeyset

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

var _encoder = base64.RawURLEncoding

const (
	fieldSeparator    = ","
	keyValueSeparator = ":"
)

// Cursor is an opaque token pointing at one record's position in the
// declared ordering. The empty cursor means "no cursor" and is rendered as
// JSON null.
//
// Wire format: base64url("k1:v1,k2:v2,...").
type Cursor string

// String - implements fmt.Stringer.
func (c Cursor) String() string {
	return string(c)
}

// IsEmpty reports whether the cursor is unset.
func (c Cursor) IsEmpty() bool {
	return c == ""
}

// MarshalJSON - implements json.Marshaler.
func (c Cursor) MarshalJSON() ([]byte, error) {
	if c.IsEmpty() {
		return []byte("null"), nil
	}

	return json.Marshal(string(c))
}

// UnmarshalJSON - implements json.Unmarshaler.
func (c *Cursor) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = Cursor(s)

	return nil
}

// CursorParam is a decoded cursor: key name to typed value. Keys for which
// the encoded record held no value are absent.
type CursorParam map[string]any

// PagingCursor holds the boundary cursors of a page.
type PagingCursor struct {
	// Before points at the first record of the page; use it to fetch the
	// previous page.
	Before Cursor `json:"beforeCursor"`
	// After points at the last record of the page; use it to fetch the next page.
	After Cursor `json:"afterCursor"`
}

// PagingResult is the outcome of a single Paginate call.
type PagingResult[T any] struct {
	// Data holds at most limit records in the declared order.
	Data []T `json:"data"`
	// Cursor holds the continuation tokens. Either may be empty.
	Cursor PagingCursor `json:"cursor"`
}

// EncodeCursor builds the cursor of record for the given keys. Keys whose
// value is absent in record are left out of the cursor.
//
// Key names and values must not contain "," or ":". No escaping is
// performed; such input is rejected with ErrUnsafeCursorValue.
func EncodeCursor[T any](keys []OrderingKey[T], record T) (Cursor, error) {
	tokens := make([]string, 0, len(keys))
	for _, key := range keys {
		value, ok, err := key.serialize(record)
		if err != nil {
			return "", fmt.Errorf("cannot encode cursor: %w", err)
		}
		if !ok {
			continue
		}

		if strings.ContainsAny(key.name, fieldSeparator+keyValueSeparator) {
			return "", fmt.Errorf("%w: key name '%s' contains a separator", ErrUnsafeCursorValue, key.name)
		}
		if strings.ContainsAny(value, fieldSeparator+keyValueSeparator) {
			return "", fmt.Errorf("%w: value of key '%s' contains a separator", ErrUnsafeCursorValue, key.name)
		}

		tokens = append(tokens, key.name+keyValueSeparator+value)
	}

	if len(tokens) == 0 {
		return "", nil
	}

	return Cursor(_encoder.EncodeToString([]byte(strings.Join(tokens, fieldSeparator)))), nil
}

// DecodeCursor parses a cursor produced by EncodeCursor. Values are typed
// with the registry; names unknown to it decode as text. An empty cursor
// decodes to a nil CursorParam. Any malformed input yields an error wrapping
// ErrInvalidCursor.
func DecodeCursor(cursor Cursor, registry TypeRegistry) (CursorParam, error) {
	if cursor.IsEmpty() {
		return nil, nil
	}

	data, err := _encoder.DecodeString(string(cursor))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode base64 encoded cursor: %v", ErrInvalidCursor, err)
	}

	tokens := strings.Split(string(data), fieldSeparator)
	ret := make(CursorParam, len(tokens))
	for _, token := range tokens {
		parts := strings.Split(token, keyValueSeparator)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("%w: malformed cursor element '%s'", ErrInvalidCursor, token)
		}

		name, raw := parts[0], parts[1]
		if _, dup := ret[name]; dup {
			return nil, fmt.Errorf("%w: duplicate cursor key '%s'", ErrInvalidCursor, name)
		}

		value, err := deserializeValue(registry.lookup(name), raw)
		if err != nil {
			return nil, fmt.Errorf("%w: key '%s': %v", ErrInvalidCursor, name, err)
		}
		ret[name] = value
	}

	return ret, nil
}
