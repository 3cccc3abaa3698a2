package gokeyset

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// KeyType is the statically declared value type of an ordering key. It
// drives how the key's value is written into and read back from a cursor.
type KeyType uint8

const (
	// KeyTypeText is the default: the value is stored as is.
	KeyTypeText KeyType = iota
	// KeyTypeNumeric stores integers and floats in base 10.
	KeyTypeNumeric
	// KeyTypeBool stores "true" or "false".
	KeyTypeBool
	// KeyTypeTime stores Unix seconds and a nine digit nanosecond fraction
	// ("1704164645.000000006"). Decoded values are in UTC.
	KeyTypeTime
)

func (t KeyType) String() string {
	switch t {
	case KeyTypeText:
		return "text"
	case KeyTypeNumeric:
		return "numeric"
	case KeyTypeBool:
		return "bool"
	case KeyTypeTime:
		return "time"
	default:
		return fmt.Sprintf("KeyType(%d)", uint8(t))
	}
}

type keyKind uint8

const (
	keyKindField keyKind = iota
	keyKindCustom
)

// OrderingKey is a single key of the pagination ordering. It is either a
// plain field key (see Key) or a custom key (see CustomKey).
type OrderingKey[T any] struct {
	kind       keyKind
	name       string
	selectExpr string
	keyType    KeyType
	get        func(T) any
	format     func(T) string
}

// Key declares a plain field key. The name is both the cursor key and the
// column; it is qualified with the paginator alias unless it already
// contains a dot. The getter returns the record's value for the field; nil
// (or a nil pointer, or a NULL driver.Valuer) means the value is absent.
//
// Example:
//
//	gokeyset.Key[User]("created_at", gokeyset.KeyTypeTime, func(u User) any { return u.CreatedAt })
func Key[T any](name string, keyType KeyType, get func(T) any) OrderingKey[T] {
	return OrderingKey[T]{
		kind:    keyKindField,
		name:    name,
		keyType: keyType,
		get:     get,
	}
}

// CustomKey declares a key computed by a select expression. The expression
// is used verbatim in ORDER BY and seek predicates (falling back to the name
// when empty), and format produces the cursor representation directly.
// Custom keys decode as text unless As is applied.
//
// IMPORTANT:
// The select expression is not sanitized. Never build it from user input.
func CustomKey[T any](name, selectExpr string, format func(T) string) OrderingKey[T] {
	return OrderingKey[T]{
		kind:       keyKindCustom,
		name:       name,
		selectExpr: selectExpr,
		keyType:    KeyTypeText,
		format:     format,
	}
}

// As returns a copy of the key with the given decode type.
func (k OrderingKey[T]) As(keyType KeyType) OrderingKey[T] {
	k.keyType = keyType
	return k
}

// Name returns the key name used inside cursors.
func (k OrderingKey[T]) Name() string {
	return k.name
}

// Type returns the declared key type.
func (k OrderingKey[T]) Type() KeyType {
	return k.keyType
}

// IsCustom reports whether the key was declared with CustomKey.
func (k OrderingKey[T]) IsCustom() bool {
	return k.kind == keyKindCustom
}

// column returns the SQL column (or expression) the key compares against.
func (k OrderingKey[T]) column(alias string) string {
	if k.kind == keyKindCustom && k.selectExpr != "" {
		return k.selectExpr
	}

	if alias == "" || strings.Contains(k.name, ".") {
		return k.name
	}

	return alias + "." + k.name
}

// serialize returns the cursor representation of the key's value in record.
// The boolean result is false when the record holds no value for the key.
func (k OrderingKey[T]) serialize(record T) (string, bool, error) {
	if k.kind == keyKindCustom {
		if k.format == nil {
			return "", false, fmt.Errorf("custom key '%s' has no format function", k.name)
		}

		return k.format(record), true, nil
	}

	if k.get == nil {
		return "", false, fmt.Errorf("key '%s' has no getter", k.name)
	}

	raw, err := serializeValue(k.keyType, k.get(record))
	if err != nil {
		return "", false, fmt.Errorf("key '%s': %w", k.name, err)
	}

	return raw.value, raw.present, nil
}

func (k OrderingKey[T]) validate() error {
	if k.name == "" {
		return fmt.Errorf("ordering key name is empty")
	}

	if k.kind == keyKindField {
		if k.get == nil {
			return fmt.Errorf("key '%s' has no getter", k.name)
		}

		return validateColumnName(k.name)
	}

	if k.format == nil {
		return fmt.Errorf("custom key '%s' has no format function", k.name)
	}

	return nil
}

type serializedValue struct {
	value   string
	present bool
}

// serializeValue converts v to its cursor representation according to keyType.
func serializeValue(keyType KeyType, v any) (serializedValue, error) {
	v, err := indirectValue(v)
	if err != nil {
		return serializedValue{}, err
	}
	if v == nil {
		return serializedValue{}, nil
	}

	var s string
	switch keyType {
	case KeyTypeNumeric:
		s, err = formatNumeric(v)
	case KeyTypeBool:
		b, ok := v.(bool)
		if !ok {
			return serializedValue{}, fmt.Errorf("cannot serialize %T as %s", v, keyType)
		}
		s = strconv.FormatBool(b)
	case KeyTypeTime:
		t, ok := v.(time.Time)
		if !ok {
			return serializedValue{}, fmt.Errorf("cannot serialize %T as %s", v, keyType)
		}
		s = formatTime(t)
	default:
		s = formatText(v)
	}
	if err != nil {
		return serializedValue{}, err
	}

	return serializedValue{value: s, present: true}, nil
}

// indirectValue unwraps pointers and driver.Valuer implementations (sql.NullInt64
// and friends). A nil pointer or a NULL valuer yields nil.
func indirectValue(v any) (any, error) {
	if valuer, ok := v.(driver.Valuer); ok {
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil, nil
		}
		dv, err := valuer.Value()
		if err != nil {
			return nil, fmt.Errorf("cannot read driver value: %w", err)
		}

		return dv, nil
	}

	rv := reflect.ValueOf(v)
	for rv.IsValid() && rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil, nil
	}

	return rv.Interface(), nil
}

func formatNumeric(v any) (string, error) {
	switch n := v.(type) {
	case int:
		return strconv.FormatInt(int64(n), 10), nil
	case int8:
		return strconv.FormatInt(int64(n), 10), nil
	case int16:
		return strconv.FormatInt(int64(n), 10), nil
	case int32:
		return strconv.FormatInt(int64(n), 10), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case uint:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint64:
		return strconv.FormatUint(n, 10), nil
	case float32:
		// Widened first, so the cursor holds the value the column compares as.
		return strconv.FormatFloat(float64(n), 'f', -1, 64), nil
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64), nil
	case string:
		// Decimal columns are commonly scanned into strings.
		if _, err := strconv.ParseFloat(n, 64); err != nil {
			return "", fmt.Errorf("cannot serialize '%s' as %s", n, KeyTypeNumeric)
		}
		return n, nil
	default:
		return "", fmt.Errorf("cannot serialize %T as %s", v, KeyTypeNumeric)
	}
}

func formatText(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}

// deserializeValue parses a cursor representation back into a typed value.
func deserializeValue(keyType KeyType, raw string) (any, error) {
	switch keyType {
	case KeyTypeNumeric:
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return i, nil
		}
		if u, err := strconv.ParseUint(raw, 10, 64); err == nil {
			return u, nil
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("'%s' is not numeric", raw)
		}
		return f, nil
	case KeyTypeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("'%s' is not a bool", raw)
		}
		return b, nil
	case KeyTypeTime:
		t, err := parseTime(raw)
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return raw, nil
	}
}

// formatTime keeps the whole time.Time range, which UnixNano does not.
func formatTime(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10) + "." + fmt.Sprintf("%09d", t.Nanosecond())
}

func parseTime(raw string) (time.Time, error) {
	secRaw, nsecRaw, ok := strings.Cut(raw, ".")
	if !ok || len(nsecRaw) != 9 {
		return time.Time{}, fmt.Errorf("'%s' is not a unix timestamp", raw)
	}

	sec, err := strconv.ParseInt(secRaw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("'%s' is not a unix timestamp", raw)
	}
	nsec, err := strconv.ParseUint(nsecRaw, 10, 32)
	if err != nil {
		return time.Time{}, fmt.Errorf("'%s' is not a unix timestamp", raw)
	}

	return time.Unix(sec, int64(nsec)).UTC(), nil
}

// TypeRegistry maps cursor key names to their declared types. Names missing
// from the registry are treated as text.
type TypeRegistry map[string]KeyType

// RegistryOf builds a TypeRegistry from the declared keys.
func RegistryOf[T any](keys ...OrderingKey[T]) TypeRegistry {
	ret := make(TypeRegistry, len(keys))
	for _, k := range keys {
		ret[k.name] = k.keyType
	}

	return ret
}

func (r TypeRegistry) lookup(name string) KeyType {
	if t, ok := r[name]; ok {
		return t
	}

	return KeyTypeText
}
