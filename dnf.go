package gokeyset

import (
	"cmp"
	"database/sql/driver"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/samber/lo"
	"gorm.io/gorm/clause"
)

type (
	tConjunct struct {
		Column   string
		Value    any
		Operator Operator
	}

	tDisjunct []tConjunct

	// tDNF represents the disjunctive normal form (DNF) of a logical expression.
	// Each disjunct is joined by OR, and each disjunct consists of a list of
	// conjuncts which are joined by AND. A conjunct is the value of
	// Operator(Column, Value), or a unary NULL check on Column.
	//
	// Thus:
	//
	//	DNF = X1 OR X2 ... OR Xn, where Xi = Ai1 AND Ai2 ... AND Aim.
	//	DNF = (A11 AND A12 AND A13) OR (A21 AND A22 AND A23), for n=2, m=3.
	//
	//  Where (A11 AND A12 AND A13), (A21 AND A22 AND A23) are disjuncts and
	//  A11, A12, A13, A21, A22, A23 are conjuncts.
	tDNF []tDisjunct
)

// Predicate is a seek predicate selecting the rows strictly beyond a cursor
// position. The zero value is the empty predicate which matches every row.
type Predicate struct {
	dnf tDNF
}

// IsEmpty reports whether the predicate has no conditions.
func (p Predicate) IsEmpty() bool {
	return len(p.dnf) == 0
}

// ToGORMExpression converts the predicate into a gorm clause expression. It
// returns nil for the empty predicate.
func (p Predicate) ToGORMExpression() clause.Expression {
	return p.dnf.toGORMExpression()
}

// ToSQL returns the predicate as an SQL condition with "?" placeholders and
// the values for them.
//
// Usage:
//
//	where, args := p.ToSQL()
//	query := fmt.Sprintf("SELECT * FROM table WHERE %s", where)
func (p Predicate) ToSQL() (string, []driver.Value) {
	return p.dnf.toSQLClause()
}

// Match evaluates the predicate in memory. The value function returns a
// row's value for a column; nil stands for NULL. Comparisons against NULL
// are false, as in SQL.
func (p Predicate) Match(value func(column string) any) bool {
	if p.IsEmpty() {
		return true
	}

	return lo.SomeBy(p.dnf, func(d tDisjunct) bool {
		return d.match(value)
	})
}

// toGORMExpression converts a conjunct of the form Operator(Column, Value)
// into an SQL condition "Column Operator Value" represented as a clause.Expression.
//
// IMPORTANT: The method uses the SQL placeholder "?".
//
// Example:
//
//	tConjunct = { Column: "id", Operator: ">", Value: "123"}
//
// Result:
//
//	"id > 123"
func (c tConjunct) toGORMExpression() clause.Expression {
	sqlClause, args := c.toSQLClause()

	return clause.Expr{
		SQL:  sqlClause,
		Vars: lo.Map(args, func(v driver.Value, _ int) any { return v }),
	}
}

// toSQLClause converts a conjunct to an SQL condition of the form
// "Column Operator ?" with a corresponding value, or "Column IS [NOT] NULL"
// without values.
//
// Example:
//
//	tConjunct = { Column: "id", Operator: ">", Value: 123}
//
// Result:
//
//	("id > ?", [123])
func (c tConjunct) toSQLClause() (string, []driver.Value) {
	if c.Operator.unary() {
		return fmt.Sprintf("%s %s", c.Column, c.Operator), nil
	}

	return fmt.Sprintf("%s %s ?", c.Column, c.Operator), []driver.Value{c.Value}
}

func (c tConjunct) match(value func(column string) any) bool {
	v, err := indirectValue(value(c.Column))
	if err != nil {
		return false
	}

	switch c.Operator {
	case operatorIsNull:
		return v == nil
	case operatorIsNotNull:
		return v != nil
	}

	if v == nil || c.Value == nil {
		return false
	}

	res, ok := compareValues(v, c.Value)
	if !ok {
		return false
	}

	return c.Operator.holds(res)
}

// toGORMExpression converts a disjunct (K1, K2, K3) into a gorm expression
// "K1 AND K2 AND K3" where each Ki is expanded via tConjunct.toGORMExpression.
func (d tDisjunct) toGORMExpression() clause.Expression {
	andExpressions := make([]clause.Expression, 0, len(d))
	for _, conjunct := range d {
		andExpressions = append(andExpressions, conjunct.toGORMExpression())
	}

	if len(andExpressions) == 1 {
		return andExpressions[0]
	} else if len(andExpressions) > 1 {
		return clause.And(andExpressions...)
	}

	return nil
}

// toSQLClause converts a disjunct (K1, K2, K3) into an SQL condition
// "(K1 AND K2 AND K3)" with corresponding values. Returns the SQL string and
// the list of values for placeholders.
//
// Example:
//
//	tDisjunct = {
//		{Column: "score", Operator: "=", Value: 5},
//		{Column: "id", Operator: "<", Value: 7}
//	}
//
// Result:
//
//	("(score = ? AND id < ?)", [5, 7])
func (d tDisjunct) toSQLClause() (string, []driver.Value) {
	andClauses := make([]string, 0, len(d))
	andValues := make([]driver.Value, 0, len(d))

	for _, conjunct := range d {
		andClause, values := conjunct.toSQLClause()
		andClauses = append(andClauses, andClause)
		andValues = append(andValues, values...)
	}

	if len(andClauses) >= 1 {
		return fmt.Sprintf("(%s)", strings.Join(andClauses, " AND ")), andValues
	}

	return "", nil
}

func (d tDisjunct) match(value func(column string) any) bool {
	if len(d) == 0 {
		return false
	}

	return lo.EveryBy(d, func(c tConjunct) bool {
		return c.match(value)
	})
}

// toGORMExpression converts a DNF (tDNF) into a clause.Expression.
// For each disjunct it calls tDisjunct.toGORMExpression and joins disjuncts with OR.
func (d tDNF) toGORMExpression() clause.Expression {
	orExpressions := make([]clause.Expression, 0, len(d))

	for _, disjunct := range d {
		andExpressions := disjunct.toGORMExpression()
		if andExpressions == nil {
			continue
		}

		orExpressions = append(orExpressions, andExpressions)
	}

	if len(orExpressions) == 1 {
		return orExpressions[0]
	} else if len(orExpressions) > 1 {
		return clause.Or(orExpressions...)
	}

	return nil
}

// toSQLClause converts a DNF (tDNF) into an SQL condition. For each disjunct it
// calls tDisjunct.toSQLClause and joins disjuncts with OR. Returns the SQL
// string and the list of values for placeholders.
//
// Example:
//
//	tDNF = {
//		{{Column: "score", Operator: "<", Value: 10}},
//		{{Column: "score", Operator: "=", Value: 10}, {Column: "id", Operator: "<", Value: 2}},
//	}
//
// Result:
//
//	("((score < ?) OR (score = ? AND id < ?))", [10, 10, 2])
func (d tDNF) toSQLClause() (string, []driver.Value) {
	orClauses := make([]string, 0, len(d))
	values := make([]driver.Value, 0, len(d))

	for _, disjunct := range d {
		orClause, orValues := disjunct.toSQLClause()
		if orClause == "" {
			continue
		}

		orClauses = append(orClauses, orClause)
		values = append(values, orValues...)
	}

	if len(orClauses) >= 1 {
		return fmt.Sprintf("(%s)", strings.Join(orClauses, " OR ")), values
	}

	return "TRUE", nil
}

// compareValues orders two non-NULL values of compatible types. The boolean
// result is false when the values cannot be compared.
func compareValues(a, b any) (int, bool) {
	if res, ok := compareIntegers(a, b); ok {
		return res, true
	}

	if af, ok := asFloat64(a); ok {
		if bf, ok := asFloat64(b); ok {
			return cmp.Compare(af, bf), true
		}
		return 0, false
	}

	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv), true
		}
	case []byte:
		if bv, ok := b.(string); ok {
			return strings.Compare(string(av), bv), true
		}
	case bool:
		if bv, ok := b.(bool); ok {
			return cmp.Compare(lo.Ternary(av, 1, 0), lo.Ternary(bv, 1, 0)), true
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv), true
		}
	}

	return 0, false
}

// compareIntegers compares exactly across signed and unsigned integers,
// including unsigned values above math.MaxInt64.
func compareIntegers(a, b any) (int, bool) {
	ai, aInt := asInt64(a)
	bi, bInt := asInt64(b)
	au, aBig := asBigUint64(a)
	bu, bBig := asBigUint64(b)

	switch {
	case aInt && bInt:
		return cmp.Compare(ai, bi), true
	case aBig && bBig:
		return cmp.Compare(au, bu), true
	case aBig && bInt:
		return 1, true
	case aInt && bBig:
		return -1, true
	default:
		return 0, false
	}
}

// asBigUint64 reports unsigned values that do not fit into int64.
func asBigUint64(v any) (uint64, bool) {
	switch n := v.(type) {
	case uint:
		return uint64(n), uint64(n) > math.MaxInt64
	case uint64:
		return n, n > math.MaxInt64
	default:
		return 0, false
	}
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), uint64(n) <= math.MaxInt64
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), n <= math.MaxInt64
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	if i, ok := asInt64(v); ok {
		return float64(i), true
	}

	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
