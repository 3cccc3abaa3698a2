package gokeyset

// Operator defines a comparison operator for filtering by column.
// Used in seek predicate conditions.
type Operator string

// unary reports whether the operator takes no value.
func (o Operator) unary() bool {
	return o == operatorIsNull || o == operatorIsNotNull
}

// holds applies the operator to the result of comparing a column value with
// the condition value (-1, 0, 1).
func (o Operator) holds(cmp int) bool {
	switch o {
	case OperatorGT:
		return cmp > 0
	case OperatorLT:
		return cmp < 0
	case OperatorEq:
		return cmp == 0
	default:
		return false
	}
}

const (
	OperatorGT Operator = ">"
	OperatorLT Operator = "<"

	// OperatorEq is the planner's no-op operator used when no cursor is set.
	// It also builds the equality half of the tie-break clause.
	OperatorEq Operator = "="

	// operatorIsNull and operatorIsNotNull are private because we use them
	// ONLY while building filtering conditions for absent cursor values.
	operatorIsNull    Operator = "IS NULL"
	operatorIsNotNull Operator = "IS NOT NULL"
)
