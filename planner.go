package gokeyset

// windowPlan describes how a single page is fetched.
type windowPlan struct {
	// operator compares ordering keys against the active cursor.
	operator Operator
	// direction is the effective ORDER BY direction of the fetch.
	direction Direction
	// backward is set for pure backward traversal: the fetched rows come in
	// flipped order and must be reversed before being returned.
	backward bool
}

// planWindow picks the seek operator and the effective sort direction.
//
//	after | before | declared | operator | fetch order
//	------+--------+----------+----------+------------
//	  yes |   -    |   ASC    |    >     |   ASC
//	  yes |   -    |   DESC   |    <     |   DESC
//	   -  |  yes   |   ASC    |    <     |   DESC (reversed after fetch)
//	   -  |  yes   |   DESC   |    >     |   ASC  (reversed after fetch)
//	   -  |   -    |   any    |    =     |   declared (no predicate)
//
// The after cursor wins when both are set.
func planWindow(declared Direction, hasAfter, hasBefore bool) windowPlan {
	switch {
	case hasAfter:
		return windowPlan{
			operator:  declared.ForOperator(),
			direction: declared,
		}
	case hasBefore:
		flipped := declared.Flip()
		return windowPlan{
			operator:  flipped.ForOperator(),
			direction: flipped,
			backward:  true,
		}
	default:
		return windowPlan{
			operator:  OperatorEq,
			direction: declared,
		}
	}
}
