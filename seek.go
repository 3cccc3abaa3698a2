package gokeyset

// seekColumn is an ordering key reduced to what the predicate needs.
type seekColumn struct {
	name   string
	column string
}

// buildSeekPredicate builds the predicate selecting rows strictly beyond the
// cursor position for the given operator.
//
// When the ordering consists of the unique key only, every key becomes
// "column op value" (or "column IS NOT NULL" if the cursor holds no value).
//
// Otherwise, with K the non-unique keys and U the unique key:
//
//	(K1 op v1 AND ... AND Kn op vn)
//	OR
//	(K1 = v1 AND ... AND Kn = vn AND U op u)
//
// where absent cursor values turn "op" into IS NOT NULL and "=" into IS NULL.
//
// IMPORTANT:
// All non-unique keys share one operator in the first disjunct. With three or
// more non-unique keys this is not a full lexicographic seek: rows advancing
// on one key while tied on another are skipped.
func buildSeekPredicate(keys []seekColumn, unique seekColumn, op Operator, param CursorParam) Predicate {
	nonUnique := make([]seekColumn, 0, len(keys))
	for _, k := range keys {
		if k.name != unique.name {
			nonUnique = append(nonUnique, k)
		}
	}

	if len(nonUnique) == 0 {
		if len(keys) == 0 {
			keys = []seekColumn{unique}
		}

		only := make(tDisjunct, 0, len(keys))
		for _, k := range keys {
			only = append(only, seekConjunct(k, op, operatorIsNotNull, param))
		}

		return Predicate{dnf: tDNF{only}}
	}

	advance := make(tDisjunct, 0, len(nonUnique))
	tieBreak := make(tDisjunct, 0, len(nonUnique)+1)
	for _, k := range nonUnique {
		advance = append(advance, seekConjunct(k, op, operatorIsNotNull, param))
		tieBreak = append(tieBreak, seekConjunct(k, OperatorEq, operatorIsNull, param))
	}
	tieBreak = append(tieBreak, seekConjunct(unique, op, operatorIsNotNull, param))

	return Predicate{dnf: tDNF{advance, tieBreak}}
}

// seekConjunct compares the key's column with the cursor value, or falls back
// to the given NULL check when the cursor holds no value for the key.
func seekConjunct(k seekColumn, op, absent Operator, param CursorParam) tConjunct {
	value, ok := param[k.name]
	if !ok || value == nil {
		return tConjunct{Column: k.column, Operator: absent}
	}

	return tConjunct{Column: k.column, Operator: op, Value: value}
}
