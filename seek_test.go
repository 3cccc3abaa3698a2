package gokeyset

import (
	"database/sql/driver"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_buildSeekPredicate(t *testing.T) {
	id := seekColumn{name: "id", column: "u.id"}
	score := seekColumn{name: "score", column: "u.score"}
	name := seekColumn{name: "name", column: "u.name"}

	tests := []struct {
		name     string
		keys     []seekColumn
		op       Operator
		param    CursorParam
		wantSQL  string
		wantVals []driver.Value
	}{
		{
			name:     "unique key only",
			keys:     []seekColumn{id},
			op:       OperatorGT,
			param:    CursorParam{"id": int64(5)},
			wantSQL:  "((u.id > ?))",
			wantVals: []driver.Value{int64(5)},
		},
		{
			name:     "no ordering keys falls back to unique key",
			keys:     nil,
			op:       OperatorLT,
			param:    CursorParam{"id": int64(5)},
			wantSQL:  "((u.id < ?))",
			wantVals: []driver.Value{int64(5)},
		},
		{
			name:    "unique key only without cursor value",
			keys:    []seekColumn{id},
			op:      OperatorGT,
			param:   CursorParam{},
			wantSQL: "((u.id IS NOT NULL))",
		},
		{
			name:     "one ordering key",
			keys:     []seekColumn{score},
			op:       OperatorLT,
			param:    CursorParam{"score": int64(10), "id": int64(1)},
			wantSQL:  "((u.score < ?) OR (u.score = ? AND u.id < ?))",
			wantVals: []driver.Value{int64(10), int64(10), int64(1)},
		},
		{
			name:     "unique key among ordering keys is excluded from the strict clause",
			keys:     []seekColumn{score, id},
			op:       OperatorGT,
			param:    CursorParam{"score": int64(10), "id": int64(1)},
			wantSQL:  "((u.score > ?) OR (u.score = ? AND u.id > ?))",
			wantVals: []driver.Value{int64(10), int64(10), int64(1)},
		},
		{
			name:     "null ordering value",
			keys:     []seekColumn{score},
			op:       OperatorGT,
			param:    CursorParam{"id": int64(4)},
			wantSQL:  "((u.score IS NOT NULL) OR (u.score IS NULL AND u.id > ?))",
			wantVals: []driver.Value{int64(4)},
		},
		{
			name:    "missing unique value",
			keys:    []seekColumn{score},
			op:      OperatorGT,
			param:   CursorParam{"score": int64(3)},
			wantSQL: "((u.score > ?) OR (u.score = ? AND u.id IS NOT NULL))",
			wantVals: []driver.Value{
				int64(3), int64(3),
			},
		},
		{
			name:     "two ordering keys share one operator",
			keys:     []seekColumn{score, name},
			op:       OperatorLT,
			param:    CursorParam{"score": int64(10), "name": "bob", "id": int64(8)},
			wantSQL:  "((u.score < ? AND u.name < ?) OR (u.score = ? AND u.name = ? AND u.id < ?))",
			wantVals: []driver.Value{int64(10), "bob", int64(10), "bob", int64(8)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := buildSeekPredicate(tt.keys, id, tt.op, tt.param)
			gotSQL, gotVals := p.ToSQL()

			require.Equal(t, tt.wantSQL, gotSQL)
			require.Equal(t, len(tt.wantVals), len(gotVals))
			for i := range tt.wantVals {
				require.Equal(t, tt.wantVals[i], gotVals[i])
			}
		})
	}
}
