package gokeyset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_SelectKeys(t *testing.T) {
	available := []OrderingKey[tScore]{_scoreIDKey, _scoreKey, _scoreNameKey}

	tests := []struct {
		name    string
		in      []string
		want    []string
		wantErr string
	}{
		{"empty selection", nil, []string{}, ""},
		{"keeps requested order", []string{"name", " score "}, []string{"name", "score"}, ""},
		{"unknown key suggests closest", []string{"scroe"}, nil, "closest: 'score'"},
		{"duplicate key", []string{"name", "name"}, nil, "selected twice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectKeys(tt.in, available...)
			if tt.wantErr != "" {
				require.ErrorIs(t, err, ErrInvalidConfig)
				require.ErrorContains(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			names := make([]string, 0, len(got))
			for _, k := range got {
				names = append(names, k.Name())
			}
			require.Equal(t, tt.want, names)
		})
	}
}
