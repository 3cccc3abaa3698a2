package gokeyset

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func Test_LoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    Config
		wantErr bool
	}{
		{
			name: "empty config falls back to defaults",
			yaml: "",
			want: DefaultConfig(),
		},
		{
			name: "full section",
			yaml: "pagination:\n  default_limit: 20\n  max_limit: 200\n  default_order: asc\n",
			want: Config{DefaultLimit: 20, MaxLimit: 200, DefaultOrder: DirectionASC},
		},
		{
			name: "partial section",
			yaml: "pagination:\n  default_limit: 5\n",
			want: Config{DefaultLimit: 5, MaxLimit: MaxLimit, DefaultOrder: DirectionDESC},
		},
		{
			name:    "invalid order",
			yaml:    "pagination:\n  default_order: sideways\n",
			wantErr: true,
		},
		{
			name:    "default above max",
			yaml:    "pagination:\n  default_limit: 50\n  max_limit: 10\n",
			wantErr: true,
		},
		{
			name:    "non-positive max",
			yaml:    "pagination:\n  max_limit: 0\n",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.SetConfigType("yaml")
			require.NoError(t, v.ReadConfig(strings.NewReader(tt.yaml)))

			got, err := LoadConfig(v)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidConfig)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func Test_LoadConfig_Set(t *testing.T) {
	v := viper.New()
	v.Set(ConfigKeyMaxLimit, 30)
	v.Set(ConfigKeyDefaultLimit, 30)

	got, err := LoadConfig(v)
	require.NoError(t, err)
	require.Equal(t, Config{DefaultLimit: 30, MaxLimit: 30, DefaultOrder: DirectionDESC}, got)
}

func Test_LoadConfig_Nil(t *testing.T) {
	got, err := LoadConfig(nil)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), got)
}

func Test_Config_normalizeLimit(t *testing.T) {
	cfg := Config{DefaultLimit: 10, MaxLimit: 25, DefaultOrder: DirectionASC}

	require.Equal(t, 10, cfg.normalizeLimit(0))
	require.Equal(t, 10, cfg.normalizeLimit(-4))
	require.Equal(t, 7, cfg.normalizeLimit(7))
	require.Equal(t, 25, cfg.normalizeLimit(26))
}
