package gokeyset

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config keys read by LoadConfig.
const (
	ConfigKeyDefaultLimit = "pagination.default_limit"
	ConfigKeyMaxLimit     = "pagination.max_limit"
	ConfigKeyDefaultOrder = "pagination.default_order"
)

// Config holds the paginator defaults.
type Config struct {
	// DefaultLimit is used when no positive limit is requested.
	DefaultLimit int
	// MaxLimit caps any requested limit.
	MaxLimit int
	// DefaultOrder is the declared order when none is set.
	DefaultOrder Direction
}

// DefaultConfig returns limit 100, max limit 1000 and descending order.
func DefaultConfig() Config {
	return Config{
		DefaultLimit: DefaultLimit,
		MaxLimit:     MaxLimit,
		DefaultOrder: DirectionDESC,
	}
}

// LoadConfig reads the pagination section from v, falling back to
// DefaultConfig for missing keys. A nil v yields the defaults.
//
// Example YAML:
//
//	pagination:
//	  default_limit: 20
//	  max_limit: 200
//	  default_order: asc
func LoadConfig(v *viper.Viper) (Config, error) {
	def := DefaultConfig()
	if v == nil {
		return def, nil
	}

	v.SetDefault(ConfigKeyDefaultLimit, def.DefaultLimit)
	v.SetDefault(ConfigKeyMaxLimit, def.MaxLimit)
	v.SetDefault(ConfigKeyDefaultOrder, string(def.DefaultOrder))

	order, err := ParseDirection(v.GetString(ConfigKeyDefaultOrder))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, ConfigKeyDefaultOrder, err)
	}

	cfg := Config{
		DefaultLimit: v.GetInt(ConfigKeyDefaultLimit),
		MaxLimit:     v.GetInt(ConfigKeyMaxLimit),
		DefaultOrder: order,
	}

	if err = cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.MaxLimit <= 0 {
		return fmt.Errorf("max limit must be positive, got %d", c.MaxLimit)
	}

	if c.DefaultLimit <= 0 || c.DefaultLimit > c.MaxLimit {
		return fmt.Errorf("default limit must be in [1, %d], got %d", c.MaxLimit, c.DefaultLimit)
	}

	if !c.DefaultOrder.Valid() {
		return fmt.Errorf("invalid default order '%s'", c.DefaultOrder)
	}

	return nil
}

// normalizeLimit applies the config bounds to a requested limit.
func (c Config) normalizeLimit(limit int) int {
	ret, _ := IsNormalizedLimit(limit, c.DefaultLimit, c.MaxLimit)
	return ret
}
