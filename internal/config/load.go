package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/roach88/memtk/internal/potential"
)

// EnvPrefix is the prefix for configuration environment variables.
const EnvPrefix = "MEMTK"

func setDefaults(v *viper.Viper) {
	v.SetDefault("output.format", "text")
	v.SetDefault("output.log_level", "info")
	v.SetDefault("solver.xtol", 0.0)
	v.SetDefault("solver.max_iterations", 0)
	v.SetDefault("batch.workers", 4)
	v.SetDefault("library.dir", "")
	v.SetDefault("physics.temperature", potential.RoomTemperature)
	v.SetDefault("physics.transport_number", potential.DefaultTransportNumber)
}

// Load reads configuration from path (optional; "" skips the file) and the
// environment, then validates it.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
