package config

import (
	"github.com/roach88/memtk/internal/donnan"
	"github.com/roach88/memtk/internal/potential"
)

// Config holds all memtk configuration.
type Config struct {
	Output  OutputConfig  `mapstructure:"output" validate:"required"`
	Solver  SolverConfig  `mapstructure:"solver"`
	Batch   BatchConfig   `mapstructure:"batch" validate:"required"`
	Library LibraryConfig `mapstructure:"library"`
	Physics PhysicsConfig `mapstructure:"physics" validate:"required"`
}

// OutputConfig controls CLI output.
type OutputConfig struct {
	Format   string `mapstructure:"format" validate:"required,oneof=text json"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// SolverConfig tunes the Donnan root finder. Zero values use its defaults.
type SolverConfig struct {
	XTol          float64 `mapstructure:"xtol" validate:"gte=0"`
	MaxIterations int     `mapstructure:"max_iterations" validate:"gte=0,lte=10000"`
}

// Solver returns the configured donnan.Solver.
func (c SolverConfig) Solver() donnan.Solver {
	return donnan.Solver{XTol: c.XTol, MaxIterations: c.MaxIterations}
}

// BatchConfig controls the batch runner.
type BatchConfig struct {
	Workers int `mapstructure:"workers" validate:"required,gt=0,lte=256"`
}

// LibraryConfig locates the membrane preset library.
type LibraryConfig struct {
	Dir string `mapstructure:"dir"`
}

// PhysicsConfig holds defaults for physical inputs not given on the command
// line or in a case.
type PhysicsConfig struct {
	// Temperature in K.
	Temperature float64 `mapstructure:"temperature" validate:"required,gt=0"`

	// TransportNumber is the default counter-ion transport number.
	TransportNumber float64 `mapstructure:"transport_number" validate:"gte=0,lt=1"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		Output: OutputConfig{Format: "text", LogLevel: "info"},
		Batch:  BatchConfig{Workers: 4},
		Physics: PhysicsConfig{
			Temperature:     potential.RoomTemperature,
			TransportNumber: potential.DefaultTransportNumber,
		},
	}
}
