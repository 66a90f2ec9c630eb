// Package config loads memtk settings from an optional YAML file and
// MEMTK_* environment variables.
//
// Precedence, highest first: environment, config file, defaults. Nested keys
// map to variables by upper-casing and replacing dots with underscores, so
// batch.workers is MEMTK_BATCH_WORKERS. The result is checked with struct
// validation tags before it is returned.
package config
