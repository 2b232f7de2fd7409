// Package config loads hookgen settings from hookgen.toml files and the
// environment.
//
// Precedence (lowest to highest): defaults < user config
// (~/.config/hookgen/hookgen.toml) < project config (hookgen.toml found by
// walking up from the working directory) < HOOKGEN_* environment variables.
package config

// FileName is the project configuration file searched for upward from the
// working directory.
const FileName = "hookgen.toml"

// EnvPrefix prefixes environment overrides, e.g. HOOKGEN_GENERATE_PARALLELISM.
const EnvPrefix = "HOOKGEN"

// Config is the complete hookgen configuration.
type Config struct {
	Runtime  RuntimeConfig  `mapstructure:"runtime" toml:"runtime"`
	Output   OutputConfig   `mapstructure:"output" toml:"output"`
	Generate GenerateConfig `mapstructure:"generate" toml:"generate"`
	Watch    WatchConfig    `mapstructure:"watch" toml:"watch"`
	Log      LogConfig      `mapstructure:"log" toml:"log"`
}

// RuntimeConfig locates the hook runtime package that declarations reference.
type RuntimeConfig struct {
	// ImportPath of the runtime package; a declaration denotes a hook only
	// when its type qualifier resolves to this path.
	ImportPath string `mapstructure:"import_path" toml:"import_path"`
}

// OutputConfig controls generated file naming.
type OutputConfig struct {
	FileSuffix string `mapstructure:"file_suffix" toml:"file_suffix"` // appended to the snake_case container name
}

// GenerateConfig controls the generation pipeline.
type GenerateConfig struct {
	Parallelism int  `mapstructure:"parallelism" toml:"parallelism"` // packages generated concurrently
	Tests       bool `mapstructure:"tests" toml:"tests"`             // also scan _test.go files
}

// WatchConfig controls hookgen watch.
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms"`
}

// LogConfig controls console logging.
type LogConfig struct {
	JSON  bool   `mapstructure:"json" toml:"json"`
	Theme string `mapstructure:"theme" toml:"theme"`
}
