package config

import (
	"github.com/spf13/viper"
)

// DefaultRuntimeImportPath is the import path of the hooks runtime shipped
// with this module.
const DefaultRuntimeImportPath = "github.com/teranos/qntx-hooks/hooks"

// DefaultFileSuffix names generated files, e.g. car_hooks.go.
const DefaultFileSuffix = "_hooks.go"

// DefaultDirPermissions for the user config directory
const DefaultDirPermissions = 0750

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("runtime.import_path", DefaultRuntimeImportPath)

	v.SetDefault("output.file_suffix", DefaultFileSuffix)

	v.SetDefault("generate.parallelism", 4)
	v.SetDefault("generate.tests", false)

	v.SetDefault("watch.debounce_ms", 300)

	v.SetDefault("log.json", false)
	v.SetDefault("log.theme", "everforest")
}

// Default returns the configuration with every default applied and no
// files or environment consulted.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// Defaults always decode
		panic(err)
	}
	return cfg
}
