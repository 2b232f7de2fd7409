package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/qntx-hooks/errors"
)

var globalConfig *Config
var viperInstance *viper.Viper
var loadedFiles []string

// Load reads the hookgen configuration using Viper. The result is cached
// until Reset.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	cfg, err := LoadWithViper(initViper())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	globalConfig = cfg
	return globalConfig, nil
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path. Environment
// variables are not consulted.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "config file %s", configPath)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config file %s", configPath)
	}
	return cfg, nil
}

// FilesUsed returns the config files merged by the last Load, lowest
// precedence first.
func FilesUsed() []string {
	return loadedFiles
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
	loadedFiles = nil
}

// initViper initializes Viper with configuration sources and defaults
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
	mergeConfigFiles(v)

	viperInstance = v
	return v
}

// UserConfigPath returns ~/.config/hookgen/hookgen.toml, or "" when the
// home directory is unknown.
func UserConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hookgen", FileName)
}

// FindProjectConfig searches for hookgen.toml by walking up the directory
// tree from dir. Returns "" when none is found.
func FindProjectConfig(dir string) string {
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
}

// mergeConfigFiles merges configuration files in precedence order:
// user < project. Unreadable files are skipped.
func mergeConfigFiles(v *viper.Viper) {
	var configPaths []string
	if user := UserConfigPath(); user != "" {
		configPaths = append(configPaths, user)
	}
	if wd, err := os.Getwd(); err == nil {
		if project := FindProjectConfig(wd); project != "" {
			configPaths = append(configPaths, project)
		}
	}

	for _, configPath := range configPaths {
		if _, err := os.Stat(configPath); err != nil {
			continue
		}
		tempViper := viper.New()
		tempViper.SetConfigFile(configPath)
		tempViper.SetConfigType("toml")
		if err := tempViper.ReadInConfig(); err != nil {
			continue
		}
		if err := v.MergeConfigMap(tempViper.AllSettings()); err == nil {
			loadedFiles = append(loadedFiles, configPath)
		}
	}
}
