package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/qntx-hooks/errors"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, DefaultRuntimeImportPath, cfg.Runtime.ImportPath)
	assert.Equal(t, "_hooks.go", cfg.Output.FileSuffix)
	assert.Equal(t, 4, cfg.Generate.Parallelism)
	assert.False(t, cfg.Generate.Tests)
	assert.Equal(t, 300, cfg.Watch.DebounceMS)
	assert.False(t, cfg.Log.JSON)
	assert.Equal(t, "everforest", cfg.Log.Theme)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
[runtime]
import_path = "example.com/myhooks"

[generate]
parallelism = 8
`), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "example.com/myhooks", cfg.Runtime.ImportPath)
	assert.Equal(t, 8, cfg.Generate.Parallelism)
	assert.Equal(t, DefaultFileSuffix, cfg.Output.FileSuffix, "unset keys keep defaults")
}

func TestLoadFromFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[generate]\nparallelism = 0\n"), 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}

func TestLoad_EnvOverride(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOOKGEN_GENERATE_PARALLELISM", "2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Generate.Parallelism)
	assert.Empty(t, FilesUsed())
}

func TestLoad_ProjectConfigSearchedUpward(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("[output]\nfile_suffix = \"_gen.go\"\n"), 0644))
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	t.Chdir(nested)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "_gen.go", cfg.Output.FileSuffix)
	require.Len(t, FilesUsed(), 1)
	assert.Equal(t, FileName, filepath.Base(FilesUsed()[0]))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty import path", func(c *Config) { c.Runtime.ImportPath = "" }},
		{"bad import path", func(c *Config) { c.Runtime.ImportPath = "has space/hooks" }},
		{"suffix not go", func(c *Config) { c.Output.FileSuffix = "_hooks.txt" }},
		{"suffix test file", func(c *Config) { c.Output.FileSuffix = "_hooks_test.go" }},
		{"suffix with separator", func(c *Config) { c.Output.FileSuffix = "gen/_hooks.go" }},
		{"zero parallelism", func(c *Config) { c.Generate.Parallelism = 0 }},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMS = -1 }},
		{"unknown theme", func(c *Config) { c.Log.Theme = "solarized" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
		})
	}
}

func TestWrite_RoundTripAndBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Generate.Tests = true
	require.NoError(t, Write(path, cfg))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	cfg.Watch.DebounceMS = 50
	require.NoError(t, Write(path, cfg))
	assert.FileExists(t, path+".back1")

	backup, err := LoadFromFile(path + ".back1")
	require.NoError(t, err)
	assert.Equal(t, 300, backup.Watch.DebounceMS)
}

func TestWrite_RejectsInvalid(t *testing.T) {
	cfg := Default()
	cfg.Generate.Parallelism = -1

	path := filepath.Join(t.TempDir(), FileName)
	require.Error(t, Write(path, cfg))
	assert.NoFileExists(t, path)
}
