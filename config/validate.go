package config

import (
	"strings"

	"golang.org/x/mod/module"

	"github.com/teranos/qntx-hooks/errors"
)

var themes = map[string]bool{"everforest": true, "gruvbox": true}

// Validate checks that the configuration is valid. Failures wrap
// errors.ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Runtime.ImportPath == "" {
		return errors.Wrap(errors.ErrInvalidConfig, "runtime.import_path cannot be empty")
	}
	if err := module.CheckImportPath(c.Runtime.ImportPath); err != nil {
		return errors.Wrapf(errors.Mark(err, errors.ErrInvalidConfig), "runtime.import_path")
	}

	if !strings.HasSuffix(c.Output.FileSuffix, ".go") {
		return errors.Wrapf(errors.ErrInvalidConfig, "output.file_suffix must end in .go, got %q", c.Output.FileSuffix)
	}
	if strings.HasSuffix(c.Output.FileSuffix, "_test.go") {
		return errors.WithHint(
			errors.Wrapf(errors.ErrInvalidConfig, "output.file_suffix %q would produce test files", c.Output.FileSuffix),
			"generated hooks must be visible to non-test code",
		)
	}
	if strings.ContainsAny(c.Output.FileSuffix, `/\`) {
		return errors.Wrapf(errors.ErrInvalidConfig, "output.file_suffix cannot contain a path separator, got %q", c.Output.FileSuffix)
	}

	if c.Generate.Parallelism < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "generate.parallelism must be >= 1, got %d", c.Generate.Parallelism)
	}

	// 0 = regenerate on every event
	if c.Watch.DebounceMS < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	if !themes[c.Log.Theme] {
		return errors.Wrapf(errors.ErrInvalidConfig, "log.theme must be everforest or gruvbox, got %q", c.Log.Theme)
	}

	return nil
}
