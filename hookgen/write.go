package hookgen

import (
	"bytes"
	"os"

	"go.uber.org/multierr"

	"github.com/teranos/qntx-hooks/errors"
	"github.com/teranos/qntx-hooks/logger"
)

// Write writes every rendered unit of results to disk. Files whose content
// is already current are left untouched. It returns the paths written; a
// failure to write one file does not stop the others.
func (g *Generator) Write(results []PackageResult) ([]string, error) {
	var written []string
	var errs error
	for _, pr := range results {
		for _, r := range pr.Results {
			if r.File == "" {
				continue
			}
			changed, err := writeIfChanged(r.File, r.Source)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			if changed {
				g.logger.Infow("wrote", logger.FieldContainer, r.Container.Name, logger.FieldFile, r.File)
				written = append(written, r.File)
			}
		}
	}
	return written, errs
}

func writeIfChanged(path string, src []byte) (bool, error) {
	existing, err := os.ReadFile(path)
	if err == nil && bytes.Equal(existing, src) {
		return false, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return false, errors.Wrapf(err, "failed to read %s", path)
	}
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return false, errors.Wrapf(err, "failed to write %s", path)
	}
	return true, nil
}
