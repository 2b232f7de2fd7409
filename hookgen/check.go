package hookgen

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teranos/qntx-hooks/errors"
	"github.com/teranos/qntx-hooks/hookgen/assemble"
	"github.com/teranos/qntx-hooks/hookgen/golang"
)

// DriftKind classifies a generated file that does not match its
// declarations.
type DriftKind int

const (
	// DriftStale: the file exists but differs from what would be generated.
	DriftStale DriftKind = iota
	// DriftMissing: a container has hooks but no generated file.
	DriftMissing
	// DriftOrphaned: a hookgen file whose container is gone.
	DriftOrphaned
)

func (k DriftKind) String() string {
	switch k {
	case DriftStale:
		return "stale"
	case DriftMissing:
		return "missing"
	case DriftOrphaned:
		return "orphaned"
	default:
		return "unknown"
	}
}

// Drift is one generated file out of date.
type Drift struct {
	Kind      DriftKind
	File      string
	Container string
}

// Check compares results with the files on disk without writing anything.
// The error wraps errors.ErrStale when any drift is found.
//
// Containers with diagnostics are not checked: their file is neither stale
// nor orphaned until the declarations are fixed. A hookgen file for a
// container that no longer declares hooks is orphaned.
func (g *Generator) Check(results []PackageResult) ([]Drift, error) {
	var drifts []Drift
	for _, pr := range results {
		expected := make(map[string]bool)
		for _, r := range pr.Results {
			if r.Container.Dir != "" && !r.Empty() {
				expected[filepath.Join(r.Container.Dir, assemble.FileName(r.Container.Name, g.cfg.Output.FileSuffix))] = true
			}
			if r.File == "" {
				continue
			}

			existing, err := os.ReadFile(r.File)
			switch {
			case os.IsNotExist(err):
				drifts = append(drifts, Drift{Kind: DriftMissing, File: r.File, Container: r.Container.Name})
			case err != nil:
				return nil, errors.Wrapf(err, "failed to read %s", r.File)
			case !bytes.Equal(existing, r.Source):
				drifts = append(drifts, Drift{Kind: DriftStale, File: r.File, Container: r.Container.Name})
			}
		}

		if pr.Package == nil {
			continue
		}
		for _, file := range pr.Package.Generated {
			if expected[file] {
				continue
			}
			ours, err := generatedByHookgen(file)
			if err != nil {
				return nil, err
			}
			if ours {
				drifts = append(drifts, Drift{Kind: DriftOrphaned, File: file})
			}
		}
	}

	sort.SliceStable(drifts, func(i, j int) bool { return drifts[i].File < drifts[j].File })
	if len(drifts) > 0 {
		return drifts, errors.WithHint(
			errors.Wrapf(errors.ErrStale, "%d generated files out of date", len(drifts)),
			"run hookgen to regenerate")
	}
	return nil, nil
}

// generatedByHookgen reports whether the first line of file carries the
// hookgen header, as opposed to another generator's.
func generatedByHookgen(file string) (bool, error) {
	f, err := os.Open(file)
	if err != nil {
		return false, errors.Wrapf(err, "failed to open %s", file)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	return strings.HasPrefix(scanner.Text(), golang.GeneratedPrefix), nil
}
