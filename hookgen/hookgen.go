// Package hookgen generates hook implementations from declarations.
//
// # Pipeline
//
// For each container found by discovery:
//
//	validate → synthesize (one class per hook) → assemble → render
//
// Validation reports every malformed declaration of a container at once; a
// container with diagnostics produces no file, and its siblings are not
// affected. Output is deterministic: properties and classes keep
// declaration order and imports are sorted, so a check in CI can compare
// bytes.
package hookgen

import (
	"context"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/qntx-hooks/config"
	"github.com/teranos/qntx-hooks/errors"
	"github.com/teranos/qntx-hooks/hookgen/assemble"
	"github.com/teranos/qntx-hooks/hookgen/decl"
	"github.com/teranos/qntx-hooks/hookgen/discover"
	"github.com/teranos/qntx-hooks/hookgen/golang"
	"github.com/teranos/qntx-hooks/hookgen/synth"
	"github.com/teranos/qntx-hooks/hookgen/validate"
	"github.com/teranos/qntx-hooks/logger"
)

// Generator runs the pipeline with one configuration.
type Generator struct {
	cfg    *config.Config
	logger *zap.SugaredLogger
}

// New returns a Generator for cfg. A nil cfg uses the defaults.
func New(cfg *config.Config) *Generator {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Generator{cfg: cfg, logger: logger.ComponentLogger("hookgen.generate")}
}

// Config returns the generator's configuration.
func (g *Generator) Config() *config.Config {
	return g.cfg
}

// Result is the outcome for one container. Exactly one of Unit,
// Diagnostics and Err is set, unless the container declares no hooks.
type Result struct {
	Container   decl.Container
	Unit        *assemble.Unit
	Diagnostics validate.Errors
	Err         error
	// File is where the unit is written, Source its rendered content.
	File   string
	Source []byte
}

// Empty reports whether the container produced nothing and failed nothing.
func (r Result) Empty() bool {
	return r.Unit == nil && len(r.Diagnostics) == 0 && r.Err == nil
}

// PackageResult collects the results of one package in container order.
type PackageResult struct {
	Package *discover.Package
	Results []Result
}

// Failed reports whether any container of the package has diagnostics or
// an error.
func (p PackageResult) Failed() bool {
	for _, r := range p.Results {
		if len(r.Diagnostics) > 0 || r.Err != nil {
			return true
		}
	}
	return false
}

// Options returns the discovery options implied by the configuration.
func (g *Generator) Options() discover.Options {
	return discover.Options{
		RuntimePath: g.cfg.Runtime.ImportPath,
		Tests:       g.cfg.Generate.Tests,
	}
}

// Discover loads the packages matching patterns relative to dir.
func (g *Generator) Discover(ctx context.Context, dir string, patterns []string) ([]*discover.Package, error) {
	start := time.Now()
	opts := g.Options()
	opts.Dir = dir
	pkgs, err := discover.Packages(ctx, patterns, opts)

	containers := 0
	for _, p := range pkgs {
		containers += len(p.Containers)
	}
	g.logger.Debugw("discovered",
		logger.FieldCount, containers,
		"packages", len(pkgs),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return pkgs, err
}

// Generate runs the pipeline for one container.
func (g *Generator) Generate(c decl.Container) Result {
	res := Result{Container: c}

	if c.Kind == decl.KindOther {
		res.Err = errors.WithHint(
			errors.Wrapf(errors.ErrUnsupportedContainer, "%s", c.Name),
			"declare the container as a struct embedding hooks.Hooks or an interface embedding hooks.HookSet")
		return res
	}

	infos, diags := validate.ValidateContainer(c).Get()
	if len(diags) > 0 {
		res.Diagnostics = diags
		return res
	}

	classes := make([]synth.Class, 0, len(infos))
	for _, info := range infos {
		class := synth.Synthesize(info)
		g.logger.Debugw("synthesized",
			logger.FieldContainer, c.Name,
			logger.FieldHook, info.Property,
			logger.FieldVariant, info.Variant.String())
		classes = append(classes, class)
	}

	unit := assemble.Assemble(c, classes)
	if unit == nil {
		return res
	}

	src, err := golang.Render(unit)
	if err != nil {
		res.Err = err
		return res
	}
	res.Unit = unit
	res.Source = src
	res.File = filepath.Join(c.Dir, unit.FileName(g.cfg.Output.FileSuffix))
	return res
}

// GeneratePackages generates every container of pkgs. Packages run
// concurrently, at most generate.parallelism at a time; results come back
// in input order. The error is non-nil only when ctx is cancelled.
func (g *Generator) GeneratePackages(ctx context.Context, pkgs []*discover.Package) ([]PackageResult, error) {
	out := make([]PackageResult, len(pkgs))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.Generate.Parallelism)
	for i, pkg := range pkgs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = g.generatePackage(ctx, pkg)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, errors.Wrap(err, "generation cancelled")
	}
	return out, nil
}

func (g *Generator) generatePackage(ctx context.Context, pkg *discover.Package) PackageResult {
	start := time.Now()
	ctx = logger.WithPackage(ctx, pkg.Path)
	log := logger.LoggerFromContext(ctx).Named("hookgen.generate")

	pr := PackageResult{Package: pkg}
	owner := make(map[string]string)
	for _, c := range pkg.Containers {
		res := g.Generate(c)
		if res.File != "" {
			if prev, ok := owner[res.File]; ok {
				res.Err = errors.Newf("generated file %s of %s collides with %s",
					filepath.Base(res.File), c.Name, prev)
				res.Unit, res.Source, res.File = nil, nil, ""
			} else {
				owner[res.File] = c.Name
			}
		}
		pr.Results = append(pr.Results, res)

		hooks := 0
		if res.Unit != nil {
			hooks = len(res.Unit.Classes)
		}
		logger.LoggerFromContext(logger.WithContainer(ctx, c.Name)).Named("hookgen.generate").Debugw("container",
			logger.FieldCount, hooks,
			"diagnostics", len(res.Diagnostics),
			logger.FieldFile, res.File)
	}

	log.Debugw("generated",
		logger.FieldCount, len(pr.Results),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return pr
}
