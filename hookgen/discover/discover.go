// Package discover finds hook containers in Go source.
//
// Discovery is syntactic: files are parsed with go/parser and never type
// checked, so a package whose generated file is missing or stale still
// loads.
package discover

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/packages"

	"github.com/teranos/qntx-hooks/errors"
	"github.com/teranos/qntx-hooks/hookgen/decl"
)

// Options control discovery.
type Options struct {
	// RuntimePath is the import path of the hook runtime package.
	RuntimePath string
	// Tests includes _test.go files.
	Tests bool
	// Dir is the working directory for package patterns.
	Dir string
}

// Package is one discovered Go package.
type Package struct {
	Name string
	Path string
	Dir  string
	// Files are the parsed source files, Generated the files skipped
	// because they carry a generated-code header.
	Files      []string
	Generated  []string
	Containers []decl.Container
}

// Packages loads the packages matching patterns (./..., import paths) and
// discovers their containers. Packages that fail to load or parse are
// reported in the error; the others are still returned.
func Packages(ctx context.Context, patterns []string, opts Options) ([]*Package, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedFiles,
		Dir:     opts.Dir,
		Tests:   opts.Tests,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load packages %s", strings.Join(patterns, " "))
	}
	if len(pkgs) == 0 {
		return nil, errors.Newf("no packages found for %s", strings.Join(patterns, " "))
	}

	var errs error
	var out []*Package
	for _, p := range selectVariants(pkgs) {
		// Import and type errors do not matter to a syntactic walk; only a
		// package without files is a failure.
		if len(p.GoFiles) == 0 {
			for _, e := range p.Errors {
				errs = multierr.Append(errs, errors.Newf("%s: %s", p.PkgPath, e.Msg))
			}
			continue
		}

		pkg, err := parseFiles(p.Name, p.PkgPath, filepath.Dir(p.GoFiles[0]), p.GoFiles, opts)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		out = append(out, pkg)
	}
	if errs != nil {
		return out, errs
	}
	return out, nil
}

// selectVariants keeps one variant per package path. With tests enabled
// go/packages reports both p and "p [p.test]"; the test variant holds a
// superset of the files. Synthesized test mains are dropped.
func selectVariants(pkgs []*packages.Package) []*packages.Package {
	byPath := make(map[string]*packages.Package)
	var order []string
	for _, p := range pkgs {
		if p.Name == "main" && strings.HasSuffix(p.PkgPath, ".test") {
			continue
		}
		prev, ok := byPath[p.PkgPath]
		if !ok {
			order = append(order, p.PkgPath)
			byPath[p.PkgPath] = p
			continue
		}
		if len(p.GoFiles) > len(prev.GoFiles) {
			byPath[p.PkgPath] = p
		}
	}

	out := make([]*packages.Package, 0, len(order))
	for _, path := range order {
		out = append(out, byPath[path])
	}
	return out
}

// Dir discovers the containers of the package in dir without invoking the
// go command. The import path is derived from the nearest go.mod; it is
// empty when there is none.
func Dir(dir string, opts Options) (*Package, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve %s", dir)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", dir)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}
		if strings.HasSuffix(name, "_test.go") && !opts.Tests {
			continue
		}
		files = append(files, filepath.Join(abs, name))
	}
	if len(files) == 0 {
		return nil, errors.Newf("no Go files in %s", dir)
	}

	importPath, err := ImportPath(abs)
	if err != nil {
		return nil, err
	}
	return parseFiles("", importPath, abs, files, opts)
}

// ImportPath derives the import path of dir from the module declared by
// the nearest go.mod above it.
func ImportPath(dir string) (string, error) {
	for d := dir; ; {
		data, err := os.ReadFile(filepath.Join(d, "go.mod"))
		if err == nil {
			modPath := modfile.ModulePath(data)
			if modPath == "" {
				return "", errors.Newf("%s: missing module directive", filepath.Join(d, "go.mod"))
			}
			rel, err := filepath.Rel(d, dir)
			if err != nil {
				return "", errors.Wrap(err, "failed to relate package to module root")
			}
			if rel == "." {
				return modPath, nil
			}
			return path.Join(modPath, filepath.ToSlash(rel)), nil
		}
		if !os.IsNotExist(err) {
			return "", errors.Wrap(err, "failed to read go.mod")
		}

		parent := filepath.Dir(d)
		if parent == d {
			return "", nil
		}
		d = parent
	}
}

// parseFiles parses files and extracts the containers they declare. The
// package name comes from the first non-test file when name is empty;
// files of another package (an external _test package) are skipped.
func parseFiles(name, importPath, dir string, files []string, opts Options) (*Package, error) {
	sort.Strings(files)
	fset := token.NewFileSet()

	pkg := &Package{Name: name, Path: importPath, Dir: dir}
	var parsed []*ast.File
	var errs error
	for _, filename := range files {
		f, err := parser.ParseFile(fset, filename, nil, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "failed to parse %s", filename))
			continue
		}
		if ast.IsGenerated(f) {
			pkg.Generated = append(pkg.Generated, filename)
			continue
		}
		if pkg.Name == "" && !strings.HasSuffix(filename, "_test.go") {
			pkg.Name = f.Name.Name
		}
		parsed = append(parsed, f)
	}
	if errs != nil {
		return nil, errs
	}

	if pkg.Name == "" && len(parsed) > 0 {
		pkg.Name = parsed[0].Name.Name
	}

	x := newExtractor(fset, pkg, opts)
	for _, f := range parsed {
		if f.Name.Name != pkg.Name {
			continue
		}
		pkg.Files = append(pkg.Files, fset.Position(f.Package).Filename)
		x.file(f)
	}
	pkg.Containers = x.containers()
	return pkg, nil
}
