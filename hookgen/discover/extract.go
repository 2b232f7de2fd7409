package discover

import (
	"go/ast"
	"go/token"
	"go/types"
	"sort"
	"strconv"

	"github.com/teranos/qntx-hooks/hookgen/decl"
)

// extractor collects containers across the files of one package. Methods
// may be declared in a different file than their receiver type, so they
// are attached once every file has been seen.
type extractor struct {
	fset    *token.FileSet
	pkg     *Package
	opts    Options
	byName  map[string]*decl.Container
	order   []string
	methods map[string][]method
}

type method struct {
	decl decl.Declaration
	file string
}

func newExtractor(fset *token.FileSet, pkg *Package, opts Options) *extractor {
	return &extractor{
		fset:    fset,
		pkg:     pkg,
		opts:    opts,
		byName:  make(map[string]*decl.Container),
		methods: make(map[string][]method),
	}
}

func (x *extractor) file(f *ast.File) {
	filename := x.fset.Position(f.Package).Filename
	imports := fileImports(f)

	for _, d := range f.Decls {
		switch d := d.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts := spec.(*ast.TypeSpec)
				if ts.Assign.IsValid() {
					continue
				}
				if c := x.container(ts, filename, imports); c != nil {
					x.byName[c.Name] = c
					x.order = append(x.order, c.Name)
				}
			}
		case *ast.FuncDecl:
			if d.Recv == nil || d.Body == nil || len(d.Recv.List) == 0 {
				continue
			}
			recv := receiverName(d.Recv.List[0].Type)
			if recv == "" {
				continue
			}
			m := x.methodDecl(d.Name, d.Type, false)
			m.Imports = imports
			x.methods[recv] = append(x.methods[recv], method{decl: m, file: filename})
		}
	}
}

// containers returns the containers in source order with their
// implemented methods attached.
func (x *extractor) containers() []decl.Container {
	out := make([]decl.Container, 0, len(x.order))
	for _, name := range x.order {
		c := x.byName[name]
		if c.Kind != decl.KindInterface {
			for _, m := range x.methods[name] {
				d := m.decl
				if m.file == c.File {
					d.Imports = nil
				}
				c.Declarations = append(c.Declarations, d)
			}
		}
		sort.SliceStable(c.Declarations, func(i, j int) bool {
			return before(c.Declarations[i].Pos, c.Declarations[j].Pos)
		})
		out = append(out, *c)
	}
	return out
}

func before(a, b decl.Position) bool {
	if a.File != b.File {
		return a.File < b.File
	}
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Column < b.Column
}

// container returns the container declared by ts, or nil when ts does not
// embed a marker type.
func (x *extractor) container(ts *ast.TypeSpec, filename string, imports []decl.Import) *decl.Container {
	c := &decl.Container{
		Name:        ts.Name.Name,
		Package:     x.pkg.Name,
		PackagePath: x.pkg.Path,
		Dir:         x.pkg.Dir,
		File:        filename,
		Imports:     imports,
		RuntimePath: x.opts.RuntimePath,
		Pos:         x.position(ts.Name.Pos()),
	}
	if ts.TypeParams != nil {
		c.TypeParams = typeParams(ts.TypeParams)
	}

	switch t := ts.Type.(type) {
	case *ast.StructType:
		c.Kind = decl.KindStruct
		for _, field := range t.Fields.List {
			ref := typeRef(field.Type)
			if len(field.Names) == 0 {
				if isMarker(ref) {
					c.Supertypes = append(c.Supertypes, ref)
					continue
				}
				c.Declarations = append(c.Declarations, decl.Declaration{
					Name:     ref.Name,
					Abstract: true,
					Embedded: true,
					Type:     ref,
					Pos:      x.position(field.Type.Pos()),
				})
				continue
			}
			for _, n := range field.Names {
				c.Declarations = append(c.Declarations, decl.Declaration{
					Name:     n.Name,
					Abstract: true,
					Type:     ref,
					Pos:      x.position(n.Pos()),
				})
			}
		}
	case *ast.InterfaceType:
		c.Kind = decl.KindInterface
		for _, m := range t.Methods.List {
			if len(m.Names) == 0 {
				c.Supertypes = append(c.Supertypes, typeRef(m.Type))
				continue
			}
			ft, ok := m.Type.(*ast.FuncType)
			if !ok {
				continue
			}
			for _, n := range m.Names {
				c.Declarations = append(c.Declarations, x.methodDecl(n, ft, true))
			}
		}
	default:
		c.Kind = decl.KindOther
		if ref := typeRef(ts.Type); !ref.IsZero() {
			c.Supertypes = append(c.Supertypes, ref)
		}
	}

	if !c.InScope() {
		return nil
	}
	return c
}

func (x *extractor) methodDecl(name *ast.Ident, ft *ast.FuncType, abstract bool) decl.Declaration {
	shape := &decl.MethodShape{Params: fieldCount(ft.Params), Results: fieldCount(ft.Results)}
	d := decl.Declaration{
		Name:     name.Name,
		Abstract: abstract,
		Method:   shape,
		Pos:      x.position(name.Pos()),
	}
	if ft.Results != nil && len(ft.Results.List) > 0 {
		d.Type = typeRef(ft.Results.List[0].Type)
	}
	return d
}

func (x *extractor) position(pos token.Pos) decl.Position {
	p := x.fset.Position(pos)
	return decl.Position{File: p.Filename, Line: p.Line, Column: p.Column}
}

func isMarker(ref decl.TypeRef) bool {
	return ref.Name == decl.MarkerStruct || ref.Name == decl.MarkerInterface
}

// fileImports lists the imports of f under the names the file uses for
// them. Blank and dot imports cannot qualify a type and are skipped.
func fileImports(f *ast.File) []decl.Import {
	var out []decl.Import
	for _, spec := range f.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		imp := decl.Import{Name: decl.DefaultName(p), Path: p}
		if spec.Name != nil {
			if spec.Name.Name == "_" || spec.Name.Name == "." {
				continue
			}
			imp.Name = spec.Name.Name
			imp.Explicit = true
		}
		out = append(out, imp)
	}
	return out
}

func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverName(t.X)
	case *ast.ParenExpr:
		return receiverName(t.X)
	case *ast.IndexExpr:
		return receiverName(t.X)
	case *ast.IndexListExpr:
		return receiverName(t.X)
	case *ast.Ident:
		return t.Name
	}
	return ""
}

// typeRef describes a named, possibly qualified and instantiated type. Any
// other expression yields the zero TypeRef.
func typeRef(expr ast.Expr) decl.TypeRef {
	switch t := expr.(type) {
	case *ast.Ident:
		return decl.TypeRef{Name: t.Name}
	case *ast.SelectorExpr:
		if pkg, ok := t.X.(*ast.Ident); ok {
			return decl.TypeRef{Qualifier: pkg.Name, Name: t.Sel.Name}
		}
	case *ast.IndexExpr:
		ref := typeRef(t.X)
		if !ref.IsZero() {
			ref.Args = []decl.TypeArg{typeArg(t.Index)}
		}
		return ref
	case *ast.IndexListExpr:
		ref := typeRef(t.X)
		if !ref.IsZero() {
			for _, idx := range t.Indices {
				ref.Args = append(ref.Args, typeArg(idx))
			}
		}
		return ref
	case *ast.ParenExpr:
		return typeRef(t.X)
	}
	return decl.TypeRef{}
}

func typeArg(expr ast.Expr) decl.TypeArg {
	arg := decl.TypeArg{Expr: types.ExprString(expr)}
	if ft, ok := expr.(*ast.FuncType); ok {
		arg.Func = &decl.FuncType{
			Params:  fields(ft.Params),
			Results: fields(ft.Results),
		}
	}
	return arg
}

// fields flattens a parameter or result list: x, y int becomes two fields,
// an unnamed type one field with an empty name.
func fields(list *ast.FieldList) []decl.Field {
	if list == nil {
		return nil
	}
	var out []decl.Field
	for _, field := range list.List {
		typ := field.Type
		variadic := false
		if ell, ok := typ.(*ast.Ellipsis); ok {
			typ = ell.Elt
			variadic = true
		}
		f := decl.Field{
			Type:       types.ExprString(typ),
			Variadic:   variadic,
			Qualifiers: qualifiers(typ),
		}
		if len(field.Names) == 0 {
			out = append(out, f)
			continue
		}
		for _, n := range field.Names {
			f.Name = n.Name
			out = append(out, f)
		}
	}
	return out
}

func fieldCount(list *ast.FieldList) int {
	if list == nil {
		return 0
	}
	return list.NumFields()
}

// qualifiers lists the package names referenced by a type expression, in
// order of first appearance.
func qualifiers(expr ast.Expr) []string {
	var out []string
	seen := make(map[string]bool)
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if pkg, ok := sel.X.(*ast.Ident); ok && !seen[pkg.Name] {
			seen[pkg.Name] = true
			out = append(out, pkg.Name)
		}
		return false
	})
	return out
}

func typeParams(list *ast.FieldList) []decl.TypeParam {
	var out []decl.TypeParam
	for _, field := range list.List {
		constraint := types.ExprString(field.Type)
		quals := qualifiers(field.Type)
		for _, n := range field.Names {
			out = append(out, decl.TypeParam{Name: n.Name, Constraint: constraint, Qualifiers: quals})
		}
	}
	return out
}
