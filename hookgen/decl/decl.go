// Package decl describes hook containers as discovered in Go source.
//
// These types are the input contract of the generator: discovery fills
// them from syntax, and everything downstream works on them without
// touching go/ast.
package decl

import (
	"fmt"
	"path"
	"strings"
)

// Marker type names a container embeds to opt in to generation.
const (
	MarkerStruct    = "Hooks"
	MarkerInterface = "HookSet"
)

// Kind is the Go kind of a container's underlying type.
type Kind int

const (
	KindStruct Kind = iota
	KindInterface
	// KindOther is any other underlying type, e.g. type X hooks.Hooks.
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindInterface:
		return "interface"
	default:
		return "other"
	}
}

// Position represents a source code location
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return "-"
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Import is one import of the file declaring a container.
type Import struct {
	// Name is the local name the file uses for the package.
	Name string
	Path string
	// Explicit is true when the import spec names the package
	// (import h "example.com/hooks").
	Explicit bool
}

// DefaultName guesses the package name for an import path: the last
// element, skipping a major version suffix (/v2, gopkg.in .v3) and a go-
// prefix.
func DefaultName(importPath string) string {
	name := path.Base(importPath)
	if isMajorVersion(name) {
		name = path.Base(path.Dir(importPath))
	}
	if i := strings.LastIndex(name, "."); i > 0 && isMajorVersion(name[i+1:]) {
		name = name[:i]
	}
	name = strings.TrimPrefix(name, "go-")
	return strings.NewReplacer("-", "_", ".", "_").Replace(name)
}

func isMajorVersion(elem string) bool {
	if len(elem) < 2 || elem[0] != 'v' {
		return false
	}
	for _, r := range elem[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// TypeParam is one type parameter of a generic container.
type TypeParam struct {
	Name       string
	Constraint string
	// Qualifiers lists the packages the constraint references.
	Qualifiers []string
}

// TypeRef is a possibly qualified, possibly instantiated named type, e.g.
// hooks.SyncBail[func(x, y int) string].
type TypeRef struct {
	Qualifier string
	Name      string
	Args      []TypeArg
}

func (t TypeRef) String() string {
	var b strings.Builder
	if t.Qualifier != "" {
		b.WriteString(t.Qualifier)
		b.WriteByte('.')
	}
	b.WriteString(t.Name)
	if len(t.Args) > 0 {
		b.WriteByte('[')
		for i, a := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.Expr)
		}
		b.WriteByte(']')
	}
	return b.String()
}

// IsZero reports whether t names no type.
func (t TypeRef) IsZero() bool {
	return t.Name == ""
}

// TypeArg is one type argument. Func is set when the argument is a
// function type literal.
type TypeArg struct {
	Expr string
	Func *FuncType
}

// FuncType is a function type literal.
type FuncType struct {
	Params  []Field
	Results []Field
}

// Field is one parameter or result. Unnamed parameters have an empty Name.
// A variadic parameter has Variadic set and Type holds the element type.
type Field struct {
	Name     string
	Type     string
	Variadic bool
	// Qualifiers lists the packages Type references.
	Qualifiers []string
}

// MethodShape records the signature arity of a method-declared property.
type MethodShape struct {
	Params  int
	Results int
}

// Declaration is a candidate hook property of a container.
type Declaration struct {
	Name string
	// Abstract is false when the property has an implementation (a method
	// with a body).
	Abstract bool
	// Method is set when the property is declared as a method.
	Method *MethodShape
	// Embedded is set for an anonymous struct field.
	Embedded bool
	// Type is the property type: the field type, or the method's first
	// result.
	Type TypeRef
	// Imports overrides the container's imports when the declaration lives
	// in another file.
	Imports []Import
	Pos     Position
}

// Container is a named type that embeds one of the marker types.
type Container struct {
	Name        string
	Package     string
	PackagePath string
	Dir         string
	File        string
	Kind        Kind
	TypeParams  []TypeParam
	// Supertypes are the embedded types (or, for KindOther, the underlying
	// named type).
	Supertypes   []TypeRef
	Imports      []Import
	Declarations []Declaration
	// RuntimePath is the import path of the hook runtime package.
	RuntimePath string
	Pos         Position
}

// InScope reports whether the container opts in to generation: one of its
// supertypes has the unqualified name Hooks or HookSet. Aliases are not
// resolved.
func (c Container) InScope() bool {
	for _, s := range c.Supertypes {
		if s.Name == MarkerStruct || s.Name == MarkerInterface {
			return true
		}
	}
	return false
}

// Resolve finds the import a qualifier refers to, using d's imports when
// it carries its own.
func (c Container) Resolve(d *Declaration, qualifier string) (Import, bool) {
	imports := c.Imports
	if d != nil && d.Imports != nil {
		imports = d.Imports
	}
	for _, imp := range imports {
		if imp.Name == qualifier {
			return imp, true
		}
	}
	return Import{}, false
}

// TypeParamNames returns the type parameter names, e.g. [K V].
func (c Container) TypeParamNames() []string {
	names := make([]string, len(c.TypeParams))
	for i, tp := range c.TypeParams {
		names[i] = tp.Name
	}
	return names
}
