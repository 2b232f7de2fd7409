// Package synth builds the structural description of a generated hook type
// from a validated HookInfo: its embedded runtime base, its Call method and
// its two tap methods.
package synth

import (
	"strings"

	"github.com/teranos/qntx-hooks/hookgen/decl"
	"github.com/teranos/qntx-hooks/hookgen/model"
)

// Runtime is the qualifier generated code uses for the hook runtime.
const Runtime = "hooks"

// Well-known types of generated code.
const (
	contextType     = "context.Context"
	hookContextType = "*" + Runtime + ".HookContext"
)

// Param is one parameter of a generated function.
type Param struct {
	Name     string
	Type     string
	Variadic bool
}

func (p Param) String() string {
	t := p.Type
	if p.Variadic {
		t = "..." + t
	}
	if p.Name == "" {
		return t
	}
	return p.Name + " " + t
}

// TypeRef is a generic type instantiation, e.g. hooks.SyncBailHook[F, string].
type TypeRef struct {
	Base string
	Args []string
}

func (t TypeRef) String() string {
	if len(t.Args) == 0 {
		return t.Base
	}
	return t.Base + "[" + strings.Join(t.Args, ", ") + "]"
}

// Arg is one argument of a call expression: either a plain expression or an
// adapter function literal.
type Arg struct {
	Expr    string
	Adapter *Adapter
}

// Adapter is a function literal that forwards to Callee:
//
//	func(<Params>) <Results> { return Callee(<Args>) }
type Adapter struct {
	Params  []Param
	Results []string
	Callee  string
	Args    []string
}

// Body is a method body consisting of a single call, returned when Return
// is set.
type Body struct {
	Return bool
	Target string
	Args   []Arg
}

// Method is a generated method on the hook type.
type Method struct {
	Name    string
	Params  []Param
	Results []string
	Body    Body
	Doc     string
}

// Class describes one generated hook type.
type Class struct {
	Name       string
	TypeParams []decl.TypeParam
	// Super is the embedded runtime base and Field its field name.
	Super        TypeRef
	Field        string
	Call         Method
	Tap          Method
	TapWithID    Method
	Experimental bool
	Property     string
	Variant      model.Variant
	Async        bool
	// Imports are the packages the hook signature references.
	Imports []decl.Import
	Doc     string
}

// Methods returns Call, Tap and TapWithID in emission order.
func (c Class) Methods() []Method {
	return []Method{c.Call, c.Tap, c.TapWithID}
}

// Instance is the class name instantiated with its type parameters, e.g.
// CacheMissHook[K, V].
func (c Class) Instance() string {
	if len(c.TypeParams) == 0 {
		return c.Name
	}
	names := make([]string, len(c.TypeParams))
	for i, tp := range c.TypeParams {
		names[i] = tp.Name
	}
	return c.Name + "[" + strings.Join(names, ", ") + "]"
}

// FuncType renders a function type, e.g. func(x int, y int) *string.
func FuncType(params []Param, results []string) string {
	var b strings.Builder
	b.WriteString("func(")
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteByte(')')
	switch len(results) {
	case 0:
	case 1:
		b.WriteByte(' ')
		b.WriteString(results[0])
	default:
		b.WriteString(" (")
		b.WriteString(strings.Join(results, ", "))
		b.WriteByte(')')
	}
	return b.String()
}
