// Package assemble gathers the synthesized hook types of one container into
// a single output unit: the implementation struct, its constructor and the
// hook types, plus the imports they need.
package assemble

import (
	"sort"
	"strings"

	"github.com/teranos/qntx-hooks/hookgen/decl"
	"github.com/teranos/qntx-hooks/hookgen/synth"
	"github.com/teranos/qntx-hooks/internal/util"
)

// Property is one field of the implementation struct.
type Property struct {
	Name string
	// Type is the pointer to the generated hook type, e.g.
	// *CarHooksBrakeHook or *CacheMissHook[K, V].
	Type string
	// Class indexes Unit.Classes.
	Class int
}

// Unit is everything generated for one container.
type Unit struct {
	Package string
	// Container is the declaring type, Kind its kind.
	Container   string
	Kind        decl.Kind
	Source      decl.Position
	Imports     []decl.Import
	Name        string
	Constructor string
	TypeParams  []decl.TypeParam
	Properties  []Property
	Classes     []synth.Class
}

// Assemble builds the unit for c. It returns nil when c has no hooks.
// Properties and classes keep declaration order.
func Assemble(c decl.Container, classes []synth.Class) *Unit {
	if len(classes) == 0 {
		return nil
	}

	exported := util.IsExported(c.Name)
	u := &Unit{
		Package:     c.Package,
		Container:   c.Name,
		Kind:        c.Kind,
		Source:      c.Pos,
		Imports:     imports(c, classes),
		Name:        c.Name + "Impl",
		Constructor: util.WithVisibility("New"+util.Capitalize(c.Name)+"Impl", exported),
		TypeParams:  c.TypeParams,
		Classes:     classes,
	}

	for i, class := range classes {
		u.Properties = append(u.Properties, Property{
			Name:  class.Property,
			Type:  "*" + class.Instance(),
			Class: i,
		})
	}
	return u
}

// Instance is the implementation type instantiated with its type
// parameters, e.g. CacheImpl[K, V].
func (u *Unit) Instance() string {
	if len(u.TypeParams) == 0 {
		return u.Name
	}
	names := make([]string, len(u.TypeParams))
	for i, tp := range u.TypeParams {
		names[i] = tp.Name
	}
	return u.Name + "[" + strings.Join(names, ", ") + "]"
}

// FileName is the snake_case container name plus suffix. A name ending in
// the suffix's stem is not repeated: CarHooks with "_hooks.go" gives
// car_hooks.go, CarEvents gives car_events_hooks.go.
func (u *Unit) FileName(suffix string) string {
	return FileName(u.Container, suffix)
}

// FileName is the generated file name for a container, whether or not it
// produced a unit.
func FileName(container, suffix string) string {
	base := util.ToSnakeCase(container)
	stem := strings.TrimSuffix(suffix, ".go")
	if stem != "" && strings.HasSuffix(base, stem) {
		base = strings.TrimSuffix(base, stem)
	}
	return base + suffix
}

// Experimental reports whether any hook of the unit is experimental.
func (u *Unit) Experimental() bool {
	for _, c := range u.Classes {
		if c.Experimental {
			return true
		}
	}
	return false
}

// imports collects the runtime, context for async hooks, every package a
// hook signature references and every package a type parameter constraint
// references. Duplicates are dropped and the result is sorted by path.
func imports(c decl.Container, classes []synth.Class) []decl.Import {
	byPath := make(map[string]decl.Import)
	add := func(imp decl.Import) {
		if _, ok := byPath[imp.Path]; !ok {
			byPath[imp.Path] = imp
		}
	}

	add(decl.Import{
		Name:     synth.Runtime,
		Path:     c.RuntimePath,
		Explicit: decl.DefaultName(c.RuntimePath) != synth.Runtime,
	})
	for _, class := range classes {
		if class.Async {
			add(decl.Import{Name: "context", Path: "context"})
		}
		for _, imp := range class.Imports {
			add(imp)
		}
	}
	for _, tp := range c.TypeParams {
		for _, q := range tp.Qualifiers {
			if imp, ok := c.Resolve(nil, q); ok {
				add(imp)
			}
		}
	}

	out := make([]decl.Import, 0, len(byPath))
	for _, imp := range byPath {
		out = append(out, imp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
