// Package validate turns hook declarations into HookInfo, reporting every
// problem of a container at once.
//
// Validation is pure: diagnostics are returned as data and never logged.
package validate

import (
	"fmt"
	"strings"

	"github.com/teranos/qntx-hooks/errors"
	"github.com/teranos/qntx-hooks/hookgen/decl"
	"github.com/teranos/qntx-hooks/hookgen/model"
	"github.com/teranos/qntx-hooks/hookgen/variant"
	"github.com/teranos/qntx-hooks/internal/util"
)

// reserved names are used by generated code and cannot name parameters.
var reserved = map[string]bool{
	"h": true, "f": true, "hookCtx": true, "ctx": true, "concurrency": true,
	"name": true, "id": true, "hooks": true, "context": true,
}

// Denotes reports whether d is a hook property: its type is qualified by
// an import of the container's runtime package.
func Denotes(c decl.Container, d decl.Declaration) bool {
	if d.Type.IsZero() || d.Type.Qualifier == "" {
		return false
	}
	imp, ok := c.Resolve(&d, d.Type.Qualifier)
	return ok && imp.Path == c.RuntimePath
}

// Validate checks one hook declaration of c.
//
// A non-abstract property or an unknown variant name yields exactly one
// error. Otherwise every signature problem is reported.
func Validate(c decl.Container, d decl.Declaration) Validated[model.HookInfo] {
	fail := func(cause error, format string, args ...any) Error {
		return Error{
			Container:   c.Name,
			Declaration: d.Name,
			Pos:         d.Pos,
			Message:     fmt.Sprintf(format, args...),
			Cause:       cause,
		}
	}

	if !Denotes(c, d) {
		return Invalid[model.HookInfo](fail(errors.ErrMalformedSignature, "%s is not a hook type", d.Type))
	}
	if !d.Abstract {
		return Invalid[model.HookInfo](fail(errors.ErrNotAbstract, "hook property %s is not abstract", d.Name))
	}
	v, ok := model.ParseVariant(d.Type.Name)
	if !ok {
		return Invalid[model.HookInfo](fail(errors.ErrUnknownVariant, "unrecognized hook type %q (want one of %s)", d.Type.Name, variantList()))
	}
	rule := variant.For(v)

	var errs Errors
	malformed := func(format string, args ...any) {
		errs = append(errs, fail(errors.ErrMalformedSignature, format, args...))
	}

	if d.Embedded {
		malformed("embedded hook field %s must be named", d.Type)
	}
	if d.Method != nil {
		if d.Method.Params > 0 {
			malformed("hook property method %s must not take parameters", d.Name)
		}
		if d.Method.Results != 1 {
			malformed("hook property method %s must return exactly the hook type", d.Name)
		}
	}

	fn := signature(d.Type, malformed)
	if fn == nil {
		return invalid[model.HookInfo](errs)
	}

	params := positional(fn.Params)
	result := ""

	switch {
	case len(fn.Results) > 1:
		malformed("%s hooks cannot return multiple values", v)
	case len(fn.Results) == 1 && !rule.Returns():
		malformed("%s hooks cannot return a value, got %s", v, fn.Results[0].Type)
	case len(fn.Results) == 0 && rule.Returns():
		malformed("%s hooks must return a value", v)
	case len(fn.Results) == 1:
		result = fn.Results[0].Type
	}

	if rule.Accumulator {
		switch {
		case len(params) == 0:
			malformed("%s hooks need at least one parameter to carry the result", v)
		case params[0].Variadic:
			malformed("variadic parameter %s cannot carry the %s result", params[0].Name, v)
		case result != "" && result != params[0].Type:
			malformed("result type %s must match the first parameter type %s", result, params[0].Type)
		}
	}

	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if reserved[p.Name] {
			malformed("parameter name %s is reserved for generated code", p.Name)
		} else if seen[p.Name] {
			malformed("duplicate parameter name %s", p.Name)
		}
		seen[p.Name] = true
	}

	imports, qualifiers := signatureImports(c, &d, fn)
	for _, q := range qualifiers.missing {
		malformed("package %s referenced by the signature is not imported", q)
	}
	for _, p := range params {
		if qualifiers.used[p.Name] {
			malformed("parameter name %s shadows an imported package", p.Name)
		}
	}

	if len(errs) > 0 {
		return invalid[model.HookInfo](errs)
	}

	return Valid(model.HookInfo{
		Variant:    v,
		Params:     params,
		Result:     result,
		Async:      rule.Async,
		Property:   d.Name,
		ClassName:  ClassName(c.Name, d.Name),
		Exported:   util.IsExported(d.Name),
		Container:  c.Name,
		TypeParams: c.TypeParams,
		Imports:    imports,
		Pos:        d.Pos,
	})
}

// ValidateContainer validates every hook declaration of c independently
// and combines the results in declaration order.
func ValidateContainer(c decl.Container) Validated[[]model.HookInfo] {
	var vs []Validated[model.HookInfo]
	for _, d := range c.Declarations {
		if Denotes(c, d) {
			vs = append(vs, Validate(c, d))
		}
	}

	return Combine(Sequence(vs), collisions(c, vs), func(infos []model.HookInfo, _ struct{}) []model.HookInfo {
		return infos
	})
}

// ClassName is the generated type of a hook: container name, capitalized
// property name and "Hook". It is exported exactly when the container is.
func ClassName(container, property string) string {
	return util.WithVisibility(container+util.Capitalize(property)+"Hook", util.IsExported(container))
}

// collisions reports properties whose generated type names coincide, e.g.
// accelerate and Accelerate.
func collisions(c decl.Container, vs []Validated[model.HookInfo]) Validated[struct{}] {
	var errs Errors
	owner := make(map[string]string)
	for _, v := range vs {
		info, e := v.Get()
		if len(e) > 0 {
			continue
		}
		if prev, ok := owner[info.ClassName]; ok {
			errs = append(errs, Error{
				Container:   c.Name,
				Declaration: info.Property,
				Pos:         info.Pos,
				Message:     fmt.Sprintf("generated type %s collides with property %s", info.ClassName, prev),
				Cause:       errors.ErrMalformedSignature,
			})
			continue
		}
		owner[info.ClassName] = info.Property
	}
	if len(errs) > 0 {
		return invalid[struct{}](errs)
	}
	return Valid(struct{}{})
}

// signature extracts the single function type argument of t.
func signature(t decl.TypeRef, malformed func(string, ...any)) *decl.FuncType {
	switch {
	case len(t.Args) == 0:
		malformed("hook type %s has no function type argument", t)
		return nil
	case len(t.Args) > 1:
		malformed("hook type %s takes exactly one type argument, got %d", t, len(t.Args))
		return nil
	case t.Args[0].Func == nil:
		malformed("type argument %s of %s is not a function type", t.Args[0].Expr, t.Name)
		return nil
	}
	return t.Args[0].Func
}

// positional names unnamed and blank parameters p0, p1, ...
func positional(fields []decl.Field) model.Parameters {
	params := make(model.Parameters, len(fields))
	for i, f := range fields {
		name := f.Name
		if name == "" || name == "_" {
			name = fmt.Sprintf("p%d", i)
		}
		params[i] = model.Parameter{Name: name, Type: f.Type, Variadic: f.Variadic}
	}
	return params
}

type qualifierSet struct {
	used    map[string]bool
	missing []string
}

// signatureImports resolves the packages referenced by fn's parameter and
// result types.
func signatureImports(c decl.Container, d *decl.Declaration, fn *decl.FuncType) ([]decl.Import, qualifierSet) {
	set := qualifierSet{used: make(map[string]bool)}
	var imports []decl.Import

	fields := append(append([]decl.Field(nil), fn.Params...), fn.Results...)
	for _, f := range fields {
		for _, q := range f.Qualifiers {
			if set.used[q] {
				continue
			}
			set.used[q] = true
			imp, ok := c.Resolve(d, q)
			if !ok {
				set.missing = append(set.missing, q)
				continue
			}
			imports = append(imports, imp)
		}
	}
	return imports, set
}

func variantList() string {
	names := make([]string, 0, model.NumVariants)
	for _, v := range model.Variants() {
		names = append(names, v.String())
	}
	return strings.Join(names, ", ")
}
