package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/qntx-hooks/errors"
	"github.com/teranos/qntx-hooks/hookgen/decl"
	"github.com/teranos/qntx-hooks/hookgen/model"
)

const runtimePath = "github.com/teranos/qntx-hooks/hooks"

func container(decls ...decl.Declaration) decl.Container {
	return decl.Container{
		Name:        "CarHooks",
		Package:     "car",
		Kind:        decl.KindStruct,
		Supertypes:  []decl.TypeRef{{Qualifier: "hooks", Name: "Hooks"}},
		RuntimePath: runtimePath,
		Imports: []decl.Import{
			{Name: "hooks", Path: runtimePath},
			{Name: "time", Path: "time"},
		},
		Declarations: decls,
	}
}

func fn(params []decl.Field, results ...decl.Field) *decl.FuncType {
	return &decl.FuncType{Params: params, Results: results}
}

func field(name, typ string) decl.Field {
	return decl.Field{Name: name, Type: typ}
}

func hook(name, variantName string, f *decl.FuncType) decl.Declaration {
	return decl.Declaration{
		Name:     name,
		Abstract: true,
		Type: decl.TypeRef{
			Qualifier: "hooks",
			Name:      variantName,
			Args:      []decl.TypeArg{{Expr: "func(...)", Func: f}},
		},
		Pos: decl.Position{File: "car.go", Line: 10, Column: 2},
	}
}

func TestValidate_SyncBail(t *testing.T) {
	d := hook("Brake", "SyncBail", fn([]decl.Field{field("x", "int"), field("y", "int")}, field("", "string")))

	info, errs := Validate(container(d), d).Get()
	require.Empty(t, errs)

	assert.Equal(t, model.SyncBail, info.Variant)
	assert.Equal(t, model.Parameters{{Name: "x", Type: "int"}, {Name: "y", Type: "int"}}, info.Params)
	assert.Equal(t, "string", info.Result)
	assert.False(t, info.Async)
	assert.Equal(t, "Brake", info.Property)
	assert.Equal(t, "CarHooksBrakeHook", info.ClassName)
	assert.True(t, info.Exported)
	assert.Equal(t, "CarHooks", info.Container)
}

func TestValidate_AsyncAndPositionalNames(t *testing.T) {
	d := hook("Park", "AsyncSeries", fn([]decl.Field{field("", "string"), field("", "time.Duration")}))
	d.Type.Args[0].Func.Params[1].Qualifiers = []string{"time"}

	info, errs := Validate(container(d), d).Get()
	require.Empty(t, errs)

	assert.True(t, info.Async)
	assert.Equal(t, []string{"p0", "p1"}, info.Params.Names())
	assert.Equal(t, []decl.Import{{Name: "time", Path: "time"}}, info.Imports)
}

func TestValidate_BlankParameterGetsPositionalName(t *testing.T) {
	d := hook("Honk", "Sync", fn([]decl.Field{field("loud", "bool"), field("_", "int")}))

	info, errs := Validate(container(d), d).Get()
	require.Empty(t, errs)
	assert.Equal(t, []string{"loud", "p1"}, info.Params.Names())
}

func TestValidate_UnexportedContainerClassName(t *testing.T) {
	d := hook("route", "Sync", fn(nil))
	c := container(d)
	c.Name = "carEvents"

	info, errs := Validate(c, d).Get()
	require.Empty(t, errs)
	assert.Equal(t, "carEventsRouteHook", info.ClassName)
	assert.False(t, info.Exported)
}

func TestValidate_NotAbstractIsSingleError(t *testing.T) {
	d := hook("Brake", "SyncBale", fn([]decl.Field{field("ctx", "int")}, field("", "a"), field("", "b")))
	d.Abstract = false

	errs := Validate(container(d), d).Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "hook property Brake is not abstract", errs[0].Message)
	assert.True(t, errors.Is(errs[0], errors.ErrNotAbstract))
}

func TestValidate_UnknownVariantIsSingleError(t *testing.T) {
	d := hook("Brake", "SyncBale", fn([]decl.Field{field("ctx", "int")}))

	errs := Validate(container(d), d).Errors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, `unrecognized hook type "SyncBale"`)
	assert.True(t, errors.Is(errs[0], errors.ErrUnknownVariant))
}

func TestValidate_MalformedSignatures(t *testing.T) {
	tests := []struct {
		name    string
		decl    func() decl.Declaration
		message string
	}{
		{
			name: "no type argument",
			decl: func() decl.Declaration {
				d := hook("A", "Sync", nil)
				d.Type.Args = nil
				return d
			},
			message: "hook type hooks.Sync has no function type argument",
		},
		{
			name: "two type arguments",
			decl: func() decl.Declaration {
				d := hook("A", "Sync", fn(nil))
				d.Type.Args = append(d.Type.Args, decl.TypeArg{Expr: "int"})
				return d
			},
			message: "takes exactly one type argument, got 2",
		},
		{
			name:    "not a function",
			decl:    func() decl.Declaration { d := hook("A", "Sync", nil); d.Type.Args[0].Expr = "int"; return d },
			message: "type argument int of Sync is not a function type",
		},
		{
			name:    "void variant with result",
			decl:    func() decl.Declaration { return hook("A", "Sync", fn(nil, field("", "int"))) },
			message: "Sync hooks cannot return a value, got int",
		},
		{
			name:    "bail without result",
			decl:    func() decl.Declaration { return hook("A", "AsyncSeriesBail", fn(nil)) },
			message: "AsyncSeriesBail hooks must return a value",
		},
		{
			name:    "multiple results",
			decl:    func() decl.Declaration { return hook("A", "SyncBail", fn(nil, field("", "int"), field("", "error"))) },
			message: "SyncBail hooks cannot return multiple values",
		},
		{
			name:    "waterfall without parameters",
			decl:    func() decl.Declaration { return hook("A", "SyncWaterfall", fn(nil, field("", "int"))) },
			message: "SyncWaterfall hooks need at least one parameter to carry the result",
		},
		{
			name: "waterfall result mismatch",
			decl: func() decl.Declaration {
				return hook("A", "SyncWaterfall", fn([]decl.Field{field("acc", "int")}, field("", "string")))
			},
			message: "result type string must match the first parameter type int",
		},
		{
			name: "variadic accumulator",
			decl: func() decl.Declaration {
				return hook("A", "AsyncSeriesWaterfall", fn([]decl.Field{{Name: "xs", Type: "int", Variadic: true}}, field("", "int")))
			},
			message: "variadic parameter xs cannot carry the AsyncSeriesWaterfall result",
		},
		{
			name:    "reserved name",
			decl:    func() decl.Declaration { return hook("A", "Sync", fn([]decl.Field{field("ctx", "int")})) },
			message: "parameter name ctx is reserved for generated code",
		},
		{
			name: "duplicate name",
			decl: func() decl.Declaration {
				return hook("A", "Sync", fn([]decl.Field{field("p1", "int"), field("", "int")}))
			},
			message: "duplicate parameter name p1",
		},
		{
			name:    "embedded field",
			decl:    func() decl.Declaration { d := hook("Sync", "Sync", fn(nil)); d.Embedded = true; return d },
			message: "embedded hook field hooks.Sync[func(...)] must be named",
		},
		{
			name: "method with parameters",
			decl: func() decl.Declaration {
				d := hook("Route", "Sync", fn(nil))
				d.Method = &decl.MethodShape{Params: 1, Results: 1}
				return d
			},
			message: "hook property method Route must not take parameters",
		},
		{
			name: "unimported package",
			decl: func() decl.Declaration {
				d := hook("A", "Sync", fn([]decl.Field{{Name: "u", Type: "url.URL", Qualifiers: []string{"url"}}}))
				return d
			},
			message: "package url referenced by the signature is not imported",
		},
		{
			name: "parameter shadows package",
			decl: func() decl.Declaration {
				return hook("A", "Sync", fn([]decl.Field{
					{Name: "time", Type: "time.Time", Qualifiers: []string{"time"}},
				}))
			},
			message: "parameter name time shadows an imported package",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.decl()
			v := Validate(container(d), d)
			require.False(t, v.IsValid())

			errs := v.Errors()
			var messages []string
			for _, e := range errs {
				assert.True(t, errors.Is(e, errors.ErrMalformedSignature))
				assert.Equal(t, "CarHooks", e.Container)
				messages = append(messages, e.Message)
			}
			assert.Contains(t, joined(messages), tt.message)
		})
	}
}

func TestValidate_CollectsAllSignatureErrors(t *testing.T) {
	d := hook("A", "SyncWaterfall", fn([]decl.Field{field("ctx", "int"), field("ctx", "int")}, field("", "string")))
	d.Embedded = true

	errs := Validate(container(d), d).Errors()
	// embedded, result mismatch, reserved twice
	assert.Len(t, errs, 4)
}

func TestValidateContainer_MultiError(t *testing.T) {
	notAbstract := hook("Brake", "SyncBail", fn(nil, field("", "string")))
	notAbstract.Abstract = false
	unknown := hook("Steer", "SyncBale", fn(nil))
	ok := hook("Accelerate", "Sync", fn([]decl.Field{field("newSpeed", "int")}))

	v := ValidateContainer(container(ok, notAbstract, unknown))
	require.False(t, v.IsValid())

	errs := v.Errors()
	require.Len(t, errs, 2)
	assert.Equal(t, "Brake", errs[0].Declaration)
	assert.True(t, errors.Is(errs[0], errors.ErrNotAbstract))
	assert.Equal(t, "Steer", errs[1].Declaration)
	assert.True(t, errors.Is(errs[1], errors.ErrUnknownVariant))

	combined := errs.Err()
	require.Error(t, combined)
	assert.True(t, errors.Is(combined, errors.ErrNotAbstract))
	assert.True(t, errors.Is(combined, errors.ErrUnknownVariant))
}

func TestValidateContainer_PreservesOrderAndSkipsNonHooks(t *testing.T) {
	plain := decl.Declaration{Name: "Name", Abstract: true, Type: decl.TypeRef{Name: "string"}}
	clock := decl.Declaration{Name: "Clock", Abstract: true, Type: decl.TypeRef{Qualifier: "time", Name: "Duration"}}

	v := ValidateContainer(container(
		hook("C", "Sync", fn(nil)),
		plain,
		hook("A", "SyncLoop", fn(nil)),
		clock,
		hook("B", "AsyncSeriesParallel", fn(nil)),
	))
	infos, errs := v.Get()
	require.Empty(t, errs)

	var props []string
	for _, info := range infos {
		props = append(props, info.Property)
	}
	assert.Equal(t, []string{"C", "A", "B"}, props)
}

func TestValidateContainer_Empty(t *testing.T) {
	infos, errs := ValidateContainer(container()).Get()
	assert.Empty(t, errs)
	assert.Empty(t, infos)
}

func TestValidateContainer_ClassNameCollision(t *testing.T) {
	v := ValidateContainer(container(
		hook("accelerate", "Sync", fn(nil)),
		hook("Accelerate", "Sync", fn(nil)),
	))

	errs := v.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "Accelerate", errs[0].Declaration)
	assert.Contains(t, errs[0].Message, "generated type CarHooksAccelerateHook collides with property accelerate")
}

func TestDenotes(t *testing.T) {
	c := container()
	assert.True(t, Denotes(c, hook("A", "Sync", fn(nil))))
	assert.True(t, Denotes(c, hook("A", "Unknown", fn(nil))), "unknown variants still denote hooks")

	other := hook("A", "Sync", fn(nil))
	other.Type.Qualifier = "time"
	assert.False(t, Denotes(c, other))

	aliased := hook("A", "Sync", fn(nil))
	aliased.Type.Qualifier = "h"
	aliased.Imports = []decl.Import{{Name: "h", Path: runtimePath, Explicit: true}}
	assert.True(t, Denotes(c, aliased))
}

func TestCombine(t *testing.T) {
	e1 := Error{Message: "one"}
	e2 := Error{Message: "two"}

	sum := func(a, b int) int { return a + b }
	assert.Equal(t, 3, func() int { v, _ := Combine(Valid(1), Valid(2), sum).Get(); return v }())

	both := Combine(Invalid[int](e1), Invalid[int](e2), sum)
	assert.Equal(t, Errors{e1, e2}, both.Errors())

	left := Combine(Invalid[int](e1), Valid(2), sum)
	assert.Equal(t, Errors{e1}, left.Errors())
}

func TestErrorsErr(t *testing.T) {
	assert.NoError(t, Errors(nil).Err())

	errs := Errors{
		{Container: "C", Declaration: "A", Message: "bad", Cause: errors.ErrMalformedSignature},
	}
	assert.Equal(t, "C.A: bad", errs.Err().Error())
}

func joined(messages []string) string {
	out := ""
	for _, m := range messages {
		out += m + "\n"
	}
	return out
}
