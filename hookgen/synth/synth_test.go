package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/qntx-hooks/hookgen/decl"
	"github.com/teranos/qntx-hooks/hookgen/model"
)

func info(v model.Variant, result string, params ...model.Parameter) model.HookInfo {
	return model.HookInfo{
		Variant:   v,
		Params:    params,
		Result:    result,
		Async:     v.IsAsync(),
		Property:  "Prop",
		ClassName: "CarHooksPropHook",
		Exported:  true,
		Container: "CarHooks",
	}
}

func p(name, typ string) model.Parameter {
	return model.Parameter{Name: name, Type: typ}
}

func signature(m Method) string {
	return m.Name + FuncType(m.Params, m.Results)[len("func"):]
}

func TestSynthesize_SyncBailCallShape(t *testing.T) {
	c := Synthesize(info(model.SyncBail, "string", p("x", "int"), p("y", "int")))

	assert.Equal(t, "hooks.SyncBailHook[func(*hooks.HookContext, int, int) *string, string]", c.Super.String())
	assert.Equal(t, "SyncBailHook", c.Field)
	assert.Equal(t, "Call(x int, y int) *string", signature(c.Call))
	assert.Equal(t, "Tap(name string, f func(x int, y int) *string) string", signature(c.Tap))
	assert.Equal(t, "TapWithID(name string, id string, f func(x int, y int) *string) string", signature(c.TapWithID))

	body := c.Call.Body
	assert.True(t, body.Return)
	assert.Equal(t, "h.SyncBailHook.Call", body.Target)
	require.Len(t, body.Args, 1)
	adapter := body.Args[0].Adapter
	require.NotNil(t, adapter)
	assert.Equal(t, "func(f func(*hooks.HookContext, int, int) *string, hookCtx *hooks.HookContext) *string", FuncType(adapter.Params, adapter.Results))
	assert.Equal(t, []string{"hookCtx", "x", "y"}, adapter.Args)
	assert.False(t, c.Experimental)
}

func TestSynthesize_SyncVoid(t *testing.T) {
	c := Synthesize(info(model.Sync, "", p("newSpeed", "int")))

	assert.Equal(t, "hooks.SyncHook[func(*hooks.HookContext, int)]", c.Super.String())
	assert.Equal(t, "Call(newSpeed int)", signature(c.Call))
	assert.False(t, c.Call.Body.Return)

	wrapper := c.TapWithID.Body.Args[2].Adapter
	require.NotNil(t, wrapper)
	assert.Equal(t, "func(_ *hooks.HookContext, newSpeed int)", FuncType(wrapper.Params, wrapper.Results))
	assert.Equal(t, []string{"newSpeed"}, wrapper.Args)
	assert.Equal(t, "h.SyncHook.Tap", c.TapWithID.Body.Target)
}

func TestSynthesize_WaterfallThreadsAccumulator(t *testing.T) {
	c := Synthesize(info(model.SyncWaterfall, "int", p("distance", "int"), p("stops", "int")))

	assert.Equal(t, "hooks.SyncWaterfallHook[func(*hooks.HookContext, int, int) int, int]", c.Super.String())
	assert.Equal(t, "Call(distance int, stops int) int", signature(c.Call))

	args := c.Call.Body.Args
	require.Len(t, args, 2)
	assert.Equal(t, "distance", args[0].Expr, "first parameter seeds the accumulator")

	adapter := args[1].Adapter
	require.NotNil(t, adapter)
	assert.Equal(t, "func(f func(*hooks.HookContext, int, int) int, distance int, hookCtx *hooks.HookContext) int", FuncType(adapter.Params, adapter.Results))
	assert.Equal(t, []string{"hookCtx", "distance", "stops"}, adapter.Args)
}

func TestSynthesize_ConcurrencyIsParameterZero(t *testing.T) {
	for _, params := range [][]model.Parameter{
		nil,
		{p("plate", "string")},
		{p("a", "int"), p("b", "string"), p("c", "bool")},
	} {
		c := Synthesize(info(model.AsyncSeriesParallelBail, "string", params...))

		require.GreaterOrEqual(t, len(c.Call.Params), 2)
		assert.Equal(t, Param{Name: "ctx", Type: "context.Context"}, c.Call.Params[0])
		assert.Equal(t, Param{Name: "concurrency", Type: "int"}, c.Call.Params[1])
		assert.Len(t, c.Call.Params, len(params)+2)
		assert.Equal(t, []string{"*string", "error"}, c.Call.Results)

		args := c.Call.Body.Args
		require.Len(t, args, 3)
		assert.Equal(t, "ctx", args[0].Expr)
		assert.Equal(t, "concurrency", args[1].Expr)

		adapter := args[2].Adapter
		require.NotNil(t, adapter)
		assert.NotContains(t, adapter.Args, "concurrency")
		assert.Len(t, adapter.Args, len(params)+2) // ctx, hookCtx, declared

		assert.NotContains(t, FuncType(c.Tap.Params, nil), "concurrency")
		assert.True(t, c.Experimental)
		assert.Contains(t, c.Doc, "Experimental:")
	}
}

func TestSynthesize_AsyncSeries(t *testing.T) {
	c := Synthesize(info(model.AsyncSeries, "", p("driver", "string")))

	assert.Equal(t, "hooks.AsyncSeriesHook[func(context.Context, *hooks.HookContext, string) error]", c.Super.String())
	assert.Equal(t, "Call(ctx context.Context, driver string) error", signature(c.Call))
	assert.Equal(t, "Tap(name string, f func(ctx context.Context, driver string) error) string", signature(c.Tap))

	adapter := c.Call.Body.Args[1].Adapter
	assert.Equal(t, "func(ctx context.Context, f func(context.Context, *hooks.HookContext, string) error, hookCtx *hooks.HookContext) error", FuncType(adapter.Params, adapter.Results))
	assert.Equal(t, []string{"ctx", "hookCtx", "driver"}, adapter.Args)

	wrapper := c.TapWithID.Body.Args[2].Adapter
	assert.Equal(t, "func(ctx context.Context, _ *hooks.HookContext, driver string) error", FuncType(wrapper.Params, wrapper.Results))
	assert.Equal(t, []string{"ctx", "driver"}, wrapper.Args)
}

func TestSynthesize_AsyncShapes(t *testing.T) {
	tests := []struct {
		variant model.Variant
		result  string
		super   string
		call    string
	}{
		{
			model.AsyncSeriesBail, "string",
			"hooks.AsyncSeriesBailHook[func(context.Context, *hooks.HookContext, int) (*string, error), string]",
			"Call(ctx context.Context, n int) (*string, error)",
		},
		{
			model.AsyncSeriesWaterfall, "int",
			"hooks.AsyncSeriesWaterfallHook[func(context.Context, *hooks.HookContext, int) (int, error), int]",
			"Call(ctx context.Context, n int) (int, error)",
		},
		{
			model.AsyncSeriesLoop, "",
			"hooks.AsyncSeriesLoopHook[func(context.Context, *hooks.HookContext, int) (hooks.LoopResult, error), func(context.Context, *hooks.HookContext, int) error]",
			"Call(ctx context.Context, n int) error",
		},
		{
			model.AsyncSeriesParallel, "",
			"hooks.AsyncParallelHook[func(context.Context, *hooks.HookContext, int) error]",
			"Call(ctx context.Context, n int) error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.variant.String(), func(t *testing.T) {
			c := Synthesize(info(tt.variant, tt.result, p("n", "int")))
			assert.Equal(t, tt.super, c.Super.String())
			assert.Equal(t, tt.call, signature(c.Call))
		})
	}
}

func TestSynthesize_SyncLoopPassesInterceptorAdapter(t *testing.T) {
	c := Synthesize(info(model.SyncLoop, "", p("lap", "int")))

	assert.Equal(t, "hooks.SyncLoopHook[func(*hooks.HookContext, int) hooks.LoopResult, func(*hooks.HookContext, int)]", c.Super.String())
	assert.False(t, c.Call.Body.Return)

	args := c.Call.Body.Args
	require.Len(t, args, 2)
	assert.Equal(t, "func(f func(*hooks.HookContext, int) hooks.LoopResult, hookCtx *hooks.HookContext) hooks.LoopResult", FuncType(args[0].Adapter.Params, args[0].Adapter.Results))
	assert.Equal(t, "func(f func(*hooks.HookContext, int), hookCtx *hooks.HookContext)", FuncType(args[1].Adapter.Params, args[1].Adapter.Results))
	assert.Equal(t, []string{"hookCtx", "lap"}, args[1].Adapter.Args)
}

func TestSynthesize_VariadicForwarding(t *testing.T) {
	c := Synthesize(info(model.Sync, "", p("prefix", "string"), model.Parameter{Name: "parts", Type: "string", Variadic: true}))

	assert.Equal(t, "hooks.SyncHook[func(*hooks.HookContext, string, ...string)]", c.Super.String())
	assert.Equal(t, "Call(prefix string, parts ...string)", signature(c.Call))
	assert.Equal(t, []string{"hookCtx", "prefix", "parts..."}, c.Call.Body.Args[0].Adapter.Args)
	assert.Equal(t, []string{"prefix", "parts..."}, c.TapWithID.Body.Args[2].Adapter.Args)
}

func TestSynthesize_TapDelegatesToTapWithID(t *testing.T) {
	c := Synthesize(info(model.Sync, ""))

	assert.Equal(t, Body{
		Return: true,
		Target: "h.TapWithID",
		Args:   []Arg{{Expr: "name"}, {Expr: "h.NextID()"}, {Expr: "f"}},
	}, c.Tap.Body)
	assert.Equal(t, []Arg{{Expr: "name"}, {Expr: "id"}}, c.TapWithID.Body.Args[:2])
}

func TestSynthesize_GenericInstance(t *testing.T) {
	in := info(model.SyncBail, "V", p("key", "K"))
	in.ClassName = "CacheMissHook"
	in.TypeParams = []decl.TypeParam{{Name: "K", Constraint: "comparable"}, {Name: "V", Constraint: "any"}}

	c := Synthesize(in)
	assert.Equal(t, "CacheMissHook[K, V]", c.Instance())
	assert.Equal(t, "hooks.SyncBailHook[func(*hooks.HookContext, K) *V, V]", c.Super.String())
}

func TestSynthesize_Deterministic(t *testing.T) {
	for _, v := range model.Variants() {
		result := ""
		if v == model.SyncBail || v == model.AsyncSeriesBail || v == model.AsyncSeriesParallelBail ||
			v == model.SyncWaterfall || v == model.AsyncSeriesWaterfall {
			result = "int"
		}
		in := info(v, result, p("a", "int"), p("b", "string"))
		assert.Equal(t, Synthesize(in), Synthesize(in), v.String())
	}
}

func TestNewAdapter(t *testing.T) {
	params := []Param{{Name: "concurrency", Type: "int"}, {Name: "acc", Type: "int"}, {Name: "rest", Type: "int"}}

	a := NewAdapter(AdapterInput{Params: params, Stored: "F", Results: []string{"int"}}, true, true)
	assert.Equal(t, "func(f F, acc int, hookCtx *hooks.HookContext) int", FuncType(a.Params, a.Results))
	assert.Equal(t, []string{"hookCtx", "acc", "rest"}, a.Args)

	plain := NewAdapter(AdapterInput{Params: params[1:], Stored: "F", Async: true}, false, false)
	assert.Equal(t, "func(ctx context.Context, f F, hookCtx *hooks.HookContext)", FuncType(plain.Params, plain.Results))
	assert.Equal(t, []string{"ctx", "hookCtx", "acc", "rest"}, plain.Args)
}
