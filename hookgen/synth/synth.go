package synth

import (
	"fmt"

	"github.com/teranos/qntx-hooks/hookgen/model"
	"github.com/teranos/qntx-hooks/hookgen/variant"
)

// AdapterInput describes the call an adapter forwards from.
type AdapterInput struct {
	// Params are the generated Call's parameters after the context; a
	// concurrency bound, when present, comes first.
	Params []Param
	// Stored is the type of the callback the adapter receives.
	Stored  string
	Results []string
	Async   bool
}

// NewAdapter builds the function literal a Call hands to its runtime base:
//
//	func([ctx context.Context,] f Stored, [acc A,] hookCtx *hooks.HookContext) Results {
//		return f([ctx,] hookCtx, params...)
//	}
//
// With accumulator set, the adapter's accumulator parameter takes the first
// declared parameter's name, so the running value shadows the call argument
// and is what gets forwarded. With concurrency set, the leading bound is
// never forwarded.
func NewAdapter(in AdapterInput, accumulator, concurrency bool) Adapter {
	params := in.Params
	if concurrency {
		params = params[1:]
	}

	var a Adapter
	if in.Async {
		a.Params = append(a.Params, Param{Name: "ctx", Type: contextType})
		a.Args = append(a.Args, "ctx")
	}
	a.Params = append(a.Params, Param{Name: "f", Type: in.Stored})
	if accumulator {
		a.Params = append(a.Params, Param{Name: params[0].Name, Type: params[0].Type})
	}
	a.Params = append(a.Params, Param{Name: "hookCtx", Type: hookContextType})
	a.Args = append(a.Args, "hookCtx")
	a.Args = append(a.Args, forward(params)...)

	a.Results = in.Results
	a.Callee = "f"
	return a
}

// Synthesize builds the generated type for a validated hook. It cannot fail.
func Synthesize(info model.HookInfo) Class {
	rule := variant.For(info.Variant)

	declared := make([]Param, len(info.Params))
	types := make([]Param, len(info.Params))
	for i, p := range info.Params {
		declared[i] = Param{Name: p.Name, Type: p.Type, Variadic: p.Variadic}
		types[i] = Param{Type: p.Type, Variadic: p.Variadic}
	}

	var lead, storedParams []Param
	if rule.Async {
		lead = append(lead, Param{Name: "ctx", Type: contextType})
		storedParams = append(storedParams, Param{Type: contextType})
	}
	storedParams = append(storedParams, Param{Type: hookContextType})
	storedParams = append(storedParams, types...)

	tapResults := rule.TapResults(info.Result, Runtime)
	stored := FuncType(storedParams, tapResults)
	plain := FuncType(append(append([]Param(nil), lead...), declared...), tapResults)

	super := TypeRef{Base: Runtime + "." + rule.Base, Args: []string{stored}}
	var loop string
	switch rule.Extra {
	case variant.ExtraResult:
		super.Args = append(super.Args, info.Result)
	case variant.ExtraAccumulator:
		super.Args = append(super.Args, info.Params[0].Type)
	case variant.ExtraLoopInterceptor:
		var results []string
		if rule.Async {
			results = []string{"error"}
		}
		loop = FuncType(storedParams, results)
		super.Args = append(super.Args, loop)
	}

	class := Class{
		Name:         info.ClassName,
		TypeParams:   info.TypeParams,
		Super:        super,
		Field:        rule.Base,
		Experimental: rule.Experimental,
		Property:     info.Property,
		Variant:      info.Variant,
		Async:        rule.Async,
		Imports:      info.Imports,
		Doc:          classDoc(info, rule),
	}

	class.Call = callMethod(rule, class.Field, lead, declared, stored, loop, info)
	class.Tap = Method{
		Name:    "Tap",
		Params:  []Param{{Name: "name", Type: "string"}, {Name: "f", Type: plain}},
		Results: []string{"string"},
		Body: Body{
			Return: true,
			Target: "h.TapWithID",
			Args:   []Arg{{Expr: "name"}, {Expr: "h.NextID()"}, {Expr: "f"}},
		},
		Doc: "Tap registers f under name with a generated id and returns the id.",
	}

	wrapper := Adapter{
		Params:  append(append(append([]Param(nil), lead...), Param{Name: "_", Type: hookContextType}), declared...),
		Results: tapResults,
		Callee:  "f",
		Args:    append(names(lead), forward(declared)...),
	}
	class.TapWithID = Method{
		Name:    "TapWithID",
		Params:  []Param{{Name: "name", Type: "string"}, {Name: "id", Type: "string"}, {Name: "f", Type: plain}},
		Results: []string{"string"},
		Body: Body{
			Return: true,
			Target: "h." + class.Field + ".Tap",
			Args:   []Arg{{Expr: "name"}, {Expr: "id"}, {Adapter: &wrapper}},
		},
		Doc: "TapWithID registers f under name and id, replacing any tap with the same id.",
	}

	return class
}

func callMethod(rule variant.Rule, field string, lead, declared []Param, stored, loop string, info model.HookInfo) Method {
	var bound []Param
	if rule.Concurrency {
		bound = []Param{{Name: "concurrency", Type: "int"}}
	}
	forwarded := append(append([]Param(nil), bound...), declared...)
	tapResults := rule.TapResults(info.Result, Runtime)

	var args []Arg
	if rule.Async {
		args = append(args, Arg{Expr: "ctx"})
	}
	if rule.Concurrency {
		args = append(args, Arg{Expr: "concurrency"})
	}
	if rule.Accumulator {
		args = append(args, Arg{Expr: declared[0].Name})
	}

	dispatch := NewAdapter(AdapterInput{
		Params:  forwarded,
		Stored:  stored,
		Results: tapResults,
		Async:   rule.Async,
	}, rule.Accumulator, rule.Concurrency)
	args = append(args, Arg{Adapter: &dispatch})

	if rule.Loop {
		var results []string
		if rule.Async {
			results = []string{"error"}
		}
		intercept := NewAdapter(AdapterInput{
			Params:  forwarded,
			Stored:  loop,
			Results: results,
			Async:   rule.Async,
		}, false, false)
		args = append(args, Arg{Adapter: &intercept})
	}

	results := rule.CallResults(info.Result)
	return Method{
		Name:    "Call",
		Params:  append(append([]Param(nil), lead...), forwarded...),
		Results: results,
		Body: Body{
			Return: len(results) > 0,
			Target: "h." + field + ".Call",
			Args:   args,
		},
		Doc: callDoc(rule, declared),
	}
}

func callDoc(rule variant.Rule, declared []Param) string {
	switch {
	case rule.Concurrency:
		return "Call runs the taps concurrently, at most concurrency at a time, and returns the first non-nil result."
	case rule.Parallel:
		return "Call runs every tap concurrently and waits for all of them."
	case rule.Bail:
		return "Call invokes the taps in order and returns the first non-nil result, or nil."
	case rule.Accumulator:
		return fmt.Sprintf("Call threads %s through the taps in order and returns the last tap's result.", declared[0].Name)
	case rule.Loop:
		return "Call re-runs the taps until a full pass completes without a Restart."
	case rule.Async:
		return "Call awaits every tap in order, stopping at the first error."
	default:
		return "Call invokes every tap in registration order."
	}
}

func classDoc(info model.HookInfo, rule variant.Rule) string {
	doc := fmt.Sprintf("%s is the %s hook %s of %s.", info.ClassName, info.Variant, info.Property, info.Container)
	if rule.Experimental {
		doc += "\n\nExperimental: bounded parallel dispatch picks the winning result by completion order and may change."
	}
	return doc
}

// forward renders parameters as call arguments, spreading a variadic one.
func forward(params []Param) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.Name
		if p.Variadic {
			out[i] += "..."
		}
	}
	return out
}

func names(params []Param) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.Name
	}
	return out
}
