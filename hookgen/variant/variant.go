// Package variant is the rule table: for each of the ten hook variants, the
// runtime base it extends and how its Call dispatches.
//
// The synthesizer consults For once per hook instead of branching on the
// variant itself.
package variant

import (
	"github.com/teranos/qntx-hooks/errors"
	"github.com/teranos/qntx-hooks/hookgen/model"
)

// Extra is the second type argument of a runtime base, if any.
type Extra int

const (
	ExtraNone Extra = iota
	// ExtraResult is the declared result type (bail variants).
	ExtraResult
	// ExtraAccumulator is the first parameter's type (waterfall variants).
	ExtraAccumulator
	// ExtraLoopInterceptor is the loop interceptor function type.
	ExtraLoopInterceptor
)

func (e Extra) String() string {
	switch e {
	case ExtraResult:
		return "result"
	case ExtraAccumulator:
		return "accumulator"
	case ExtraLoopInterceptor:
		return "loop interceptor"
	default:
		return "-"
	}
}

// Rule is the fixed policy of one variant.
type Rule struct {
	Variant model.Variant
	// Base is the runtime type the generated hook embeds.
	Base  string
	Extra Extra
	// Accumulator threads a running value through the taps.
	Accumulator bool
	// Concurrency prepends a concurrency bound to Call.
	Concurrency bool
	// Bail stops at the first non-nil tap result.
	Bail bool
	// Loop re-runs taps until none asks for a restart.
	Loop bool
	// Parallel runs taps concurrently.
	Parallel bool
	Async    bool
	// Experimental marks the generated type's doc.
	Experimental bool
}

// Returns reports whether the declared signature must return a value.
// Every other variant must declare none.
func (r Rule) Returns() bool {
	return r.Bail || r.Accumulator
}

var table = [model.NumVariants]Rule{
	{Variant: model.Sync, Base: "SyncHook"},
	{Variant: model.SyncBail, Base: "SyncBailHook", Extra: ExtraResult, Bail: true},
	{Variant: model.SyncLoop, Base: "SyncLoopHook", Extra: ExtraLoopInterceptor, Loop: true},
	{Variant: model.SyncWaterfall, Base: "SyncWaterfallHook", Extra: ExtraAccumulator, Accumulator: true},
	{Variant: model.AsyncSeries, Base: "AsyncSeriesHook", Async: true},
	{Variant: model.AsyncSeriesLoop, Base: "AsyncSeriesLoopHook", Extra: ExtraLoopInterceptor, Loop: true, Async: true},
	{Variant: model.AsyncSeriesWaterfall, Base: "AsyncSeriesWaterfallHook", Extra: ExtraAccumulator, Accumulator: true, Async: true},
	{Variant: model.AsyncSeriesBail, Base: "AsyncSeriesBailHook", Extra: ExtraResult, Bail: true, Async: true},
	{Variant: model.AsyncSeriesParallel, Base: "AsyncParallelHook", Parallel: true, Async: true},
	{Variant: model.AsyncSeriesParallelBail, Base: "AsyncParallelBailHook", Extra: ExtraResult, Concurrency: true, Bail: true, Parallel: true, Async: true, Experimental: true},
}

// For returns the rule of v. A variant missing from the table is a
// programming error and panics.
func For(v model.Variant) Rule {
	if int(v) >= len(table) || table[v].Variant != v || table[v].Base == "" {
		panic(errors.AssertionFailedf("no rule for hook variant %s", v))
	}
	return table[v]
}

// All returns every rule in variant order.
func All() []Rule {
	rules := make([]Rule, 0, len(table))
	for _, v := range model.Variants() {
		rules = append(rules, For(v))
	}
	return rules
}

// TapResults is the result list of a tap callback, given the declared
// result type. runtime is the qualifier of the hook runtime package.
func (r Rule) TapResults(result, runtime string) []string {
	var out []string
	switch {
	case r.Bail:
		out = append(out, "*"+result)
	case r.Accumulator:
		out = append(out, result)
	case r.Loop:
		out = append(out, runtime+".LoopResult")
	}
	if r.Async {
		out = append(out, "error")
	}
	return out
}

// CallResults is the result list of the generated Call. Loop taps return
// a LoopResult but Call itself returns nothing beyond the async error.
func (r Rule) CallResults(result string) []string {
	var out []string
	switch {
	case r.Bail:
		out = append(out, "*"+result)
	case r.Accumulator:
		out = append(out, result)
	}
	if r.Async {
		out = append(out, "error")
	}
	return out
}
