// Package model holds the validated description of a hook: its variant and
// its parameter signature.
package model

import (
	"strconv"

	"github.com/teranos/qntx-hooks/hookgen/decl"
)

// Variant is one of the ten hook execution patterns. The set is closed.
type Variant uint8

const (
	Sync Variant = iota
	SyncBail
	SyncLoop
	SyncWaterfall
	AsyncSeries
	AsyncSeriesLoop
	AsyncSeriesWaterfall
	AsyncSeriesBail
	AsyncSeriesParallel
	AsyncSeriesParallelBail
)

// NumVariants is the number of variants.
const NumVariants = 10

var variantNames = [NumVariants]string{
	Sync:                    "Sync",
	SyncBail:                "SyncBail",
	SyncLoop:                "SyncLoop",
	SyncWaterfall:           "SyncWaterfall",
	AsyncSeries:             "AsyncSeries",
	AsyncSeriesLoop:         "AsyncSeriesLoop",
	AsyncSeriesWaterfall:    "AsyncSeriesWaterfall",
	AsyncSeriesBail:         "AsyncSeriesBail",
	AsyncSeriesParallel:     "AsyncSeriesParallel",
	AsyncSeriesParallelBail: "AsyncSeriesParallelBail",
}

func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return "Variant(" + strconv.Itoa(int(v)) + ")"
}

// IsAsync reports whether calls of this variant take a context and return
// an error.
func (v Variant) IsAsync() bool {
	return v >= AsyncSeries && v <= AsyncSeriesParallelBail
}

// Variants returns all variants in declaration order.
func Variants() []Variant {
	out := make([]Variant, NumVariants)
	for i := range out {
		out[i] = Variant(i)
	}
	return out
}

// ParseVariant maps a declaration type name to its variant. Matching is
// exact; there is no default.
func ParseVariant(name string) (Variant, bool) {
	for i, n := range variantNames {
		if n == name {
			return Variant(i), true
		}
	}
	return 0, false
}

// Parameter is one parameter of a hook signature. Name is never empty once
// validated; unnamed parameters get positional names p0, p1, ...
type Parameter struct {
	Name     string
	Type     string
	Variadic bool
}

// Parameters is an ordered parameter list. All later stages forward
// arguments by position.
type Parameters []Parameter

// Names returns the parameter names in order.
func (p Parameters) Names() []string {
	out := make([]string, len(p))
	for i, param := range p {
		out[i] = param.Name
	}
	return out
}

// Variadic reports whether the last parameter is variadic.
func (p Parameters) Variadic() bool {
	return len(p) > 0 && p[len(p)-1].Variadic
}

// HookInfo is a validated hook declaration. Only the validator builds it.
type HookInfo struct {
	Variant Variant
	Params  Parameters
	// Result is the declared result type, "" when the signature returns
	// nothing.
	Result string
	Async  bool
	// Property is the declared property name; ClassName the generated type.
	Property  string
	ClassName string
	// Exported reports whether the property is exported.
	Exported bool
	// Container and TypeParams come from the declaring container.
	Container  string
	TypeParams []decl.TypeParam
	// Imports are the packages the signature references.
	Imports []decl.Import
	Pos     decl.Position
}
