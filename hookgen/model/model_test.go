package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVariant(t *testing.T) {
	for _, v := range Variants() {
		got, ok := ParseVariant(v.String())
		assert.True(t, ok, v.String())
		assert.Equal(t, v, got)
	}

	for _, name := range []string{"", "sync", "SyncBale", "AsyncParallel", "Hooks"} {
		_, ok := ParseVariant(name)
		assert.False(t, ok, name)
	}
}

func TestVariantIsAsync(t *testing.T) {
	var async []string
	for _, v := range Variants() {
		if v.IsAsync() {
			async = append(async, v.String())
		}
	}
	assert.Equal(t, []string{
		"AsyncSeries", "AsyncSeriesLoop", "AsyncSeriesWaterfall", "AsyncSeriesBail",
		"AsyncSeriesParallel", "AsyncSeriesParallelBail",
	}, async)
}

func TestVariantsOrder(t *testing.T) {
	vs := Variants()
	assert.Len(t, vs, NumVariants)
	assert.Equal(t, Sync, vs[0])
	assert.Equal(t, AsyncSeriesParallelBail, vs[NumVariants-1])
}

func TestParameters(t *testing.T) {
	p := Parameters{{Name: "x", Type: "int"}, {Name: "rest", Type: "string", Variadic: true}}
	assert.Equal(t, []string{"x", "rest"}, p.Names())
	assert.True(t, p.Variadic())
	assert.False(t, Parameters{}.Variadic())
}
