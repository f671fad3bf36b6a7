package aggregates

import (
	"testing"

	"github.com/stretchr/testify/assert"

	explorer "github.com/muneeb706/ad-data-explorer"
)

func feed(aggr Aggregate, values ...explorer.Value) Aggregate {
	for _, v := range values {
		aggr.Add(v)
	}
	return aggr
}

func TestCount(t *testing.T) {
	aggr := feed(NewCountPrototype()(),
		explorer.NewInt(1), explorer.NewNull(), explorer.NewInt(3))
	assert.Equal(t, explorer.NewInt(2), aggr.Trigger())

	// Count of nothing is zero, not null.
	assert.Equal(t, explorer.NewInt(0), NewCountPrototype()().Trigger())
}

func TestCountAll(t *testing.T) {
	aggr := feed(NewCountAllPrototype()(),
		explorer.NewInt(1), explorer.NewNull(), explorer.NewInt(3))
	assert.Equal(t, explorer.NewInt(3), aggr.Trigger())
}

func TestSumInt(t *testing.T) {
	aggr := feed(NewSumIntPrototype()(),
		explorer.NewInt(10), explorer.NewNull(), explorer.NewInt(30))
	assert.Equal(t, explorer.NewInt(40), aggr.Trigger())
}

func TestSumFloat(t *testing.T) {
	aggr := feed(NewSumFloatPrototype()(),
		explorer.NewFloat(0.5), explorer.NewFloat(1.5))
	assert.Equal(t, explorer.NewFloat(2), aggr.Trigger())
}

func TestSumAllNullIsNull(t *testing.T) {
	aggr := feed(NewSumIntPrototype()(), explorer.NewNull(), explorer.NewNull())
	assert.True(t, aggr.Trigger().IsNull())
}

func TestMean(t *testing.T) {
	aggr := feed(NewMeanPrototype()(),
		explorer.NewInt(10), explorer.NewInt(20), explorer.NewInt(30))
	assert.Equal(t, explorer.NewFloat(20), aggr.Trigger())

	// Nulls are excluded from both the sum and the divisor.
	aggr = feed(NewMeanPrototype()(),
		explorer.NewFloat(1), explorer.NewNull(), explorer.NewFloat(2))
	assert.Equal(t, explorer.NewFloat(1.5), aggr.Trigger())

	assert.True(t, NewMeanPrototype()().Trigger().IsNull())
}

func TestMinMax(t *testing.T) {
	values := []explorer.Value{
		explorer.NewInt(7), explorer.NewNull(), explorer.NewInt(-2), explorer.NewInt(5),
	}

	assert.Equal(t, explorer.NewInt(-2), feed(NewMinPrototype()(), values...).Trigger())
	assert.Equal(t, explorer.NewInt(7), feed(NewMaxPrototype()(), values...).Trigger())

	strs := []explorer.Value{
		explorer.NewString("Bob"), explorer.NewString("Ann"), explorer.NewString("Cid"),
	}
	assert.Equal(t, explorer.NewString("Ann"), feed(NewMinPrototype()(), strs...).Trigger())
	assert.Equal(t, explorer.NewString("Cid"), feed(NewMaxPrototype()(), strs...).Trigger())

	assert.True(t, NewMinPrototype()().Trigger().IsNull())
	assert.True(t, NewMaxPrototype()().Trigger().IsNull())
}

func TestDescriptorTable(t *testing.T) {
	for _, name := range []string{"count", "sum", "mean", "min", "max"} {
		overloads, ok := Aggregates[name]
		assert.True(t, ok, name)
		assert.NotEmpty(t, overloads, name)
	}

	_, ok := Aggregates["median"]
	assert.False(t, ok)
}
