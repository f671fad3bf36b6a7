package aggregates

import explorer "github.com/muneeb706/ad-data-explorer"

var MeanOverloads = []Descriptor{
	{
		ArgumentType: explorer.TypeIDInt,
		OutputType:   explorer.TypeIDFloat,
		Prototype:    NewMeanPrototype(),
	},
	{
		ArgumentType: explorer.TypeIDFloat,
		OutputType:   explorer.TypeIDFloat,
		Prototype:    NewMeanPrototype(),
	},
}

// Mean composes a float sum with a non-null count. Integer cells widen, so
// the mean of an integer column is a float.
type Mean struct {
	sum   SumFloat
	count Count
}

func NewMeanPrototype() func() Aggregate {
	return func() Aggregate {
		return &Mean{}
	}
}

func (c *Mean) Add(value explorer.Value) {
	if value.IsNull() {
		return
	}
	if value.TypeID == explorer.TypeIDInt {
		value = explorer.NewFloat(float64(value.Int))
	}
	c.sum.Add(value)
	c.count.Add(value)
}

func (c *Mean) Trigger() explorer.Value {
	count := c.count.Trigger().Int
	if count == 0 {
		return explorer.NewNull()
	}
	return explorer.NewFloat(c.sum.Trigger().Float / float64(count))
}
