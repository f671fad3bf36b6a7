package aggregates

import explorer "github.com/muneeb706/ad-data-explorer"

var SumOverloads = []Descriptor{
	{
		ArgumentType: explorer.TypeIDInt,
		OutputType:   explorer.TypeIDInt,
		Prototype:    NewSumIntPrototype(),
	},
	{
		ArgumentType: explorer.TypeIDFloat,
		OutputType:   explorer.TypeIDFloat,
		Prototype:    NewSumFloatPrototype(),
	},
}

type SumInt struct {
	sum  int64
	seen bool
}

func NewSumIntPrototype() func() Aggregate {
	return func() Aggregate {
		return &SumInt{}
	}
}

func (c *SumInt) Add(value explorer.Value) {
	if value.IsNull() {
		return
	}
	c.sum += value.Int
	c.seen = true
}

func (c *SumInt) Trigger() explorer.Value {
	if !c.seen {
		return explorer.NewNull()
	}
	return explorer.NewInt(c.sum)
}

type SumFloat struct {
	sum  float64
	seen bool
}

func NewSumFloatPrototype() func() Aggregate {
	return func() Aggregate {
		return &SumFloat{}
	}
}

func (c *SumFloat) Add(value explorer.Value) {
	if value.IsNull() {
		return
	}
	c.sum += value.Float
	c.seen = true
}

func (c *SumFloat) Trigger() explorer.Value {
	if !c.seen {
		return explorer.NewNull()
	}
	return explorer.NewFloat(c.sum)
}
