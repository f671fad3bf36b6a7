package aggregates

import explorer "github.com/muneeb706/ad-data-explorer"

var CountOverloads = []Descriptor{
	{
		ArgumentType: explorer.TypeIDInt,
		OutputType:   explorer.TypeIDInt,
		Prototype:    NewCountPrototype(),
	},
	{
		ArgumentType: explorer.TypeIDFloat,
		OutputType:   explorer.TypeIDInt,
		Prototype:    NewCountPrototype(),
	},
	{
		ArgumentType: explorer.TypeIDString,
		OutputType:   explorer.TypeIDInt,
		Prototype:    NewCountPrototype(),
	},
}

// Count counts non-null cells.
type Count struct {
	count int64
}

func NewCountPrototype() func() Aggregate {
	return func() Aggregate {
		return &Count{}
	}
}

func (c *Count) Add(value explorer.Value) {
	if value.IsNull() {
		return
	}
	c.count++
}

func (c *Count) Trigger() explorer.Value {
	return explorer.NewInt(c.count)
}

// CountAll counts every cell it is fed, nulls included. It backs the
// unqualified count, which counts whole rows.
type CountAll struct {
	count int64
}

func NewCountAllPrototype() func() Aggregate {
	return func() Aggregate {
		return &CountAll{}
	}
}

func (c *CountAll) Add(value explorer.Value) {
	c.count++
}

func (c *CountAll) Trigger() explorer.Value {
	return explorer.NewInt(c.count)
}
