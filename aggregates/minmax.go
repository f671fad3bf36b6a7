package aggregates

import (
	"fmt"

	"github.com/google/btree"

	explorer "github.com/muneeb706/ad-data-explorer"
)

const btreeDefaultDegree = 12

var MinOverloads = []Descriptor{
	{
		ArgumentType: explorer.TypeIDInt,
		OutputType:   explorer.TypeIDInt,
		Prototype:    NewMinPrototype(),
	},
	{
		ArgumentType: explorer.TypeIDFloat,
		OutputType:   explorer.TypeIDFloat,
		Prototype:    NewMinPrototype(),
	},
	{
		ArgumentType: explorer.TypeIDString,
		OutputType:   explorer.TypeIDString,
		Prototype:    NewMinPrototype(),
	},
}

var MaxOverloads = []Descriptor{
	{
		ArgumentType: explorer.TypeIDInt,
		OutputType:   explorer.TypeIDInt,
		Prototype:    NewMaxPrototype(),
	},
	{
		ArgumentType: explorer.TypeIDFloat,
		OutputType:   explorer.TypeIDFloat,
		Prototype:    NewMaxPrototype(),
	},
	{
		ArgumentType: explorer.TypeIDString,
		OutputType:   explorer.TypeIDString,
		Prototype:    NewMaxPrototype(),
	},
}

type extremumKey struct {
	value explorer.Value
	count int
}

func (key *extremumKey) Less(than btree.Item) bool {
	thanTyped, ok := than.(*extremumKey)
	if !ok {
		panic(fmt.Sprintf("invalid key comparison: %T", than))
	}

	return key.value.Compare(thanTyped.value) == -1
}

// extremum keeps the seen non-null values in an ordered multiset; Min and
// Max trigger off its opposite ends.
type extremum struct {
	items *btree.BTree
}

func (c *extremum) Add(value explorer.Value) {
	if value.IsNull() {
		return
	}

	item := c.items.Get(&extremumKey{value: value})
	var itemTyped *extremumKey

	if item == nil {
		itemTyped = &extremumKey{value: value, count: 0}
		c.items.ReplaceOrInsert(itemTyped)
	} else {
		var ok bool
		itemTyped, ok = item.(*extremumKey)
		if !ok {
			panic(fmt.Sprintf("invalid received item: %v", item))
		}
	}
	itemTyped.count++
}

type Min struct {
	extremum
}

func NewMinPrototype() func() Aggregate {
	return func() Aggregate {
		return &Min{extremum{items: btree.New(btreeDefaultDegree)}}
	}
}

func (c *Min) Trigger() explorer.Value {
	if c.items.Len() == 0 {
		return explorer.NewNull()
	}
	return c.items.Min().(*extremumKey).value
}

type Max struct {
	extremum
}

func NewMaxPrototype() func() Aggregate {
	return func() Aggregate {
		return &Max{extremum{items: btree.New(btreeDefaultDegree)}}
	}
}

func (c *Max) Trigger() explorer.Value {
	if c.items.Len() == 0 {
		return explorer.NewNull()
	}
	return c.items.Max().(*extremumKey).value
}
