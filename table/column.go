package table

import (
	"github.com/pkg/errors"

	explorer "github.com/muneeb706/ad-data-explorer"
)

// Column is a tagged variant over typed arrays: exactly one of ints, floats,
// strs is populated, matching the column type. nulls marks missing cells and
// is nil when the column has none. Buffers are shared structurally between
// tables and never mutated after construction.
type Column struct {
	name   string
	typeID explorer.TypeID

	ints   []int64
	floats []float64
	strs   []string
	nulls  []bool
}

// NewColumn builds a column of the given type from cell values. Every cell
// must either be of the column type or null.
func NewColumn(name string, typeID explorer.TypeID, cells []explorer.Value) (Column, error) {
	col := Column{
		name:   name,
		typeID: typeID,
	}

	switch typeID {
	case explorer.TypeIDInt:
		col.ints = make([]int64, len(cells))
	case explorer.TypeIDFloat:
		col.floats = make([]float64, len(cells))
	case explorer.TypeIDString:
		col.strs = make([]string, len(cells))
	default:
		return Column{}, errors.Errorf("invalid type %s for column %q", typeID, name)
	}

	for i, cell := range cells {
		if cell.IsNull() {
			if col.nulls == nil {
				col.nulls = make([]bool, len(cells))
			}
			col.nulls[i] = true
			continue
		}
		if cell.TypeID != typeID {
			return Column{}, errors.Errorf(
				"cell %d of column %q has type %s, want %s", i, name, cell.TypeID, typeID)
		}

		switch typeID {
		case explorer.TypeIDInt:
			col.ints[i] = cell.Int
		case explorer.TypeIDFloat:
			col.floats[i] = cell.Float
		case explorer.TypeIDString:
			col.strs[i] = cell.Str
		}
	}

	return col, nil
}

func (c Column) Name() string {
	return c.name
}

func (c Column) Type() explorer.TypeID {
	return c.typeID
}

func (c Column) Len() int {
	switch c.typeID {
	case explorer.TypeIDInt:
		return len(c.ints)
	case explorer.TypeIDFloat:
		return len(c.floats)
	case explorer.TypeIDString:
		return len(c.strs)
	default:
		panic("impossible, type switch bug")
	}
}

func (c Column) IsNull(i int) bool {
	return c.nulls != nil && c.nulls[i]
}

func (c Column) Value(i int) explorer.Value {
	if c.IsNull(i) {
		return explorer.NewNull()
	}

	switch c.typeID {
	case explorer.TypeIDInt:
		return explorer.NewInt(c.ints[i])
	case explorer.TypeIDFloat:
		return explorer.NewFloat(c.floats[i])
	case explorer.TypeIDString:
		return explorer.NewString(c.strs[i])
	default:
		panic("impossible, type switch bug")
	}
}

// WithName returns a column with a new name sharing the underlying buffers.
func (c Column) WithName(name string) Column {
	c.name = name
	return c
}

// head shares the first n cells of the underlying buffers.
func (c Column) head(n int) Column {
	out := Column{
		name:   c.name,
		typeID: c.typeID,
	}
	switch c.typeID {
	case explorer.TypeIDInt:
		out.ints = c.ints[:n]
	case explorer.TypeIDFloat:
		out.floats = c.floats[:n]
	case explorer.TypeIDString:
		out.strs = c.strs[:n]
	}
	if c.nulls != nil {
		out.nulls = c.nulls[:n]
	}
	return out
}

// gather copies the cells at the given row indices into a fresh column.
func (c Column) gather(indices []int) Column {
	out := Column{
		name:   c.name,
		typeID: c.typeID,
	}

	switch c.typeID {
	case explorer.TypeIDInt:
		out.ints = make([]int64, len(indices))
		for i, row := range indices {
			out.ints[i] = c.ints[row]
		}
	case explorer.TypeIDFloat:
		out.floats = make([]float64, len(indices))
		for i, row := range indices {
			out.floats[i] = c.floats[row]
		}
	case explorer.TypeIDString:
		out.strs = make([]string, len(indices))
		for i, row := range indices {
			out.strs[i] = c.strs[row]
		}
	}

	if c.nulls != nil {
		out.nulls = make([]bool, len(indices))
		for i, row := range indices {
			out.nulls[i] = c.nulls[row]
		}
	}

	return out
}

func (c Column) equal(other Column) bool {
	if c.name != other.name || c.typeID != other.typeID || c.Len() != other.Len() {
		return false
	}
	for i := 0; i < c.Len(); i++ {
		if !explorer.AreEqual(c.Value(i), other.Value(i)) {
			return false
		}
	}
	return true
}
