// Package table implements the immutable in-memory columnar store. Every
// operation returns a new Table; none mutates its input, so a constructed
// Table is safe to share across concurrent readers.
package table

import (
	"github.com/pkg/errors"

	explorer "github.com/muneeb706/ad-data-explorer"
)

// Mask selects a row subset. It must have the same length as the table it is
// applied to.
type Mask []bool

type Table struct {
	columns  []Column
	byName   map[string]int
	rowCount int
}

// New builds a table from columns, checking the columnar invariants: unique
// names and uniform length.
func New(columns []Column) (*Table, error) {
	byName := make(map[string]int, len(columns))
	rowCount := 0
	for i, col := range columns {
		if _, ok := byName[col.Name()]; ok {
			return nil, errors.Errorf("duplicate column name %q", col.Name())
		}
		byName[col.Name()] = i

		if i == 0 {
			rowCount = col.Len()
		} else if col.Len() != rowCount {
			return nil, errors.Errorf(
				"column %q has %d rows, want %d", col.Name(), col.Len(), rowCount)
		}
	}

	return &Table{
		columns:  columns,
		byName:   byName,
		rowCount: rowCount,
	}, nil
}

func (t *Table) RowCount() int {
	return t.rowCount
}

func (t *Table) ColumnCount() int {
	return len(t.columns)
}

// ColumnNames returns the column names in insertion order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i := range t.columns {
		names[i] = t.columns[i].Name()
	}
	return names
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.byName[name]
	return ok
}

func (t *Table) Column(name string) (Column, error) {
	i, ok := t.byName[name]
	if !ok {
		return Column{}, &UnknownColumnError{Column: name}
	}
	return t.columns[i], nil
}

func (t *Table) ColumnAt(i int) Column {
	return t.columns[i]
}

// Select returns a new table with exactly the requested columns in the
// requested order. Column buffers are shared structurally, not copied.
func (t *Table) Select(names []string) (*Table, error) {
	columns := make([]Column, len(names))
	for i, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		columns[i] = col
	}
	return New(columns)
}

// FilterMask returns a new table with only the rows where mask is true,
// preserving relative order.
func (t *Table) FilterMask(mask Mask) (*Table, error) {
	if len(mask) != t.rowCount {
		return nil, &LengthMismatchError{Expected: t.rowCount, Got: len(mask)}
	}

	indices := make([]int, 0, t.rowCount)
	for i, keep := range mask {
		if keep {
			indices = append(indices, i)
		}
	}
	return t.PickRows(indices), nil
}

// PickRows materializes a new table holding the given rows in the given
// order. Indices may repeat; callers are responsible for their validity.
func (t *Table) PickRows(indices []int) *Table {
	columns := make([]Column, len(t.columns))
	for i := range t.columns {
		columns[i] = t.columns[i].gather(indices)
	}

	out, err := New(columns)
	if err != nil {
		panic(errors.Wrap(err, "gathered columns broke table invariants"))
	}
	return out
}

// Head returns the first n rows, sharing column buffers with the source.
func (t *Table) Head(n int) *Table {
	if n > t.rowCount {
		n = t.rowCount
	}

	columns := make([]Column, len(t.columns))
	for i := range t.columns {
		columns[i] = t.columns[i].head(n)
	}

	out, err := New(columns)
	if err != nil {
		panic(errors.Wrap(err, "head columns broke table invariants"))
	}
	return out
}

// Row materializes the i-th row across all columns.
func (t *Table) Row(i int) []explorer.Value {
	row := make([]explorer.Value, len(t.columns))
	for c := range t.columns {
		row[c] = t.columns[c].Value(i)
	}
	return row
}

// Rows materializes every row, for display export only.
func (t *Table) Rows() [][]explorer.Value {
	rows := make([][]explorer.Value, t.rowCount)
	for i := 0; i < t.rowCount; i++ {
		rows[i] = t.Row(i)
	}
	return rows
}

// Equal compares two tables by column names, order, types and cell values.
func (t *Table) Equal(other *Table) bool {
	if len(t.columns) != len(other.columns) || t.rowCount != other.rowCount {
		return false
	}
	for i := range t.columns {
		if !t.columns[i].equal(other.columns[i]) {
			return false
		}
	}
	return true
}
