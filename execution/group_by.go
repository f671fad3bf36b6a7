package execution

import (
	explorer "github.com/muneeb706/ad-data-explorer"
	"github.com/muneeb706/ad-data-explorer/table"
)

// GroupPartition maps each distinct key value of the grouping column to the
// rows sharing it. Key order is first-seen order in the source table.
type GroupPartition struct {
	source  *table.Table
	column  string
	keyType explorer.TypeID

	keys  []explorer.Value
	rows  [][]int
	byKey *valueIndexMap
}

// GroupBy partitions the table by the values of the given column in a single
// pass. Float-typed key columns are rejected: equality on computed floats is
// not reproducible.
func GroupBy(t *table.Table, column string) (*GroupPartition, error) {
	col, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	if col.Type() == explorer.TypeIDFloat {
		return nil, &TypeMismatchError{
			Column:     column,
			ColumnType: col.Type(),
			Detail:     "float columns can't be grouping keys",
		}
	}

	partition := &GroupPartition{
		source:  t,
		column:  column,
		keyType: col.Type(),
		byKey:   newValueIndexMap(),
	}

	for i := 0; i < t.RowCount(); i++ {
		key := col.Value(i)
		index, added := partition.byKey.GetOrAdd(key, len(partition.keys))
		if added {
			partition.keys = append(partition.keys, key)
			partition.rows = append(partition.rows, nil)
		}
		partition.rows[index] = append(partition.rows[index], i)
	}

	return partition, nil
}

// KeyColumn returns the name of the grouping column.
func (p *GroupPartition) KeyColumn() string {
	return p.column
}

// Len returns the number of distinct keys.
func (p *GroupPartition) Len() int {
	return len(p.keys)
}

// Keys returns the distinct key values in first-seen order. The returned
// slice is shared and must not be modified.
func (p *GroupPartition) Keys() []explorer.Value {
	return p.keys
}

// Group materializes the sub-table of rows sharing the given key.
func (p *GroupPartition) Group(key explorer.Value) (*table.Table, bool) {
	index, ok := p.byKey.Get(key)
	if !ok {
		return nil, false
	}
	return p.source.PickRows(p.rows[index]), true
}

// GroupAt materializes the sub-table for the i-th key in first-seen order.
func (p *GroupPartition) GroupAt(i int) *table.Table {
	return p.source.PickRows(p.rows[i])
}
