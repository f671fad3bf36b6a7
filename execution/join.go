package execution

import (
	"fmt"

	explorer "github.com/muneeb706/ad-data-explorer"
	"github.com/muneeb706/ad-data-explorer/table"
)

// Join matches rows of two tables on a key column both share. See JoinOn.
func Join(left, right *table.Table, key string) (*table.Table, error) {
	return JoinOn(left, right, key, key)
}

// JoinOn computes the inner equi-join of left and right on the given key
// columns. The right table is loaded into a hash index and the left table is
// probed row by row, so output rows follow left-table order; every matching
// right row is emitted per left row. Expected cost is linear in the two row
// counts, degrading only under adversarial hash collisions.
//
// The key appears once in the output, under its left name. Other columns
// present on both sides get a _left or _right suffix.
func JoinOn(left, right *table.Table, leftKey, rightKey string) (*table.Table, error) {
	leftCol, err := left.Column(leftKey)
	if err != nil {
		return nil, err
	}
	rightCol, err := right.Column(rightKey)
	if err != nil {
		return nil, err
	}

	for _, col := range []table.Column{leftCol, rightCol} {
		if col.Type() == explorer.TypeIDFloat {
			return nil, &TypeMismatchError{
				Column:     col.Name(),
				ColumnType: col.Type(),
				Detail:     "float columns can't be join keys",
			}
		}
	}
	if leftCol.Type() != rightCol.Type() {
		return nil, &TypeMismatchError{
			Column:     leftKey,
			ColumnType: leftCol.Type(),
			Detail: fmt.Sprintf(
				"join key types differ, %s is %s", rightKey, rightCol.Type()),
		}
	}

	// Build phase: index right rows by key value.
	index := newValueIndexMap()
	var matches [][]int
	for i := 0; i < right.RowCount(); i++ {
		key := rightCol.Value(i)
		slot, added := index.GetOrAdd(key, len(matches))
		if added {
			matches = append(matches, nil)
		}
		matches[slot] = append(matches[slot], i)
	}

	// Probe phase: walk left rows in order, emitting one output row per
	// matching right row.
	var leftIndices, rightIndices []int
	for i := 0; i < left.RowCount(); i++ {
		slot, ok := index.Get(leftCol.Value(i))
		if !ok {
			continue
		}
		for _, j := range matches[slot] {
			leftIndices = append(leftIndices, i)
			rightIndices = append(rightIndices, j)
		}
	}

	leftOut := left.PickRows(leftIndices)
	rightOut := right.PickRows(rightIndices)

	// A name is shared when both sides emit it. The key column stays bare on
	// the left side even when the right table has an unrelated column with
	// the same name; that right column still gets its _right suffix.
	shared := func(name string) bool {
		return name != rightKey && right.HasColumn(name) && left.HasColumn(name)
	}

	columns := make([]table.Column, 0, left.ColumnCount()+right.ColumnCount()-1)
	for i := 0; i < leftOut.ColumnCount(); i++ {
		col := leftOut.ColumnAt(i)
		if col.Name() != leftKey && shared(col.Name()) {
			col = col.WithName(col.Name() + "_left")
		}
		columns = append(columns, col)
	}
	for i := 0; i < rightOut.ColumnCount(); i++ {
		col := rightOut.ColumnAt(i)
		if col.Name() == rightKey {
			continue
		}
		if shared(col.Name()) {
			col = col.WithName(col.Name() + "_right")
		}
		columns = append(columns, col)
	}

	return table.New(columns)
}
