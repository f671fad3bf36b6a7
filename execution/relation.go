// Package execution implements the relational operators: predicate masks,
// mask logic, group-by with aggregation and the inner hash join. Operators
// consume one or two tables and produce a new one; inputs are never mutated.
package execution

import (
	"github.com/pkg/errors"

	explorer "github.com/muneeb706/ad-data-explorer"
	"github.com/muneeb706/ad-data-explorer/table"
)

type Relation int

const (
	RelationEqual Relation = iota
	RelationNotEqual
	RelationGreaterThan
	RelationLessThan
	RelationGreaterEqual
	RelationLessEqual
)

var relationNames = map[string]Relation{
	"==": RelationEqual,
	"!=": RelationNotEqual,
	">":  RelationGreaterThan,
	"<":  RelationLessThan,
	">=": RelationGreaterEqual,
	"<=": RelationLessEqual,
}

func RelationFromString(s string) (Relation, error) {
	rel, ok := relationNames[s]
	if !ok {
		return 0, errors.Errorf("unknown comparison operator %q", s)
	}
	return rel, nil
}

func (r Relation) String() string {
	for name, rel := range relationNames {
		if rel == r {
			return name
		}
	}
	panic("impossible, unknown relation")
}

func (r Relation) ordering() bool {
	switch r {
	case RelationGreaterThan, RelationLessThan, RelationGreaterEqual, RelationLessEqual:
		return true
	default:
		return false
	}
}

func (r Relation) matches(cmp int) bool {
	switch r {
	case RelationEqual:
		return cmp == 0
	case RelationNotEqual:
		return cmp != 0
	case RelationGreaterThan:
		return cmp > 0
	case RelationLessThan:
		return cmp < 0
	case RelationGreaterEqual:
		return cmp >= 0
	case RelationLessEqual:
		return cmp <= 0
	default:
		panic("impossible, unknown relation")
	}
}

// BuildMask evaluates `column relation literal` over every row. The literal
// type must agree with the column type at build time: numeric columns take
// numeric literals, string columns take string literals. Null cells fail
// ordering comparisons and match ==/!= against a null literal.
func BuildMask(t *table.Table, column string, relation Relation, literal explorer.Value) (table.Mask, error) {
	col, err := t.Column(column)
	if err != nil {
		return nil, err
	}

	if !literal.IsNull() {
		if col.Type().Numeric() && !literal.TypeID.Numeric() {
			return nil, &TypeMismatchError{
				Column:     column,
				ColumnType: col.Type(),
				Detail:     errors.Errorf("literal %q has type %s, want a numeric literal", literal, literal.TypeID).Error(),
			}
		}
		if col.Type() == explorer.TypeIDString && literal.TypeID != explorer.TypeIDString {
			return nil, &TypeMismatchError{
				Column:     column,
				ColumnType: col.Type(),
				Detail:     errors.Errorf("literal %q has type %s, want a string literal", literal, literal.TypeID).Error(),
			}
		}
	}

	mask := make(table.Mask, t.RowCount())
	for i := range mask {
		mask[i] = evaluate(col.Value(i), relation, literal)
	}
	return mask, nil
}

func evaluate(cell explorer.Value, relation Relation, literal explorer.Value) bool {
	if literal.IsNull() {
		if relation.ordering() {
			return false
		}
		isNull := cell.IsNull()
		if relation == RelationEqual {
			return isNull
		}
		return !isNull
	}
	if cell.IsNull() {
		return false
	}

	return relation.matches(compareCells(cell, literal))
}

// compareCells compares two non-null values, widening ints to floats when
// the types are mixed.
func compareCells(left, right explorer.Value) int {
	if left.TypeID == right.TypeID {
		return left.Compare(right)
	}

	leftFloat := left.Float
	if left.TypeID == explorer.TypeIDInt {
		leftFloat = float64(left.Int)
	}
	rightFloat := right.Float
	if right.TypeID == explorer.TypeIDInt {
		rightFloat = float64(right.Int)
	}

	if leftFloat < rightFloat {
		return -1
	} else if leftFloat > rightFloat {
		return 1
	}
	return 0
}

// Filter returns a new table with the rows selected by mask.
func Filter(t *table.Table, mask table.Mask) (*table.Table, error) {
	return t.FilterMask(mask)
}
