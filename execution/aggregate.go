package execution

import (
	"fmt"

	"github.com/pkg/errors"

	explorer "github.com/muneeb706/ad-data-explorer"
	"github.com/muneeb706/ad-data-explorer/aggregates"
	"github.com/muneeb706/ad-data-explorer/table"
)

// AggregateSpec names one output of an aggregation: the function to apply
// and the column to feed it. An empty or "*" column with the count function
// counts whole rows instead of non-null cells.
type AggregateSpec struct {
	Function string
	Column   string
}

func (spec AggregateSpec) countsRows() bool {
	return spec.Function == "count" && (spec.Column == "" || spec.Column == "*")
}

// OutputName returns the name the aggregated column gets in the result
// table, "<function>_<column>", or just "count" for a row count.
func (spec AggregateSpec) OutputName() string {
	if spec.countsRows() {
		return "count"
	}
	return fmt.Sprintf("%s_%s", spec.Function, spec.Column)
}

// resolvedSpec binds a spec to the source column index feeding it (or -1 for
// a row count) and to the overload matching that column's type.
type resolvedSpec struct {
	spec        AggregateSpec
	columnIndex int
	descriptor  aggregates.Descriptor
}

func resolveSpec(t *table.Table, spec AggregateSpec) (resolvedSpec, error) {
	if spec.countsRows() {
		return resolvedSpec{
			spec:        spec,
			columnIndex: -1,
			descriptor: aggregates.Descriptor{
				OutputType: explorer.TypeIDInt,
				Prototype:  aggregates.NewCountAllPrototype(),
			},
		}, nil
	}

	overloads, ok := aggregates.Aggregates[spec.Function]
	if !ok {
		return resolvedSpec{}, &UnsupportedAggregateError{Function: spec.Function}
	}

	col, err := t.Column(spec.Column)
	if err != nil {
		return resolvedSpec{}, err
	}
	index := -1
	for i, name := range t.ColumnNames() {
		if name == spec.Column {
			index = i
			break
		}
	}

	for _, descriptor := range overloads {
		if descriptor.ArgumentType == col.Type() {
			return resolvedSpec{spec: spec, columnIndex: index, descriptor: descriptor}, nil
		}
	}
	return resolvedSpec{}, &TypeMismatchError{
		Column:     spec.Column,
		ColumnType: col.Type(),
		Detail:     fmt.Sprintf("no %s overload for this column type", spec.Function),
	}
}

// Aggregate computes the given specs over each group of the partition. The
// result has one row per distinct key, in first-seen order: the grouping key
// column first, then one column per spec named by OutputName.
func Aggregate(p *GroupPartition, specs []AggregateSpec) (*table.Table, error) {
	if len(specs) == 0 {
		return nil, errors.New("aggregation needs at least one aggregate spec")
	}

	resolved := make([]resolvedSpec, len(specs))
	for i, spec := range specs {
		r, err := resolveSpec(p.source, spec)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't resolve aggregate %s", spec.OutputName())
		}
		resolved[i] = r
	}

	outputs := make([][]explorer.Value, len(specs))
	for i := range outputs {
		outputs[i] = make([]explorer.Value, 0, p.Len())
	}

	for groupIndex := range p.keys {
		accumulators := make([]aggregates.Aggregate, len(resolved))
		for i, r := range resolved {
			accumulators[i] = r.descriptor.Prototype()
		}
		for _, rowIndex := range p.rows[groupIndex] {
			for i, r := range resolved {
				if r.columnIndex < 0 {
					accumulators[i].Add(explorer.NewNull())
					continue
				}
				accumulators[i].Add(p.source.ColumnAt(r.columnIndex).Value(rowIndex))
			}
		}
		for i, accumulator := range accumulators {
			outputs[i] = append(outputs[i], accumulator.Trigger())
		}
	}

	columns := make([]table.Column, 0, len(specs)+1)
	keyColumn, err := table.NewColumn(p.column, p.keyType, p.keys)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't build grouping key column")
	}
	columns = append(columns, keyColumn)
	for i, r := range resolved {
		col, err := table.NewColumn(r.spec.OutputName(), r.descriptor.OutputType, outputs[i])
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't build aggregate column %s", r.spec.OutputName())
		}
		columns = append(columns, col)
	}

	return table.New(columns)
}
