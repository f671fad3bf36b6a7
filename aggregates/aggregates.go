// Package aggregates implements the summary functions applied to grouped
// columns. Aggregates are built from prototypes and consume one cell at a
// time.
//
// Null policy: every aggregate here excludes null cells, so a qualified
// count counts non-null cells and sum/mean/min/max compute over the non-null
// subset. An aggregate that saw only nulls triggers a null result. Counting
// whole rows regardless of nulls is CountAll, used for unqualified counts.
package aggregates

import explorer "github.com/muneeb706/ad-data-explorer"

type Aggregate interface {
	// Add consumes one cell. Null cells are ignored.
	Add(value explorer.Value)
	// Trigger produces the aggregate result, null if no value was consumed.
	Trigger() explorer.Value
}

// Descriptor is one overload of an aggregate function: the column type it
// accepts, the type it produces, and the prototype building its accumulator.
type Descriptor struct {
	ArgumentType explorer.TypeID
	OutputType   explorer.TypeID
	Prototype    func() Aggregate
}

var Aggregates = map[string][]Descriptor{
	"count": CountOverloads,
	"sum":   SumOverloads,
	"mean":  MeanOverloads,
	"min":   MinOverloads,
	"max":   MaxOverloads,
}
