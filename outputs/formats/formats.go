// Package formats renders materialized tables for display or export.
package formats

import (
	"io"

	explorer "github.com/muneeb706/ad-data-explorer"
	"github.com/muneeb706/ad-data-explorer/table"
)

type Formatter interface {
	SetColumns(names []string)
	Write(values []explorer.Value) error
	Close() error
}

// WriteTable renders the whole table through the formatter and closes it.
func WriteTable(formatter Formatter, t *table.Table) error {
	formatter.SetColumns(t.ColumnNames())
	for i := 0; i < t.RowCount(); i++ {
		if err := formatter.Write(t.Row(i)); err != nil {
			return err
		}
	}
	return formatter.Close()
}

// New builds the formatter registered under the given name, writing to w.
// Returns false when the name is unknown.
func New(name string, w io.Writer) (Formatter, bool) {
	switch name {
	case "table":
		return NewTableFormatter(w), true
	case "csv":
		return NewCSVFormatter(w), true
	case "json":
		return NewJSONFormatter(w), true
	default:
		return nil, false
	}
}
