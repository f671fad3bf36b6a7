package formats

import (
	"io"

	"github.com/olekukonko/tablewriter"

	explorer "github.com/muneeb706/ad-data-explorer"
)

type TableFormatter struct {
	table *tablewriter.Table
}

func NewTableFormatter(w io.Writer) *TableFormatter {
	table := tablewriter.NewWriter(w)
	table.SetColWidth(24)
	table.SetRowLine(false)

	return &TableFormatter{
		table: table,
	}
}

func (t *TableFormatter) SetColumns(names []string) {
	t.table.SetHeader(names)
	t.table.SetAutoFormatHeaders(false)
}

func (t *TableFormatter) Write(values []explorer.Value) error {
	row := make([]string, len(values))
	for i := range values {
		row[i] = values[i].String()
	}
	t.table.Append(row)
	return nil
}

func (t *TableFormatter) Close() error {
	t.table.Render()
	return nil
}
