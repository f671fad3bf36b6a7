package formats

import (
	"encoding/csv"
	"fmt"
	"io"

	explorer "github.com/muneeb706/ad-data-explorer"
)

type CSVFormatter struct {
	writer *csv.Writer
}

func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{
		writer: csv.NewWriter(w),
	}
}

func (t *CSVFormatter) SetColumns(names []string) {
	t.writer.Write(names)
}

func (t *CSVFormatter) Write(values []explorer.Value) error {
	row := make([]string, len(values))
	for i := range values {
		if values[i].IsNull() {
			// Null round-trips as an empty unquoted field.
			continue
		}
		row[i] = fmt.Sprintf("%v", values[i].ToRawGoValue())
	}
	return t.writer.Write(row)
}

func (t *CSVFormatter) Close() error {
	t.writer.Flush()
	return t.writer.Error()
}
