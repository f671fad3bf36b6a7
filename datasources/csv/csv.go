// Package csv parses delimited text into columnar tables.
//
// The tokenizer is a hand-written state machine with RFC4180-style quoting:
// a field is either fully quoted or fully unquoted, a doubled quote inside a
// quoted field is a literal quote, and delimiters and newlines inside quotes
// are content. The first record is the header. Column types are inferred
// after reading: integer, then floating-point, else string; an empty
// unquoted token is the null sentinel, distinct from a quoted empty string.
package csv

import (
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	explorer "github.com/muneeb706/ad-data-explorer"
	"github.com/muneeb706/ad-data-explorer/table"
)

type options struct {
	delimiter rune
	quote     rune

	// skipMalformed logs and drops ragged rows instead of aborting. Quoting
	// errors stay fatal: a broken quote makes record boundaries themselves
	// untrustworthy.
	skipMalformed bool
}

type Option func(*options)

func WithDelimiter(delimiter rune) Option {
	return func(o *options) {
		o.delimiter = delimiter
	}
}

func WithQuote(quote rune) Option {
	return func(o *options) {
		o.quote = quote
	}
}

func WithSkipMalformedRows() Option {
	return func(o *options) {
		o.skipMalformed = true
	}
}

// Parse turns delimited text into a table.
func Parse(text string, opts ...Option) (*table.Table, error) {
	o := options{
		delimiter: ',',
		quote:     '"',
	}
	for _, opt := range opts {
		opt(&o)
	}

	records, err := tokenize(text, o.delimiter, o.quote)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &ParseError{Line: 1, Msg: "empty input: missing header row"}
	}

	header := records[0]
	data := records[1:]

	kept := make([]record, 0, len(data))
	for _, rec := range data {
		if len(rec.fields) != len(header.fields) {
			if o.skipMalformed {
				log.Printf("skipping row at line %d: has %d fields, want %d", rec.line, len(rec.fields), len(header.fields))
				continue
			}
			return nil, &ParseError{
				Line: rec.line,
				Msg:  errors.Errorf("row has %d fields, want %d", len(rec.fields), len(header.fields)).Error(),
			}
		}
		kept = append(kept, rec)
	}

	columns := make([]table.Column, len(header.fields))
	for i := range header.fields {
		col, err := buildColumn(header.fields[i].text, i, kept)
		if err != nil {
			return nil, err
		}
		columns[i] = col
	}

	out, err := table.New(columns)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't build table from parsed columns")
	}
	return out, nil
}

// ParseReader reads the stream to the end and parses it.
func ParseReader(r io.Reader, opts ...Option) (*table.Table, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "couldn't read input")
	}
	return Parse(string(text), opts...)
}

// ParseFile opens the file for the duration of the read and closes it on
// every exit path.
func ParseFile(path string, opts ...Option) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't open file %s", path)
	}
	defer f.Close()

	return ParseReader(f, opts...)
}

// buildColumn infers the column type from its non-null tokens and builds the
// typed column. A column with no non-null tokens stays a string column.
func buildColumn(name string, index int, records []record) (table.Column, error) {
	allInts := true
	allFloats := true
	for _, rec := range records {
		f := rec.fields[index]
		if f.isNull() {
			continue
		}
		if allInts {
			if _, err := strconv.ParseInt(f.text, 10, 64); err != nil {
				allInts = false
			}
		}
		if allFloats {
			if _, err := strconv.ParseFloat(f.text, 64); err != nil {
				allFloats = false
			}
		}
	}

	typeID := explorer.TypeIDString
	if allInts {
		typeID = explorer.TypeIDInt
	} else if allFloats {
		typeID = explorer.TypeIDFloat
	}

	cells := make([]explorer.Value, len(records))
	for i, rec := range records {
		f := rec.fields[index]
		if f.isNull() {
			cells[i] = explorer.NewNull()
			continue
		}
		switch typeID {
		case explorer.TypeIDInt:
			integer, err := strconv.ParseInt(f.text, 10, 64)
			if err != nil {
				panic(errors.Wrap(err, "type inference accepted an unparsable integer"))
			}
			cells[i] = explorer.NewInt(integer)
		case explorer.TypeIDFloat:
			float, err := strconv.ParseFloat(f.text, 64)
			if err != nil {
				panic(errors.Wrap(err, "type inference accepted an unparsable float"))
			}
			cells[i] = explorer.NewFloat(float)
		case explorer.TypeIDString:
			cells[i] = explorer.NewString(f.text)
		}
	}

	col, err := table.NewColumn(name, typeID, cells)
	if err != nil {
		return table.Column{}, errors.Wrapf(err, "couldn't build column %q", name)
	}
	return col, nil
}

type field struct {
	text   string
	quoted bool
}

// isNull reports the null sentinel: an empty unquoted token. A quoted empty
// string is a real empty string.
func (f field) isNull() bool {
	return !f.quoted && f.text == ""
}

type record struct {
	fields []field
	line   int
}

type tokenizerState int

const (
	stateFieldStart tokenizerState = iota
	stateInField
	stateInQuotedField
	stateQuoteSeenInQuoted
)

func tokenize(text string, delimiter, quote rune) ([]record, error) {
	var records []record

	var fields []field
	var cur strings.Builder
	curQuoted := false
	state := stateFieldStart
	line := 1
	recordLine := 1

	endField := func() {
		fields = append(fields, field{text: cur.String(), quoted: curQuoted})
		cur.Reset()
		curQuoted = false
	}
	endRecord := func() {
		endField()
		records = append(records, record{fields: fields, line: recordLine})
		fields = nil
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		// A CR directly before LF outside of quotes belongs to the line
		// ending, not to the field.
		if ch == '\r' && state != stateInQuotedField && i+1 < len(runes) && runes[i+1] == '\n' {
			continue
		}

		switch state {
		case stateFieldStart:
			switch ch {
			case quote:
				curQuoted = true
				state = stateInQuotedField
			case delimiter:
				endField()
			case '\n':
				if len(fields) == 0 && cur.Len() == 0 {
					// Blank line between records.
					line++
					recordLine = line
					continue
				}
				endRecord()
				line++
				recordLine = line
			default:
				cur.WriteRune(ch)
				state = stateInField
			}

		case stateInField:
			switch ch {
			case delimiter:
				endField()
				state = stateFieldStart
			case '\n':
				endRecord()
				state = stateFieldStart
				line++
				recordLine = line
			default:
				// Quote characters inside an unquoted field are literal.
				cur.WriteRune(ch)
			}

		case stateInQuotedField:
			if ch == quote {
				state = stateQuoteSeenInQuoted
			} else {
				if ch == '\n' {
					line++
				}
				cur.WriteRune(ch)
			}

		case stateQuoteSeenInQuoted:
			switch ch {
			case quote:
				// Doubled quote: escaped literal quote.
				cur.WriteRune(quote)
				state = stateInQuotedField
			case delimiter:
				endField()
				state = stateFieldStart
			case '\n':
				endRecord()
				state = stateFieldStart
				line++
				recordLine = line
			default:
				return nil, &ParseError{
					Line: line,
					Msg:  errors.Errorf("unexpected character %q after closing quote", ch).Error(),
				}
			}
		}
	}

	switch state {
	case stateInQuotedField:
		return nil, &ParseError{Line: line, Msg: "unterminated quoted field"}
	case stateInField, stateQuoteSeenInQuoted:
		endRecord()
	case stateFieldStart:
		// A trailing delimiter leaves a pending empty last field.
		if len(fields) > 0 || cur.Len() > 0 || curQuoted {
			endRecord()
		}
	}

	return records, nil
}
