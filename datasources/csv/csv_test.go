package csv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	explorer "github.com/muneeb706/ad-data-explorer"
)

func TestParseQuotedFields(t *testing.T) {
	tab, err := Parse("ID,Name,Age\n1,\"Smith, John\",30\n")
	assert.Nil(t, err)

	assert.Equal(t, []string{"ID", "Name", "Age"}, tab.ColumnNames())
	assert.Equal(t, 1, tab.RowCount())
	assert.Equal(t, []explorer.Value{
		explorer.NewInt(1), explorer.NewString("Smith, John"), explorer.NewInt(30),
	}, tab.Row(0))
}

func TestParseEscapedQuotes(t *testing.T) {
	tab, err := Parse("Quote\n\"say \"\"hi\"\"\"\n")
	assert.Nil(t, err)
	assert.Equal(t, explorer.NewString(`say "hi"`), tab.Row(0)[0])
}

func TestParseQuotedNewline(t *testing.T) {
	tab, err := Parse("Note\n\"line one\nline two\"\n")
	assert.Nil(t, err)
	assert.Equal(t, 1, tab.RowCount())
	assert.Equal(t, explorer.NewString("line one\nline two"), tab.Row(0)[0])
}

func TestParseUnterminatedQuote(t *testing.T) {
	_, err := Parse("Name\n\"unfinished\n")
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Error(), "unterminated")
}

func TestParseMalformedQuoting(t *testing.T) {
	_, err := Parse("Name\n\"ok\"x\n")
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Error(), "after closing quote")
}

func TestParseRaggedRow(t *testing.T) {
	_, err := Parse("A,B,C\n1,2\n")
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
}

func TestParseSkipMalformedRows(t *testing.T) {
	tab, err := Parse("A,B,C\n1,2\n4,5,6\n", WithSkipMalformedRows())
	assert.Nil(t, err)
	assert.Equal(t, 1, tab.RowCount())
	assert.Equal(t, explorer.NewInt(4), tab.Row(0)[0])
}

func TestTypeInference(t *testing.T) {
	tab, err := Parse("Count,Score,Label,Mixed\n1,0.5,abc,1\n2,3,def,x\n")
	assert.Nil(t, err)

	count, err := tab.Column("Count")
	assert.Nil(t, err)
	assert.Equal(t, explorer.TypeIDInt, count.Type())

	// An integer-looking token in a float column widens.
	score, err := tab.Column("Score")
	assert.Nil(t, err)
	assert.Equal(t, explorer.TypeIDFloat, score.Type())
	assert.Equal(t, explorer.NewFloat(3), score.Value(1))

	label, err := tab.Column("Label")
	assert.Nil(t, err)
	assert.Equal(t, explorer.TypeIDString, label.Type())

	mixed, err := tab.Column("Mixed")
	assert.Nil(t, err)
	assert.Equal(t, explorer.TypeIDString, mixed.Type())
}

func TestNullSentinel(t *testing.T) {
	tab, err := Parse("Age,Name\n80,\"\"\n,Ann\n")
	assert.Nil(t, err)

	age, err := tab.Column("Age")
	assert.Nil(t, err)
	assert.Equal(t, explorer.TypeIDInt, age.Type())
	assert.False(t, age.IsNull(0))
	assert.True(t, age.IsNull(1))

	// Quoted empty string is a string, not null.
	name, err := tab.Column("Name")
	assert.Nil(t, err)
	assert.Equal(t, explorer.NewString(""), name.Value(0))
	assert.False(t, name.IsNull(0))
}

func TestCustomDelimiterAndQuote(t *testing.T) {
	tab, err := Parse("a;b\n'x;y';2\n", WithDelimiter(';'), WithQuote('\''))
	assert.Nil(t, err)
	assert.Equal(t, explorer.NewString("x;y"), tab.Row(0)[0])
	assert.Equal(t, explorer.NewInt(2), tab.Row(0)[1])
}

func TestCRLFAndBlankLines(t *testing.T) {
	tab, err := Parse("A,B\r\n1,2\r\n\r\n3,4\r\n")
	assert.Nil(t, err)
	assert.Equal(t, 2, tab.RowCount())
	assert.Equal(t, explorer.NewInt(3), tab.Row(1)[0])
}

func TestTrailingDelimiter(t *testing.T) {
	tab, err := Parse("A,B\n1,")
	assert.Nil(t, err)
	assert.Equal(t, 1, tab.RowCount())
	assert.True(t, tab.Row(0)[1].IsNull())
}

func TestEmptyInput(t *testing.T) {
	_, err := Parse("")
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestHeaderOnly(t *testing.T) {
	tab, err := Parse("A,B\n")
	assert.Nil(t, err)
	assert.Equal(t, 0, tab.RowCount())
	assert.Equal(t, 2, tab.ColumnCount())
}

func TestParseReader(t *testing.T) {
	tab, err := ParseReader(strings.NewReader("A\n1\n"))
	assert.Nil(t, err)
	assert.Equal(t, 1, tab.RowCount())
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "donors.csv")
	err := os.WriteFile(path, []byte("Donor ID,Sex\n1,M\n2,F\n"), 0644)
	assert.Nil(t, err)

	tab, err := ParseFile(path)
	assert.Nil(t, err)
	assert.Equal(t, 2, tab.RowCount())

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
