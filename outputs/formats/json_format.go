package formats

import (
	"fmt"
	"io"

	"github.com/valyala/fastjson"

	explorer "github.com/muneeb706/ad-data-explorer"
)

// JSONFormatter writes one JSON object per row, newline-delimited.
type JSONFormatter struct {
	buf   []byte
	arena *fastjson.Arena
	w     io.Writer
	names []string
}

func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{
		buf:   make([]byte, 0, 1024),
		arena: new(fastjson.Arena),
		w:     w,
	}
}

func (t *JSONFormatter) SetColumns(names []string) {
	t.names = names
}

func (t *JSONFormatter) Write(values []explorer.Value) error {
	obj := t.arena.NewObject()
	for i := range t.names {
		obj.Set(t.names[i], valueToJson(t.arena, values[i]))
	}

	t.buf = obj.MarshalTo(t.buf)
	t.buf = append(t.buf, '\n')
	_, err := t.w.Write(t.buf)
	t.buf = t.buf[:0]
	t.arena.Reset()
	return err
}

func valueToJson(arena *fastjson.Arena, value explorer.Value) *fastjson.Value {
	switch value.TypeID {
	case explorer.TypeIDNull:
		return arena.NewNull()
	case explorer.TypeIDInt:
		return arena.NewNumberInt(int(value.Int))
	case explorer.TypeIDFloat:
		return arena.NewNumberFloat64(value.Float)
	case explorer.TypeIDString:
		return arena.NewString(value.Str)
	default:
		panic(fmt.Sprintf("invalid value type to print: %s", value.TypeID))
	}
}

func (t *JSONFormatter) Close() error {
	return nil
}
