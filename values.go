// Package explorer holds the cell model shared by every layer of the engine:
// a tagged-variant Value with a total order and a canonical hash.
package explorer

import (
	"fmt"
	"math"
	"strconv"

	"github.com/segmentio/fasthash/fnv1a"
)

var ZeroValue = Value{}

type Value struct {
	TypeID TypeID
	Int    int64
	Float  float64
	Str    string
}

func NewNull() Value {
	return Value{
		TypeID: TypeIDNull,
	}
}

func NewInt(value int64) Value {
	return Value{
		TypeID: TypeIDInt,
		Int:    value,
	}
}

func NewFloat(value float64) Value {
	return Value{
		TypeID: TypeIDFloat,
		Float:  value,
	}
}

func NewString(value string) Value {
	return Value{
		TypeID: TypeIDString,
		Str:    value,
	}
}

func (value Value) IsNull() bool {
	return value.TypeID == TypeIDNull
}

// Compare gives a total order over values. Values of different types order by
// type id, so the order is defined even for mixed inputs.
func (value Value) Compare(other Value) int {
	if value.TypeID != other.TypeID {
		if value.TypeID < other.TypeID {
			return -1
		} else {
			return 1
		}
	}

	switch value.TypeID {
	case TypeIDNull:
		return 0

	case TypeIDInt:
		if value.Int < other.Int {
			return -1
		} else if value.Int > other.Int {
			return 1
		} else {
			return 0
		}

	case TypeIDFloat:
		if value.Float < other.Float {
			return -1
		} else if value.Float > other.Float {
			return 1
		} else {
			return 0
		}

	case TypeIDString:
		if value.Str < other.Str {
			return -1
		} else if value.Str > other.Str {
			return 1
		} else {
			return 0
		}

	default:
		panic("impossible, type switch bug")
	}
}

func AreEqual(left, right Value) bool {
	return left.Compare(right) == 0
}

// Hash returns a canonical fnv1a hash of the value. Equal values hash equally;
// the type id is mixed in so 1 and "1" stay distinct.
func (value Value) Hash() uint64 {
	hash := fnv1a.AddUint64(fnv1a.Init64, uint64(value.TypeID))

	switch value.TypeID {
	case TypeIDNull:
	case TypeIDInt:
		hash = fnv1a.AddUint64(hash, uint64(value.Int))
	case TypeIDFloat:
		hash = fnv1a.AddUint64(hash, math.Float64bits(value.Float))
	case TypeIDString:
		hash = fnv1a.AddString64(hash, value.Str)
	default:
		panic("impossible, type switch bug")
	}

	return hash
}

func (value Value) String() string {
	switch value.TypeID {
	case TypeIDNull:
		return "null"
	case TypeIDInt:
		return strconv.FormatInt(value.Int, 10)
	case TypeIDFloat:
		return strconv.FormatFloat(value.Float, 'g', -1, 64)
	case TypeIDString:
		return value.Str
	default:
		panic("impossible, type switch bug")
	}
}

func (value Value) ToRawGoValue() interface{} {
	switch value.TypeID {
	case TypeIDNull:
		return nil
	case TypeIDInt:
		return value.Int
	case TypeIDFloat:
		return value.Float
	case TypeIDString:
		return value.Str
	default:
		panic(fmt.Sprintf("invalid value type to get raw Go value for: %s", value.TypeID))
	}
}
