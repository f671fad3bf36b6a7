package explorer

type TypeID int

const (
	TypeIDNull TypeID = iota
	TypeIDInt
	TypeIDFloat
	TypeIDString
)

func (t TypeID) String() string {
	switch t {
	case TypeIDNull:
		return "Null"
	case TypeIDInt:
		return "Int"
	case TypeIDFloat:
		return "Float"
	case TypeIDString:
		return "String"
	default:
		panic("impossible, type switch bug")
	}
}

// Numeric tells whether values of this type take part in numeric comparisons
// and numeric aggregates.
func (t TypeID) Numeric() bool {
	return t == TypeIDInt || t == TypeIDFloat
}
