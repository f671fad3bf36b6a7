package table

import "fmt"

type UnknownColumnError struct {
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Column)
}

type LengthMismatchError struct {
	Expected int
	Got      int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("mask length %d doesn't match row count %d", e.Got, e.Expected)
}
