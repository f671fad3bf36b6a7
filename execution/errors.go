package execution

import (
	"fmt"

	explorer "github.com/muneeb706/ad-data-explorer"
)

type TypeMismatchError struct {
	Column     string
	ColumnType explorer.TypeID
	Detail     string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch on column %q (%s): %s", e.Column, e.ColumnType, e.Detail)
}

type UnsupportedAggregateError struct {
	Function string
}

func (e *UnsupportedAggregateError) Error() string {
	return fmt.Sprintf("unsupported aggregate function %q", e.Function)
}
