package execution

import "github.com/muneeb706/ad-data-explorer/table"

// MaskAnd combines two masks of equal length into their conjunction.
func MaskAnd(left, right table.Mask) (table.Mask, error) {
	if len(left) != len(right) {
		return nil, &table.LengthMismatchError{Expected: len(left), Got: len(right)}
	}

	out := make(table.Mask, len(left))
	for i := range left {
		out[i] = left[i] && right[i]
	}
	return out, nil
}

// MaskOr combines two masks of equal length into their disjunction.
func MaskOr(left, right table.Mask) (table.Mask, error) {
	if len(left) != len(right) {
		return nil, &table.LengthMismatchError{Expected: len(left), Got: len(right)}
	}

	out := make(table.Mask, len(left))
	for i := range left {
		out[i] = left[i] || right[i]
	}
	return out, nil
}
