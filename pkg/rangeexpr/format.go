package rangeexpr

import (
	"strings"
	"time"

	"github.com/henderiw/rangeset/pkg/rangeset"
)

// ValueFormatter renders a single bound value.
type ValueFormatter[T any] func(v T) string

// FormatRange renders r in the interval notation ParseRange reads, with
// value rendering the bounds. It is Range.String for values whose default
// formatting does not round trip, such as time.Time.
func FormatRange[T any, O rangeset.Order[T]](r rangeset.Range[T, O], value ValueFormatter[T]) string {
	if r.IsEmpty() {
		return "empty"
	}
	var sb strings.Builder
	if lo, ok := r.Low(); ok {
		if r.LowInclusive() {
			sb.WriteString("[")
		} else {
			sb.WriteString("(")
		}
		sb.WriteString(value(lo))
	} else {
		sb.WriteString("(")
	}
	sb.WriteString(",")
	if hi, ok := r.High(); ok {
		sb.WriteString(value(hi))
		if r.HighInclusive() {
			sb.WriteString("]")
		} else {
			sb.WriteString(")")
		}
	} else {
		sb.WriteString(")")
	}
	return sb.String()
}

// FormatSet renders s as a braced list of FormatRange results.
func FormatSet[T any, O rangeset.Order[T]](s rangeset.Set[T, O], value ValueFormatter[T]) string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, r := range s.Ranges() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(FormatRange(r, value))
	}
	sb.WriteString("}")
	return sb.String()
}

// FormatTime renders t as RFC 3339 with nanoseconds, the form Time parses.
func FormatTime(t time.Time) string { return t.Format(time.RFC3339Nano) }
