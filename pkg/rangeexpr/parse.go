package rangeexpr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/henderiw/rangeset/pkg/rangeset"
)

// ValueParser parses a single bound value.
type ValueParser[T any] func(s string) (T, error)

// ParseRange parses s into a range.
//
// Supported formats:
//   - [a,b) (a,b] [a,b] (a,b)
//   - (,b] [a,) (,) and -inf/+inf for an unbounded side, which must be open
//   - >=a >a <=b <b
//   - =a or a, the range holding a single value
//   - a-b, the inclusive range from a to b, as long as values have no '-'
//   - empty or ∅, the empty range
//
// Spaces around tokens are ignored. A range with its bounds reversed is
// empty, not an error.
func ParseRange[T any, O rangeset.Order[T]](s string, parse ValueParser[T]) (rangeset.Range[T, O], error) {
	var r rangeset.Range[T, O]
	in := strings.TrimSpace(s)
	if in == "" {
		return r, fmt.Errorf("empty range expression")
	}
	if in == "empty" || in == "∅" {
		return r, nil
	}

	// prefix operators
	for _, op := range []string{">=", "<=", ">", "<", "="} {
		if !strings.HasPrefix(in, op) {
			continue
		}
		tok := strings.TrimSpace(in[len(op):])
		v, err := parse(tok)
		if err != nil {
			return r, fmt.Errorf("invalid value %q in range %q: %w", tok, s, err)
		}
		switch op {
		case ">=":
			return rangeset.AtLeast[T, O](v), nil
		case ">":
			return rangeset.GreaterThan[T, O](v), nil
		case "<=":
			return rangeset.AtMost[T, O](v), nil
		case "<":
			return rangeset.LessThan[T, O](v), nil
		}
		return rangeset.Point[T, O](v), nil
	}

	if isInterval(in) {
		return parseInterval[T, O](s, in, parse)
	}

	// plain value
	v, err := parse(in)
	if err == nil {
		return rangeset.Point[T, O](v), nil
	}

	// a-b, skipping a sign on the first value
	h := strings.IndexByte(in[1:], '-')
	if h == -1 {
		return r, fmt.Errorf("invalid range %q: %w", s, err)
	}
	h++
	from, to := strings.TrimSpace(in[:h]), strings.TrimSpace(in[h+1:])
	lo, err := parse(from)
	if err != nil {
		return r, fmt.Errorf("invalid from value %q in range %q: %w", from, s, err)
	}
	hi, err := parse(to)
	if err != nil {
		return r, fmt.Errorf("invalid to value %q in range %q: %w", to, s, err)
	}
	return rangeset.Closed[T, O](lo, hi), nil
}

func isInterval(s string) bool {
	if len(s) < 2 {
		return false
	}
	first, last := s[0], s[len(s)-1]
	return (first == '(' || first == '[') && (last == ')' || last == ']')
}

func parseInterval[T any, O rangeset.Order[T]](orig, s string, parse ValueParser[T]) (rangeset.Range[T, O], error) {
	var r rangeset.Range[T, O]
	lowInclusive := s[0] == '['
	highInclusive := s[len(s)-1] == ']'
	left, right, ok := strings.Cut(s[1:len(s)-1], ",")
	if !ok {
		return r, fmt.Errorf("missing comma in range %q", orig)
	}
	left, right = strings.TrimSpace(left), strings.TrimSpace(right)

	lowUnbounded := left == "" || left == "-inf"
	highUnbounded := right == "" || right == "+inf" || right == "inf"
	if lowUnbounded && lowInclusive {
		return r, fmt.Errorf("unbounded low side must be open in range %q", orig)
	}
	if highUnbounded && highInclusive {
		return r, fmt.Errorf("unbounded high side must be open in range %q", orig)
	}

	var lo, hi T
	var err error
	if !lowUnbounded {
		if lo, err = parse(left); err != nil {
			return r, fmt.Errorf("invalid left bound %q in range %q: %w", left, orig, err)
		}
	}
	if !highUnbounded {
		if hi, err = parse(right); err != nil {
			return r, fmt.Errorf("invalid right bound %q in range %q: %w", right, orig, err)
		}
	}

	switch {
	case lowUnbounded && highUnbounded:
		return rangeset.Unbounded[T, O](), nil
	case lowUnbounded && highInclusive:
		return rangeset.AtMost[T, O](hi), nil
	case lowUnbounded:
		return rangeset.LessThan[T, O](hi), nil
	case highUnbounded && lowInclusive:
		return rangeset.AtLeast[T, O](lo), nil
	case highUnbounded:
		return rangeset.GreaterThan[T, O](lo), nil
	}
	return rangeset.New[T, O](lo, hi, lowInclusive, highInclusive), nil
}

// ParseSet parses a list of ranges into a set. The list may be wrapped in
// braces and its ranges separated by commas, '|' or '∪':
//
//	{[1,3), [5,7)}
//	[1,3) | 5-7 | >=10
//	{} or ∅
//
// Every malformed range is reported.
func ParseSet[T any, O rangeset.Order[T]](s string, parse ValueParser[T]) (rangeset.Set[T, O], error) {
	return ParseSetFunc(s, func(tok string) (rangeset.Range[T, O], error) {
		return ParseRange[T, O](tok, parse)
	})
}

// ParseSetFunc is ParseSet with a custom parser for the ranges in the list.
func ParseSetFunc[T any, O rangeset.Order[T]](s string, parseRange func(string) (rangeset.Range[T, O], error)) (rangeset.Set[T, O], error) {
	in := strings.TrimSpace(s)
	if strings.HasPrefix(in, "{") {
		if !strings.HasSuffix(in, "}") {
			return rangeset.Set[T, O]{}, fmt.Errorf("unbalanced braces in set %q", s)
		}
		in = strings.TrimSpace(in[1 : len(in)-1])
	}
	if in == "" || in == "∅" {
		return rangeset.Empty[T, O](), nil
	}

	tokens, err := split(in)
	if err != nil {
		return rangeset.Set[T, O]{}, fmt.Errorf("invalid set %q: %w", s, err)
	}
	rr := make([]rangeset.Range[T, O], 0, len(tokens))
	var errs error
	for _, tok := range tokens {
		r, err := parseRange(tok)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		rr = append(rr, r)
	}
	if errs != nil {
		return rangeset.Set[T, O]{}, errs
	}
	return rangeset.From(rr...), nil
}

// split cuts s at the separators that are not inside brackets.
func split(s string) ([]string, error) {
	var (
		out   []string
		depth int
		start int
	)
	emit := func(end int) error {
		tok := strings.TrimSpace(s[start:end])
		if tok == "" {
			return fmt.Errorf("empty range at offset %d", start)
		}
		out = append(out, tok)
		return nil
	}
	for i, c := range s {
		switch c {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced %q at offset %d", c, i)
			}
		case ',', '|', '∪':
			if depth > 0 {
				continue
			}
			if err := emit(i); err != nil {
				return nil, err
			}
			start = i + len(string(c))
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced brackets")
	}
	if err := emit(len(s)); err != nil {
		return nil, err
	}
	return out, nil
}
