package cli

import (
	"fmt"
	"net/netip"
	"strconv"
	"time"

	"github.com/go-logr/logr"
	"github.com/henderiw/rangeset/pkg/iprange"
	"github.com/henderiw/rangeset/pkg/rangeexpr"
	"github.com/henderiw/rangeset/pkg/rangeset"
)

// evaluator runs the commands for one value type. Sets and values come in
// as text and results go out as text.
type evaluator interface {
	domain() string
	normalize(in string) (string, error)
	union(in []string) (string, error)
	intersect(in []string) (string, error)
	difference(a, b string) (string, error)
	symdiff(a, b string) (string, error)
	invert(in string) (string, error)
	contains(in string, values []string) ([]bool, error)
	subset(a, b string) (bool, error)
	overlaps(a, b string) (bool, error)
}

var valueTypes = []string{"int", "float", "ip", "time"}

func newEvaluator(typ, domain string, log logr.Logger) (evaluator, error) {
	switch typ {
	case "int":
		return newAlgebra(domain, log,
			func(s string) (rangeset.Int64Range, error) {
				return rangeexpr.ParseRange[int64, rangeset.Integer[int64]](s, rangeexpr.Int64)
			},
			rangeexpr.Int64,
			rangeset.Int64Set.String,
		)
	case "float":
		return newAlgebra(domain, log,
			func(s string) (rangeset.FloatRange, error) {
				return rangeexpr.ParseRange[float64, rangeset.Float[float64]](s, rangeexpr.Float64)
			},
			rangeexpr.Float64,
			func(s rangeset.FloatSet) string {
				return rangeexpr.FormatSet(s, func(v float64) string {
					return strconv.FormatFloat(v, 'g', -1, 64)
				})
			},
		)
	case "ip":
		return newAlgebra[netip.Addr, iprange.Addr](domain, log,
			iprange.ParseRange,
			rangeexpr.Addr,
			iprange.Format,
		)
	case "time":
		return newAlgebra(domain, log,
			func(s string) (rangeset.TimeRange, error) {
				return rangeexpr.ParseRange[time.Time, rangeset.Time](s, rangeexpr.Time)
			},
			rangeexpr.Time,
			func(s rangeset.TimeSet) string { return rangeexpr.FormatSet(s, rangeexpr.FormatTime) },
		)
	}
	return nil, fmt.Errorf("unknown type %q, valid types are %v", typ, valueTypes)
}

type algebra[T any, O rangeset.Order[T]] struct {
	dom        rangeset.Range[T, O]
	parseRange func(string) (rangeset.Range[T, O], error)
	parseValue rangeexpr.ValueParser[T]
	format     func(rangeset.Set[T, O]) string
	log        logr.Logger
}

func newAlgebra[T any, O rangeset.Order[T]](
	domain string,
	log logr.Logger,
	parseRange func(string) (rangeset.Range[T, O], error),
	parseValue rangeexpr.ValueParser[T],
	format func(rangeset.Set[T, O]) string,
) (evaluator, error) {
	d, err := parseRange(domain)
	if err != nil {
		return nil, fmt.Errorf("invalid domain: %w", err)
	}
	if d.IsEmpty() {
		return nil, fmt.Errorf("domain %q is empty", domain)
	}
	log.V(2).Info("domain", "input", domain, "range", d.String())
	return &algebra[T, O]{
		dom:        d,
		parseRange: parseRange,
		parseValue: parseValue,
		format:     format,
		log:        log,
	}, nil
}

func (r *algebra[T, O]) domain() string {
	return r.format(rangeset.Full(r.dom))
}

// parse reads a set and checks it lies within the domain.
func (r *algebra[T, O]) parse(in string) (rangeset.Set[T, O], error) {
	s, err := rangeexpr.ParseSetFunc(in, r.parseRange)
	if err != nil {
		return s, err
	}
	if !s.IsSubsetOf(rangeset.Full(r.dom)) {
		return s, fmt.Errorf("set %s is not within domain %s", r.format(s), r.domain())
	}
	r.log.V(1).Info("parsed", "input", in, "set", r.format(s))
	return s, nil
}

func (r *algebra[T, O]) parseAll(in []string) ([]rangeset.Set[T, O], error) {
	sets := make([]rangeset.Set[T, O], 0, len(in))
	for _, s := range in {
		set, err := r.parse(s)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, nil
}

func (r *algebra[T, O]) parse2(a, b string) (rangeset.Set[T, O], rangeset.Set[T, O], error) {
	sa, err := r.parse(a)
	if err != nil {
		return sa, sa, err
	}
	sb, err := r.parse(b)
	return sa, sb, err
}

func (r *algebra[T, O]) normalize(in string) (string, error) {
	s, err := r.parse(in)
	if err != nil {
		return "", err
	}
	return r.format(s), nil
}

func (r *algebra[T, O]) union(in []string) (string, error) {
	sets, err := r.parseAll(in)
	if err != nil {
		return "", err
	}
	return r.format(rangeset.UnionAll(sets...)), nil
}

func (r *algebra[T, O]) intersect(in []string) (string, error) {
	sets, err := r.parseAll(in)
	if err != nil {
		return "", err
	}
	out := rangeset.Full(r.dom)
	for _, s := range sets {
		out = out.Intersection(s, r.dom)
	}
	return r.format(out), nil
}

func (r *algebra[T, O]) difference(a, b string) (string, error) {
	sa, sb, err := r.parse2(a, b)
	if err != nil {
		return "", err
	}
	return r.format(sa.Difference(sb, r.dom)), nil
}

func (r *algebra[T, O]) symdiff(a, b string) (string, error) {
	sa, sb, err := r.parse2(a, b)
	if err != nil {
		return "", err
	}
	return r.format(sa.SymmetricDifference(sb, r.dom)), nil
}

func (r *algebra[T, O]) invert(in string) (string, error) {
	s, err := r.parse(in)
	if err != nil {
		return "", err
	}
	return r.format(s.Invert(r.dom)), nil
}

func (r *algebra[T, O]) contains(in string, values []string) ([]bool, error) {
	s, err := r.parse(in)
	if err != nil {
		return nil, err
	}
	out := make([]bool, 0, len(values))
	for _, tok := range values {
		v, err := r.parseValue(tok)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", tok, err)
		}
		out = append(out, s.Contains(v))
	}
	return out, nil
}

func (r *algebra[T, O]) subset(a, b string) (bool, error) {
	sa, sb, err := r.parse2(a, b)
	if err != nil {
		return false, err
	}
	return sa.IsSubsetOf(sb), nil
}

func (r *algebra[T, O]) overlaps(a, b string) (bool, error) {
	sa, sb, err := r.parse2(a, b)
	if err != nil {
		return false, err
	}
	return sa.Overlaps(sb), nil
}
