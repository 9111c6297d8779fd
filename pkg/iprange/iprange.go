// Package iprange adapts range sets to IP addresses.
//
// Addresses are ordered as netip orders them: every IPv4 address before
// every IPv6 address. Addr treats that order as one discrete line, so the
// successor of 255.255.255.255 is ::. Sets may hold addresses of both
// families; conversions to netipx types split ranges at the family border.
package iprange

import (
	"net/netip"
	"strings"

	"github.com/henderiw/rangeset/pkg/rangeexpr"
	"github.com/henderiw/rangeset/pkg/rangeset"
	"go4.org/netipx"
)

// Addr is the discrete order of netip.Addr values.
type Addr struct{}

func (Addr) Compare(a, b netip.Addr) int { return a.Compare(b) }

func (Addr) Next(v netip.Addr) (netip.Addr, bool) {
	if !v.IsValid() {
		return v, false
	}
	if v == v4Last {
		return v6First, true
	}
	n := v.Next()
	return n, n.IsValid()
}

func (Addr) Prev(v netip.Addr) (netip.Addr, bool) {
	if !v.IsValid() {
		return v, false
	}
	if v == v6First {
		return v4Last, true
	}
	p := v.Prev()
	return p, p.IsValid()
}

type (
	Range = rangeset.Range[netip.Addr, Addr]
	Set   = rangeset.Set[netip.Addr, Addr]
)

var (
	v4First = netip.IPv4Unspecified()
	v4Last  = netip.AddrFrom4([4]byte{255, 255, 255, 255})
	v6First = netip.IPv6Unspecified()
	v6Last  = netip.AddrFrom16([16]byte{
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	})
)

// V4 returns the range of all IPv4 addresses.
func V4() Range { return rangeset.Closed[netip.Addr, Addr](v4First, v4Last) }

// V6 returns the range of all IPv6 addresses.
func V6() Range { return rangeset.Closed[netip.Addr, Addr](v6First, v6Last) }

// FromIPRange returns r as a Range. An invalid r gives the empty range.
func FromIPRange(r netipx.IPRange) Range {
	if !r.IsValid() {
		return Range{}
	}
	return rangeset.Closed[netip.Addr, Addr](r.From(), r.To())
}

// FromPrefix returns the addresses p covers.
func FromPrefix(p netip.Prefix) Range {
	if !p.IsValid() {
		return Range{}
	}
	return FromIPRange(netipx.RangeOfPrefix(p.Masked()))
}

// ToIPRange returns r as an inclusive netipx.IPRange. An unbounded low end
// starts at 0.0.0.0 and an unbounded high end stops at the last IPv6
// address. ok is false when r is empty or holds addresses of both families.
func ToIPRange(r Range) (netipx.IPRange, bool) {
	if r.IsEmpty() {
		return netipx.IPRange{}, false
	}
	from, to := v4First, v6Last
	if !r.LowUnbounded() {
		v, ok := r.First()
		if !ok {
			return netipx.IPRange{}, false
		}
		from = v
	}
	if !r.HighUnbounded() {
		v, ok := r.Last()
		if !ok {
			return netipx.IPRange{}, false
		}
		to = v
	}
	ipr := netipx.IPRangeFrom(from, to)
	return ipr, ipr.IsValid()
}

// split returns the IPv4 and IPv6 parts of r as netipx ranges.
func split(r Range) []netipx.IPRange {
	var out []netipx.IPRange
	for _, family := range []Range{V4(), V6()} {
		if ipr, ok := ToIPRange(r.Intersect(family)); ok {
			out = append(out, ipr)
		}
	}
	return out
}

// SetFromIPSet returns the addresses in s.
func SetFromIPSet(s *netipx.IPSet) Set {
	if s == nil {
		return Set{}
	}
	ranges := s.Ranges()
	rr := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		rr = append(rr, FromIPRange(r))
	}
	return rangeset.From(rr...)
}

// ToIPSet returns s as a netipx.IPSet.
func ToIPSet(s Set) (*netipx.IPSet, error) {
	var b netipx.IPSetBuilder
	for r := range s.All() {
		for _, ipr := range split(r) {
			b.AddRange(ipr)
		}
	}
	return b.IPSet()
}

// IPRanges returns the ranges of s as netipx ranges, split at the family
// border.
func IPRanges(s Set) []netipx.IPRange {
	var out []netipx.IPRange
	for r := range s.All() {
		out = append(out, split(r)...)
	}
	return out
}

// Prefixes returns the shortest list of CIDR prefixes covering s.
func Prefixes(s Set) []netip.Prefix {
	var out []netip.Prefix
	for _, ipr := range IPRanges(s) {
		out = ipr.AppendPrefixes(out)
	}
	return out
}

// ParseRange parses a CIDR prefix, a netipx range such as
// 10.0.0.1-10.0.0.9, or any form rangeexpr.ParseRange accepts.
func ParseRange(s string) (Range, error) {
	in := strings.TrimSpace(s)
	if strings.Contains(in, "/") {
		p, err := netip.ParsePrefix(in)
		if err != nil {
			return Range{}, err
		}
		return FromPrefix(p), nil
	}
	return rangeexpr.ParseRange[netip.Addr, Addr](in, rangeexpr.Addr)
}

// ParseSet parses a list of ranges as ParseRange reads them, see
// rangeexpr.ParseSet for the list syntax.
func ParseSet(s string) (Set, error) {
	return rangeexpr.ParseSetFunc(s, ParseRange)
}

// Format renders s with inclusive netipx ranges:
// {10.0.0.0-10.0.0.255, 10.0.2.1-10.0.2.1}.
func Format(s Set) string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, ipr := range IPRanges(s) {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(ipr.String())
	}
	sb.WriteString("}")
	return sb.String()
}
