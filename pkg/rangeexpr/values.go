package rangeexpr

import (
	"fmt"
	"math"
	"net/netip"
	"strconv"
	"time"
)

func Int(s string) (int, error) {
	return strconv.Atoi(s)
}

func Int64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func Uint16(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	return uint16(v), err
}

func Uint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint32(v), err
}

// Float64 parses a finite float. Infinities are spelled as unbounded sides.
func Float64(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

// Time parses an RFC 3339 timestamp, fractional seconds allowed.
func Time(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// Addr parses an IPv4 or IPv6 address.
func Addr(s string) (netip.Addr, error) {
	return netip.ParseAddr(s)
}
