package iptable

import (
	"fmt"
	"math/big"
	"net/netip"
	"strings"

	"github.com/henderiw/rangeset/pkg/idxtable"
	"github.com/henderiw/rangeset/pkg/iprange"
	"go4.org/netipx"
	"k8s.io/apimachinery/pkg/labels"
)

type Option = idxtable.Option[netip.Addr, iprange.Addr]

// IPTable hands out addresses of a range. Claims are keyed by what was
// claimed: an address, a prefix such as 10.0.0.0/30 or a range such as
// 10.0.0.1-10.0.0.9.
type IPTable interface {
	Get(addr string) (labels.Set, error)
	Claim(addr string, d labels.Set) error
	ClaimFree(d labels.Set) (netip.Addr, error)
	ClaimFreePrefix(bits int, d labels.Set) (netip.Prefix, error)
	Release(addr string) error
	Update(addr string, d labels.Set) error

	Count() int
	Has(addr string) bool

	IsFree(addr string) bool
	FindFree() (netip.Addr, error)
	FindFreePrefix(bits int) (netip.Prefix, error)
	Free() iprange.Set
	FreePrefixes() []netip.Prefix
	FreeCount() *big.Int

	GetAll() map[string]labels.Set
	GetByLabel(selector labels.Selector) map[string]labels.Set
}

func New(from, to netip.Addr, opts ...Option) (IPTable, error) {
	ipRange := netipx.IPRangeFrom(from, to)
	if !ipRange.IsValid() {
		return nil, fmt.Errorf("invalid ip range from %s to %s", from, to)
	}
	t, err := idxtable.NewTable(iprange.FromIPRange(ipRange), opts...)
	if err != nil {
		return nil, err
	}
	return &ipTable{
		table:   t,
		ipRange: ipRange,
	}, nil
}

type ipTable struct {
	table   idxtable.Table[netip.Addr, iprange.Addr]
	ipRange netipx.IPRange
}

func (r *ipTable) Get(addr string) (labels.Set, error) {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return nil, err
	}
	e, err := r.table.Owner(claimIP)
	if err != nil {
		return nil, err
	}
	return e.Labels(), nil
}

func (r *ipTable) Claim(addr string, d labels.Set) error {
	s, err := r.parse(addr)
	if err != nil {
		return err
	}
	if err := r.table.Claim(name(s), s, d); err != nil {
		return fmt.Errorf("claim failed ip %s: %w", addr, err)
	}
	return nil
}

func (r *ipTable) ClaimFree(d labels.Set) (netip.Addr, error) {
	return r.table.ClaimFree("", d)
}

// ClaimFreePrefix claims a free prefix of the given length, carved from the
// smallest free block it fits in.
func (r *ipTable) ClaimFreePrefix(bits int, d labels.Set) (netip.Prefix, error) {
	p, err := r.FindFreePrefix(bits)
	if err != nil {
		return p, err
	}
	if err := r.table.ClaimRange(p.String(), iprange.FromPrefix(p), d); err != nil {
		return netip.Prefix{}, err
	}
	return p, nil
}

// Release frees whatever addr covers, across claims.
func (r *ipTable) Release(addr string) error {
	s, err := r.parse(addr)
	if err != nil {
		return err
	}
	return r.table.ReleaseSet(s)
}

func (r *ipTable) Update(addr string, d labels.Set) error {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return err
	}
	e, err := r.table.Owner(claimIP)
	if err != nil {
		return fmt.Errorf("update failed ip %s not claimed", addr)
	}
	return r.table.Update(e.Name(), d)
}

func (r *ipTable) Count() int {
	return r.table.Count()
}

func (r *ipTable) Has(addr string) bool {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return false
	}
	return r.table.Has(claimIP)
}

func (r *ipTable) IsFree(addr string) bool {
	claimIP, err := r.validateIP(addr)
	if err != nil {
		return false
	}
	return r.table.IsFree(claimIP)
}

func (r *ipTable) FindFree() (netip.Addr, error) {
	return r.table.FindFree()
}

func (r *ipTable) FindFreePrefix(bits int) (netip.Prefix, error) {
	if bits < 0 || bits > r.ipRange.From().BitLen() {
		return netip.Prefix{}, fmt.Errorf("invalid prefix length %d", bits)
	}
	free, err := iprange.ToIPSet(r.table.Free())
	if err != nil {
		return netip.Prefix{}, err
	}
	p, _, ok := free.RemoveFreePrefix(uint8(bits))
	if !ok {
		return netip.Prefix{}, fmt.Errorf("%w: no free /%d in %s", idxtable.ErrExhausted, bits, r.ipRange)
	}
	return p, nil
}

func (r *ipTable) Free() iprange.Set {
	return r.table.Free()
}

// FreePrefixes returns the free addresses as the shortest list of prefixes.
func (r *ipTable) FreePrefixes() []netip.Prefix {
	return iprange.Prefixes(r.table.Free())
}

// FreeCount returns the number of free addresses.
func (r *ipTable) FreeCount() *big.Int {
	n := new(big.Int)
	for _, ipr := range iprange.IPRanges(r.table.Free()) {
		n.Add(n, numIPs(ipr.From(), ipr.To()))
	}
	return n
}

func (r *ipTable) GetAll() map[string]labels.Set {
	entries := map[string]labels.Set{}
	for _, e := range r.table.GetAll() {
		entries[e.Name()] = e.Labels()
	}
	return entries
}

func (r *ipTable) GetByLabel(selector labels.Selector) map[string]labels.Set {
	entries := map[string]labels.Set{}
	for _, e := range r.table.GetByLabel(selector) {
		entries[e.Name()] = e.Labels()
	}
	return entries
}

func (r *ipTable) validateIP(addr string) (netip.Addr, error) {
	claimIP, err := netip.ParseAddr(strings.TrimSpace(addr))
	if err != nil {
		return netip.Addr{}, fmt.Errorf("ip address %s is invalid", addr)
	}
	if !r.ipRange.Contains(claimIP) {
		return netip.Addr{}, fmt.Errorf("ip address %s, does not fit in the range from %s to %s", addr, r.ipRange.From().String(), r.ipRange.To().String())
	}
	return claimIP, nil
}

func (r *ipTable) parse(addr string) (iprange.Set, error) {
	s, err := iprange.ParseSet(addr)
	if err != nil {
		return iprange.Set{}, fmt.Errorf("ip %s is invalid: %w", addr, err)
	}
	if s.IsEmpty() {
		return s, fmt.Errorf("ip %s holds no address", addr)
	}
	return s, nil
}

// name renders s the way claims are keyed: single addresses bare, other
// ranges as from-to.
func name(s iprange.Set) string {
	var parts []string
	for _, ipr := range iprange.IPRanges(s) {
		if ipr.From() == ipr.To() {
			parts = append(parts, ipr.From().String())
			continue
		}
		if p, ok := ipr.Prefix(); ok {
			parts = append(parts, p.String())
			continue
		}
		parts = append(parts, ipr.String())
	}
	return strings.Join(parts, ",")
}

func numIPs(startIP, endIP netip.Addr) *big.Int {
	diff := new(big.Int).Sub(ipToInt(endIP), ipToInt(startIP))
	return diff.Add(diff, big.NewInt(1))
}

func ipToInt(ip netip.Addr) *big.Int {
	bytes := ip.As16()
	return new(big.Int).SetBytes(bytes[:])
}
