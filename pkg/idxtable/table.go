package idxtable

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/henderiw/rangeset/pkg/rangeset"
	"k8s.io/apimachinery/pkg/labels"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyClaimed = errors.New("already claimed")
	ErrOutOfRange     = errors.New("out of range")
	ErrExhausted      = errors.New("no free entry found")
	// ErrNoLowestFree reports free values none of which is the lowest, such
	// as (1,10] in a float table.
	ErrNoLowestFree = errors.New("free values have no lowest value")
)

// Table hands out values of a domain to named claims. A value belongs to at
// most one claim. Claims are sets, so a claim may hold any number of ranges.
type Table[T any, O rangeset.Order[T]] interface {
	Get(name string) (Entry[T, O], error)
	Claim(name string, s rangeset.Set[T, O], l labels.Set) error
	ClaimRange(name string, r rangeset.Range[T, O], l labels.Set) error
	ClaimValue(name string, v T, l labels.Set) error
	ClaimFree(name string, l labels.Set) (T, error)
	ClaimSize(name string, size int, l labels.Set) (rangeset.Range[T, O], error)
	Release(name string) error
	ReleaseValue(v T) error
	ReleaseSet(s rangeset.Set[T, O]) error
	ReleaseByLabel(selector labels.Selector) int
	Update(name string, l labels.Set) error

	Iterate() *Iterator[T, O]

	Count() int
	Has(v T) bool
	Owner(v T) (Entry[T, O], error)

	IsFree(v T) bool
	FindFree() (T, error)
	FindFreeSize(size int) (rangeset.Range[T, O], error)
	Free() rangeset.Set[T, O]
	Claimed() rangeset.Set[T, O]
	Domain() rangeset.Range[T, O]

	GetAll() Entries[T, O]
	GetByLabel(selector labels.Selector) Entries[T, O]
}

// NewTable returns a table over domain. Reservations that fail are reported
// together, the table is returned regardless.
func NewTable[T any, O rangeset.Order[T]](domain rangeset.Range[T, O], opts ...Option[T, O]) (Table[T, O], error) {
	if domain.IsEmpty() {
		return nil, fmt.Errorf("cannot create table over an empty domain")
	}
	r := &table[T, O]{
		m:      new(sync.RWMutex),
		table:  map[string]Entry[T, O]{},
		domain: domain,
		log:    logr.Discard(),
	}
	for _, o := range opts {
		o(r)
	}

	var errm error
	for _, e := range r.reserved {
		if err := r.add(e.Name(), e.Set(), e.Labels(), true); err != nil {
			errm = errors.Join(errm, err)
		}
	}
	r.reserved = nil

	return r, errm
}

type table[T any, O rangeset.Order[T]] struct {
	m          *sync.RWMutex
	table      map[string]Entry[T, O]
	domain     rangeset.Range[T, O]
	claimed    rangeset.Set[T, O]
	validateFn ValidationFn[T, O]
	reserved   Entries[T, O]
	log        logr.Logger
}

func unbounded[T any, O rangeset.Order[T]]() rangeset.Range[T, O] {
	return rangeset.Unbounded[T, O]()
}

func (r *table[T, O]) validate(name string, s rangeset.Set[T, O], init bool) error {
	if s.IsEmpty() {
		return fmt.Errorf("claim %q holds no value", name)
	}
	outside := rangeset.Difference(s, rangeset.Full(r.domain), unbounded[T, O]())
	if !outside.IsEmpty() {
		return fmt.Errorf("claim %q: %w: %s is outside %s", name, ErrOutOfRange, outside, r.domain)
	}
	if r.validateFn != nil && !init {
		if err := r.validateFn(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *table[T, O]) Get(name string) (Entry[T, O], error) {
	r.m.RLock()
	defer r.m.RUnlock()

	e, ok := r.table[name]
	if !ok {
		return nil, fmt.Errorf("claim %q: %w", name, ErrNotFound)
	}
	return e, nil
}

// Claim adds s to the claim called name, creating it when needed. Labels
// are merged into those of an existing claim.
func (r *table[T, O]) Claim(name string, s rangeset.Set[T, O], l labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.add(name, s, l, false)
}

func (r *table[T, O]) ClaimRange(name string, rng rangeset.Range[T, O], l labels.Set) error {
	return r.Claim(name, rangeset.From(rng), l)
}

func (r *table[T, O]) ClaimValue(name string, v T, l labels.Set) error {
	return r.Claim(name, rangeset.From(rangeset.Point[T, O](v)), l)
}

// ClaimFree claims the lowest free value. An empty name names the claim
// after the value.
func (r *table[T, O]) ClaimFree(name string, l labels.Set) (T, error) {
	r.m.Lock()
	defer r.m.Unlock()

	v, err := r.findFree()
	if err != nil {
		return v, err
	}
	if name == "" {
		name = fmt.Sprint(v)
	}
	if err := r.add(name, rangeset.From(rangeset.Point[T, O](v)), l, false); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// ClaimSize claims the lowest run of size consecutive free values. It needs
// a discrete order. An empty name names the claim after the run.
func (r *table[T, O]) ClaimSize(name string, size int, l labels.Set) (rangeset.Range[T, O], error) {
	r.m.Lock()
	defer r.m.Unlock()

	rng, err := r.findFreeSize(size)
	if err != nil {
		return rng, err
	}
	if name == "" {
		name = rng.String()
	}
	if err := r.add(name, rangeset.From(rng), l, false); err != nil {
		return rangeset.Range[T, O]{}, err
	}
	return rng, nil
}

func (r *table[T, O]) Release(name string) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.delete(name)
}

// ReleaseValue returns v to the free pool. A claim left without values is
// deleted.
func (r *table[T, O]) ReleaseValue(v T) error {
	r.m.Lock()
	defer r.m.Unlock()

	if !r.claimed.Contains(v) {
		return fmt.Errorf("value %v: %w", v, ErrNotFound)
	}
	r.release(rangeset.From(rangeset.Point[T, O](v)))
	return nil
}

// ReleaseSet returns the values of s to the free pool, whichever claims
// hold them. It fails when no value of s is claimed.
func (r *table[T, O]) ReleaseSet(s rangeset.Set[T, O]) error {
	r.m.Lock()
	defer r.m.Unlock()

	if !r.claimed.Overlaps(s) {
		return fmt.Errorf("values %s: %w", s, ErrNotFound)
	}
	r.release(s)
	return nil
}

func (r *table[T, O]) release(s rangeset.Set[T, O]) {
	for _, name := range r.holders(s) {
		e := r.table[name]
		rest := rangeset.Difference(e.Set(), s, unbounded[T, O]())
		if rest.IsEmpty() {
			delete(r.table, name)
		} else {
			r.table[name] = NewEntry(name, rest, e.Labels())
		}
		r.log.V(1).Info("released values", "name", name, "values", rangeset.Intersection(e.Set(), s, unbounded[T, O]()).String())
	}
	r.claimed = rangeset.Difference(r.claimed, s, unbounded[T, O]())
}

// ReleaseByLabel releases every claim whose labels match selector and
// returns how many it released.
func (r *table[T, O]) ReleaseByLabel(selector labels.Selector) int {
	r.m.Lock()
	defer r.m.Unlock()

	var n int
	for name, e := range r.table {
		if !selector.Matches(e.Labels()) {
			continue
		}
		if err := r.delete(name); err == nil {
			n++
		}
	}
	return n
}

// Update replaces the labels of a claim.
func (r *table[T, O]) Update(name string, l labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	e, ok := r.table[name]
	if !ok {
		return fmt.Errorf("update %q: %w", name, ErrNotFound)
	}
	r.table[name] = NewEntry(name, e.Set(), l)
	return nil
}

func (r *table[T, O]) Iterate() *Iterator[T, O] {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.iterate()
}

func (r *table[T, O]) iterate() *Iterator[T, O] {
	return &Iterator[T, O]{current: -1, entries: r.sorted()}
}

// sorted returns the entries ordered by their lowest value, then by name.
func (r *table[T, O]) sorted() Entries[T, O] {
	entries := make(Entries[T, O], 0, len(r.table))
	for _, e := range r.table {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b Entry[T, O]) int {
		if c := a.Set().Span().CompareLower(b.Set().Span()); c != 0 {
			return c
		}
		return strings.Compare(a.Name(), b.Name())
	})
	return entries
}

func (r *table[T, O]) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return len(r.table)
}

func (r *table[T, O]) Has(v T) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.claimed.Contains(v)
}

// Owner returns the claim holding v.
func (r *table[T, O]) Owner(v T) (Entry[T, O], error) {
	r.m.RLock()
	defer r.m.RUnlock()

	e := r.owner(v)
	if e == nil {
		return nil, fmt.Errorf("value %v: %w", v, ErrNotFound)
	}
	return e, nil
}

func (r *table[T, O]) owner(v T) Entry[T, O] {
	if !r.claimed.Contains(v) {
		return nil
	}
	for _, e := range r.table {
		if e.Set().Contains(v) {
			return e
		}
	}
	return nil
}

func (r *table[T, O]) IsFree(v T) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.domain.Contains(v) && !r.claimed.Contains(v)
}

func (r *table[T, O]) FindFree() (T, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.findFree()
}

func (r *table[T, O]) findFree() (T, error) {
	var zero T
	free := r.free()
	if free.IsEmpty() {
		return zero, fmt.Errorf("%w in %s", ErrExhausted, r.domain)
	}
	for rng := range free.All() {
		if v, ok := rng.First(); ok {
			return v, nil
		}
	}
	return zero, fmt.Errorf("%w: %s", ErrNoLowestFree, free)
}

func (r *table[T, O]) FindFreeSize(size int) (rangeset.Range[T, O], error) {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.findFreeSize(size)
}

func (r *table[T, O]) findFreeSize(size int) (rangeset.Range[T, O], error) {
	var none rangeset.Range[T, O]
	if size < 1 {
		return none, fmt.Errorf("size %d must be positive", size)
	}
	var o O
	d, ok := any(o).(rangeset.Discrete[T])
	if !ok {
		return none, fmt.Errorf("size based claims need a discrete order, got %T", o)
	}
	for free := range r.free().All() {
		first, ok := free.First()
		if !ok {
			continue
		}
		last, fits := first, true
		for i := 1; i < size; i++ {
			next, ok := d.Next(last)
			if !ok || !free.Contains(next) {
				fits = false
				break
			}
			last = next
		}
		if fits {
			return rangeset.Closed[T, O](first, last), nil
		}
	}
	return none, fmt.Errorf("%w: no run of %d values in %s", ErrExhausted, size, r.domain)
}

// Free returns the values of the domain no claim holds.
func (r *table[T, O]) Free() rangeset.Set[T, O] {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.free()
}

func (r *table[T, O]) free() rangeset.Set[T, O] {
	return rangeset.Invert(r.claimed, r.domain)
}

// Claimed returns the values held by any claim.
func (r *table[T, O]) Claimed() rangeset.Set[T, O] {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.claimed
}

func (r *table[T, O]) Domain() rangeset.Range[T, O] { return r.domain }

func (r *table[T, O]) add(name string, s rangeset.Set[T, O], l labels.Set, init bool) error {
	if err := r.validate(name, s, init); err != nil {
		return err
	}
	others := r.claimed
	own, exists := r.table[name]
	if exists {
		others = rangeset.Difference(others, own.Set(), unbounded[T, O]())
	}
	if overlap := rangeset.Intersection(others, s, unbounded[T, O]()); !overlap.IsEmpty() {
		return fmt.Errorf("claim %q: %s %w by %s", name, overlap, ErrAlreadyClaimed,
			strings.Join(r.holders(overlap), ", "))
	}

	set := s
	if exists {
		set = rangeset.Union(own.Set(), s)
		l = labels.Merge(own.Labels(), l)
	}
	r.table[name] = NewEntry(name, set, l)
	r.claimed = rangeset.Union(r.claimed, s)
	r.log.V(1).Info("claimed", "name", name, "values", s.String(), "init", init)
	return nil
}

// holders returns the sorted names of the claims overlapping s.
func (r *table[T, O]) holders(s rangeset.Set[T, O]) []string {
	var names []string
	for name, e := range r.table {
		if e.Set().Overlaps(s) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

func (r *table[T, O]) delete(name string) error {
	e, ok := r.table[name]
	if !ok {
		return fmt.Errorf("release %q: %w", name, ErrNotFound)
	}
	delete(r.table, name)
	r.claimed = rangeset.Difference(r.claimed, e.Set(), unbounded[T, O]())
	r.log.V(1).Info("released", "name", name, "values", e.Set().String())
	return nil
}

func (r *table[T, O]) GetAll() Entries[T, O] {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.sorted()
}

func (r *table[T, O]) GetByLabel(selector labels.Selector) Entries[T, O] {
	r.m.RLock()
	defer r.m.RUnlock()

	var entries Entries[T, O]
	iter := r.iterate()
	for iter.Next() {
		if selector.Matches(iter.Value().Labels()) {
			entries = append(entries, iter.Value())
		}
	}
	return entries
}
