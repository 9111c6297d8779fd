package idxtable

import (
	"github.com/henderiw/rangeset/pkg/rangeset"
	"k8s.io/apimachinery/pkg/labels"
)

// Entry is a named claim on a set of values.
type Entry[T any, O rangeset.Order[T]] interface {
	Name() string
	Set() rangeset.Set[T, O]
	Labels() labels.Set
}

type entry[T any, O rangeset.Order[T]] struct {
	name   string
	set    rangeset.Set[T, O]
	labels labels.Set
}

type Entries[T any, O rangeset.Order[T]] []Entry[T, O]

func (r entry[T, O]) Name() string            { return r.name }
func (r entry[T, O]) Set() rangeset.Set[T, O] { return r.set }
func (r entry[T, O]) Labels() labels.Set      { return r.labels }

func NewEntry[T any, O rangeset.Order[T]](name string, s rangeset.Set[T, O], l labels.Set) Entry[T, O] {
	return entry[T, O]{
		name:   name,
		set:    s,
		labels: l,
	}
}

// Names returns the names of the entries, in order.
func (r Entries[T, O]) Names() []string {
	names := make([]string, 0, len(r))
	for _, e := range r {
		names = append(names, e.Name())
	}
	return names
}

// Set returns the values claimed by any of the entries.
func (r Entries[T, O]) Set() rangeset.Set[T, O] {
	sets := make([]rangeset.Set[T, O], 0, len(r))
	for _, e := range r {
		sets = append(sets, e.Set())
	}
	return rangeset.UnionAll(sets...)
}
