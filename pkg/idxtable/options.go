package idxtable

import (
	"github.com/go-logr/logr"
	"github.com/henderiw/rangeset/pkg/rangeset"
	"k8s.io/apimachinery/pkg/labels"
)

// ValidationFn vets the values of a claim before it is added. Reservations
// made with WithReserved skip it.
type ValidationFn[T any, O rangeset.Order[T]] func(s rangeset.Set[T, O]) error

type Option[T any, O rangeset.Order[T]] func(*table[T, O])

// WithLogger sets the logger claims and releases are reported to.
func WithLogger[T any, O rangeset.Order[T]](l logr.Logger) Option[T, O] {
	return func(r *table[T, O]) {
		r.log = l
	}
}

func WithValidation[T any, O rangeset.Order[T]](fn ValidationFn[T, O]) Option[T, O] {
	return func(r *table[T, O]) {
		r.validateFn = fn
	}
}

// WithReserved claims s under name when the table is created.
func WithReserved[T any, O rangeset.Order[T]](name string, s rangeset.Set[T, O], l labels.Set) Option[T, O] {
	return func(r *table[T, O]) {
		r.reserved = append(r.reserved, NewEntry(name, s, l))
	}
}
