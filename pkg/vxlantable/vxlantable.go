package vxlantable

import (
	"fmt"
	"strconv"

	"github.com/henderiw/rangeset/pkg/idxtable"
	"github.com/henderiw/rangeset/pkg/rangeexpr"
	"github.com/henderiw/rangeset/pkg/rangeset"
	"k8s.io/apimachinery/pkg/labels"
)

type (
	Order  = rangeset.Integer[uint32]
	Set    = rangeset.Set[uint32, Order]
	Option = idxtable.Option[uint32, Order]
)

// MaxVNI is the largest 24 bit VXLAN network identifier.
const MaxVNI = 1<<24 - 1

type VXLANTable interface {
	Get(id uint32) (labels.Set, error)
	Claim(id uint32, d labels.Set) error
	ClaimDynamic(d labels.Set) (uint32, error)
	ClaimRange(expr string, d labels.Set) (Set, error)
	Release(id uint32) error
	Update(id uint32, d labels.Set) error

	Count() int
	Has(id uint32) bool

	IsFree(id uint32) bool
	FindFree() (uint32, error)
	Free() Set

	GetAll() map[uint32]labels.Set
}

// New returns a table handing out the VNIs from offset to max, both
// included.
func New(offset, max uint32, opts ...Option) (VXLANTable, error) {
	if max > MaxVNI {
		return nil, fmt.Errorf("max %d exceeds the largest VNI %d", max, MaxVNI)
	}
	if offset > max {
		return nil, fmt.Errorf("offset %d is above max %d", offset, max)
	}
	t, err := idxtable.NewTable(rangeset.Closed[uint32, Order](offset, max), opts...)
	if err != nil {
		return nil, err
	}
	return &vxlanTable{table: t}, nil
}

type vxlanTable struct {
	table idxtable.Table[uint32, Order]
}

func (r *vxlanTable) Get(id uint32) (labels.Set, error) {
	e, err := r.table.Owner(id)
	if err != nil {
		return nil, err
	}
	return e.Labels(), nil
}

func (r *vxlanTable) Claim(id uint32, d labels.Set) error {
	return r.table.ClaimValue(strconv.FormatUint(uint64(id), 10), id, d)
}

func (r *vxlanTable) ClaimDynamic(d labels.Set) (uint32, error) {
	return r.table.ClaimFree("", d)
}

func (r *vxlanTable) ClaimRange(expr string, d labels.Set) (Set, error) {
	s, err := rangeexpr.ParseSet[uint32, Order](expr, rangeexpr.Uint32)
	if err != nil {
		return Set{}, err
	}
	if err := r.table.Claim(s.String(), s, d); err != nil {
		return Set{}, err
	}
	return s, nil
}

func (r *vxlanTable) Release(id uint32) error {
	return r.table.ReleaseValue(id)
}

func (r *vxlanTable) Update(id uint32, d labels.Set) error {
	e, err := r.table.Owner(id)
	if err != nil {
		return fmt.Errorf("id %d is not claimed: %w", id, err)
	}
	return r.table.Update(e.Name(), d)
}

func (r *vxlanTable) Count() int {
	return r.table.Count()
}

func (r *vxlanTable) Has(id uint32) bool {
	return r.table.Has(id)
}

func (r *vxlanTable) IsFree(id uint32) bool {
	return r.table.IsFree(id)
}

func (r *vxlanTable) FindFree() (uint32, error) {
	return r.table.FindFree()
}

func (r *vxlanTable) Free() Set {
	return r.table.Free()
}

func (r *vxlanTable) GetAll() map[uint32]labels.Set {
	ids := map[uint32]labels.Set{}
	for _, e := range r.table.GetAll() {
		for id := range e.Set().Values() {
			ids[id] = e.Labels()
		}
	}
	return ids
}
