package vlantable

import (
	"fmt"
	"strconv"

	"github.com/henderiw/rangeset/pkg/idxtable"
	"github.com/henderiw/rangeset/pkg/rangeexpr"
	"github.com/henderiw/rangeset/pkg/rangeset"
	"k8s.io/apimachinery/pkg/labels"
)

type (
	Order  = rangeset.Integer[uint16]
	Range  = rangeset.Range[uint16, Order]
	Set    = rangeset.Set[uint16, Order]
	Option = idxtable.Option[uint16, Order]
)

const (
	untaggedVLAN = 0
	defaultVLAN  = 1
	maxVLAN      = 4095
)

type VLANTable interface {
	Get(id uint16) (labels.Set, error)
	Claim(id uint16, d labels.Set) error
	ClaimDynamic(d labels.Set) (uint16, error)
	ClaimRange(expr string, d labels.Set) (Set, error)
	ClaimSize(size int, d labels.Set) (Range, error)
	Release(id uint16) error
	Update(id uint16, d labels.Set) error

	Count() int
	Has(id uint16) bool

	IsFree(id uint16) bool
	FindFree() (uint16, error)
	Free() Set

	GetAll() map[uint16]labels.Set
	GetByLabel(selector labels.Selector) map[uint16]labels.Set
}

var initEntries = map[uint16]labels.Set{
	untaggedVLAN: map[string]string{"type": "untagged", "status": "reserved"},
	defaultVLAN:  map[string]string{"type": "untagged", "status": "reserved"},
	maxVLAN:      map[string]string{"type": "untagged", "status": "reserved"},
}

func validate(s Set) error {
	switch {
	case s.Contains(untaggedVLAN):
		return fmt.Errorf("VLAN %d is the untagged VLAN, cannot be added to the database", untaggedVLAN)
	case s.Contains(defaultVLAN):
		return fmt.Errorf("VLAN %d is the default VLAN, cannot be added to the database", defaultVLAN)
	case s.Contains(maxVLAN):
		return fmt.Errorf("VLAN %d is reserved, cannot be added to the database", maxVLAN)
	}
	return nil
}

// New returns a table over VLAN 0 to 4095 with 0, 1 and 4095 reserved.
func New(opts ...Option) (VLANTable, error) {
	o := []Option{idxtable.WithValidation[uint16, Order](validate)}
	for id, l := range initEntries {
		o = append(o, idxtable.WithReserved[uint16, Order](name(id), point(id), l))
	}
	t, err := idxtable.NewTable(rangeset.Closed[uint16, Order](0, maxVLAN), append(o, opts...)...)
	if err != nil {
		return nil, err
	}
	return &vlanTable{table: t}, nil
}

type vlanTable struct {
	table idxtable.Table[uint16, Order]
}

func name(id uint16) string { return strconv.Itoa(int(id)) }

func point(id uint16) Set { return rangeset.From(rangeset.Point[uint16, Order](id)) }

func (r *vlanTable) Get(id uint16) (labels.Set, error) {
	e, err := r.table.Owner(id)
	if err != nil {
		return nil, err
	}
	return e.Labels(), nil
}

func (r *vlanTable) Claim(id uint16, d labels.Set) error {
	return r.table.ClaimValue(name(id), id, d)
}

func (r *vlanTable) ClaimDynamic(d labels.Set) (uint16, error) {
	return r.table.ClaimFree("", d)
}

// ClaimRange claims the VLANs expr lists, e.g. "100-199, 300". The claim is
// named after the resulting set.
func (r *vlanTable) ClaimRange(expr string, d labels.Set) (Set, error) {
	s, err := rangeexpr.ParseSet[uint16, Order](expr, rangeexpr.Uint16)
	if err != nil {
		return Set{}, err
	}
	if err := r.table.Claim(s.String(), s, d); err != nil {
		return Set{}, err
	}
	return s, nil
}

func (r *vlanTable) ClaimSize(size int, d labels.Set) (Range, error) {
	return r.table.ClaimSize("", size, d)
}

func (r *vlanTable) Release(id uint16) error {
	return r.table.ReleaseValue(id)
}

func (r *vlanTable) Update(id uint16, d labels.Set) error {
	e, err := r.table.Owner(id)
	if err != nil {
		return fmt.Errorf("id %d is not claimed: %w", id, err)
	}
	return r.table.Update(e.Name(), d)
}

func (r *vlanTable) Count() int {
	return r.table.Count()
}

func (r *vlanTable) Has(id uint16) bool {
	return r.table.Has(id)
}

func (r *vlanTable) IsFree(id uint16) bool {
	return r.table.IsFree(id)
}

func (r *vlanTable) FindFree() (uint16, error) {
	return r.table.FindFree()
}

func (r *vlanTable) Free() Set {
	return r.table.Free()
}

func (r *vlanTable) GetAll() map[uint16]labels.Set {
	return byID(r.table.GetAll())
}

func (r *vlanTable) GetByLabel(selector labels.Selector) map[uint16]labels.Set {
	return byID(r.table.GetByLabel(selector))
}

// byID flattens claims to one map entry per VLAN.
func byID(entries idxtable.Entries[uint16, Order]) map[uint16]labels.Set {
	ids := map[uint16]labels.Set{}
	for _, e := range entries {
		for id := range e.Set().Values() {
			ids[id] = e.Labels()
		}
	}
	return ids
}
