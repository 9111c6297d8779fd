package vlantable

import (
	"testing"

	"github.com/go-logr/logr/testr"
	"github.com/henderiw/rangeset/pkg/idxtable"
	"github.com/tj/assert"
	"k8s.io/apimachinery/pkg/labels"
)

func TestClaim(t *testing.T) {
	cases := map[string]struct {
		initEntries       map[uint16]labels.Set
		newSuccessEntries map[uint16]labels.Set
		newFailedEntries  map[uint16]labels.Set
		expectedEntries   int
	}{
		"Normal": {
			initEntries: initEntries,
			newSuccessEntries: map[uint16]labels.Set{
				10: map[string]string{},
				11: map[string]string{},
			},
			newFailedEntries: map[uint16]labels.Set{
				5000: map[string]string{},
			},
			expectedEntries: 5,
		},
		"Reserved": {
			initEntries: initEntries,
			newFailedEntries: map[uint16]labels.Set{
				0:    map[string]string{},
				1:    map[string]string{},
				4095: map[string]string{},
			},
			expectedEntries: 3,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := New(idxtable.WithLogger[uint16, Order](testr.New(t)))
			assert.NoError(t, err)

			for id, d := range tc.newSuccessEntries {
				err := r.Claim(id, d)
				assert.NoError(t, err)
			}
			for id, d := range tc.newFailedEntries {
				err := r.Claim(id, d)
				assert.Error(t, err)
			}
			// check table
			for id := range tc.initEntries {
				if !r.Has(id) {
					t.Errorf("%s expecting initEntry: %d\n", name, id)
				}
			}
			for id := range tc.newSuccessEntries {
				if !r.Has(id) {
					t.Errorf("%s expecting success claim entry: %d\n", name, id)
				}
			}
			for id := range tc.newFailedEntries {
				if _, ok := tc.initEntries[id]; ok {
					continue
				}
				if r.Has(id) {
					t.Errorf("%s no expecting failed claim entry: %d\n", name, id)
				}
			}
			if r.Count() != tc.expectedEntries {
				t.Errorf("%s: -want %d, +got: %d\n", name, tc.expectedEntries, r.Count())
			}
		})
	}
}

func TestClaimReservedMessage(t *testing.T) {
	r, err := New()
	assert.NoError(t, err)

	err = r.Claim(1, nil)
	assert.EqualError(t, err, "VLAN 1 is the default VLAN, cannot be added to the database")
	_, err = r.ClaimRange("4000-4095", nil)
	assert.EqualError(t, err, "VLAN 4095 is reserved, cannot be added to the database")
	assert.True(t, r.IsFree(4000))
}

func TestClaimDynamic(t *testing.T) {
	r, err := New()
	assert.NoError(t, err)

	id, err := r.ClaimDynamic(labels.Set{"app": "a"})
	assert.NoError(t, err)
	assert.Equal(t, uint16(2), id)

	id, err = r.ClaimDynamic(labels.Set{"app": "b"})
	assert.NoError(t, err)
	assert.Equal(t, uint16(3), id)

	assert.NoError(t, r.Release(2))
	id, err = r.FindFree()
	assert.NoError(t, err)
	assert.Equal(t, uint16(2), id)
}

func TestClaimRange(t *testing.T) {
	r, err := New()
	assert.NoError(t, err)

	s, err := r.ClaimRange("100-199, 300", labels.Set{"purpose": "tenant"})
	assert.NoError(t, err)
	assert.Equal(t, "{[100,200), [300,301)}", s.String())
	assert.True(t, r.Has(150))
	assert.True(t, r.Has(300))
	assert.False(t, r.Has(200))
	assert.Equal(t, 4, r.Count())

	_, err = r.ClaimRange("190-210", nil)
	assert.Error(t, err)
	assert.True(t, r.IsFree(205))

	_, err = r.ClaimRange("100-", nil)
	assert.Error(t, err)

	all := r.GetByLabel(labels.SelectorFromSet(labels.Set{"purpose": "tenant"}))
	assert.Equal(t, 101, len(all))
	assert.Equal(t, "tenant", all[300]["purpose"])

	// releasing one VLAN keeps the rest of the claim
	assert.NoError(t, r.Release(150))
	assert.False(t, r.Has(150))
	assert.True(t, r.Has(151))
	assert.Equal(t, 4, r.Count())
}

func TestClaimSize(t *testing.T) {
	r, err := New()
	assert.NoError(t, err)

	assert.NoError(t, r.Claim(5, nil))
	rng, err := r.ClaimSize(10, nil)
	assert.NoError(t, err)
	assert.Equal(t, "[6,15]", rng.String())

	rng, err = r.ClaimSize(3, nil)
	assert.NoError(t, err)
	assert.Equal(t, "[2,4]", rng.String())

	_, err = r.ClaimSize(5000, nil)
	assert.Error(t, err)
	assert.Equal(t, "{[16,4095)}", r.Free().String())
}

func TestUpdate(t *testing.T) {
	r, err := New()
	assert.NoError(t, err)

	assert.Error(t, r.Update(10, labels.Set{"a": "b"}))
	assert.NoError(t, r.Claim(10, labels.Set{"a": "a"}))
	assert.NoError(t, r.Update(10, labels.Set{"a": "b"}))

	d, err := r.Get(10)
	assert.NoError(t, err)
	assert.Equal(t, labels.Set{"a": "b"}, d)

	_, err = r.Get(11)
	assert.Error(t, err)
}

func TestGetAll(t *testing.T) {
	r, err := New()
	assert.NoError(t, err)

	assert.NoError(t, r.Claim(10, labels.Set{"a": "a"}))
	all := r.GetAll()
	assert.Equal(t, 4, len(all))
	for id, d := range initEntries {
		assert.Equal(t, d, all[id])
	}
	assert.Equal(t, labels.Set{"a": "a"}, all[10])

	reserved := r.GetByLabel(labels.SelectorFromSet(labels.Set{"status": "reserved"}))
	assert.Equal(t, 3, len(reserved))
}
