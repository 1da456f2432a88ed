package aggregator

import (
	"testing"

	"tripdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPartners() []models.PartnerDescriptor {
	return []models.PartnerDescriptor{
		{ID: "p1", Name: "Partner One", BaseURL: "http://p1.test", Active: true},
		{ID: "p2", Name: "Partner Two", BaseURL: "http://p2.test", Active: true},
		{ID: "p3", Name: "Partner Three", BaseURL: "http://p3.test", Active: false},
	}
}

func TestRegistry_ListActive(t *testing.T) {
	reg := NewRegistryWith(testPartners())

	active := reg.ListActive()
	require.Len(t, active, 2)
	assert.Equal(t, "p1", active[0].ID)
	assert.Equal(t, "p2", active[1].ID)
}

func TestRegistry_List_IncludesInactive(t *testing.T) {
	reg := NewRegistryWith(testPartners())

	all := reg.List()
	require.Len(t, all, 3)
	assert.False(t, all[2].Active)
}

func TestRegistry_Find(t *testing.T) {
	reg := NewRegistryWith(testPartners())

	p, err := reg.Find("p3")
	require.NoError(t, err)
	assert.Equal(t, "Partner Three", p.Name)
	// Find does not filter by active.
	assert.False(t, p.Active)

	_, err = reg.Find("nonexistent")
	assert.ErrorIs(t, err, ErrPartnerNotFound)
}

func TestRegistry_SetActive(t *testing.T) {
	reg := NewRegistryWith(testPartners())

	updated, err := reg.SetActive("p2", false)
	require.NoError(t, err)
	assert.False(t, updated.Active)

	active := reg.ListActive()
	require.Len(t, active, 1)
	assert.Equal(t, "p1", active[0].ID)

	updated, err = reg.SetActive("p2", true)
	require.NoError(t, err)
	assert.True(t, updated.Active)
	assert.Len(t, reg.ListActive(), 2)
}

func TestRegistry_SetActive_Unknown(t *testing.T) {
	reg := NewRegistryWith(testPartners())

	_, err := reg.SetActive("ghost", true)
	assert.ErrorIs(t, err, ErrPartnerNotFound)
}

func TestRegistry_Counts(t *testing.T) {
	reg := NewRegistryWith(testPartners())

	active, total := reg.Counts()
	assert.Equal(t, 2, active)
	assert.Equal(t, 3, total)
}

func TestRegistry_ListReturnsCopy(t *testing.T) {
	reg := NewRegistryWith(testPartners())

	all := reg.List()
	all[0].Active = false

	fresh, err := reg.Find("p1")
	require.NoError(t, err)
	assert.True(t, fresh.Active)
}
