package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/fatimaskitchen/storefront/pkg/errors"
)

func TestDefaultMenuLookup(t *testing.T) {
	m := Default()

	item, ok := m.Lookup("sp_1")
	require.True(t, ok)
	assert.Equal(t, "The Royal Mughal Platter", item.Name)
	assert.Equal(t, int64(2450), item.Price)

	_, ok = m.Lookup("nope")
	assert.False(t, ok)

	assert.Len(t, m.Categories(), 4)
}

func TestCategoriesReturnsCopy(t *testing.T) {
	m := Default()
	cats := m.Categories()
	cats[0].Items[0].Price = 1

	item, _ := m.Lookup(cats[0].Items[0].ID)
	assert.NotEqual(t, int64(1), item.Price)
	assert.NotEqual(t, int64(1), m.Categories()[0].Items[0].Price)
}

func TestSearch(t *testing.T) {
	m := Default()

	ids := func(items []Item) []string {
		out := []string{}
		for _, it := range items {
			out = append(out, it.ID)
		}
		return out
	}

	assert.ElementsMatch(t, []string{"ds_301"}, ids(m.Search("PISTACHIO")))
	assert.ElementsMatch(t, []string{"bv_401"}, ids(m.Search("refreshing")), "tags should match")
	assert.ElementsMatch(t, []string{"ds_301", "ds_302"}, ids(m.Search("desserts")), "category name should match")
	assert.Contains(t, ids(m.Search("truffle")), "bs_201")
	assert.Empty(t, m.Search("   "))
	assert.Empty(t, m.Search("sushi"))
}

func TestCandidate(t *testing.T) {
	m := Default()

	c, err := m.Candidate("bv_401")
	require.NoError(t, err)
	assert.Equal(t, "bv_401", c.ID)
	assert.Equal(t, "Emerald Mint Mojito", c.Name)
	assert.Equal(t, int64(650), c.UnitPrice)
	assert.NotEmpty(t, c.ImageRef)

	_, err = m.Candidate("missing")
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))

	_, err = m.Candidate("gb_2")
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeStateConflict))
}

func TestNewRejectsBadMenus(t *testing.T) {
	_, err := New([]Category{{ID: "c", Name: "C", Items: []Item{{ID: "a", Name: "A", Price: 1}, {ID: "a", Name: "B", Price: 2}}}})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeConflict))

	_, err = New([]Category{{ID: "c", Name: "C", Items: []Item{{ID: "", Name: "A"}}}})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	_, err = New([]Category{{ID: "c", Name: "C", Items: []Item{{ID: "a", Name: "A", Price: -5}}}})
	require.Error(t, err)
}
