package catalog

import (
	"testing"

	"github.com/JulesNsenda/kamelkross/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, name, category string, price int64) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     name,
		Category: category,
		Price:    decimal.NewFromInt(price),
		InStock:  true,
	}
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func sampleCatalog() *Catalog {
	return New([]domain.Product{
		product("a", "Tee", "Tops", 650),
		product("b", "Cap", "Accessories", 450),
		product("c", "Hoodie", "tops", 550),
	})
}

func TestCategories_FirstAppearanceOrder(t *testing.T) {
	c := New([]domain.Product{
		product("1", "x", "Tops", 1),
		product("2", "y", "Accessories", 1),
		product("3", "z", "Tops", 1),
		product("4", "w", "", 1),
	})

	assert.Equal(t, []string{"Tops", "Accessories"}, c.Categories())
}

func TestByID(t *testing.T) {
	c := sampleCatalog()

	p, ok := c.ByID("b")
	require.True(t, ok)
	assert.Equal(t, "Cap", p.Name)

	_, ok = c.ByID("missing")
	assert.False(t, ok)
}

func TestFilterByCategory(t *testing.T) {
	c := sampleCatalog()

	assert.Equal(t, []string{"a", "b", "c"}, ids(c.FilterByCategory("all")))
	assert.Equal(t, []string{"a", "b", "c"}, ids(c.FilterByCategory("ALL")))
	assert.Equal(t, []string{"a", "b", "c"}, ids(c.FilterByCategory("")))
	assert.Equal(t, []string{"a", "c"}, ids(c.FilterByCategory("TOPS")))
	assert.Empty(t, c.FilterByCategory("shoes"))
}

func TestSearch(t *testing.T) {
	c := New([]domain.Product{
		{ID: "1", Name: "Classic Tee", Category: "Tops"},
		{ID: "2", Name: "Cap", Description: "Embroidered LOGO", Category: "Accessories"},
		{ID: "3", Name: "Tote", Category: "Bags"},
	})

	assert.Equal(t, []string{"1"}, ids(c.Search("tee")))
	assert.Equal(t, []string{"2"}, ids(c.Search("logo")))
	assert.Equal(t, []string{"3"}, ids(c.Search("BAGS")))
	assert.Len(t, c.Search(""), 3)
	assert.Empty(t, c.Search("nothing"))
}

func TestFeatured_FlaggedCappedAtLimit(t *testing.T) {
	products := []domain.Product{
		{ID: "1"}, {ID: "2", Featured: true}, {ID: "3", Featured: true}, {ID: "4", Featured: true},
	}
	c := New(products)

	assert.Equal(t, []string{"2", "3"}, ids(c.Featured(2)))
	assert.Equal(t, []string{"2", "3", "4"}, ids(c.Featured(10)))
}

func TestFeatured_FallsBackToFirstN(t *testing.T) {
	c := New([]domain.Product{{ID: "1"}, {ID: "2"}, {ID: "3"}})

	assert.Equal(t, []string{"1", "2"}, ids(c.Featured(2)))
	assert.Equal(t, []string{"1", "2", "3"}, ids(c.Featured(5)))
	assert.Empty(t, c.Featured(0))
}

func TestSort_ByPrice(t *testing.T) {
	c := sampleCatalog()

	low := c.Sort(c.All(), SortPriceLow)
	assert.Equal(t, []string{"b", "c", "a"}, ids(low))

	high := c.Sort(c.All(), SortPriceHigh)
	assert.Equal(t, []string{"a", "c", "b"}, ids(high))
}

func TestSort_StableOnEqualPrices(t *testing.T) {
	c := New([]domain.Product{
		product("1", "x", "", 100),
		product("2", "y", "", 50),
		product("3", "z", "", 100),
	})

	assert.Equal(t, []string{"2", "1", "3"}, ids(c.Sort(c.All(), SortPriceLow)))
	assert.Equal(t, []string{"1", "3", "2"}, ids(c.Sort(c.All(), SortPriceHigh)))
}

func TestSort_ByNameAndDefault(t *testing.T) {
	c := New([]domain.Product{
		product("1", "zebra", "", 1),
		product("2", "Apple", "", 1),
		product("3", "éclair", "", 1),
	})

	assert.Equal(t, []string{"2", "3", "1"}, ids(c.Sort(c.All(), SortName)))
	assert.Equal(t, []string{"1", "2", "3"}, ids(c.Sort(c.All(), SortFeed)))
	assert.Equal(t, []string{"1", "2", "3"}, ids(c.Sort(c.All(), SortOrder("bogus"))))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	c := sampleCatalog()
	in := c.All()

	_ = c.Sort(in, SortPriceLow)

	assert.Equal(t, []string{"a", "b", "c"}, ids(in))
}

func TestFind(t *testing.T) {
	c := sampleCatalog()

	got := c.Find(Query{Category: "tops", Sort: SortPriceLow})
	assert.Equal(t, []string{"c", "a"}, ids(got))

	got = c.Find(Query{Category: "all", Search: "cap"})
	assert.Equal(t, []string{"b"}, ids(got))
}
