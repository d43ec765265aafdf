package listview

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
)

func catalog() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Hammer", Category: "Tools", SKU: "HM-01", Price: 12.5, Quantity: 5},
		{ID: "2", Name: "apple", Category: "Fruit", SKU: "AP-77", Price: 0.4, Quantity: 12},
		{ID: "3", Name: "Banana", Category: "Fruit", Price: 0.2, Quantity: 0},
		{ID: "4", Name: "Screwdriver", Category: "Hand tools", SKU: "SD-02", Price: 7, Quantity: 30},
	}
}

func idsOf(products []models.Product) []models.ProductID {
	out := make([]models.ProductID, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestFilterProducts(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []models.ProductID
	}{
		{"empty query keeps all", "", []models.ProductID{"1", "2", "3", "4"}},
		{"blank query keeps all", "   ", []models.ProductID{"1", "2", "3", "4"}},
		{"name, case-insensitive", "HAM", []models.ProductID{"1"}},
		{"category only", "fruit", []models.ProductID{"2", "3"}},
		{"name or category", "tool", []models.ProductID{"1", "4"}},
		{"sku is not searched", "HM-01", []models.ProductID{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, idsOf(FilterProducts(catalog(), tt.query)))
		})
	}
}

func TestLowStock(t *testing.T) {
	products := []models.Product{{ID: "1", Quantity: 5}, {ID: "2", Quantity: 12}}

	assert.Equal(t, []models.ProductID{"1"}, idsOf(LowStock(products, DefaultLowStockThreshold, "")))
	assert.Equal(t, []models.ProductID{"1", "2"}, idsOf(LowStock(products, 12, "")))
	assert.Empty(t, LowStock(products, 4, ""))
}

func TestLowStock_QueryMatchesNameOrSKU(t *testing.T) {
	got := LowStock(catalog(), 10, "hm-")
	assert.Equal(t, []models.ProductID{"1"}, idsOf(got))

	got = LowStock(catalog(), 10, "banana")
	assert.Equal(t, []models.ProductID{"3"}, idsOf(got))

	got = LowStock(catalog(), 10, "tools")
	assert.Empty(t, got)
}

func TestSortToggle(t *testing.T) {
	var s Sort
	s = s.Toggle(SortByPrice)
	assert.Equal(t, Sort{Key: SortByPrice}, s)
	s = s.Toggle(SortByPrice)
	assert.Equal(t, Sort{Key: SortByPrice, Desc: true}, s)
	assert.Equal(t, "price desc", s.String())
	s = s.Toggle(SortByName)
	assert.Equal(t, Sort{Key: SortByName}, s)
	assert.Equal(t, "none", Sort{}.String())
}

func TestSortProducts(t *testing.T) {
	tests := []struct {
		sort Sort
		want []models.ProductID
	}{
		{Sort{}, []models.ProductID{"1", "2", "3", "4"}},
		{Sort{Key: SortByName}, []models.ProductID{"2", "3", "1", "4"}},
		{Sort{Key: SortByName, Desc: true}, []models.ProductID{"4", "1", "3", "2"}},
		{Sort{Key: SortByPrice}, []models.ProductID{"3", "2", "4", "1"}},
		{Sort{Key: SortByQuantity, Desc: true}, []models.ProductID{"4", "2", "1", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.sort.String(), func(t *testing.T) {
			in := catalog()
			got := SortProducts(in, tt.sort)
			if diff := cmp.Diff(tt.want, idsOf(got)); diff != "" {
				t.Fatalf("order mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, catalog(), in, "input must not be reordered")
		})
	}
}

func TestSortProducts_Stable(t *testing.T) {
	in := []models.Product{{ID: "a", Price: 1}, {ID: "b", Price: 1}, {ID: "c", Price: 0}}
	assert.Equal(t, []models.ProductID{"c", "a", "b"}, idsOf(SortProducts(in, Sort{Key: SortByPrice})))
}

func TestParseSortKey(t *testing.T) {
	k, err := ParseSortKey("quantity")
	require.NoError(t, err)
	assert.Equal(t, SortByQuantity, k)

	_, err = ParseSortKey("sku")
	require.Error(t, err)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	p := Paginate(items, 1, 3)
	assert.Equal(t, []int{1, 2, 3}, p.Items)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 7, p.TotalItems)
	assert.False(t, p.HasPrev())
	assert.True(t, p.HasNext())

	p = Paginate(items, 3, 3)
	assert.Equal(t, []int{7}, p.Items)
	assert.False(t, p.HasNext())

	p = Paginate(items, 99, 3)
	assert.Equal(t, 3, p.Number)
	assert.Equal(t, []int{7}, p.Items)

	p = Paginate(items, -2, 3)
	assert.Equal(t, 1, p.Number)

	p = Paginate(items, 1, 0)
	assert.Equal(t, 1, p.Size)
	assert.Equal(t, 7, p.TotalPages)
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate([]string(nil), 5, 6)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 1, p.TotalPages)
	assert.Empty(t, p.Items)
}

func TestPaginate_ItemsDoNotAliasTail(t *testing.T) {
	items := []int{1, 2, 3, 4}
	p := Paginate(items, 1, 2)
	p.Items = append(p.Items, 99)
	assert.Equal(t, []int{1, 2, 3, 4}, items)
}

func TestSummarize(t *testing.T) {
	s := Summarize(catalog())
	assert.InDelta(t, 277.3, s.InventoryValue, 1e-9)
	s.InventoryValue = 0
	assert.Equal(t, Summary{
		TotalProducts: 4,
		LowStock:      2,
		OutOfStock:    1,
		TotalUnits:    47,
		Categories:    3,
	}, s)

	assert.Equal(t, Summary{}, Summarize(nil))
}
