package listview

import (
	"cmp"
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
)

type SortKey string

const (
	SortByName     SortKey = "name"
	SortByPrice    SortKey = "price"
	SortByQuantity SortKey = "quantity"
)

// ParseSortKey validates a user-supplied sort key.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortByName, SortByPrice, SortByQuantity:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sort key %q (want name, price or quantity)", s)
	}
}

// Sort is a product ordering. The zero value keeps service order.
type Sort struct {
	Key  SortKey
	Desc bool
}

// Toggle selects key: the same key again flips the direction, a new key
// starts ascending.
func (s Sort) Toggle(key SortKey) Sort {
	if s.Key == key {
		return Sort{Key: key, Desc: !s.Desc}
	}
	return Sort{Key: key}
}

func (s Sort) String() string {
	if s.Key == "" {
		return "none"
	}
	if s.Desc {
		return string(s.Key) + " desc"
	}
	return string(s.Key) + " asc"
}

// SortProducts returns products ordered by s. Equal elements keep their
// relative order.
func SortProducts(products []models.Product, s Sort) []models.Product {
	out := slices.Clone(products)
	if s.Key == "" {
		return out
	}

	var compare func(a, b models.Product) int
	switch s.Key {
	case SortByName:
		col := collate.New(language.English)
		compare = func(a, b models.Product) int { return col.CompareString(a.Name, b.Name) }
	case SortByPrice:
		compare = func(a, b models.Product) int { return cmp.Compare(a.Price, b.Price) }
	case SortByQuantity:
		compare = func(a, b models.Product) int { return cmp.Compare(a.Quantity, b.Quantity) }
	default:
		return out
	}

	slices.SortStableFunc(out, func(a, b models.Product) int {
		if s.Desc {
			return compare(b, a)
		}
		return compare(a, b)
	})
	return out
}
