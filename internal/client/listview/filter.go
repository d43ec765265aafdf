package listview

import (
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"

	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
)

// DefaultLowStockThreshold is the initial low-stock threshold.
const DefaultLowStockThreshold = 10

// contains reports whether any field holds q, ignoring case. An empty q
// matches everything.
func contains(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	fold := cases.Fold()
	q = fold.String(q)
	return lo.SomeBy(fields, func(f string) bool {
		return strings.Contains(fold.String(f), q)
	})
}

// FilterProducts keeps products whose name or category contains query.
func FilterProducts(products []models.Product, query string) []models.Product {
	q := strings.TrimSpace(query)
	return lo.Filter(products, func(p models.Product, _ int) bool {
		return contains(q, p.Name, p.Category)
	})
}

// LowStock keeps products with quantity at or below threshold whose name or
// SKU contains query.
func LowStock(products []models.Product, threshold int, query string) []models.Product {
	q := strings.TrimSpace(query)
	return lo.Filter(products, func(p models.Product, _ int) bool {
		return int(p.Quantity) <= threshold && contains(q, p.Name, p.SKU)
	})
}
