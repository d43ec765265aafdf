package listview

import (
	"github.com/samber/lo"

	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
)

// DashboardLowStock is the fixed threshold used by the dashboard counters.
const DashboardLowStock = 5

type Summary struct {
	TotalProducts  int
	LowStock       int
	OutOfStock     int
	TotalUnits     int
	InventoryValue float64
	Categories     int
}

func Summarize(products []models.Product) Summary {
	s := Summary{TotalProducts: len(products)}
	for _, p := range products {
		if p.Quantity <= DashboardLowStock {
			s.LowStock++
		}
		if p.Quantity <= 0 {
			s.OutOfStock++
		}
		s.TotalUnits += int(p.Quantity)
		s.InventoryValue += p.Price * float64(p.Quantity)
	}
	s.Categories = len(lo.Uniq(lo.FilterMap(products, func(p models.Product, _ int) (string, bool) {
		return p.Category, p.Category != ""
	})))
	return s
}
