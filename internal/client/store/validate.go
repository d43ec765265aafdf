package store

import (
	"strings"

	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
)

func validateDraft(d models.ProductDraft) error {
	if strings.TrimSpace(d.Name) == "" {
		return invalid("name", "Product name is required")
	}
	if strings.TrimSpace(d.Category) == "" {
		return invalid("category", "Category is required")
	}
	if d.Price < 0 {
		return invalid("price", "Price cannot be negative")
	}
	if d.Quantity < 0 {
		return invalid("quantity", "Quantity cannot be negative")
	}
	return nil
}

func validatePatch(p models.ProductPatch) error {
	if p.IsEmpty() {
		return invalid("", "Nothing to update")
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return invalid("name", "Product name is required")
	}
	if p.Category != nil && strings.TrimSpace(*p.Category) == "" {
		return invalid("category", "Category is required")
	}
	if p.Price != nil && *p.Price < 0 {
		return invalid("price", "Price cannot be negative")
	}
	if p.Quantity != nil && *p.Quantity < 0 {
		return invalid("quantity", "Quantity cannot be negative")
	}
	return nil
}
