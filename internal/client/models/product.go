package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ProductID is the server-assigned product identifier. The wire form may be a
// JSON number or a JSON string; it is always kept as a string.
type ProductID string

func (id *ProductID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ProductID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("product id: %w", err)
	}
	*id = ProductID(n.String())
	return nil
}

// Product is a cached copy of a remote product record.
type Product struct {
	ID          ProductID `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Quantity    Quantity  `json:"quantity"`
	Category    string    `json:"category"`
	SKU         string    `json:"sku"`
	LastUpdated string    `json:"lastUpdated,omitempty"`

	// Pending marks an optimistic placeholder not yet acknowledged by the
	// server. It never leaves the process.
	Pending bool `json:"-"`
}

// Quantity is a stock count where JSON null reads as zero.
type Quantity int

func (q *Quantity) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*q = 0
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		var f float64
		if ferr := json.Unmarshal(b, &f); ferr != nil {
			return fmt.Errorf("quantity: %w", err)
		}
		n = int(f)
	}
	*q = Quantity(n)
	return nil
}

// ProductDraft is the body of a create request.
type ProductDraft struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Category string  `json:"category"`
	SKU      string  `json:"sku,omitempty"`
}

// ProductPatch is the body of an update request. Nil fields are not sent.
type ProductPatch struct {
	Name     *string  `json:"name,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Quantity *int     `json:"quantity,omitempty"`
	Category *string  `json:"category,omitempty"`
	SKU      *string  `json:"sku,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.Quantity == nil && p.Category == nil && p.SKU == nil
}

// Apply returns a copy of prod with the patch fields applied.
func (p ProductPatch) Apply(prod Product) Product {
	if p.Name != nil {
		prod.Name = *p.Name
	}
	if p.Price != nil {
		prod.Price = *p.Price
	}
	if p.Quantity != nil {
		prod.Quantity = Quantity(*p.Quantity)
	}
	if p.Category != nil {
		prod.Category = *p.Category
	}
	if p.SKU != nil {
		prod.SKU = *p.SKU
	}
	return prod
}

// ProductPage is one page of the server's paged listing.
type ProductPage struct {
	Content       []Product `json:"content"`
	TotalElements int       `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
	Number        int       `json:"number"`
	Size          int       `json:"size"`
}

// FormatPrice renders a price with two decimals.
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}
