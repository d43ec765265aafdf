// Package export renders the client's downloadable artifacts (the low-stock
// report and the settings dump) and writes them to a local directory or an
// S3-compatible bucket.
package export

import (
	"encoding/json"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
	"github.com/BuiltByShivam/smart-inventory/internal/client/settings"
)

// Artifact file names.
const (
	LowStockCSVName  = "low-stock.csv"
	LowStockJSONName = "low-stock.json"
	SettingsJSONName = "app-settings.json"
	SettingsYAMLName = "app-settings.yaml"
)

var lowStockHeader = []string{"id", "name", "sku", "quantity", "price", "category"}

// LowStockCSV renders products with every cell double-quoted and embedded
// quotes doubled. Rows are separated by "\n" with no trailing newline.
func LowStockCSV(products []models.Product) []byte {
	var b strings.Builder
	writeRow(&b, lowStockHeader)
	for _, p := range products {
		b.WriteByte('\n')
		writeRow(&b, []string{
			string(p.ID),
			p.Name,
			p.SKU,
			strconv.Itoa(int(p.Quantity)),
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			p.Category,
		})
	}
	return []byte(b.String())
}

func writeRow(b *strings.Builder, cells []string) {
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(c, `"`, `""`))
		b.WriteByte('"')
	}
}

// LowStockJSON renders products as an indented JSON array.
func LowStockJSON(products []models.Product) ([]byte, error) {
	if products == nil {
		products = []models.Product{}
	}
	return json.MarshalIndent(products, "", "  ")
}

func SettingsJSON(s settings.Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

func SettingsYAML(s settings.Snapshot) ([]byte, error) {
	return yaml.Marshal(s)
}
