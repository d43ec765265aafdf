package export

import (
	"context"
	"fmt"

	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
	"github.com/BuiltByShivam/smart-inventory/internal/client/settings"
	"github.com/BuiltByShivam/smart-inventory/internal/logging"
)

// Kind names an artifact.
type Kind string

const (
	KindLowStockCSV  Kind = "lowstock-csv"
	KindLowStockJSON Kind = "lowstock-json"
	KindSettings     Kind = "settings"
	KindSettingsYAML Kind = "settings-yaml"
)

// Kinds lists the supported artifacts in display order.
var Kinds = []Kind{KindLowStockCSV, KindLowStockJSON, KindSettings, KindSettingsYAML}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown export %q (want one of %v)", s, Kinds)
}

// Exporter renders artifacts and hands them to a Sink.
type Exporter struct {
	sink Sink
	log  logging.Logger
}

func NewExporter(sink Sink, log logging.Logger) *Exporter {
	return &Exporter{sink: sink, log: log.With("component", "export")}
}

func (e *Exporter) LowStock(ctx context.Context, kind Kind, products []models.Product) (string, error) {
	var (
		name string
		data []byte
		err  error
	)
	switch kind {
	case KindLowStockCSV:
		name, data = LowStockCSVName, LowStockCSV(products)
	case KindLowStockJSON:
		name = LowStockJSONName
		data, err = LowStockJSON(products)
	default:
		return "", fmt.Errorf("%s is not a low-stock export", kind)
	}
	if err != nil {
		return "", err
	}
	return e.write(ctx, name, data)
}

func (e *Exporter) Settings(ctx context.Context, kind Kind, snap settings.Snapshot) (string, error) {
	var (
		name string
		data []byte
		err  error
	)
	switch kind {
	case KindSettings:
		name = SettingsJSONName
		data, err = SettingsJSON(snap)
	case KindSettingsYAML:
		name = SettingsYAMLName
		data, err = SettingsYAML(snap)
	default:
		return "", fmt.Errorf("%s is not a settings export", kind)
	}
	if err != nil {
		return "", err
	}
	return e.write(ctx, name, data)
}

func (e *Exporter) write(ctx context.Context, name string, data []byte) (string, error) {
	loc, err := e.sink.Write(ctx, name, data)
	if err != nil {
		e.log.Error(ctx, "export failed", "name", name, "error", err)
		return "", err
	}
	e.log.Info(ctx, "exported", "name", name, "location", loc, "bytes", len(data))
	return loc, nil
}
