package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/BuiltByShivam/smart-inventory/internal/client/client"
	"github.com/BuiltByShivam/smart-inventory/internal/client/export"
	"github.com/BuiltByShivam/smart-inventory/internal/client/listview"
	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
	"github.com/BuiltByShivam/smart-inventory/internal/client/settings"
	"github.com/BuiltByShivam/smart-inventory/internal/client/store"
	"github.com/BuiltByShivam/smart-inventory/internal/common"
	"github.com/BuiltByShivam/smart-inventory/internal/logging"
)

// SearchKind selects a server-side product search.
type SearchKind string

const (
	SearchName     SearchKind = "name"
	SearchCategory SearchKind = "category"
	SearchMaxPrice SearchKind = "max"
	SearchMinPrice SearchKind = "min"
)

// ViewQuery describes one page of a product list view.
type ViewQuery struct {
	Query string
	Sort  listview.Sort
	Page  int
}

// InventoryService fronts the product store with the list view
// computations and the exports.
type InventoryService struct {
	store    *store.Store
	client   client.Client
	settings *settings.Service
	exporter *export.Exporter
	log      logging.Logger

	mu        sync.Mutex
	threshold int
}

func NewInventoryService(st *store.Store, c client.Client, ss *settings.Service, ex *export.Exporter, threshold int, log logging.Logger) *InventoryService {
	if threshold < 0 {
		threshold = listview.DefaultLowStockThreshold
	}
	return &InventoryService{
		store:     st,
		client:    c,
		settings:  ss,
		exporter:  ex,
		log:       log.With("component", "inventory"),
		threshold: threshold,
	}
}

func (s *InventoryService) Refresh(ctx context.Context) error {
	return s.store.Load(ctx)
}

func (s *InventoryService) Loading() bool {
	return s.store.Loading()
}

// Products returns the filtered, sorted page of the cached products, sized
// by the itemsPerPage setting.
func (s *InventoryService) Products(ctx context.Context, q ViewQuery) (listview.Page[models.Product], error) {
	size, err := s.pageSize(ctx)
	if err != nil {
		return listview.Page[models.Product]{}, err
	}
	list := listview.FilterProducts(s.store.Products(), q.Query)
	list = listview.SortProducts(list, q.Sort)
	return listview.Paginate(list, q.Page, size), nil
}

// LowStock returns a page of cached products at or below the current
// threshold.
func (s *InventoryService) LowStock(ctx context.Context, query string, page int) (listview.Page[models.Product], error) {
	size, err := s.pageSize(ctx)
	if err != nil {
		return listview.Page[models.Product]{}, err
	}
	list := listview.LowStock(s.store.Products(), s.Threshold(), query)
	return listview.Paginate(list, page, size), nil
}

func (s *InventoryService) Dashboard() listview.Summary {
	return listview.Summarize(s.store.Products())
}

func (s *InventoryService) Threshold() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.threshold
}

func (s *InventoryService) SetThreshold(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: threshold must not be negative", common.ErrorValidation)
	}
	s.mu.Lock()
	s.threshold = n
	s.mu.Unlock()
	return nil
}

func (s *InventoryService) Show(ctx context.Context, id models.ProductID) (models.Product, error) {
	return s.store.Get(ctx, id)
}

func (s *InventoryService) Add(ctx context.Context, d models.ProductDraft) (models.Product, error) {
	return s.store.Create(ctx, d)
}

func (s *InventoryService) Edit(ctx context.Context, id models.ProductID, p models.ProductPatch) (models.Product, error) {
	return s.store.Update(ctx, id, p)
}

func (s *InventoryService) Restock(ctx context.Context, id models.ProductID, amount int) (models.Product, error) {
	return s.store.Restock(ctx, id, amount)
}

func (s *InventoryService) Delete(ctx context.Context, id models.ProductID) error {
	return s.store.Remove(ctx, id)
}

// Search runs a server-side search. Results do not touch the cache.
func (s *InventoryService) Search(ctx context.Context, kind SearchKind, value string) ([]models.Product, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("%w: search value is required", common.ErrorValidation)
	}
	switch kind {
	case SearchName:
		return s.client.SearchByName(ctx, value)
	case SearchCategory:
		return s.client.ByCategory(ctx, value)
	case SearchMaxPrice, SearchMinPrice:
		price, err := strconv.ParseFloat(value, 64)
		if err != nil || price < 0 {
			return nil, fmt.Errorf("%w: invalid price %q", common.ErrorValidation, value)
		}
		if kind == SearchMaxPrice {
			return s.client.PriceAtMost(ctx, price)
		}
		return s.client.PriceAtLeast(ctx, price)
	default:
		return nil, fmt.Errorf("%w: unknown search %q", common.ErrorValidation, kind)
	}
}

// RemotePage asks the server for one page of its own paged listing.
func (s *InventoryService) RemotePage(ctx context.Context, q client.PageQuery) (models.ProductPage, error) {
	if q.Size <= 0 {
		size, err := s.pageSize(ctx)
		if err != nil {
			return models.ProductPage{}, err
		}
		q.Size = size
	}
	return s.client.ListPage(ctx, q)
}

// ExportLowStock writes the products at or below the current threshold.
func (s *InventoryService) ExportLowStock(ctx context.Context, kind export.Kind) (string, error) {
	list := listview.LowStock(s.store.Products(), s.Threshold(), "")
	return s.exporter.LowStock(ctx, kind, list)
}

func (s *InventoryService) ExportSettings(ctx context.Context, kind export.Kind) (string, error) {
	snap, err := s.settings.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	return s.exporter.Settings(ctx, kind, snap)
}

// Export dispatches on kind.
func (s *InventoryService) Export(ctx context.Context, kind export.Kind) (string, error) {
	switch kind {
	case export.KindSettings, export.KindSettingsYAML:
		return s.ExportSettings(ctx, kind)
	default:
		return s.ExportLowStock(ctx, kind)
	}
}

func (s *InventoryService) pageSize(ctx context.Context) (int, error) {
	st, err := s.settings.Load(ctx)
	if err != nil {
		return 0, err
	}
	return st.ItemsPerPage, nil
}
