// Package store holds the shared in-memory product cache. Every product read
// in the client goes through a Store, and every product mutation goes through
// it to the remote product service.
//
// A Store is built once at startup and torn down with Close. Calls whose
// context is cancelled before the service answers, and calls that finish
// after Close, have their results discarded. Overlapping mutations of the
// same product are not serialized: the last answer applied wins.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/BuiltByShivam/smart-inventory/internal/client/client"
	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
	"github.com/BuiltByShivam/smart-inventory/internal/common"
	"github.com/BuiltByShivam/smart-inventory/internal/logging"
)

type Store struct {
	client client.Client
	log    logging.Logger

	mu       sync.RWMutex
	products []models.Product
	loads    int
	closed   bool
}

func New(c client.Client, log logging.Logger) *Store {
	return &Store{client: c, log: log.With("component", "store")}
}

// Close stops the store from applying any further results.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Loading reports whether a Load is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loads > 0
}

// Products returns a copy of the cache in its current order.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products)
}

// Find returns the cached product with the given id.
func (s *Store) Find(id models.ProductID) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return models.Product{}, false
	}
	return s.products[i], true
}

// Load replaces the cache with the service's full collection. On failure the
// previous cache stays in place.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.loads++
	s.mu.Unlock()

	list, err := s.client.List(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads--

	if derr := s.discard(ctx); derr != nil {
		return derr
	}
	if err != nil {
		s.log.Error(ctx, "failed to fetch products", "error", err)
		return remoteFailure("load", msgLoad, err)
	}

	s.products = dedupe(list)
	s.log.Debug(ctx, "products loaded", "count", len(s.products))
	return nil
}

// Get fetches a single product and refreshes its cache entry.
func (s *Store) Get(ctx context.Context, id models.ProductID) (models.Product, error) {
	p, err := s.client.Get(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if derr := s.discard(ctx); derr != nil {
		return models.Product{}, derr
	}
	if err != nil {
		s.log.Error(ctx, "get product error", "id", id, "error", err)
		return models.Product{}, remoteFailure("get", msgGet, err)
	}
	s.upsert(p)
	return p, nil
}

// Create validates the draft and adds it remotely. A pending placeholder is
// visible in the cache while the request is in flight; it is replaced by the
// server's record on success and dropped on failure.
func (s *Store) Create(ctx context.Context, draft models.ProductDraft) (models.Product, error) {
	if err := validateDraft(draft); err != nil {
		return models.Product{}, err
	}

	placeholder := models.Product{
		ID:       models.ProductID("pending-" + uuid.NewString()),
		Name:     draft.Name,
		Price:    draft.Price,
		Quantity: models.Quantity(draft.Quantity),
		Category: draft.Category,
		SKU:      draft.SKU,
		Pending:  true,
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return models.Product{}, ErrClosed
	}
	s.products = append(s.products, placeholder)
	s.mu.Unlock()

	created, err := s.client.Create(ctx, draft)

	s.mu.Lock()
	defer s.mu.Unlock()
	at := s.indexOf(placeholder.ID)
	if at >= 0 {
		s.products = slices.Delete(s.products, at, at+1)
	}

	if derr := s.discard(ctx); derr != nil {
		return models.Product{}, derr
	}
	if err != nil {
		s.log.Error(ctx, "add product error", "error", err)
		return models.Product{}, remoteFailure("create", msgCreate, err)
	}

	if i := s.indexOf(created.ID); i >= 0 {
		s.products[i] = created
	} else if at >= 0 {
		s.products = slices.Insert(s.products, at, created)
	} else {
		s.products = append(s.products, created)
	}
	return created, nil
}

// Update sends the patch and merges the server's answer into the cached
// record: fields present in the answer overwrite, the rest are kept.
func (s *Store) Update(ctx context.Context, id models.ProductID, patch models.ProductPatch) (models.Product, error) {
	if err := validatePatch(patch); err != nil {
		return models.Product{}, err
	}

	raw, err := s.client.Update(ctx, id, patch)

	s.mu.Lock()
	defer s.mu.Unlock()
	if derr := s.discard(ctx); derr != nil {
		return models.Product{}, derr
	}
	if err != nil {
		s.log.Error(ctx, "update product error", "id", id, "error", err)
		return models.Product{}, remoteFailure("update", msgUpdate, err)
	}

	i := s.indexOf(id)
	base := models.Product{ID: id}
	if i >= 0 {
		base = s.products[i]
	}
	merged, err := merge(base, patch, raw)
	if err != nil {
		s.log.Error(ctx, "update product error", "id", id, "error", err)
		return models.Product{}, remoteFailure("update", msgUpdate, err)
	}
	// A record removed while the update was in flight stays removed.
	if i >= 0 {
		s.products[i] = merged
	}
	return merged, nil
}

// Restock raises a product's quantity by amount through Update.
func (s *Store) Restock(ctx context.Context, id models.ProductID, amount int) (models.Product, error) {
	if amount <= 0 {
		return models.Product{}, invalid("quantity", "Restock amount must be positive")
	}
	p, ok := s.Find(id)
	if !ok {
		return models.Product{}, fmt.Errorf("product %s: %w", id, common.ErrorNotFound)
	}
	qty := int(p.Quantity) + amount
	return s.Update(ctx, id, models.ProductPatch{Quantity: &qty})
}

// Remove deletes the product remotely, then drops it from the cache.
func (s *Store) Remove(ctx context.Context, id models.ProductID) error {
	err := s.client.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if derr := s.discard(ctx); derr != nil {
		return derr
	}
	if err != nil {
		s.log.Error(ctx, "delete product error", "id", id, "error", err)
		return remoteFailure("delete", msgDelete, err)
	}
	s.products = slices.DeleteFunc(s.products, func(p models.Product) bool { return p.ID == id })
	return nil
}

// discard reports why a finished call must not touch the cache. Callers hold
// s.mu.
func (s *Store) discard(ctx context.Context) error {
	if s.closed {
		return ErrClosed
	}
	return ctx.Err()
}

func (s *Store) indexOf(id models.ProductID) int {
	return slices.IndexFunc(s.products, func(p models.Product) bool { return p.ID == id })
}

func (s *Store) upsert(p models.Product) {
	if i := s.indexOf(p.ID); i >= 0 {
		s.products[i] = p
		return
	}
	s.products = append(s.products, p)
}

// merge overlays the JSON object raw onto base. An empty answer applies the
// patch as sent.
func merge(base models.Product, patch models.ProductPatch, raw json.RawMessage) (models.Product, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return patch.Apply(base), nil
	}
	id := base.ID
	if err := json.Unmarshal(trimmed, &base); err != nil {
		return models.Product{}, fmt.Errorf("decode updated product: %w", err)
	}
	base.ID = id
	base.Pending = false
	return base, nil
}

// dedupe keeps the last record for each id, in first-seen order.
func dedupe(list []models.Product) []models.Product {
	out := make([]models.Product, 0, len(list))
	seen := make(map[models.ProductID]int, len(list))
	for _, p := range list {
		if i, ok := seen[p.ID]; ok {
			out[i] = p
			continue
		}
		seen[p.ID] = len(out)
		out = append(out, p)
	}
	return out
}
