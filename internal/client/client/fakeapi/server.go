// Package fakeapi is an in-memory stand-in for the remote product service,
// served over httptest. Tests drive it to exercise the REST client and
// everything built on it.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

// Product mirrors the server-side entity: numeric id, nullable quantity.
type Product struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	SKU         string   `json:"sku"`
	Category    string   `json:"category"`
	Quantity    *int     `json:"quantity"`
	Price       *float64 `json:"price"`
	LastUpdated string   `json:"lastUpdated"`
}

type failure struct {
	status  int
	message string
}

// Server is a fake product service. The zero value is not usable; call New.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	products map[int64]Product
	nextID   int64
	failures map[string]failure
	requests []string
}

// New starts a fake service and stops it when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		products: make(map[int64]Product),
		nextID:   1,
		failures: make(map[string]failure),
	}

	r := mux.NewRouter()
	r.Use(s.record)
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/products", s.list).Methods(http.MethodGet)
	api.HandleFunc("/products", s.create).Methods(http.MethodPost)
	api.HandleFunc("/products/page", s.page).Methods(http.MethodGet)
	api.HandleFunc("/products/category/{category}", s.byCategory).Methods(http.MethodGet)
	api.HandleFunc("/products/search/{name}", s.search).Methods(http.MethodGet)
	api.HandleFunc("/products/price/less-than/{price}", s.priceAtMost).Methods(http.MethodGet)
	api.HandleFunc("/products/price/greater-than/{price}", s.priceAtLeast).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", s.get).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}", s.update).Methods(http.MethodPut)
	api.HandleFunc("/products/{id}", s.remove).Methods(http.MethodDelete)
	api.HandleFunc("/auth/signup", s.accept).Methods(http.MethodPost)
	api.HandleFunc("/auth/forgot-password", s.accept).Methods(http.MethodPost)
	api.HandleFunc("/auth/reset-password", s.accept).Methods(http.MethodPost)
	api.HandleFunc("/users", s.users).Methods(http.MethodGet)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Seed stores p, assigning an id when p.ID is zero, and returns it.
func (s *Server) Seed(p Product) Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.nextID
	}
	if p.ID >= s.nextID {
		s.nextID = p.ID + 1
	}
	s.products[p.ID] = p
	return p
}

// IDs returns the stored ids in ascending order.
func (s *Server) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.products))
	for id := range s.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strconv.FormatInt(id, 10)
	}
	return out
}

// Fail makes every request with the given method answer status with message
// in the payload until Recover is called. An empty message sends no payload.
func (s *Server) Fail(method string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = failure{status: status, message: message}
}

func (s *Server) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.failures)
}

// Requests returns "METHOD path" for every request served so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.RequestURI())
		f, failing := s.failures[r.Method]
		s.mu.Unlock()

		if failing {
			if f.message == "" {
				w.WriteHeader(f.status)
				return
			}
			writeJSON(w, f.status, map[string]string{"message": f.message})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) list(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.filter(func(Product) bool { return true }))
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var p Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	if strings.TrimSpace(p.Name) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Product name is required"})
		return
	}
	p.ID = 0
	p.LastUpdated = "2024-01-01T00:00:00"
	writeJSON(w, http.StatusOK, s.Seed(p))
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var patch map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	merged, _ := json.Marshal(p)
	var fields map[string]json.RawMessage
	_ = json.Unmarshal(merged, &fields)
	for k, v := range patch {
		fields[k] = v
	}
	merged, _ = json.Marshal(fields)
	_ = json.Unmarshal(merged, &p)
	p.LastUpdated = "2024-01-02T00:00:00"
	writeJSON(w, http.StatusOK, s.Seed(p))
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad id"})
		return
	}
	s.mu.Lock()
	delete(s.products, id)
	s.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, err := strconv.Atoi(q.Get("size"))
	if err != nil || size <= 0 {
		size = 5
	}
	all := s.filter(func(Product) bool { return true })
	if q.Get("order") == "desc" {
		for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
			all[i], all[j] = all[j], all[i]
		}
	}
	start := min(page*size, len(all))
	end := min(start+size, len(all))
	writeJSON(w, http.StatusOK, map[string]any{
		"content":       all[start:end],
		"totalElements": len(all),
		"totalPages":    (len(all) + size - 1) / size,
		"number":        page,
		"size":          size,
	})
}

func (s *Server) byCategory(w http.ResponseWriter, r *http.Request) {
	c := mux.Vars(r)["category"]
	writeJSON(w, http.StatusOK, s.filter(func(p Product) bool { return strings.EqualFold(p.Category, c) }))
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	n := strings.ToLower(mux.Vars(r)["name"])
	writeJSON(w, http.StatusOK, s.filter(func(p Product) bool { return strings.Contains(strings.ToLower(p.Name), n) }))
}

func (s *Server) priceAtMost(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseFloat(mux.Vars(r)["price"], 64)
	writeJSON(w, http.StatusOK, s.filter(func(p Product) bool { return p.Price != nil && *p.Price <= limit }))
}

func (s *Server) priceAtLeast(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseFloat(mux.Vars(r)["price"], 64)
	writeJSON(w, http.StatusOK, s.filter(func(p Product) bool { return p.Price != nil && *p.Price >= limit }))
}

func (s *Server) accept(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) users(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, []map[string]any{
		{"username": "admin", "role": "admin", "enabled": true},
		{"username": "user", "role": "user", "enabled": true},
	})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (Product, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad id"})
		return Product{}, false
	}
	s.mu.Lock()
	p, ok := s.products[id]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Product not found with id " + strconv.FormatInt(id, 10)})
		return Product{}, false
	}
	return p, true
}

func (s *Server) filter(keep func(Product) bool) []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Int and Float are pointer helpers for seeding.
func Int(n int) *int           { return &n }
func Float(f float64) *float64 { return &f }
