// Package settings persists the user's UI preferences in the local state
// store under "darkMode" and "itemsPerPage".
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
	"github.com/BuiltByShivam/smart-inventory/internal/client/repositories/kv"
	"github.com/BuiltByShivam/smart-inventory/internal/common"
)

// Snapshot is the exported form of the settings. DarkMode is "true" or
// "false", or nil when it was never set.
type Snapshot struct {
	ItemsPerPage int     `json:"itemsPerPage" yaml:"itemsPerPage"`
	DarkMode     *string `json:"darkMode" yaml:"darkMode"`
}

type Service struct {
	repo kv.Repository
}

func New(repo kv.Repository) *Service {
	return &Service{repo: repo}
}

// Load returns the stored settings, with defaults for anything unset or
// unreadable.
func (s *Service) Load(ctx context.Context) (models.Settings, error) {
	out := models.Settings{ItemsPerPage: models.DefaultItemsPerPage}

	dark, _, err := s.darkMode(ctx)
	if err != nil {
		return out, err
	}
	out.DarkMode = dark

	raw, err := s.repo.Get(ctx, common.KeyItemsPerPage)
	if err != nil {
		return out, err
	}
	if n, ok := parseInt(raw); ok && n > 0 {
		out.ItemsPerPage = n
	}
	return out, nil
}

func (s *Service) SetDarkMode(ctx context.Context, on bool) error {
	return kv.SetJSON(ctx, s.repo, common.KeyDarkMode, on)
}

// ToggleDarkMode flips dark mode and returns the new value.
func (s *Service) ToggleDarkMode(ctx context.Context) (bool, error) {
	cur, _, err := s.darkMode(ctx)
	if err != nil {
		return false, err
	}
	return !cur, s.SetDarkMode(ctx, !cur)
}

func (s *Service) SetItemsPerPage(ctx context.Context, n int) error {
	if n < models.MinItemsPerPage || n > models.MaxItemsPerPage {
		return fmt.Errorf("%w: items per page must be between %d and %d",
			common.ErrorValidation, models.MinItemsPerPage, models.MaxItemsPerPage)
	}
	return kv.SetJSON(ctx, s.repo, common.KeyItemsPerPage, n)
}

func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	st, err := s.Load(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{ItemsPerPage: st.ItemsPerPage}

	dark, set, err := s.darkMode(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	if set {
		v := strconv.FormatBool(dark)
		snap.DarkMode = &v
	}
	return snap, nil
}

// darkMode reads the flag. Both JSON booleans and the strings "true" and
// "false" are accepted.
func (s *Service) darkMode(ctx context.Context) (on, set bool, err error) {
	raw, err := s.repo.Get(ctx, common.KeyDarkMode)
	if err != nil || raw == nil {
		return false, false, err
	}
	var b bool
	if json.Unmarshal(raw, &b) == nil {
		return b, true, nil
	}
	var str string
	if json.Unmarshal(raw, &str) == nil {
		return str == "true", true, nil
	}
	return string(raw) == "true", true, nil
}

func parseInt(raw []byte) (int, bool) {
	if raw == nil {
		return 0, false
	}
	var n int
	if json.Unmarshal(raw, &n) == nil {
		return n, true
	}
	var str string
	if json.Unmarshal(raw, &str) == nil {
		raw = []byte(str)
	}
	n, err := strconv.Atoi(string(raw))
	return n, err == nil
}
