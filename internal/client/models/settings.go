package models

// Items-per-page bounds.
const (
	DefaultItemsPerPage = 6
	MinItemsPerPage     = 5
	MaxItemsPerPage     = 100
)

// Settings are the user's UI preferences.
type Settings struct {
	DarkMode     bool `json:"darkMode"`
	ItemsPerPage int  `json:"itemsPerPage"`
}
