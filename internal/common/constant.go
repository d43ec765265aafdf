// Package common contains shared constants, sentinel errors and small helpers
// used across the inventory client packages.
package common

// Keys of the locally persisted state. Values are JSON-encoded.
const (
	KeyRole          = "role"
	KeyDarkMode      = "darkMode"
	KeyItemsPerPage  = "itemsPerPage"
	KeyMockUsers     = "mockUsers"
	KeyResetTokens   = "pwResetTokens"
	DefaultUserAgent = "smart-inventory-cli"
)
