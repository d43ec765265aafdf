// Package models defines the data records shared by the inventory client:
// products as served by the remote product service, local user records,
// password-reset tokens and UI settings.
package models
