// Package listview computes the derived views shown by the client: filtered,
// sorted and paginated product lists, the low-stock report and the dashboard
// summary. Every function is pure and returns new slices.
package listview
