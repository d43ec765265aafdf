package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/BuiltByShivam/smart-inventory/internal/client/client"
	"github.com/BuiltByShivam/smart-inventory/internal/client/listview"
	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
	"github.com/BuiltByShivam/smart-inventory/internal/client/store"
	"github.com/BuiltByShivam/smart-inventory/internal/common"
)

// describe turns an error into the line shown to the user.
func describe(err error) error {
	var (
		ve *store.ValidationError
		re *store.RemoteServiceError
	)
	switch {
	case errors.As(err, &ve):
		return errors.New(ve.Message)
	case errors.As(err, &re):
		return errors.New(re.Message)
	case errors.Is(err, common.ErrorUnauthorized):
		return errors.New("please login first")
	case errors.Is(err, common.ErrorForbidden):
		return errors.New("admin only")
	case errors.Is(err, client.ErrUnavailable):
		return errors.New("product service is unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		return errors.New("request timed out")
	}
	return err
}

func renderProducts(w io.Writer, items []models.Product) error {
	t := tablewriter.NewWriter(w)
	t.Header("ID", "Name", "SKU", "Category", "Qty", "Price", "Updated")
	for _, p := range items {
		id := string(p.ID)
		if p.Pending {
			id = "(saving)"
		}
		row := []string{id, p.Name, p.SKU, p.Category, strconv.Itoa(int(p.Quantity)), models.FormatPrice(p.Price), p.LastUpdated}
		if err := t.Append(row); err != nil {
			return err
		}
	}
	return t.Render()
}

func renderProduct(w io.Writer, p models.Product) {
	fmt.Fprintf(w, "ID:        %s\n", p.ID)
	fmt.Fprintf(w, "Name:      %s\n", p.Name)
	fmt.Fprintf(w, "SKU:       %s\n", p.SKU)
	fmt.Fprintf(w, "Category:  %s\n", p.Category)
	fmt.Fprintf(w, "Quantity:  %d\n", p.Quantity)
	fmt.Fprintf(w, "Price:     %s\n", models.FormatPrice(p.Price))
	if p.LastUpdated != "" {
		fmt.Fprintf(w, "Updated:   %s\n", p.LastUpdated)
	}
}

func renderUsers(w io.Writer, items []models.User) error {
	t := tablewriter.NewWriter(w)
	t.Header("Username", "Role", "Enabled", "Built-in")
	for _, u := range items {
		row := []string{u.Username, u.Role, yesNo(u.Enabled), yesNo(u.BuiltIn)}
		if err := t.Append(row); err != nil {
			return err
		}
	}
	return t.Render()
}

func renderSummary(w io.Writer, s listview.Summary) {
	fmt.Fprintf(w, "Products:         %d\n", s.TotalProducts)
	fmt.Fprintf(w, "Low stock (<=%d):  %d\n", listview.DashboardLowStock, s.LowStock)
	fmt.Fprintf(w, "Out of stock:     %d\n", s.OutOfStock)
	fmt.Fprintf(w, "Units on hand:    %d\n", s.TotalUnits)
	fmt.Fprintf(w, "Inventory value:  %s\n", models.FormatPrice(s.InventoryValue))
	fmt.Fprintf(w, "Categories:       %d\n", s.Categories)
}

func pageFooter[T any](p listview.Page[T]) string {
	return fmt.Sprintf("Page %d of %d (%d items)", p.Number, p.TotalPages, p.TotalItems)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
