package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/BuiltByShivam/smart-inventory/internal/client/client"
	"github.com/BuiltByShivam/smart-inventory/internal/client/listview"
	"github.com/BuiltByShivam/smart-inventory/internal/client/models"
	"github.com/BuiltByShivam/smart-inventory/internal/client/services"
)

func (a *App) dashboard(ctx context.Context, _ []string) error {
	if a.inventory.Loading() {
		a.out.Step("Loading products...")
	}
	renderSummary(a.w(), a.inventory.Dashboard())
	return nil
}

func (a *App) products(ctx context.Context, args []string) error {
	a.query = joinArgs(args)
	a.page = 1
	return a.renderProductPage(ctx)
}

func (a *App) sortBy(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("sort")
	}
	key, err := listview.ParseSortKey(args[0])
	if err != nil {
		return err
	}
	a.sort = a.sort.Toggle(key)
	a.out.Step("Sorted by %s", a.sort)
	return a.renderProductPage(ctx)
}

func (a *App) gotoPage(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("page")
	}
	switch args[0] {
	case "next":
		a.page++
	case "prev":
		a.page--
	default:
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return usageError("page")
		}
		a.page = n
	}
	return a.renderProductPage(ctx)
}

func (a *App) renderProductPage(ctx context.Context) error {
	p, err := a.inventory.Products(ctx, services.ViewQuery{Query: a.query, Sort: a.sort, Page: a.page})
	if err != nil {
		return err
	}
	a.page = p.Number
	if a.inventory.Loading() {
		a.out.Step("Loading products...")
	}
	if p.TotalItems == 0 {
		a.out.Info("No products found.")
		return nil
	}
	if err := renderProducts(a.w(), p.Items); err != nil {
		return err
	}
	a.out.Info("%s", pageFooter(p))
	return nil
}

func (a *App) show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("show")
	}
	p, err := a.inventory.Show(ctx, models.ProductID(args[0]))
	if err != nil {
		return err
	}
	renderProduct(a.w(), p)
	return nil
}

func (a *App) add(ctx context.Context, _ []string) error {
	var (
		d   models.ProductDraft
		err error
	)
	if d.Name, err = a.ask("Name"); err != nil {
		return err
	}
	if d.SKU, err = a.ask("SKU (optional)"); err != nil {
		return err
	}
	if d.Category, err = a.ask("Category"); err != nil {
		return err
	}
	if d.Price, err = a.askFloat("Price"); err != nil {
		return err
	}
	if d.Quantity, err = a.askInt("Quantity"); err != nil {
		return err
	}

	p, err := a.inventory.Add(ctx, d)
	if err != nil {
		return err
	}
	a.out.Success("Added %s (id %s)", p.Name, p.ID)
	return nil
}

func (a *App) edit(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("edit")
	}
	id := models.ProductID(args[0])
	cur, err := a.inventory.Show(ctx, id)
	if err != nil {
		return err
	}
	a.out.Info("Press Enter to keep the current value.")

	var patch models.ProductPatch
	if v, changed, err := GetWithDefault(a.reader, "Name", cur.Name, a.w()); err != nil {
		return err
	} else if changed {
		patch.Name = &v
	}
	if v, changed, err := GetWithDefault(a.reader, "SKU", cur.SKU, a.w()); err != nil {
		return err
	} else if changed {
		patch.SKU = &v
	}
	if v, changed, err := GetWithDefault(a.reader, "Category", cur.Category, a.w()); err != nil {
		return err
	} else if changed {
		patch.Category = &v
	}
	if v, changed, err := GetWithDefault(a.reader, "Price", models.FormatPrice(cur.Price), a.w()); err != nil {
		return err
	} else if changed {
		f, err := parseFloat(v)
		if err != nil {
			return err
		}
		patch.Price = &f
	}
	if v, changed, err := GetWithDefault(a.reader, "Quantity", strconv.Itoa(int(cur.Quantity)), a.w()); err != nil {
		return err
	} else if changed {
		n, err := parseInt(v)
		if err != nil {
			return err
		}
		patch.Quantity = &n
	}

	p, err := a.inventory.Edit(ctx, id, patch)
	if err != nil {
		return err
	}
	a.out.Success("Updated %s", p.Name)
	return nil
}

func (a *App) remove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("delete")
	}
	id := models.ProductID(args[0])
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete product %s?", id), a.w())
	if err != nil || !ok {
		return err
	}
	if err := a.inventory.Delete(ctx, id); err != nil {
		return err
	}
	a.out.Success("Deleted product %s", id)
	return nil
}

func (a *App) search(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usageError("search")
	}
	list, err := a.inventory.Search(ctx, services.SearchKind(strings.ToLower(args[0])), joinArgs(args[1:]))
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.out.Info("No products found.")
		return nil
	}
	return renderProducts(a.w(), list)
}

func (a *App) browse(ctx context.Context, args []string) error {
	q := client.PageQuery{}
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return usageError("browse")
		}
		q.Page = n - 1
	}
	if len(args) > 1 {
		q.SortBy = args[1]
	}
	if len(args) > 2 {
		q.Desc = strings.EqualFold(args[2], "desc")
	}

	pg, err := a.inventory.RemotePage(ctx, q)
	if err != nil {
		return err
	}
	if err := renderProducts(a.w(), pg.Content); err != nil {
		return err
	}
	a.out.Info("Page %d of %d (%d items)", pg.Number+1, max(pg.TotalPages, 1), pg.TotalElements)
	return nil
}

func (a *App) reload(ctx context.Context, _ []string) error {
	a.out.Step("Loading products...")
	if err := a.inventory.Refresh(ctx); err != nil {
		return err
	}
	a.out.Success("%d products loaded", a.inventory.Dashboard().TotalProducts)
	return nil
}

func (a *App) askFloat(prompt string) (float64, error) {
	v, err := a.ask(prompt)
	if err != nil {
		return 0, err
	}
	return parseFloat(v)
}

func (a *App) askInt(prompt string) (int, error) {
	v, err := a.ask(prompt)
	if err != nil {
		return 0, err
	}
	return parseInt(v)
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return f, nil
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("not a whole number: %q", s)
	}
	return n, nil
}
