package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/checkout"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func printProducts(out io.Writer, products []domain.Product) {
	if len(products) == 0 {
		_, _ = fmt.Fprintln(out, "no products found")
		return
	}
	w := newTable(out)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tSTOCK")
	for _, p := range products {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.CategoryName, money(p.Price), p.Stock)
	}
	_ = w.Flush()
}

func printProduct(out io.Writer, p domain.Product) {
	_, _ = fmt.Fprintf(out, "#%d %s\n", p.ID, p.Name)
	_, _ = fmt.Fprintf(out, "  price:    %s\n", money(p.Price))
	_, _ = fmt.Fprintf(out, "  category: %s\n", p.CategoryName)
	_, _ = fmt.Fprintf(out, "  stock:    %d\n", p.Stock)
	if p.Description != "" {
		_, _ = fmt.Fprintf(out, "\n%s\n", p.Description)
	}
}

func printCart(out io.Writer, items []domain.CartItem, total decimal.Decimal) {
	if len(items) == 0 {
		_, _ = fmt.Fprintln(out, "your cart is empty")
		return
	}
	w := newTable(out)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tPRICE\tQTY\tLINE")
	for _, item := range items {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", item.ID, item.Name, money(item.Price), item.Quantity, money(item.LineTotal()))
	}
	_ = w.Flush()
	_, _ = fmt.Fprintf(out, "total: %s\n", money(total))
}

func printSummary(out io.Writer, s checkout.Summary) {
	_, _ = fmt.Fprintf(out, "subtotal: %s\n", money(s.Subtotal))
	_, _ = fmt.Fprintf(out, "tax:      %s (%s%%)\n", money(s.Tax), checkout.TaxRate.Shift(2).String())
	_, _ = fmt.Fprintf(out, "total:    %s\n", money(s.Total))
}

func printOrders(out io.Writer, orders []domain.Order) {
	if len(orders) == 0 {
		_, _ = fmt.Fprintln(out, "no orders yet")
		return
	}
	w := newTable(out)
	_, _ = fmt.Fprintln(w, "ID\tSTATUS\tPAYMENT\tTOTAL\tCREATED")
	for _, o := range orders {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", o.ID, o.Status, o.PaymentStatus, money(o.TotalAmount), o.CreatedAt.Format("2006-01-02 15:04"))
	}
	_ = w.Flush()
}

func printOrder(out io.Writer, o domain.Order) {
	_, _ = fmt.Fprintf(out, "order #%d: %s, payment %s\n", o.ID, o.Status, o.PaymentStatus)
	_, _ = fmt.Fprintf(out, "ship to: %s, %s %s, %s\n", o.ShippingAddress, o.ShippingCity, o.ShippingZip, o.ShippingCountry)
	w := newTable(out)
	for _, item := range o.Items {
		_, _ = fmt.Fprintf(w, "  %s\tx%d\t%s\n", item.ProductName, item.Quantity, money(item.Subtotal))
	}
	_ = w.Flush()
	_, _ = fmt.Fprintf(out, "tax %s, total %s\n", money(o.TaxAmount), money(o.TotalAmount))
}

func printUser(out io.Writer, u domain.User) {
	_, _ = fmt.Fprintf(out, "%s <%s> (%s)\n", u.Username, u.Email, u.Role())
	if name := u.FirstName + " " + u.LastName; name != " " {
		_, _ = fmt.Fprintf(out, "name: %s\n", name)
	}
}
