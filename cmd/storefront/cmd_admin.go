package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/storefront/internal/admin"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func newAdminCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Staff tools: dashboard, stock, order status, catalog maintenance",
	}

	dashboard := &cobra.Command{
		Use:   "dashboard",
		Short: "Revenue, order counts and low stock at a glance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := c.dependencies(cmd)
			if err != nil {
				return err
			}
			d, err := deps.DashboardLoader().LoadDashboard(cmd.Context())
			if err != nil {
				return err
			}
			printDashboard(cmd, d)
			return nil
		},
	}

	lowStock := &cobra.Command{
		Use:   "low-stock",
		Short: fmt.Sprintf("Products with fewer than %d units left", admin.LowStockThreshold),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := c.dependencies(cmd)
			if err != nil {
				return err
			}
			products, err := deps.Client.Products.LowStock(cmd.Context())
			if err != nil {
				return err
			}
			printProducts(cmd.OutOrStdout(), products)
			return nil
		},
	}

	orderStatus := &cobra.Command{
		Use:   "order-status <order-id> <status>",
		Short: "Change an order's status (pending, processing, shipped, delivered, cancelled)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			deps, err := c.dependencies(cmd)
			if err != nil {
				return err
			}
			order, err := deps.Client.Orders.UpdateStatus(cmd.Context(), id, domain.OrderStatus(args[1]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "order #%d is now %s\n", order.ID, order.Status)
			return nil
		},
	}

	deleteProduct := &cobra.Command{
		Use:   "delete-product <product-id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			deps, err := c.dependencies(cmd)
			if err != nil {
				return err
			}
			if err := deps.Client.Products.Delete(cmd.Context(), id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "product #%d deleted\n", id)
			return nil
		},
	}

	var category domain.CategoryInput
	createCategory := &cobra.Command{
		Use:   "create-category",
		Short: "Create a category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if category.Name == "" {
				return fmt.Errorf("--name is required")
			}
			deps, err := c.dependencies(cmd)
			if err != nil {
				return err
			}
			created, err := deps.Client.Categories.Create(cmd.Context(), category)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "category #%d %s created\n", created.ID, created.Name)
			return nil
		},
	}
	createCategory.Flags().StringVar(&category.Name, "name", "", "Category name")
	createCategory.Flags().StringVar(&category.Description, "description", "", "Category description")

	deleteCategory := &cobra.Command{
		Use:   "delete-category <category-id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			deps, err := c.dependencies(cmd)
			if err != nil {
				return err
			}
			if err := deps.Client.Categories.Delete(cmd.Context(), id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "category #%d deleted\n", id)
			return nil
		},
	}

	cmd.AddCommand(dashboard, lowStock, orderStatus, deleteProduct, createCategory, deleteCategory)
	return cmd
}

func printDashboard(cmd *cobra.Command, d admin.Dashboard) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "revenue:        %s\n", money(d.Analytics.TotalRevenue))
	_, _ = fmt.Fprintf(out, "orders:         %d\n", d.Analytics.TotalOrders)
	_, _ = fmt.Fprintf(out, "pending orders: %d\n", d.Analytics.PendingOrders)

	byStatus := d.CountByStatus()
	statuses := make([]string, 0, len(byStatus))
	for status := range byStatus {
		statuses = append(statuses, string(status))
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		_, _ = fmt.Fprintf(out, "  %-11s %d\n", status, byStatus[domain.OrderStatus(status)])
	}

	if len(d.Analytics.DailySales) > 0 {
		_, _ = fmt.Fprintln(out, "\ndaily sales:")
		w := newTable(out)
		for _, day := range d.Analytics.DailySales {
			_, _ = fmt.Fprintf(w, "  %s\t%s\t%d orders\n", day.Date, money(day.Revenue), day.Orders)
		}
		_ = w.Flush()
	}

	low := d.LowStock()
	_, _ = fmt.Fprintf(out, "\nlow stock (%d):\n", len(low))
	printProducts(out, low)
}
