package main

import (
	"bufio"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/search"
)

func newProductsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse the catalog",
	}

	var filter domain.ProductFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List products, optionally filtered by search text or category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := c.dependencies(cmd)
			if err != nil {
				return err
			}
			products, err := deps.Client.Products.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			printProducts(cmd.OutOrStdout(), products)
			return nil
		},
	}
	list.Flags().StringVarP(&filter.Search, "search", "s", "", "Search text")
	list.Flags().Int64Var(&filter.CategoryID, "category", 0, "Category id")

	show := &cobra.Command{
		Use:   "show <product-id>",
		Short: "Show product details",
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
			product, err := deps.Client.Products.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			printProduct(cmd.OutOrStdout(), product)
			return nil
		},
	}

	var (
		delay      time.Duration
		categoryID int64
	)
	find := &cobra.Command{
		Use:   "search",
		Short: "Search as you type: each input line is a query, only the latest one is sent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := c.dependencies(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			var mu sync.Mutex
			var lastErr error
			d := search.NewDebouncer(deps.Client.Products.List,
				func(f domain.ProductFilter, products []domain.Product, err error) {
					mu.Lock()
					defer mu.Unlock()
					lastErr = err
					if err != nil {
						return
					}
					_, _ = fmt.Fprintf(out, "results for %q:\n", f.Search)
					printProducts(out, products)
				}, delay, deps.Logger.WithField("component", "search"))
			defer d.Stop()

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				d.Trigger(cmd.Context(), domain.ProductFilter{Search: strings.TrimSpace(scanner.Text()), CategoryID: categoryID})
			}
			d.Wait()

			mu.Lock()
			defer mu.Unlock()
			if err := scanner.Err(); err != nil {
				return err
			}
			return lastErr
		},
	}
	find.Flags().DurationVar(&delay, "delay", search.DefaultDelay, "Quiet period before a query is sent")
	find.Flags().Int64Var(&categoryID, "category", 0, "Category id")

	cmd.AddCommand(list, show, find)
	return cmd
}

func newCategoriesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Browse categories",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := c.dependencies(cmd)
			if err != nil {
				return err
			}
			categories, err := deps.Client.Categories.List(cmd.Context())
			if err != nil {
				return err
			}
			w := newTable(cmd.OutOrStdout())
			_, _ = fmt.Fprintln(w, "ID\tNAME\tPRODUCTS")
			for _, cat := range categories {
				_, _ = fmt.Fprintf(w, "%d\t%s\t%d\n", cat.ID, cat.Name, cat.ProductCount)
			}
			return w.Flush()
		},
	})
	return cmd
}
