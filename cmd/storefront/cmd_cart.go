package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCartCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the local cart",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show cart contents and total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := c.dependencies(cmd)
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), deps.Cart.Items(), deps.Cart.Total())
			return nil
		},
	}

	var quantity int
	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if quantity < 1 {
				return fmt.Errorf("quantity must be at least 1")
			}
			deps, err := c.dependencies(cmd)
			if err != nil {
				return err
			}
			product, err := deps.Client.Products.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if err := deps.Cart.AddToCart(product); err != nil {
				return err
			}
			if quantity > 1 {
				current := 0
				for _, item := range deps.Cart.Items() {
					if item.ID == id {
						current = item.Quantity
					}
				}
				if err := deps.Cart.UpdateQuantity(id, current+quantity-1); err != nil {
					return err
				}
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s, cart has %d item(s)\n", product.Name, deps.Cart.Count())
			return nil
		},
	}
	add.Flags().IntVarP(&quantity, "quantity", "q", 1, "Units to add")

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart",
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
			if err := deps.Cart.RemoveFromCart(id); err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), deps.Cart.Items(), deps.Cart.Total())
			return nil
		},
	}

	update := &cobra.Command{
		Use:   "update <product-id> <quantity>",
		Short: "Set the quantity of a cart line (values below 1 become 1)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			deps, err := c.dependencies(cmd)
			if err != nil {
				return err
			}
			if err := deps.Cart.UpdateQuantity(id, qty); err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), deps.Cart.Items(), deps.Cart.Total())
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := c.dependencies(cmd)
			if err != nil {
				return err
			}
			if err := deps.Cart.ClearCart(); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cart cleared")
			return nil
		},
	}

	cmd.AddCommand(show, add, remove, update, clearCmd)
	return cmd
}
