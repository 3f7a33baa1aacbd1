package main

import (
	"github.com/spf13/cobra"
)

func newOrdersCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Order history",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := c.dependencies(cmd)
			if err != nil {
				return err
			}
			orders, err := deps.Client.Orders.List(cmd.Context())
			if err != nil {
				return err
			}
			printOrders(cmd.OutOrStdout(), orders)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <order-id>",
		Short: "Show one order with its items",
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
			order, err := deps.Client.Orders.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			printOrder(cmd.OutOrStdout(), order)
			return nil
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}
