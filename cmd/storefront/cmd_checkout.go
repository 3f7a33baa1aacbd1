package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func newCheckoutCmd(c *cli) *cobra.Command {
	var (
		addr domain.Address
		yes  bool
	)
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Check out the cart: address, payment, confirmation",
		Long: `Walks through the checkout steps for the current cart.

Missing address fields are prompted for. After payment the order is placed on
the server and the local cart is emptied; if placement fails the cart is kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := c.dependencies(cmd)
			if err != nil {
				return err
			}
			if !deps.Credentials.LoggedIn() {
				return fmt.Errorf("%w: run `storefront login` before checkout", domain.ErrNotAuthenticated)
			}

			out := cmd.OutOrStdout()
			flow := deps.NewCheckoutFlow()
			if err := flow.ProceedToCheckout(); err != nil {
				return err
			}
			printCart(out, deps.Cart.Items(), deps.Cart.Total())

			p := newPrompter(cmd)
			addr.Street = p.ask("street", addr.Street)
			addr.City = p.ask("city", addr.City)
			addr.Zip = p.ask("zip", addr.Zip)
			addr.Country = p.ask("country", addr.Country)
			if err := flow.SubmitAddress(addr); err != nil {
				return err
			}

			summary := flow.Summary()
			_, _ = fmt.Fprintln(out)
			printSummary(out, summary)

			if !yes {
				answer := p.ask(fmt.Sprintf("pay %s now? [y/N]", money(summary.Total)), "")
				if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
					_ = flow.BackToAddress()
					_, _ = fmt.Fprintln(out, "checkout cancelled, your cart is unchanged")
					return nil
				}
			}

			_, _ = fmt.Fprintln(out, "processing payment...")
			if err := flow.Pay(cmd.Context()); err != nil {
				if ctxErr := cmd.Context().Err(); ctxErr != nil && errors.Is(err, ctxErr) {
					return errors.New("payment interrupted, your cart is unchanged")
				}
				return fmt.Errorf("%w (your cart is unchanged)", err)
			}

			session := flow.Session()
			if session.Order != nil {
				_, _ = fmt.Fprintf(out, "thank you! order #%d is %s\n", session.Order.ID, session.Order.Status)
			} else {
				_, _ = fmt.Fprintln(out, "thank you! your order has been placed")
			}
			return flow.ContinueShopping()
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&addr.Street, "street", "", "Shipping street")
	flags.StringVar(&addr.City, "city", "", "Shipping city")
	flags.StringVar(&addr.Zip, "zip", "", "Shipping zip code")
	flags.StringVar(&addr.Country, "country", "", "Shipping country")
	flags.BoolVarP(&yes, "yes", "y", false, "Pay without asking for confirmation")
	return cmd
}
