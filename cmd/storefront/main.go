package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/storefront/internal/api"
	"github.com/vladislavdragonenkov/storefront/internal/app"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run выполняет команду и возвращает код выхода.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := &cli{}
	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := root.ExecuteContext(ctx)
	if closeErr := c.close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", describe(err))
		return 1
	}
	return 0
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "storefront",
		Short: "Storefront client: catalog, cart, checkout and orders",
		Long: `storefront talks to the shop REST API.

The cart lives locally and survives restarts; checkout pushes it to the server
cart, places the order and confirms payment. Run "storefront agent" to keep the
server cart in sync in the background.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", app.DefaultConfigPath(), "Config file (YAML)")
	flags.StringVar(&c.apiURL, "api-url", "", "Shop API base URL (overrides config)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newLoginCmd(c),
		newRegisterCmd(c),
		newLogoutCmd(c),
		newProfileCmd(c),
		newProductsCmd(c),
		newCategoriesCmd(c),
		newCartCmd(c),
		newCheckoutCmd(c),
		newOrdersCmd(c),
		newAdminCmd(c),
		newAgentCmd(c),
		newVersionCmd(),
	)
	return root
}

// describe превращает ошибку в сообщение для пользователя.
func describe(err error) string {
	if errors.Is(err, api.ErrSessionExpired) {
		return "session expired, run `storefront login`"
	}
	return err.Error()
}
