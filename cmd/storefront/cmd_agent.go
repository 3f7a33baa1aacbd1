package main

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vladislavdragonenkov/storefront/internal/app"
	"github.com/vladislavdragonenkov/storefront/internal/version"
)

func newAgentCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "agent",
		Short: "Run the background agent: cart sync, metrics and health endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log.WithFields(log.Fields{
				"api_url":      c.cfg.APIURL,
				"storage":      c.cfg.StorageDriver,
				"grpc_addr":    c.cfg.GRPCAddr,
				"metrics_addr": c.cfg.MetricsAddr,
				"version":      version.GetVersion(),
			}).Info("запускаем storefront agent")

			err := app.Run(cmd.Context(), c.cfg)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			log.Info("storefront agent остановлен")
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "storefront %s (commit %s, built %s)\n",
				version.GetVersion(), version.GetCommit(), version.GetDate())
			return nil
		},
	}
}
