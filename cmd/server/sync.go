package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull the storefront catalog into the database",
	Long: `Fetch every product and collection from the storefront, apply each
product's price increase and replace the stored snapshot.

The cached catalog is invalidated when Redis is configured.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		s, err := a.syncer()
		if err != nil {
			return err
		}
		report, err := s.Run(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "synced %d products and %d collections in %s\n",
			report.Products, report.Collections, report.Duration)
		return nil
	},
}
