package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd runs the HTTP server when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:           "printshop",
	Short:         "Print shop storefront API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(userCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// logger may not be initialised yet
		os.Stderr.WriteString("printshop: " + err.Error() + "\n")
		os.Exit(1)
	}
}
