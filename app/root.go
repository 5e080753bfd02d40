// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "retiree-intake",
	Short: "retiree-intake is a web-based intake service for retiree verification",
	Long: `retiree-intake is a web-based intake service for retiree verification
that collects form submissions with supporting documents and provides
an administrative dashboard with spreadsheet and PDF exports.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
