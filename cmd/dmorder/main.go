package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dmorder",
	Short: "DMOrder storefront backend",
	Long:  "DMOrder turns a seller's product catalogue into shareable order links with live dashboard updates.",
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(routeListCmd)
	rootCmd.AddCommand(seedCmd)
}
