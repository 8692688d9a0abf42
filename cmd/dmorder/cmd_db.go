package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MohamedTawfiq30/dmorder/config"
	"github.com/MohamedTawfiq30/dmorder/database/seeders"
	"github.com/MohamedTawfiq30/dmorder/pkg/database"
)

// dmorder seed — run registered seeders against the configured database.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		if err := database.Connect(); err != nil {
			return err
		}
		defer database.Close()

		fmt.Println("Seeding database…")
		if err := seeders.RunAll(cmd.Context(), database.DB()); err != nil {
			return err
		}
		fmt.Println("Done.")
		return nil
	},
}
