package main

import (
	"fmt"

	"github.com/2beens/ironlog/internal/db"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		applied, err := db.Migrate(cmd.Context(), dbPool)
		for _, m := range applied {
			color.Green("✓ %03d %s", m.Version, m.Name)
		}
		if err != nil {
			return err
		}

		if len(applied) == 0 {
			fmt.Println("schema is up to date")
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied and pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		applied, err := db.AppliedMigrations(cmd.Context(), dbPool)
		if err != nil {
			return err
		}

		faint := color.New(color.Faint)
		for _, am := range applied {
			fmt.Printf("%s %03d %s %s\n",
				color.GreenString("applied"),
				am.Version, am.Name,
				faint.Sprint(am.AppliedAt.Format("2006-01-02 15:04")),
			)
		}
		for _, m := range db.PendingMigrations(applied) {
			fmt.Printf("%s %03d %s\n", color.YellowString("pending"), m.Version, m.Name)
		}
		return nil
	},
}
