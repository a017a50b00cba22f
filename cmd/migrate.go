package cmd

import (
	"github.com/spf13/cobra"

	database "newmeclass_backend/internals/databases"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "AutoMigrate semua tabel",
	RunE: func(cmd *cobra.Command, args []string) error {
		database.ConnectDB()
		defer database.Close()
		return database.Migrate(database.DB)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
