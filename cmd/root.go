package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"newmeclass_backend/internals/configs"
)

var rootCmd = &cobra.Command{
	Use:   "newmeclass",
	Short: "NEWME CLASS backend: tes kepribadian & bakat",
	Long: `Backend NEWME CLASS.

Tanpa subcommand akan menjalankan HTTP server (sama dengan "serve").
Subcommand lain:
  migrate  AutoMigrate semua tabel + index parsial
  seed     isi katalog soal dan pengaturan default`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configs.LoadEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
	SilenceUsage: true,
}

// Execute dipanggil dari main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
