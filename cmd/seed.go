package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	database "newmeclass_backend/internals/databases"
	"newmeclass_backend/internals/seeds"
	"newmeclass_backend/internals/seeds/questions"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Isi katalog soal + pengaturan default",
	Long: `Upsert katalog soal (per question_code) dan buat baris pengaturan default.
Tanpa --file memakai katalog YAML bawaan.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		database.ConnectDB()
		defer database.Close()

		if seedFile == "" {
			return seeds.RunAllSeeds(database.DB)
		}

		raw, err := os.ReadFile(seedFile)
		if err != nil {
			return err
		}
		created, updated, err := questions.SeedQuestions(database.DB, raw)
		if err != nil {
			return err
		}
		log.Printf("[INFO] ✅ Seed %s: %d baru, %d diperbarui", seedFile, created, updated)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "file YAML katalog soal")
	rootCmd.AddCommand(seedCmd)
}
