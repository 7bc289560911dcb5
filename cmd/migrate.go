package main

import (
	"github.com/spf13/cobra"

	"github.com/m04kA/blitz-booking/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Применить миграции базы данных",
	Long:  "Применяет встроенные SQL-миграции по порядку. Скрипты идемпотентны, повторный запуск безопасен.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), configPath)
		if err != nil {
			return err
		}
		defer a.close()

		applied, err := migrations.Apply(cmd.Context(), a.db)
		if err != nil {
			a.log.Error("Migration failed: %v", err)
			return err
		}
		for _, name := range applied {
			a.log.Info("Applied migration %s", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
