package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "blitz",
	Short: "Blitz booking backend",
	Long: `Blitz - бронирование рабочих мест и ретритов, магазин абонементов и пакетов,
томаты, чат и планировщик HTTP-задач.

Подкоманды:
  serve      запустить HTTP API
  migrate    применить миграции базы данных
  cron tick  один раз выполнить созревшие cron-задачи`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "путь к TOML-конфигурации")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
