package main

import (
	"time"

	"github.com/spf13/cobra"
)

var cronCmd = &cobra.Command{
	Use:   "cron",
	Short: "Команды планировщика задач",
}

// cronTickCmd внешний триггер планировщика, например из системного cron
var cronTickCmd = &cobra.Command{
	Use:   "tick",
	Short: "Один раз выполнить созревшие задачи",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), configPath)
		if err != nil {
			return err
		}
		defer a.close()

		result, err := a.newCronService().ExecuteDueTasks(cmd.Context(), time.Now())
		if err != nil {
			a.log.Error("cron tick failed: %v", err)
			return err
		}
		a.log.Info("cron tick done: executed=%d, succeeded=%d, failed=%d", result.Executed, result.Succeeded, result.Failed)
		return nil
	},
}

func init() {
	cronCmd.AddCommand(cronTickCmd)
	rootCmd.AddCommand(cronCmd)
}
