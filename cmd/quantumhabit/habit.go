// Habit command group for the quantumhabit CLI.
package main

import "github.com/spf13/cobra"

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Manage habits",
}

func init() {
	habitCmd.AddCommand(habitCreateCmd)
	habitCmd.AddCommand(habitListCmd)
	habitCmd.AddCommand(habitGetCmd)
	habitCmd.AddCommand(habitUpdateCmd)
	habitCmd.AddCommand(habitDeleteCmd)
}
