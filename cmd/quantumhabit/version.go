// Version command for the quantumhabit CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RachelLancelot/quantumhabit/pkg/quantumhabit"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the quantumhabit version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("quantumhabit", quantumhabit.Version)
	},
}
