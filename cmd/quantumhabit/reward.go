// Reward command group for the quantumhabit CLI.
package main

import "github.com/spf13/cobra"

var rewardCmd = &cobra.Command{
	Use:   "reward",
	Short: "Check, claim and list rewards",
}

func init() {
	rewardCmd.AddCommand(rewardCheckCmd)
	rewardCmd.AddCommand(rewardClaimCmd)
	rewardCmd.AddCommand(rewardListCmd)
}
