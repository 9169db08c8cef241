// Reward list command shows the acting account's claimed rewards.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rewardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List claimed rewards",
	Args:  cobra.NoArgs,
	RunE:  runRewardList,
}

func runRewardList(cmd *cobra.Command, args []string) error {
	caller, err := account()
	if err != nil {
		fail(exitUserError, "reward list", err)
	}

	sess, err := openSession()
	if err != nil {
		fail(exitSysError, "reward list", err)
	}
	defer sess.close()

	rewards, err := sess.ledger.GetUserRewards(caller)
	if err != nil {
		fail(exitSysError, "reward list", err)
	}

	if flagJSON {
		return printJSON(rewards)
	}
	for _, r := range rewards {
		fmt.Printf("%d\thabit %d\t%s\t%d\tclaimed %s\n",
			r.ID, r.HabitID, r.RewardType, r.Threshold, r.ClaimedAt.Format("2006-01-02"))
	}
	return nil
}
