// Reward claim command claims an earned reward.
package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

var (
	rewardClaimType      string
	rewardClaimThreshold uint32
)

var rewardClaimCmd = &cobra.Command{
	Use:   "claim <habit-id>",
	Short: "Claim a reward",
	Long: `Claim records a reward claim for one threshold. Each (habit, type,
threshold) triple can be claimed once; the claimed amount stays encrypted
and is decrypted here for the owner.`,
	Args: cobra.ExactArgs(1),
	RunE: runRewardClaim,
}

func init() {
	rewardClaimCmd.Flags().StringVar(&rewardClaimType, "type", "milestone", "reward type (milestone, consecutive)")
	rewardClaimCmd.Flags().Uint32Var(&rewardClaimThreshold, "threshold", 0, "milestone percent or streak days (required)")
	_ = rewardClaimCmd.MarkFlagRequired("threshold")
}

func runRewardClaim(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fail(exitUserError, "reward claim", fmt.Errorf("invalid habit id %q", args[0]))
	}

	caller, err := account()
	if err != nil {
		fail(exitUserError, "reward claim", err)
	}

	rewardType, err := types.ParseRewardType(rewardClaimType)
	if err != nil {
		fail(exitUserError, "reward claim", fmt.Errorf("invalid type %q (valid: milestone, consecutive)", rewardClaimType))
	}

	sess, err := openSession()
	if err != nil {
		fail(exitSysError, "reward claim", err)
	}
	defer sess.close()

	reward, err := sess.ledger.ClaimReward(caller, id, rewardType, rewardClaimThreshold)
	if err != nil {
		switch {
		case errors.Is(err, types.ErrAlreadyClaimed),
			errors.Is(err, types.ErrNotEligible),
			errors.Is(err, types.ErrNotFound),
			errors.Is(err, types.ErrNotOwner),
			errors.Is(err, types.ErrInvalidInput):
			fail(exitUserError, "reward claim", err)
		}
		fail(exitSysError, "reward claim", err)
	}

	amount, err := sess.relay.UserDecrypt(caller, reward.RewardAmount)
	if err != nil {
		fail(exitSysError, "reward claim", err)
	}

	if flagJSON {
		return printJSON(map[string]any{
			"reward_id": reward.ID,
			"habit_id":  reward.HabitID,
			"type":      reward.RewardType.String(),
			"threshold": reward.Threshold,
			"amount":    amount,
		})
	}
	fmt.Printf("Claimed %s reward %d at %d: amount %d\n", rewardType, reward.ID, reward.Threshold, amount)
	return nil
}
