// Reward check command probes eligibility without claiming.
package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/RachelLancelot/quantumhabit/internal/ledger"
	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

var (
	rewardCheckType      string
	rewardCheckThreshold uint32
)

var rewardCheckCmd = &cobra.Command{
	Use:   "check <habit-id>",
	Short: "Check reward eligibility",
	Long: `Check probes one reward threshold without claiming it. The quoted
amount is decrypted for the acting account; an eligible quote can still pay
zero when the encrypted statistics fall short of the public record count.

Example:
  quantumhabit reward check 0 --type milestone --threshold 50
  quantumhabit reward check 0 --type consecutive --threshold 7`,
	Args: cobra.ExactArgs(1),
	RunE: runRewardCheck,
}

func init() {
	rewardCheckCmd.Flags().StringVar(&rewardCheckType, "type", "milestone", "reward type (milestone, consecutive)")
	rewardCheckCmd.Flags().Uint32Var(&rewardCheckThreshold, "threshold", 0, "milestone percent or streak days (required)")
	_ = rewardCheckCmd.MarkFlagRequired("threshold")
}

func runRewardCheck(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fail(exitUserError, "reward check", fmt.Errorf("invalid habit id %q", args[0]))
	}

	caller, err := account()
	if err != nil {
		fail(exitUserError, "reward check", err)
	}

	rewardType, err := types.ParseRewardType(rewardCheckType)
	if err != nil {
		fail(exitUserError, "reward check", fmt.Errorf("invalid type %q (valid: milestone, consecutive)", rewardCheckType))
	}

	sess, err := openSession()
	if err != nil {
		fail(exitSysError, "reward check", err)
	}
	defer sess.close()

	check := func(c ledger.Call) (ledger.RewardQuote, *ledger.Receipt, error) {
		if rewardType == types.RewardMilestone {
			return sess.ledger.CheckMilestoneReward(c, id, rewardCheckThreshold)
		}
		return sess.ledger.CheckConsecutiveReward(c, id, rewardCheckThreshold)
	}

	if _, _, err := check(ledger.Call{Caller: caller, Mode: ledger.Commit}); err != nil {
		if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrNotOwner) || errors.Is(err, types.ErrInvalidInput) {
			fail(exitUserError, "reward check", err)
		}
		fail(exitSysError, "reward check", err)
	}
	quote, _, err := check(ledger.Call{Caller: caller, Mode: ledger.Simulate})
	if err != nil {
		fail(exitSysError, "reward check", err)
	}

	amount, err := sess.relay.UserDecrypt(caller, quote.Amount)
	if err != nil {
		fail(exitSysError, "reward check", err)
	}

	if flagJSON {
		return printJSON(map[string]any{
			"habit_id":  id,
			"type":      rewardType.String(),
			"threshold": rewardCheckThreshold,
			"eligible":  quote.Eligible,
			"amount":    amount,
		})
	}
	if quote.Eligible {
		fmt.Printf("Eligible for %s reward at %d: amount %d\n", rewardType, rewardCheckThreshold, amount)
	} else {
		fmt.Printf("Not eligible for %s reward at %d\n", rewardType, rewardCheckThreshold)
	}
	return nil
}
