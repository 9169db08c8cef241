// Stats command derives and decrypts the aggregate statistics bundle.
package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/RachelLancelot/quantumhabit/internal/ledger"
	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

var statsCmd = &cobra.Command{
	Use:   "stats <habit-id>",
	Short: "Show aggregate habit statistics",
	Long: `Stats runs the encrypted aggregations over the habit's completion
records and decrypts the results for the owner: completed days, current
streak, completion percentage against the target, and the share of records
meeting the quality standard.`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fail(exitUserError, "stats", fmt.Errorf("invalid habit id %q", args[0]))
	}

	caller, err := account()
	if err != nil {
		fail(exitUserError, "stats", err)
	}

	sess, err := openSession()
	if err != nil {
		fail(exitSysError, "stats", err)
	}
	defer sess.close()

	if _, _, err := sess.ledger.GetHabitStats(ledger.Call{Caller: caller, Mode: ledger.Commit}, id); err != nil {
		if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrNotOwner) {
			fail(exitUserError, "stats", err)
		}
		fail(exitSysError, "stats", err)
	}
	bundle, _, err := sess.ledger.GetHabitStats(ledger.Call{Caller: caller, Mode: ledger.Simulate}, id)
	if err != nil {
		fail(exitSysError, "stats", err)
	}

	decrypt := func(h types.Handle) uint64 {
		v, err := sess.relay.UserDecrypt(caller, h)
		if err != nil {
			fail(exitSysError, "stats", err)
		}
		return v
	}

	completed := decrypt(bundle.CompletedDays)
	streak := decrypt(bundle.ConsecutiveDays)
	percentage := decrypt(bundle.CompletionPercentage)
	rate := decrypt(bundle.CompletionRate)

	if flagJSON {
		return printJSON(map[string]any{
			"habit_id":              id,
			"completed_days":        completed,
			"consecutive_days":      streak,
			"completion_percentage": percentage,
			"completion_rate":       rate,
		})
	}

	fmt.Println("Completed days:       ", completed)
	fmt.Println("Current streak:       ", streak)
	fmt.Printf("Completion percentage: %d%%\n", percentage)
	fmt.Printf("Completion rate:       %d%%\n", rate)
	return nil
}
