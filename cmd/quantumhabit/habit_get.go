// Habit get command shows one habit's public fields.
package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

var habitGetStandard bool

var habitGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a habit",
	Long: `Get prints the habit's public fields. The completion standard is shown
as its ciphertext handle; pass --standard to decrypt it when the acting
account holds a grant.`,
	Args: cobra.ExactArgs(1),
	RunE: runHabitGet,
}

func init() {
	habitGetCmd.Flags().BoolVar(&habitGetStandard, "standard", false, "decrypt the completion standard")
}

func runHabitGet(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fail(exitUserError, "habit get", fmt.Errorf("invalid habit id %q", args[0]))
	}

	sess, err := openSession()
	if err != nil {
		fail(exitSysError, "habit get", err)
	}
	defer sess.close()

	habit, err := sess.ledger.GetHabit(id)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			fail(exitUserError, "habit get", err)
		}
		fail(exitSysError, "habit get", err)
	}

	if flagJSON {
		return printJSON(habit)
	}

	fmt.Println("ID:         ", habit.ID)
	fmt.Println("Owner:      ", habit.Owner)
	fmt.Println("Name:       ", habit.Name)
	fmt.Println("Description:", habit.Description)
	fmt.Println("Type:       ", habit.HabitType)
	fmt.Println("Target days:", habit.TargetDays)
	fmt.Println("Created at: ", habit.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Println("Active:     ", habit.IsActive)

	if habitGetStandard {
		caller, err := account()
		if err != nil {
			fail(exitUserError, "habit get", err)
		}
		v, err := sess.relay.UserDecrypt(caller, habit.CompletionStandard)
		if err != nil {
			if errors.Is(err, types.ErrNotAuthorized) {
				fail(exitUserError, "habit get", err)
			}
			fail(exitSysError, "habit get", err)
		}
		fmt.Println("Standard:   ", v)
	} else {
		fmt.Println("Standard:   ", habit.CompletionStandard.Hex())
	}
	return nil
}
