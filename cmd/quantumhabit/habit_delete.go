// Habit delete command deactivates a habit.
package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

var habitDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a habit",
	Long: `Delete deactivates the habit. Its records and rewards remain in the
ledger but the habit no longer accepts completions or aggregation calls.`,
	Args: cobra.ExactArgs(1),
	RunE: runHabitDelete,
}

func runHabitDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fail(exitUserError, "habit delete", fmt.Errorf("invalid habit id %q", args[0]))
	}

	caller, err := account()
	if err != nil {
		fail(exitUserError, "habit delete", err)
	}

	sess, err := openSession()
	if err != nil {
		fail(exitSysError, "habit delete", err)
	}
	defer sess.close()

	if err := sess.ledger.DeleteHabit(caller, id); err != nil {
		if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrNotOwner) {
			fail(exitUserError, "habit delete", err)
		}
		fail(exitSysError, "habit delete", err)
	}

	fmt.Printf("Deleted habit %d\n", id)
	return nil
}
