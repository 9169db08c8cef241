// Habit list command shows the acting account's habits.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

var habitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the acting account's habits",
	Args:  cobra.NoArgs,
	RunE:  runHabitList,
}

func runHabitList(cmd *cobra.Command, args []string) error {
	caller, err := account()
	if err != nil {
		fail(exitUserError, "habit list", err)
	}

	sess, err := openSession()
	if err != nil {
		fail(exitSysError, "habit list", err)
	}
	defer sess.close()

	ids, err := sess.ledger.GetUserHabits(caller)
	if err != nil {
		fail(exitSysError, "habit list", err)
	}

	habits := make([]*types.Habit, 0, len(ids))
	for _, id := range ids {
		habit, err := sess.ledger.GetHabit(id)
		if err != nil {
			fail(exitSysError, "habit list", err)
		}
		habits = append(habits, habit)
	}

	if flagJSON {
		return printJSON(habits)
	}
	for _, h := range habits {
		state := "active"
		if !h.IsActive {
			state = "deleted"
		}
		fmt.Printf("%d\t%s\t%s\t%d days\t%s\n", h.ID, h.Name, h.HabitType, h.TargetDays, state)
	}
	return nil
}
