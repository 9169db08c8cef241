// Habit update command rewrites a habit's fields.
package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

var (
	habitUpdateName        string
	habitUpdateDescription string
	habitUpdateTargetDays  uint32
	habitUpdateStandard    uint64
)

var habitUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a habit",
	Long: `Update rewrites the habit's name, description, target and encrypted
completion standard. Only the owner may update a habit.`,
	Args: cobra.ExactArgs(1),
	RunE: runHabitUpdate,
}

func init() {
	habitUpdateCmd.Flags().StringVar(&habitUpdateName, "name", "", "new habit name (required)")
	habitUpdateCmd.Flags().StringVar(&habitUpdateDescription, "description", "", "new habit description")
	habitUpdateCmd.Flags().Uint32Var(&habitUpdateTargetDays, "target-days", 0, "new target number of days (required)")
	habitUpdateCmd.Flags().Uint64Var(&habitUpdateStandard, "standard", 0, "new completion quality standard, 0-255")
	_ = habitUpdateCmd.MarkFlagRequired("name")
	_ = habitUpdateCmd.MarkFlagRequired("target-days")
}

func runHabitUpdate(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fail(exitUserError, "habit update", fmt.Errorf("invalid habit id %q", args[0]))
	}

	caller, err := account()
	if err != nil {
		fail(exitUserError, "habit update", err)
	}

	sess, err := openSession()
	if err != nil {
		fail(exitSysError, "habit update", err)
	}
	defer sess.close()

	standard, err := sess.engine.EncryptInput(caller, types.WidthUint8, habitUpdateStandard)
	if err != nil {
		fail(exitUserError, "habit update", err)
	}

	err = sess.ledger.UpdateHabit(caller, id, habitUpdateName, habitUpdateDescription, habitUpdateTargetDays, standard)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrNotOwner) || errors.Is(err, types.ErrInvalidInput) {
			fail(exitUserError, "habit update", err)
		}
		fail(exitSysError, "habit update", err)
	}

	fmt.Printf("Updated habit %d\n", id)
	return nil
}
