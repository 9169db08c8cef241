// Habit create command registers a new habit.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RachelLancelot/quantumhabit/internal/ledger"
	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

var (
	habitCreateName        string
	habitCreateDescription string
	habitCreateTargetDays  uint32
	habitCreateType        string
	habitCreateStandard    uint64
)

var habitCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new habit",
	Long: `Create registers a habit owned by the acting account.

The completion standard is encrypted before it reaches the ledger; only the
owner can decrypt it afterwards.

Example:
  quantumhabit habit create --name "Daily Exercise" --target-days 30 --standard 75
  quantumhabit habit create --name "Read" --type weekly --target-days 12 --standard 1 --json`,
	Args: cobra.NoArgs,
	RunE: runHabitCreate,
}

func init() {
	habitCreateCmd.Flags().StringVar(&habitCreateName, "name", "", "habit name (required)")
	habitCreateCmd.Flags().StringVar(&habitCreateDescription, "description", "", "habit description")
	habitCreateCmd.Flags().Uint32Var(&habitCreateTargetDays, "target-days", 0, "target number of days (required)")
	habitCreateCmd.Flags().StringVar(&habitCreateType, "type", "daily", "habit type (daily, weekly, custom)")
	habitCreateCmd.Flags().Uint64Var(&habitCreateStandard, "standard", 0, "completion quality standard, 0-255 (kept encrypted)")
	_ = habitCreateCmd.MarkFlagRequired("name")
	_ = habitCreateCmd.MarkFlagRequired("target-days")
}

func runHabitCreate(cmd *cobra.Command, args []string) error {
	caller, err := account()
	if err != nil {
		fail(exitUserError, "habit create", err)
	}

	habitType, err := types.ParseHabitType(habitCreateType)
	if err != nil {
		fail(exitUserError, "habit create", fmt.Errorf("invalid type %q (valid: daily, weekly, custom)", habitCreateType))
	}

	sess, err := openSession()
	if err != nil {
		fail(exitSysError, "habit create", err)
	}
	defer sess.close()

	standard, err := sess.engine.EncryptInput(caller, types.WidthUint8, habitCreateStandard)
	if err != nil {
		fail(exitUserError, "habit create", err)
	}

	id, err := sess.ledger.CreateHabit(caller, ledger.CreateHabitParams{
		Name:        habitCreateName,
		Description: habitCreateDescription,
		TargetDays:  habitCreateTargetDays,
		HabitType:   habitType,
		Standard:    standard,
	})
	if err != nil {
		if errors.Is(err, types.ErrInvalidInput) {
			fail(exitUserError, "habit create", err)
		}
		fail(exitSysError, "habit create", err)
	}

	if flagJSON {
		habit, err := sess.ledger.GetHabit(id)
		if err != nil {
			fail(exitSysError, "habit create", err)
		}
		return printJSON(habit)
	}
	fmt.Printf("Created habit %d\n", id)
	return nil
}
