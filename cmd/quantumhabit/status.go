// Status command checks a single day's completion.
package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/RachelLancelot/quantumhabit/internal/ledger"
	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

var statusDate string

var statusCmd = &cobra.Command{
	Use:   "status <habit-id>",
	Short: "Check completion for one day",
	Long: `Status derives an encrypted completion indicator for one day bucket
and decrypts it for the acting account. Days without a record read as not
completed.`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&statusDate, "date", "", "day to check, YYYY-MM-DD (default: today)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fail(exitUserError, "status", fmt.Errorf("invalid habit id %q", args[0]))
	}

	caller, err := account()
	if err != nil {
		fail(exitUserError, "status", err)
	}

	date, err := parseDay(statusDate)
	if err != nil {
		fail(exitUserError, "status", err)
	}

	sess, err := openSession()
	if err != nil {
		fail(exitSysError, "status", err)
	}
	defer sess.close()

	handle, err := commitAndSimulate(caller, func(c ledger.Call) (types.Handle, *ledger.Receipt, error) {
		return sess.ledger.IsCompleted(c, id, date)
	})
	if err != nil {
		if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrNotOwner) || errors.Is(err, types.ErrInvalidInput) {
			fail(exitUserError, "status", err)
		}
		fail(exitSysError, "status", err)
	}

	v, err := sess.relay.UserDecrypt(caller, handle)
	if err != nil {
		fail(exitSysError, "status", err)
	}

	if flagJSON {
		return printJSON(map[string]any{
			"habit_id":  id,
			"date":      formatDay(date),
			"completed": v != 0,
		})
	}
	if v != 0 {
		fmt.Printf("Habit %d completed on %s\n", id, formatDay(date))
	} else {
		fmt.Printf("Habit %d not completed on %s\n", id, formatDay(date))
	}
	return nil
}
