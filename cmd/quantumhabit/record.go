// Record command writes completion records.
package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/RachelLancelot/quantumhabit/pkg/fhe"
	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

var (
	recordDate     string
	recordStatus   uint64
	recordDates    string
	recordStatuses string
)

var recordCmd = &cobra.Command{
	Use:   "record <habit-id>",
	Short: "Record a completion",
	Long: `Record writes an encrypted completion status for one day bucket.
Recording the same day again overwrites the earlier status.

With --dates and --statuses a whole batch commits atomically.

Example:
  quantumhabit record 0 --status 1
  quantumhabit record 0 --date 2026-08-29 --status 85
  quantumhabit record 0 --dates 2026-08-27,2026-08-28,2026-08-29 --statuses 1,1,1`,
	Args: cobra.ExactArgs(1),
	RunE: runRecord,
}

func init() {
	recordCmd.Flags().StringVar(&recordDate, "date", "", "day to record, YYYY-MM-DD (default: today)")
	recordCmd.Flags().Uint64Var(&recordStatus, "status", 0, "completion status, 0-255 (kept encrypted)")
	recordCmd.Flags().StringVar(&recordDates, "dates", "", "comma-separated days for a batch record")
	recordCmd.Flags().StringVar(&recordStatuses, "statuses", "", "comma-separated statuses for a batch record")
}

func runRecord(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fail(exitUserError, "record", fmt.Errorf("invalid habit id %q", args[0]))
	}

	caller, err := account()
	if err != nil {
		fail(exitUserError, "record", err)
	}

	sess, err := openSession()
	if err != nil {
		fail(exitSysError, "record", err)
	}
	defer sess.close()

	if recordDates != "" || recordStatuses != "" {
		dates, statuses, err := parseBatch(recordDates, recordStatuses)
		if err != nil {
			fail(exitUserError, "record", err)
		}
		inputs := make([]fhe.InputCiphertext, len(statuses))
		for i, s := range statuses {
			inputs[i], err = sess.engine.EncryptInput(caller, types.WidthUint8, s)
			if err != nil {
				fail(exitUserError, "record", err)
			}
		}
		if err := sess.ledger.BatchRecordCompletion(caller, id, dates, inputs); err != nil {
			failRecord(err)
		}
		fmt.Printf("Recorded %d completions for habit %d\n", len(dates), id)
		return nil
	}

	date, err := parseDay(recordDate)
	if err != nil {
		fail(exitUserError, "record", err)
	}
	status, err := sess.engine.EncryptInput(caller, types.WidthUint8, recordStatus)
	if err != nil {
		fail(exitUserError, "record", err)
	}
	if err := sess.ledger.RecordCompletion(caller, id, date, status); err != nil {
		failRecord(err)
	}

	fmt.Printf("Recorded completion for habit %d on %s\n", id, formatDay(date))
	return nil
}

func failRecord(err error) {
	if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrNotOwner) || errors.Is(err, types.ErrInvalidInput) {
		fail(exitUserError, "record", err)
	}
	fail(exitSysError, "record", err)
}

// parseDay converts a YYYY-MM-DD string to a day-aligned UTC bucket.
// An empty string means today.
func parseDay(s string) (int64, error) {
	if s == "" {
		return types.AlignDay(time.Now().UTC().UnixMilli()), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t.UnixMilli(), nil
}

// formatDay renders a day bucket back as YYYY-MM-DD.
func formatDay(date int64) string {
	return time.UnixMilli(date).UTC().Format("2006-01-02")
}

// parseBatch splits the --dates and --statuses lists, enforcing equal
// lengths.
func parseBatch(datesArg, statusesArg string) ([]int64, []uint64, error) {
	if datesArg == "" || statusesArg == "" {
		return nil, nil, fmt.Errorf("--dates and --statuses must be given together")
	}
	dateParts := strings.Split(datesArg, ",")
	statusParts := strings.Split(statusesArg, ",")
	if len(dateParts) != len(statusParts) {
		return nil, nil, fmt.Errorf("%d dates but %d statuses", len(dateParts), len(statusParts))
	}

	dates := make([]int64, len(dateParts))
	statuses := make([]uint64, len(statusParts))
	for i := range dateParts {
		d, err := parseDay(strings.TrimSpace(dateParts[i]))
		if err != nil {
			return nil, nil, err
		}
		dates[i] = d
		s, err := strconv.ParseUint(strings.TrimSpace(statusParts[i]), 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid status %q", statusParts[i])
		}
		statuses[i] = s
	}
	return dates, statuses, nil
}
