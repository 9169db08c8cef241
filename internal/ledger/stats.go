package ledger

import (
	"github.com/RachelLancelot/quantumhabit/internal/store"
	"github.com/RachelLancelot/quantumhabit/pkg/fhe"
	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

// HabitStats bundles the four aggregate handles for a habit.
type HabitStats struct {
	CompletedDays        types.Handle `json:"completed_days"`
	ConsecutiveDays      types.Handle `json:"consecutive_days"`
	CompletionRate       types.Handle `json:"completion_rate"`
	CompletionPercentage types.Handle `json:"completion_percentage"`
}

// evaluate runs one aggregation under the two-phase call protocol. In
// commit mode the produced ciphertext is persisted and the caller granted
// decrypt rights, all in one transaction; the handle itself is reported on
// the receipt only. In simulate mode nothing persists and the handle is
// returned. fn must be a deterministic function of committed state.
func (l *Ledger) evaluate(call Call, habitID uint64, fn func(q *store.Queries, habit *types.Habit) (fhe.Ciphertext, error)) (types.Handle, *Receipt, error) {
	switch call.Mode {
	case Commit:
		var receipt *Receipt
		err := l.store.Transact(func(q *store.Queries) error {
			habit, err := l.ownedHabit(q, call.Caller, habitID)
			if err != nil {
				return err
			}
			ct, err := fn(q, habit)
			if err != nil {
				return err
			}
			receipt, err = l.authorize(q, call.Caller, ct)
			return err
		})
		if err != nil {
			return types.Handle{}, nil, err
		}
		return types.Handle{}, receipt, nil

	case Simulate:
		q, err := l.store.Queries()
		if err != nil {
			return types.Handle{}, nil, err
		}
		habit, err := l.ownedHabit(q, call.Caller, habitID)
		if err != nil {
			return types.Handle{}, nil, err
		}
		ct, err := fn(q, habit)
		if err != nil {
			return types.Handle{}, nil, err
		}
		return ct.Handle, nil, nil

	default:
		return types.Handle{}, nil, types.ErrInvalidInput
	}
}

// CalculateCompletedDays derives the encrypted count of recorded days with
// a nonzero completion indicator.
func (l *Ledger) CalculateCompletedDays(call Call, habitID uint64) (types.Handle, *Receipt, error) {
	return l.evaluate(call, habitID, l.completedDays)
}

// CalculateConsecutiveDays derives the encrypted length of the streak
// ending at the most recent recorded day. A calendar gap in the record
// dates terminates the run; a missing today does not, the streak is
// anchored at the newest record.
func (l *Ledger) CalculateConsecutiveDays(call Call, habitID uint64) (types.Handle, *Receipt, error) {
	return l.evaluate(call, habitID, l.consecutiveDays)
}

// CalculateCompletionPercentage derives the encrypted percentage of the
// habit's target reached: floor(completedDays * 100 / targetDays), clamped
// to 100, as an 8-bit value.
func (l *Ledger) CalculateCompletionPercentage(call Call, habitID uint64) (types.Handle, *Receipt, error) {
	return l.evaluate(call, habitID, l.completionPercentage)
}

// CalculateCompletionRate derives the encrypted share of recorded days
// whose quality met the habit's encrypted standard:
// floor(passes * 100 / recordedDays), clamped to 100. Zero when nothing
// has been recorded.
func (l *Ledger) CalculateCompletionRate(call Call, habitID uint64) (types.Handle, *Receipt, error) {
	return l.evaluate(call, habitID, l.completionRate)
}

// GetHabitStats computes all four aggregates fresh. In commit mode every
// handle is authorized for the caller in one transaction.
func (l *Ledger) GetHabitStats(call Call, habitID uint64) (*HabitStats, *Receipt, error) {
	compute := func(q *store.Queries, habit *types.Habit) ([4]fhe.Ciphertext, error) {
		var out [4]fhe.Ciphertext
		var err error
		if out[0], err = l.completedDays(q, habit); err != nil {
			return out, err
		}
		if out[1], err = l.consecutiveDays(q, habit); err != nil {
			return out, err
		}
		if out[2], err = l.completionRate(q, habit); err != nil {
			return out, err
		}
		if out[3], err = l.completionPercentage(q, habit); err != nil {
			return out, err
		}
		return out, nil
	}

	switch call.Mode {
	case Commit:
		var receipt *Receipt
		err := l.store.Transact(func(q *store.Queries) error {
			habit, err := l.ownedHabit(q, call.Caller, habitID)
			if err != nil {
				return err
			}
			cts, err := compute(q, habit)
			if err != nil {
				return err
			}
			receipt, err = l.authorize(q, call.Caller, cts[:]...)
			return err
		})
		if err != nil {
			return nil, nil, err
		}
		return nil, receipt, nil

	case Simulate:
		q, err := l.store.Queries()
		if err != nil {
			return nil, nil, err
		}
		habit, err := l.ownedHabit(q, call.Caller, habitID)
		if err != nil {
			return nil, nil, err
		}
		cts, err := compute(q, habit)
		if err != nil {
			return nil, nil, err
		}
		return &HabitStats{
			CompletedDays:        cts[0].Handle,
			ConsecutiveDays:      cts[1].Handle,
			CompletionRate:       cts[2].Handle,
			CompletionPercentage: cts[3].Handle,
		}, nil, nil

	default:
		return nil, nil, types.ErrInvalidInput
	}
}

// completedDays sums the completion indicators of every record, entirely
// in ciphertext space.
func (l *Ledger) completedDays(q *store.Queries, habit *types.Habit) (fhe.Ciphertext, error) {
	records, err := q.ListCompletions(habit.ID)
	if err != nil {
		return fhe.Ciphertext{}, err
	}

	count, err := l.engine.TrivialEncrypt(0, types.WidthUint32)
	if err != nil {
		return fhe.Ciphertext{}, err
	}
	zero8, err := l.engine.TrivialEncrypt(0, types.WidthUint8)
	if err != nil {
		return fhe.Ciphertext{}, err
	}

	for _, rec := range records {
		status, err := l.loadCipher(q, rec.CompletionStatus)
		if err != nil {
			return fhe.Ciphertext{}, err
		}
		indicator, err := l.engine.Ne(status, zero8)
		if err != nil {
			return fhe.Ciphertext{}, err
		}
		wide, err := l.engine.Cast(indicator, types.WidthUint32)
		if err != nil {
			return fhe.Ciphertext{}, err
		}
		if count, err = l.engine.Add(count, wide); err != nil {
			return fhe.Ciphertext{}, err
		}
	}
	return count, nil
}

// consecutiveDays walks records most-recent-first. The encrypted carry
// stays 1 while every visited day has a nonzero indicator; a plaintext
// date gap ends the walk, an encrypted zero status zeroes the carry for
// the rest of the run.
func (l *Ledger) consecutiveDays(q *store.Queries, habit *types.Habit) (fhe.Ciphertext, error) {
	records, err := q.ListCompletions(habit.ID)
	if err != nil {
		return fhe.Ciphertext{}, err
	}

	streak, err := l.engine.TrivialEncrypt(0, types.WidthUint32)
	if err != nil {
		return fhe.Ciphertext{}, err
	}
	if len(records) == 0 {
		return streak, nil
	}

	carry, err := l.engine.TrivialEncrypt(1, types.WidthUint8)
	if err != nil {
		return fhe.Ciphertext{}, err
	}
	zero8, err := l.engine.TrivialEncrypt(0, types.WidthUint8)
	if err != nil {
		return fhe.Ciphertext{}, err
	}

	expected := records[0].Date
	for _, rec := range records {
		if rec.Date != expected {
			break
		}
		status, err := l.loadCipher(q, rec.CompletionStatus)
		if err != nil {
			return fhe.Ciphertext{}, err
		}
		indicator, err := l.engine.Ne(status, zero8)
		if err != nil {
			return fhe.Ciphertext{}, err
		}
		if carry, err = l.engine.And(carry, indicator); err != nil {
			return fhe.Ciphertext{}, err
		}
		wide, err := l.engine.Cast(carry, types.WidthUint32)
		if err != nil {
			return fhe.Ciphertext{}, err
		}
		if streak, err = l.engine.Add(streak, wide); err != nil {
			return fhe.Ciphertext{}, err
		}
		expected -= types.DayMillis
	}
	return streak, nil
}

// completionPercentage scales completedDays against the plaintext target
// and clamps to 100.
func (l *Ledger) completionPercentage(q *store.Queries, habit *types.Habit) (fhe.Ciphertext, error) {
	days, err := l.completedDays(q, habit)
	if err != nil {
		return fhe.Ciphertext{}, err
	}
	return l.percentOf(days, uint64(habit.TargetDays))
}

// completionRate counts records whose status meets the encrypted quality
// standard and scales against the number of recorded days.
func (l *Ledger) completionRate(q *store.Queries, habit *types.Habit) (fhe.Ciphertext, error) {
	records, err := q.ListCompletions(habit.ID)
	if err != nil {
		return fhe.Ciphertext{}, err
	}
	if len(records) == 0 {
		zero, err := l.engine.TrivialEncrypt(0, types.WidthUint8)
		if err != nil {
			return fhe.Ciphertext{}, err
		}
		return zero, nil
	}

	standard, err := l.loadCipher(q, habit.CompletionStandard)
	if err != nil {
		return fhe.Ciphertext{}, err
	}
	passes, err := l.engine.TrivialEncrypt(0, types.WidthUint32)
	if err != nil {
		return fhe.Ciphertext{}, err
	}

	for _, rec := range records {
		status, err := l.loadCipher(q, rec.CompletionStatus)
		if err != nil {
			return fhe.Ciphertext{}, err
		}
		pass, err := l.engine.Ge(status, standard)
		if err != nil {
			return fhe.Ciphertext{}, err
		}
		wide, err := l.engine.Cast(pass, types.WidthUint32)
		if err != nil {
			return fhe.Ciphertext{}, err
		}
		if passes, err = l.engine.Add(passes, wide); err != nil {
			return fhe.Ciphertext{}, err
		}
	}
	return l.percentOf(passes, uint64(len(records)))
}

// percentOf computes clamp(numerator * 100 / denominator, 0, 100) as an
// 8-bit ciphertext, floor division.
func (l *Ledger) percentOf(numerator fhe.Ciphertext, denominator uint64) (fhe.Ciphertext, error) {
	scaled, err := l.engine.MulPlain(numerator, 100)
	if err != nil {
		return fhe.Ciphertext{}, err
	}
	pct, err := l.engine.DivPlain(scaled, denominator)
	if err != nil {
		return fhe.Ciphertext{}, err
	}
	cap100, err := l.engine.TrivialEncrypt(100, types.WidthUint32)
	if err != nil {
		return fhe.Ciphertext{}, err
	}
	clamped, err := l.engine.Min(pct, cap100)
	if err != nil {
		return fhe.Ciphertext{}, err
	}
	return l.engine.Cast(clamped, types.WidthUint8)
}
