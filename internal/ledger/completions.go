package ledger

import (
	"errors"
	"fmt"

	"github.com/RachelLancelot/quantumhabit/internal/store"
	"github.com/RachelLancelot/quantumhabit/pkg/fhe"
	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

// RecordCompletion writes the completion status for one day bucket. Only
// the habit owner may write; dates must fall exactly on a day boundary. A
// second write to the same date overwrites the ciphertext. The owner is
// granted decrypt rights on the stored status in the same transaction.
func (l *Ledger) RecordCompletion(caller types.Account, habitID uint64, date int64, status fhe.InputCiphertext) error {
	if !types.DayAligned(date) {
		return fmt.Errorf("date %d not day aligned: %w", date, types.ErrInvalidInput)
	}
	ct, err := l.engine.VerifyInput(status, caller)
	if err != nil {
		return err
	}

	err = l.store.Transact(func(q *store.Queries) error {
		if _, err := l.ownedHabit(q, caller, habitID); err != nil {
			return err
		}
		return l.writeCompletion(q, caller, habitID, date, ct)
	})
	if err != nil {
		return err
	}

	l.emit(types.Event{Kind: types.EventCompletionRecorded, HabitID: habitID, Account: caller, Date: date})
	return nil
}

// BatchRecordCompletion records several day buckets as one atomic unit:
// either every record is written or none is. Array length mismatches and
// misaligned dates fail the whole batch with ErrInvalidInput.
func (l *Ledger) BatchRecordCompletion(caller types.Account, habitID uint64, dates []int64, statuses []fhe.InputCiphertext) error {
	if len(dates) != len(statuses) {
		return fmt.Errorf("%d dates for %d statuses: %w", len(dates), len(statuses), types.ErrInvalidInput)
	}

	cts := make([]fhe.Ciphertext, len(statuses))
	for i, date := range dates {
		if !types.DayAligned(date) {
			return fmt.Errorf("date %d not day aligned: %w", date, types.ErrInvalidInput)
		}
		ct, err := l.engine.VerifyInput(statuses[i], caller)
		if err != nil {
			return err
		}
		cts[i] = ct
	}

	err := l.store.Transact(func(q *store.Queries) error {
		if _, err := l.ownedHabit(q, caller, habitID); err != nil {
			return err
		}
		for i, date := range dates {
			if err := l.writeCompletion(q, caller, habitID, date, cts[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, date := range dates {
		l.emit(types.Event{Kind: types.EventCompletionRecorded, HabitID: habitID, Account: caller, Date: date})
	}
	return nil
}

// writeCompletion persists one record, its ciphertext and the owner grant.
func (l *Ledger) writeCompletion(q *store.Queries, caller types.Account, habitID uint64, date int64, ct fhe.Ciphertext) error {
	if err := q.UpsertCompletion(habitID, date, ct.Handle); err != nil {
		return err
	}
	if err := q.PutCipher(ct.Handle, ct.Data); err != nil {
		return err
	}
	return l.grant(q, ct.Handle, caller)
}

// GetCompletionDates returns the recorded day buckets for a habit in
// ascending order. A point read: no state change, no new grants.
func (l *Ledger) GetCompletionDates(habitID uint64) ([]int64, error) {
	q, err := l.store.Queries()
	if err != nil {
		return nil, err
	}
	if _, err := q.GetHabit(habitID); err != nil {
		return nil, err
	}
	return q.ListCompletionDates(habitID)
}

// GetCompletionRecord returns the record for (habitID, date). A day bucket
// that was never recorded yields Exists == false, not an error.
func (l *Ledger) GetCompletionRecord(habitID uint64, date int64) (*types.CompletionRecord, error) {
	q, err := l.store.Queries()
	if err != nil {
		return nil, err
	}
	if _, err := q.GetHabit(habitID); err != nil {
		return nil, err
	}
	rec, err := q.GetCompletion(habitID, date)
	if errors.Is(err, types.ErrNotFound) {
		return &types.CompletionRecord{HabitID: habitID, Date: date}, nil
	}
	return rec, err
}

// IsCompleted returns the stored status ciphertext for a day bucket, or a
// trivial zero when no record exists. This is a state-mutating read: in
// commit mode the caller is granted decrypt rights on the returned handle.
func (l *Ledger) IsCompleted(call Call, habitID uint64, date int64) (types.Handle, *Receipt, error) {
	if !types.DayAligned(date) {
		return types.Handle{}, nil, fmt.Errorf("date %d not day aligned: %w", date, types.ErrInvalidInput)
	}
	return l.evaluate(call, habitID, func(q *store.Queries, habit *types.Habit) (fhe.Ciphertext, error) {
		rec, err := q.GetCompletion(habitID, date)
		if errors.Is(err, types.ErrNotFound) {
			return l.engine.TrivialEncrypt(0, types.WidthUint8)
		}
		if err != nil {
			return fhe.Ciphertext{}, err
		}
		return l.loadCipher(q, rec.CompletionStatus)
	})
}
