package ledger

import (
	"fmt"
	"time"

	"github.com/RachelLancelot/quantumhabit/internal/store"
	"github.com/RachelLancelot/quantumhabit/pkg/fhe"
	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

// CreateHabitParams carries the arguments of CreateHabit. The quality
// standard arrives as a client-encrypted input with its validity proof.
type CreateHabitParams struct {
	Name        string
	Description string
	TargetDays  uint32
	HabitType   types.HabitType
	Standard    fhe.InputCiphertext
}

// CreateHabit registers a new habit owned by the caller and returns its
// sequential id. The standard ciphertext is stored and the owner is granted
// decrypt rights on it in the same transaction.
func (l *Ledger) CreateHabit(caller types.Account, p CreateHabitParams) (uint64, error) {
	habit := &types.Habit{
		Owner:       caller,
		Name:        p.Name,
		Description: p.Description,
		TargetDays:  p.TargetDays,
		HabitType:   p.HabitType,
		CreatedAt:   time.Now().UTC(),
		IsActive:    true,
	}
	if err := habit.Validate(); err != nil {
		return 0, err
	}

	standard, err := l.engine.VerifyInput(p.Standard, caller)
	if err != nil {
		return 0, err
	}
	habit.CompletionStandard = standard.Handle

	err = l.store.Transact(func(q *store.Queries) error {
		id, err := q.NextID(store.CounterHabitID)
		if err != nil {
			return err
		}
		habit.ID = id
		if err := q.InsertHabit(habit); err != nil {
			return err
		}
		if err := q.PutCipher(standard.Handle, standard.Data); err != nil {
			return err
		}
		return l.grant(q, standard.Handle, caller)
	})
	if err != nil {
		return 0, fmt.Errorf("creating habit: %w", err)
	}

	// The notification carries the plaintext name, never the ciphertext.
	l.emit(types.Event{
		Kind:    types.EventHabitCreated,
		HabitID: habit.ID,
		Account: caller,
		Name:    habit.Name,
	})
	return habit.ID, nil
}

// UpdateHabit rewrites a habit's name, description, target and quality
// standard. Fails with ErrNotOwner for callers other than the owner and
// with ErrNotFound for missing or inactive habits.
func (l *Ledger) UpdateHabit(caller types.Account, habitID uint64, name, description string, targetDays uint32, standard fhe.InputCiphertext) error {
	if name == "" || targetDays == 0 {
		return types.ErrInvalidInput
	}
	ct, err := l.engine.VerifyInput(standard, caller)
	if err != nil {
		return err
	}

	err = l.store.Transact(func(q *store.Queries) error {
		habit, err := l.ownedHabit(q, caller, habitID)
		if err != nil {
			return err
		}
		habit.Name = name
		habit.Description = description
		habit.TargetDays = targetDays
		habit.CompletionStandard = ct.Handle
		if err := q.UpdateHabit(habit); err != nil {
			return err
		}
		if err := q.PutCipher(ct.Handle, ct.Data); err != nil {
			return err
		}
		return l.grant(q, ct.Handle, caller)
	})
	if err != nil {
		return err
	}

	l.emit(types.Event{Kind: types.EventHabitUpdated, HabitID: habitID, Account: caller})
	return nil
}

// DeleteHabit logically deletes a habit; records are retained. Deleting an
// already inactive habit succeeds with no side effect.
func (l *Ledger) DeleteHabit(caller types.Account, habitID uint64) error {
	deleted := false
	err := l.store.Transact(func(q *store.Queries) error {
		habit, err := q.GetHabit(habitID)
		if err != nil {
			return err
		}
		if habit.Owner != caller {
			return types.ErrNotOwner
		}
		if !habit.IsActive {
			return nil
		}
		habit.IsActive = false
		deleted = true
		return q.UpdateHabit(habit)
	})
	if err != nil {
		return err
	}

	if deleted {
		l.emit(types.Event{Kind: types.EventHabitDeleted, HabitID: habitID, Account: caller})
	}
	return nil
}

// GetHabit returns a habit by id, active or not. A point read: no state
// change, no new grants.
func (l *Ledger) GetHabit(habitID uint64) (*types.Habit, error) {
	q, err := l.store.Queries()
	if err != nil {
		return nil, err
	}
	return q.GetHabit(habitID)
}

// GetUserHabits returns every habit id ever created by the owner,
// regardless of active state.
func (l *Ledger) GetUserHabits(owner types.Account) ([]uint64, error) {
	q, err := l.store.Queries()
	if err != nil {
		return nil, err
	}
	return q.ListOwnerHabitIDs(owner)
}
