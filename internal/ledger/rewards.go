package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/RachelLancelot/quantumhabit/internal/store"
	"github.com/RachelLancelot/quantumhabit/pkg/fhe"
	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

// Reward amount policy: amounts are proportional to the threshold so that
// harder goals pay more. The amount a claimer actually receives is gated
// homomorphically by the threshold comparison, so a claim whose encrypted
// statistics fall short pays an encrypted zero.
const (
	milestoneUnit   = 10 // units per milestone percent point
	consecutiveUnit = 20 // units per streak day
)

// RewardQuote is one entry of a reward eligibility probe. Amount carries
// the quoted ciphertext handle in simulate mode and stays zero in commit
// mode, where the handle appears on the receipt instead.
type RewardQuote struct {
	Eligible bool         `json:"eligible"`
	Amount   types.Handle `json:"amount"`
}

// CheckMilestoneReward probes eligibility for a completion-percentage
// threshold. The eligible flag derives from plaintext ledger facts (the
// recorded day buckets); the amount ciphertext is gated by the encrypted
// percentage itself. Checks are idempotent: no Reward record is created.
func (l *Ledger) CheckMilestoneReward(call Call, habitID uint64, milestonePercent uint32) (RewardQuote, *Receipt, error) {
	if err := validThreshold(types.RewardMilestone, milestonePercent); err != nil {
		return RewardQuote{}, nil, err
	}
	return l.checkReward(call, habitID, types.RewardMilestone, milestonePercent)
}

// CheckConsecutiveReward probes eligibility for a streak threshold.
func (l *Ledger) CheckConsecutiveReward(call Call, habitID uint64, consecutiveDays uint32) (RewardQuote, *Receipt, error) {
	if err := validThreshold(types.RewardConsecutive, consecutiveDays); err != nil {
		return RewardQuote{}, nil, err
	}
	return l.checkReward(call, habitID, types.RewardConsecutive, consecutiveDays)
}

// CheckMultipleRewards probes a batch of thresholds, preserving input
// order. Ineligible thresholds still yield a quote with a zero-amount
// ciphertext, so the result slices always match the input lengths.
func (l *Ledger) CheckMultipleRewards(call Call, habitID uint64, milestonePercents, consecutiveTargets []uint32) ([]RewardQuote, []RewardQuote, *Receipt, error) {
	for _, p := range milestonePercents {
		if err := validThreshold(types.RewardMilestone, p); err != nil {
			return nil, nil, nil, err
		}
	}
	for _, d := range consecutiveTargets {
		if err := validThreshold(types.RewardConsecutive, d); err != nil {
			return nil, nil, nil, err
		}
	}

	milestones := make([]RewardQuote, len(milestonePercents))
	consecutives := make([]RewardQuote, len(consecutiveTargets))

	probe := func(q *store.Queries, habit *types.Habit) ([]fhe.Ciphertext, error) {
		cts := make([]fhe.Ciphertext, 0, len(milestonePercents)+len(consecutiveTargets))
		for i, p := range milestonePercents {
			eligible, ct, err := l.rewardProbe(q, habit, types.RewardMilestone, p)
			if err != nil {
				return nil, err
			}
			milestones[i] = RewardQuote{Eligible: eligible}
			cts = append(cts, ct)
		}
		for i, d := range consecutiveTargets {
			eligible, ct, err := l.rewardProbe(q, habit, types.RewardConsecutive, d)
			if err != nil {
				return nil, err
			}
			consecutives[i] = RewardQuote{Eligible: eligible}
			cts = append(cts, ct)
		}
		return cts, nil
	}

	switch call.Mode {
	case Commit:
		var receipt *Receipt
		err := l.store.Transact(func(q *store.Queries) error {
			habit, err := l.ownedHabit(q, call.Caller, habitID)
			if err != nil {
				return err
			}
			cts, err := probe(q, habit)
			if err != nil {
				return err
			}
			receipt, err = l.authorize(q, call.Caller, cts...)
			return err
		})
		if err != nil {
			return nil, nil, nil, err
		}
		return milestones, consecutives, receipt, nil

	case Simulate:
		q, err := l.store.Queries()
		if err != nil {
			return nil, nil, nil, err
		}
		habit, err := l.ownedHabit(q, call.Caller, habitID)
		if err != nil {
			return nil, nil, nil, err
		}
		cts, err := probe(q, habit)
		if err != nil {
			return nil, nil, nil, err
		}
		for i := range milestones {
			milestones[i].Amount = cts[i].Handle
		}
		for i := range consecutives {
			consecutives[i].Amount = cts[len(milestones)+i].Handle
		}
		return milestones, consecutives, nil, nil

	default:
		return nil, nil, nil, types.ErrInvalidInput
	}
}

// ClaimReward claims the reward for a (habit, type, threshold) triple. At
// most one claim per triple ever succeeds: a repeat attempt fails with
// ErrAlreadyClaimed, an attempt below the plaintext eligibility bar with
// ErrNotEligible. On success the reward record, its amount ciphertext and
// the caller's decrypt grant commit atomically.
func (l *Ledger) ClaimReward(caller types.Account, habitID uint64, rewardType types.RewardType, threshold uint32) (*types.Reward, error) {
	if err := validThreshold(rewardType, threshold); err != nil {
		return nil, err
	}

	var reward *types.Reward
	err := l.store.Transact(func(q *store.Queries) error {
		habit, err := l.ownedHabit(q, caller, habitID)
		if err != nil {
			return err
		}

		existing, err := q.GetReward(habitID, rewardType, threshold)
		if err == nil && existing.Claimed {
			return types.ErrAlreadyClaimed
		}
		if err != nil && !errors.Is(err, types.ErrNotFound) {
			return err
		}

		eligible, amount, err := l.rewardProbe(q, habit, rewardType, threshold)
		if err != nil {
			return err
		}
		if !eligible {
			return types.ErrNotEligible
		}

		id, err := q.NextID(store.CounterRewardID)
		if err != nil {
			return err
		}
		reward = &types.Reward{
			ID:           id,
			HabitID:      habitID,
			RewardType:   rewardType,
			Threshold:    threshold,
			RewardAmount: amount.Handle,
		}
		if err := reward.Claim(time.Now().UTC()); err != nil {
			return err
		}
		if err := q.InsertReward(reward); err != nil {
			return err
		}
		if err := q.PutCipher(amount.Handle, amount.Data); err != nil {
			return err
		}
		return l.grant(q, amount.Handle, caller)
	})
	if err != nil {
		return nil, err
	}

	l.emit(types.Event{Kind: types.EventRewardClaimed, HabitID: habitID, Account: caller, RewardID: reward.ID})
	return reward, nil
}

// GetUserRewards returns the reward records on the owner's habits:
// plaintext metadata plus the opaque amount handles. A point read: no
// state change, no new grants.
func (l *Ledger) GetUserRewards(owner types.Account) ([]types.Reward, error) {
	q, err := l.store.Queries()
	if err != nil {
		return nil, err
	}
	return q.ListOwnerRewards(owner)
}

// checkReward runs one eligibility probe under the two-phase protocol.
func (l *Ledger) checkReward(call Call, habitID uint64, rewardType types.RewardType, threshold uint32) (RewardQuote, *Receipt, error) {
	quote := RewardQuote{}
	handle, receipt, err := l.evaluate(call, habitID, func(q *store.Queries, habit *types.Habit) (fhe.Ciphertext, error) {
		eligible, ct, err := l.rewardProbe(q, habit, rewardType, threshold)
		if err != nil {
			return fhe.Ciphertext{}, err
		}
		quote.Eligible = eligible
		return ct, nil
	})
	if err != nil {
		return RewardQuote{}, nil, err
	}
	quote.Amount = handle
	return quote, receipt, nil
}

// rewardProbe derives the plaintext eligibility flag and the gated amount
// ciphertext for one threshold. The flag uses only public ledger facts
// (which day buckets exist); the protected statistics enter the amount via
// a homomorphic select, so the flag can overstate what the ciphertext
// comparison will actually pay.
func (l *Ledger) rewardProbe(q *store.Queries, habit *types.Habit, rewardType types.RewardType, threshold uint32) (bool, fhe.Ciphertext, error) {
	dates, err := q.ListCompletionDates(habit.ID)
	if err != nil {
		return false, fhe.Ciphertext{}, err
	}

	var (
		eligible bool
		met      fhe.Ciphertext
		payout   uint64
	)
	switch rewardType {
	case types.RewardMilestone:
		eligible = uint64(len(dates))*100 >= uint64(threshold)*uint64(habit.TargetDays)
		payout = uint64(threshold) * milestoneUnit

		pct, err := l.completionPercentage(q, habit)
		if err != nil {
			return false, fhe.Ciphertext{}, err
		}
		bar, err := l.engine.TrivialEncrypt(uint64(threshold), types.WidthUint8)
		if err != nil {
			return false, fhe.Ciphertext{}, err
		}
		if met, err = l.engine.Ge(pct, bar); err != nil {
			return false, fhe.Ciphertext{}, err
		}

	case types.RewardConsecutive:
		eligible = longestRun(dates) >= int(threshold)
		payout = uint64(threshold) * consecutiveUnit

		streak, err := l.consecutiveDays(q, habit)
		if err != nil {
			return false, fhe.Ciphertext{}, err
		}
		bar, err := l.engine.TrivialEncrypt(uint64(threshold), types.WidthUint32)
		if err != nil {
			return false, fhe.Ciphertext{}, err
		}
		if met, err = l.engine.Ge(streak, bar); err != nil {
			return false, fhe.Ciphertext{}, err
		}

	default:
		return false, fhe.Ciphertext{}, types.ErrInvalidInput
	}

	full, err := l.engine.TrivialEncrypt(payout, types.WidthUint32)
	if err != nil {
		return false, fhe.Ciphertext{}, err
	}
	nothing, err := l.engine.TrivialEncrypt(0, types.WidthUint32)
	if err != nil {
		return false, fhe.Ciphertext{}, err
	}
	amount, err := l.engine.Select(met, full, nothing)
	if err != nil {
		return false, fhe.Ciphertext{}, err
	}
	return eligible, amount, nil
}

// longestRun returns the length of the longest consecutive-day run in an
// ascending date list.
func longestRun(dates []int64) int {
	best, run := 0, 0
	for i, d := range dates {
		if i > 0 && d == dates[i-1]+types.DayMillis {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// validThreshold checks the plaintext threshold range for a reward type.
func validThreshold(rewardType types.RewardType, threshold uint32) error {
	switch rewardType {
	case types.RewardMilestone:
		if threshold == 0 || threshold > 100 {
			return fmt.Errorf("milestone percent %d out of range: %w", threshold, types.ErrInvalidInput)
		}
	case types.RewardConsecutive:
		if threshold == 0 {
			return fmt.Errorf("consecutive target must be positive: %w", types.ErrInvalidInput)
		}
	default:
		return types.ErrInvalidInput
	}
	return nil
}
