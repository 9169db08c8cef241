package types

import (
	"errors"
	"testing"
	"time"
)

func TestRewardClaim(t *testing.T) {
	t.Run("unclaimed to claimed", func(t *testing.T) {
		r := &Reward{HabitID: 1, RewardType: RewardMilestone, Threshold: 50}
		now := time.Now().UTC()
		if err := r.Claim(now); err != nil {
			t.Fatal(err)
		}
		if !r.Claimed || !r.ClaimedAt.Equal(now) {
			t.Fatalf("claim not recorded: %+v", r)
		}
	})

	t.Run("claimed is terminal", func(t *testing.T) {
		r := &Reward{Claimed: true, ClaimedAt: time.Now()}
		if err := r.Claim(time.Now()); !errors.Is(err, ErrAlreadyClaimed) {
			t.Fatalf("expected ErrAlreadyClaimed, got %v", err)
		}
	})
}

func TestParseRewardType(t *testing.T) {
	for _, want := range []RewardType{RewardMilestone, RewardConsecutive} {
		got, err := ParseRewardType(want.String())
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("round trip mismatch: %v != %v", got, want)
		}
	}
	if _, err := ParseRewardType("jackpot"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
