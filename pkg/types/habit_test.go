package types

import (
	"errors"
	"testing"
)

func TestHabitValidate(t *testing.T) {
	t.Run("valid habit", func(t *testing.T) {
		h := &Habit{Name: "Daily Exercise", TargetDays: 30, HabitType: HabitDaily}
		if err := h.Validate(); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		h := &Habit{TargetDays: 30}
		if !errors.Is(h.Validate(), ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", h.Validate())
		}
	})

	t.Run("zero target days rejected", func(t *testing.T) {
		h := &Habit{Name: "Read", TargetDays: 0}
		if !errors.Is(h.Validate(), ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", h.Validate())
		}
	})

	t.Run("unknown habit type rejected", func(t *testing.T) {
		h := &Habit{Name: "Read", TargetDays: 7, HabitType: HabitType(9)}
		if !errors.Is(h.Validate(), ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", h.Validate())
		}
	})
}

func TestParseHabitType(t *testing.T) {
	for _, want := range []HabitType{HabitDaily, HabitWeekly, HabitCustom} {
		got, err := ParseHabitType(want.String())
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("round trip mismatch: %v != %v", got, want)
		}
	}

	if _, err := ParseHabitType("hourly"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
