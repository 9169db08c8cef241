package ledger

import (
	"time"

	"go.uber.org/zap"

	"github.com/RachelLancelot/quantumhabit/pkg/types"
)

// Sink receives plaintext notifications after a commit succeeds.
type Sink interface {
	Emit(types.Event)
}

// emit publishes an event to the logger and the optional sink. Events carry
// plaintext identifying fields only; a protected value never appears here.
func (l *Ledger) emit(ev types.Event) {
	ev.At = time.Now().UTC()

	fields := []zap.Field{
		zap.String("kind", ev.Kind),
		zap.Uint64("habit_id", ev.HabitID),
		zap.String("account", string(ev.Account)),
	}
	if ev.Name != "" {
		fields = append(fields, zap.String("name", ev.Name))
	}
	if ev.Date != 0 {
		fields = append(fields, zap.Int64("date", ev.Date))
	}
	if ev.Kind == types.EventRewardClaimed {
		fields = append(fields, zap.Uint64("reward_id", ev.RewardID))
	}
	l.log.Info("ledger event", fields...)

	if l.sink != nil {
		l.sink.Emit(ev)
	}
}
