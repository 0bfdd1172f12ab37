package repository

import (
	"context"
	"time"
	"wheel_backend/internal/model"
)

type SessionRepository interface {
	GetOrCreate(id string, now time.Time) *model.GameSession
	Get(id string) (*model.GameSession, bool)
	Delete(id string)
	IdleSince(before time.Time) []string
	Count() int
}

type StatsRepository interface {
	Record(outcome model.Outcome)
	Stats() model.OutcomeStats
}

type SpinLogRepository interface {
	SaveSpin(ctx context.Context, rec model.SpinRecord) error
	Totals(ctx context.Context) (map[model.Outcome]int, error)
}
