package service

import (
	"context"
	"time"
	"wheel_backend/internal/model"
)

type GameService interface {
	State(ctx context.Context, sessionID string) (model.Snapshot, error)
	Start(ctx context.Context, sessionID string) (model.Snapshot, error)
	ConfirmWarning(ctx context.Context, sessionID string) (model.Snapshot, error)
	CancelWarnings(ctx context.Context, sessionID string) (model.Snapshot, error)
	Spin(ctx context.Context, sessionID string) (model.Snapshot, error)
	BackToMenu(ctx context.Context, sessionID string) (model.Snapshot, error)
	Restart(ctx context.Context, sessionID string) (model.Snapshot, error)
	Subscribe(ctx context.Context, sessionID string) (<-chan model.Snapshot, func(), error)
	Stats(ctx context.Context) (*model.StatsReport, error)
	EvictIdle(now time.Time) int
}
