package session

import (
	"context"
	"fmt"
	"log"
	"time"
	"wheel_backend/internal/model"
	"wheel_backend/internal/service"
)

// EvictIdle Удалить сессии без активности дольше idleTTL.
// Их таймеры отменяются, подписчики отключаются
func (s *serv) EvictIdle(now time.Time) int {
	if s.idleTTL <= 0 {
		return 0
	}

	ids := s.sessions.IdleSince(now.Add(-s.idleTTL))
	for _, id := range ids {
		s.cancelTimers(id)
		s.broker.Close(id)
		s.sessions.Delete(id)
	}
	if len(ids) > 0 {
		log.Printf("evicted %d idle sessions", len(ids))
	}
	return len(ids)
}

// Stats Статистика процесса и журнала
func (s *serv) Stats(ctx context.Context) (*model.StatsReport, error) {
	allTime, err := s.spinLog.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("spin log totals: %w", err)
	}

	return &model.StatsReport{
		Process:  s.stats.Stats(),
		AllTime:  allTime,
		Table:    s.selector.Table(),
		Sessions: s.sessions.Count(),
	}, nil
}

// RunJanitor Периодически чистит простаивающие сессии, пока жив ctx
func RunJanitor(ctx context.Context, serv service.GameService, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			serv.EvictIdle(now)
		}
	}
}
