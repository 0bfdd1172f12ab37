package stats_repo

import (
	"maps"
	"sync"
	"wheel_backend/internal/model"
	"wheel_backend/internal/repository"
)

// Статистика исходов с момента запуска процесса
type StatsRepo struct {
	mtx   sync.RWMutex
	state model.OutcomeStats
}

// NewStatsRepository Конструктор с пустыми счетчиками
func NewStatsRepository() repository.StatsRepository {
	return &StatsRepo{
		state: model.OutcomeStats{
			Counts: make(map[model.Outcome]int, len(model.Outcomes)),
		},
	}
}

// Record Учесть один исход
func (r *StatsRepo) Record(outcome model.Outcome) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.state.TotalSpins++
	r.state.Counts[outcome]++
}

// Stats Копия текущих счетчиков
func (r *StatsRepo) Stats() model.OutcomeStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	return model.OutcomeStats{
		TotalSpins: r.state.TotalSpins,
		Counts:     maps.Clone(r.state.Counts),
	}
}
