package spin_log_repo

import (
	"context"
	"maps"
	"sync"
	"wheel_backend/internal/model"
	"wheel_backend/internal/repository"
)

// Сколько последних вращений хранит журнал в памяти
const defaultMemoryCapacity = 1000

// MemoryRepo Журнал без БД, используется когда PG_DSN не задан
type MemoryRepo struct {
	mtx      sync.RWMutex
	capacity int
	spins    []model.SpinRecord
	totals   map[model.Outcome]int
}

func NewMemorySpinLogRepository() repository.SpinLogRepository {
	return newMemory(defaultMemoryCapacity)
}

func newMemory(capacity int) *MemoryRepo {
	return &MemoryRepo{
		capacity: capacity,
		totals:   make(map[model.Outcome]int, len(model.Outcomes)),
	}
}

func (r *MemoryRepo) SaveSpin(_ context.Context, rec model.SpinRecord) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.spins = append(r.spins, rec)
	// Поддерживаем размер окна
	if len(r.spins) > r.capacity {
		r.spins = r.spins[1:]
	}
	r.totals[rec.Outcome]++
	return nil
}

func (r *MemoryRepo) Totals(_ context.Context) (map[model.Outcome]int, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return maps.Clone(r.totals), nil
}

// Recent Последние записи журнала, новые в конце
func (r *MemoryRepo) Recent() []model.SpinRecord {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return append([]model.SpinRecord(nil), r.spins...)
}
