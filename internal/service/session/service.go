package session

import (
	"sync"
	"time"
	"wheel_backend/internal/repository"
	"wheel_backend/internal/service"
	"wheel_backend/internal/service/events"
	"wheel_backend/internal/service/game"
	"wheel_backend/internal/service/simulation"
	"wheel_backend/internal/service/wheel"
)

// Timer Отменяемая отложенная задача
type Timer interface {
	Stop() bool
}

// Scheduler Планировщик отложенных задач
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Deps Зависимости сервиса
type Deps struct {
	Sessions  repository.SessionRepository
	Stats     repository.StatsRepository
	SpinLog   repository.SpinLogRepository
	Machine   *game.Machine
	Selector  *wheel.Selector
	Planner   *simulation.Planner
	Broker    *events.Broker
	Scheduler Scheduler        // По умолчанию time.AfterFunc
	IdleTTL   time.Duration    // Через сколько простоя сессия удаляется
	Now       func() time.Time // По умолчанию time.Now
}

type serv struct {
	sessions  repository.SessionRepository
	stats     repository.StatsRepository
	spinLog   repository.SpinLogRepository
	machine   *game.Machine
	selector  *wheel.Selector
	planner   *simulation.Planner
	broker    *events.Broker
	scheduler Scheduler
	idleTTL   time.Duration
	now       func() time.Time

	// Отложенные задачи по сессиям
	tmu    sync.Mutex
	timers map[string][]Timer
}

// NewGameService Сервис игровых сессий
func NewGameService(deps Deps) service.GameService {
	s := &serv{
		sessions:  deps.Sessions,
		stats:     deps.Stats,
		spinLog:   deps.SpinLog,
		machine:   deps.Machine,
		selector:  deps.Selector,
		planner:   deps.Planner,
		broker:    deps.Broker,
		scheduler: deps.Scheduler,
		idleTTL:   deps.IdleTTL,
		now:       deps.Now,
		timers:    make(map[string][]Timer),
	}
	if s.scheduler == nil {
		s.scheduler = realScheduler{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// schedule Запланировать задачу сессии (вызывать под блокировкой сессии)
func (s *serv) schedule(sessionID string, d time.Duration, f func()) {
	s.tmu.Lock()
	defer s.tmu.Unlock()
	s.timers[sessionID] = append(s.timers[sessionID], s.scheduler.AfterFunc(d, f))
}

// cancelTimers Остановить все задачи сессии. Колбэк, который уже
// стартовал, сам отбросит себя по устаревшему epoch
func (s *serv) cancelTimers(sessionID string) {
	s.tmu.Lock()
	defer s.tmu.Unlock()
	for _, t := range s.timers[sessionID] {
		t.Stop()
	}
	delete(s.timers, sessionID)
}

// pendingTimers Число запланированных задач сессии
func (s *serv) pendingTimers(sessionID string) int {
	s.tmu.Lock()
	defer s.tmu.Unlock()
	return len(s.timers[sessionID])
}
