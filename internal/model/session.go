package model

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionState Состояние одной игровой сессии
type SessionState struct {
	Phase        GamePhase
	Warnings     []string // Пусто, если фаза не warnings
	WarningIndex int
	LastOutcome  Outcome // Последний проигрышный исход, нужен для экрана reveal
	Spinning     bool
	// Epoch Номер прохождения. Увеличивается при каждом возврате в меню,
	// отложенные колбэки с устаревшим номером игнорируются
	Epoch uint64
}

// InitialState Начальное состояние сессии
func InitialState() SessionState {
	return SessionState{Phase: PhaseMenu}
}

// GameSession Сессия браузера, хранится в памяти
type GameSession struct {
	ID         string
	State      SessionState
	Spin       *SpinPlan       // План текущего вращения
	Simulation *SimulationPlan // План текущей симуляции
	CreatedAt  time.Time
	LastSeen   time.Time
	mu         sync.Mutex
}

// NewGameSession Создать сессию в фазе menu
func NewGameSession(id string, now time.Time) *GameSession {
	return &GameSession{
		ID:        id,
		State:     InitialState(),
		CreatedAt: now,
		LastSeen:  now,
	}
}

// Lock Захватить сессию
func (s *GameSession) Lock() {
	s.mu.Lock()
}

// Unlock Освободить сессию
func (s *GameSession) Unlock() {
	s.mu.Unlock()
}

// Snapshot Копия состояния для отображения (вызывать под блокировкой)
func (s *GameSession) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID:    s.ID,
		Phase:        s.State.Phase,
		WarningIndex: s.State.WarningIndex,
		WarningTotal: len(s.State.Warnings),
		LastOutcome:  s.State.LastOutcome,
		Spinning:     s.State.Spinning,
		Epoch:        s.State.Epoch,
	}
	if s.State.Phase == PhaseWarnings && s.State.WarningIndex < len(s.State.Warnings) {
		snap.Warning = s.State.Warnings[s.State.WarningIndex]
	}
	if s.Spin != nil {
		plan := *s.Spin
		snap.Spin = &plan
	}
	if s.Simulation != nil {
		plan := *s.Simulation
		snap.Simulation = &plan
	}
	return snap
}

// Snapshot То, что видит слой отображения
type Snapshot struct {
	SessionID    string
	Phase        GamePhase
	Warning      string
	WarningIndex int
	WarningTotal int
	LastOutcome  Outcome
	Spinning     bool
	Epoch        uint64
	Spin         *SpinPlan
	Simulation   *SimulationPlan
}

// SessionClaims Claims подписанной cookie сессии
type SessionClaims struct {
	jwt.RegisteredClaims
}
