package session

import (
	"context"
	"log"
	"time"
	"wheel_backend/internal/model"

	"github.com/google/uuid"
)

// Сколько ждем запись в журнал вращений
const spinLogTimeout = 5 * time.Second

// resolveSpin Колбэк окончания вращения. Устаревший колбэк
// (сессия удалена или начато новое прохождение) ничего не делает
func (s *serv) resolveSpin(sessionID string, epoch uint64, outcome model.Outcome, roll float64) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}

	sess.Lock()
	ctrl := s.machine.Controller(&sess.State)
	if !ctrl.ResolveSpinAt(epoch, outcome) {
		sess.Unlock()
		return
	}
	sess.Spin = nil

	// Для проигрыша запускаем симуляцию, ее конец тоже по таймеру
	if plan, ok := s.planner.SimulationPlan(outcome); ok {
		sess.Simulation = &plan
		s.schedule(sessionID, plan.Total, func() {
			s.completeSimulation(sessionID, epoch)
		})
	}
	snap := sess.Snapshot()
	sess.Unlock()

	s.record(sessionID, outcome, roll)
	s.broker.Publish(snap)
}

// completeSimulation Колбэк окончания симуляции
func (s *serv) completeSimulation(sessionID string, epoch uint64) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}

	sess.Lock()
	ctrl := s.machine.Controller(&sess.State)
	if !ctrl.SimulationCompleteAt(epoch) {
		sess.Unlock()
		return
	}
	sess.Simulation = nil
	snap := sess.Snapshot()
	sess.Unlock()

	s.broker.Publish(snap)
}

// record Учет вращения. Ошибка журнала только логируется, игрок ее не видит
func (s *serv) record(sessionID string, outcome model.Outcome, roll float64) {
	s.stats.Record(outcome)

	rec := model.SpinRecord{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Outcome:   outcome,
		Roll:      roll,
		CreatedAt: s.now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), spinLogTimeout)
	defer cancel()
	if err := s.spinLog.SaveSpin(ctx, rec); err != nil {
		log.Printf("failed to save spin %s: %v", rec.ID, err)
	}
}
