package session

import (
	"context"
	"fmt"
	"wheel_backend/internal/model"
	"wheel_backend/internal/service/game"
)

// action Событие над сессией под ее блокировкой
type action func(sess *model.GameSession, ctrl *game.Controller) error

// apply Выполнить событие, при смене прохождения отменить таймеры
// и разослать новый снимок подписчикам
func (s *serv) apply(name, sessionID string, fn action) (model.Snapshot, error) {
	sess := s.sessions.GetOrCreate(sessionID, s.now())

	sess.Lock()
	epoch := sess.State.Epoch
	ctrl := s.machine.Controller(&sess.State)
	if err := fn(sess, ctrl); err != nil {
		sess.Unlock()
		return model.Snapshot{}, fmt.Errorf("%s: %w", name, err)
	}
	if sess.State.Epoch != epoch {
		s.cancelTimers(sessionID)
		sess.Spin = nil
		sess.Simulation = nil
	}
	snap := sess.Snapshot()
	sess.Unlock()

	s.broker.Publish(snap)
	return snap, nil
}

func (s *serv) State(_ context.Context, sessionID string) (model.Snapshot, error) {
	sess := s.sessions.GetOrCreate(sessionID, s.now())
	sess.Lock()
	defer sess.Unlock()
	return sess.Snapshot(), nil
}

func (s *serv) Start(_ context.Context, sessionID string) (model.Snapshot, error) {
	return s.apply("start", sessionID, func(_ *model.GameSession, ctrl *game.Controller) error {
		return ctrl.Start()
	})
}

func (s *serv) ConfirmWarning(_ context.Context, sessionID string) (model.Snapshot, error) {
	return s.apply("confirm warning", sessionID, func(_ *model.GameSession, ctrl *game.Controller) error {
		return ctrl.ConfirmWarning()
	})
}

func (s *serv) CancelWarnings(_ context.Context, sessionID string) (model.Snapshot, error) {
	return s.apply("cancel warnings", sessionID, func(_ *model.GameSession, ctrl *game.Controller) error {
		return ctrl.CancelWarnings()
	})
}

// Spin Защелка, бросок, план анимации и отложенное применение результата
func (s *serv) Spin(_ context.Context, sessionID string) (model.Snapshot, error) {
	return s.apply("spin", sessionID, func(sess *model.GameSession, ctrl *game.Controller) error {
		if err := ctrl.RequestSpin(); err != nil {
			return err
		}

		outcome, roll := s.selector.Roll()
		plan := s.planner.SpinPlan(outcome)
		sess.Spin = &plan

		epoch := ctrl.Epoch()
		s.schedule(sessionID, plan.ResolveAfter, func() {
			s.resolveSpin(sessionID, epoch, outcome, roll)
		})
		return nil
	})
}

func (s *serv) BackToMenu(_ context.Context, sessionID string) (model.Snapshot, error) {
	return s.apply("back to menu", sessionID, func(_ *model.GameSession, ctrl *game.Controller) error {
		return ctrl.BackToMenu()
	})
}

func (s *serv) Restart(_ context.Context, sessionID string) (model.Snapshot, error) {
	return s.apply("restart", sessionID, func(_ *model.GameSession, ctrl *game.Controller) error {
		return ctrl.Restart()
	})
}

func (s *serv) Subscribe(_ context.Context, sessionID string) (<-chan model.Snapshot, func(), error) {
	s.sessions.GetOrCreate(sessionID, s.now())
	ch, unsubscribe := s.broker.Subscribe(sessionID)
	return ch, unsubscribe, nil
}
