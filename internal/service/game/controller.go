package game

import (
	"fmt"
	"log"
	"wheel_backend/internal/model"
)

// Machine Общие для всех сессий правила конечного автомата
type Machine struct {
	rules  Rules
	rng    RNG
	strict bool // В strict режиме нарушение инварианта - паника
}

// NewMachine Создать автомат. strict включается в development окружении
func NewMachine(rules Rules, rng RNG, strict bool) *Machine {
	return &Machine{rules: rules, rng: rng, strict: strict}
}

// New Контроллер со свежим состоянием в фазе menu
func (m *Machine) New() *Controller {
	state := model.InitialState()
	return m.Controller(&state)
}

// Controller Привязать контроллер к существующему состоянию сессии
func (m *Machine) Controller(state *model.SessionState) *Controller {
	return &Controller{m: m, s: state}
}

// Controller Переходы между фазами. Не потокобезопасен,
// вызывающий код сериализует события одной сессии
type Controller struct {
	m *Machine
	s *model.SessionState
}

// State Копия текущего состояния
func (c *Controller) State() model.SessionState {
	st := *c.s
	st.Warnings = append([]string(nil), c.s.Warnings...)
	return st
}

// Phase Текущая фаза
func (c *Controller) Phase() model.GamePhase {
	return c.s.Phase
}

// Epoch Номер текущего прохождения
func (c *Controller) Epoch() uint64 {
	return c.s.Epoch
}

// Start menu -> warnings с новой серией предупреждений
func (c *Controller) Start() error {
	if c.s.Phase != model.PhaseMenu {
		return c.notAllowed("start")
	}
	c.s.Warnings = NewWarningSet(c.m.rules, c.m.rng)
	c.s.WarningIndex = 0
	c.s.Phase = model.PhaseWarnings
	return nil
}

// CurrentWarning Текст текущего предупреждения, индекс и всего
func (c *Controller) CurrentWarning() (string, int, int, error) {
	if c.s.Phase != model.PhaseWarnings {
		return "", 0, 0, c.notAllowed("current warning")
	}
	c.checkIndex()
	return c.s.Warnings[c.s.WarningIndex], c.s.WarningIndex, len(c.s.Warnings), nil
}

// ConfirmWarning Следующее предупреждение, после последнего - колесо
func (c *Controller) ConfirmWarning() error {
	if c.s.Phase != model.PhaseWarnings {
		return c.notAllowed("confirm")
	}
	c.checkIndex()

	if c.s.WarningIndex < len(c.s.Warnings)-1 {
		c.s.WarningIndex++
		return nil
	}

	c.s.Warnings = nil
	c.s.WarningIndex = 0
	c.s.Phase = model.PhaseWheel
	return nil
}

// CancelWarnings Отказ на любом предупреждении возвращает в меню
func (c *Controller) CancelWarnings() error {
	if c.s.Phase != model.PhaseWarnings {
		return c.notAllowed("cancel")
	}
	c.reset()
	return nil
}

// RequestSpin Защелка: второй запрос до получения результата отклоняется
func (c *Controller) RequestSpin() error {
	if c.s.Phase != model.PhaseWheel {
		return c.notAllowed("spin")
	}
	if c.s.Spinning {
		return model.ErrSpinInProgress
	}
	c.s.Spinning = true
	return nil
}

// ResolveSpin Применить результат вращения
func (c *Controller) ResolveSpin(outcome model.Outcome) error {
	if c.s.Phase != model.PhaseWheel {
		return c.notAllowed("resolve spin")
	}

	switch outcome {
	case model.OutcomeWin:
		c.s.Phase = model.PhaseWin
	case model.OutcomeShutdown:
		c.s.LastOutcome = outcome
		c.s.Phase = model.PhaseShutdown
	case model.OutcomeReinstall:
		c.s.LastOutcome = outcome
		c.s.Phase = model.PhaseReinstall
	default:
		return fmt.Errorf("unknown outcome %q: %w", outcome, model.ErrTransitionNotAllowed)
	}
	c.s.Spinning = false
	return nil
}

// ResolveSpinAt Вариант для отложенного колбэка: применяется только
// в том же прохождении и только если вращение еще идет
func (c *Controller) ResolveSpinAt(epoch uint64, outcome model.Outcome) bool {
	if c.s.Epoch != epoch || !c.s.Spinning {
		return false
	}
	return c.ResolveSpin(outcome) == nil
}

// BackToMenu С колеса обратно в меню, пока колесо не крутится
func (c *Controller) BackToMenu() error {
	if c.s.Phase != model.PhaseWheel {
		return c.notAllowed("back")
	}
	if c.s.Spinning {
		return model.ErrSpinInProgress
	}
	c.reset()
	return nil
}

// SimulationComplete shutdown/reinstall -> reveal
func (c *Controller) SimulationComplete() error {
	if !c.s.Phase.Simulating() {
		return c.notAllowed("simulation complete")
	}
	c.s.Phase = model.PhaseReveal
	return nil
}

// SimulationCompleteAt Вариант для таймера: устаревший колбэк ничего не меняет
func (c *Controller) SimulationCompleteAt(epoch uint64) bool {
	if c.s.Epoch != epoch {
		return false
	}
	return c.SimulationComplete() == nil
}

// Restart win/reveal -> menu, полный сброс
func (c *Controller) Restart() error {
	if c.s.Phase != model.PhaseWin && c.s.Phase != model.PhaseReveal {
		return c.notAllowed("restart")
	}
	c.reset()
	return nil
}

// reset Начальное состояние со следующим номером прохождения
func (c *Controller) reset() {
	epoch := c.s.Epoch + 1
	*c.s = model.InitialState()
	c.s.Epoch = epoch
}

// checkIndex Индекс предупреждения вне диапазона - ошибка программы.
// В strict режиме паникуем, иначе прижимаем к последнему предупреждению
func (c *Controller) checkIndex() {
	n := len(c.s.Warnings)
	if c.s.WarningIndex >= 0 && c.s.WarningIndex < n {
		return
	}

	msg := fmt.Sprintf("warning index %d out of range [0,%d)", c.s.WarningIndex, n)
	if c.m.strict {
		panic(msg)
	}
	log.Printf("invariant violation: %s, clamping", msg)

	if n == 0 {
		// Серии нет совсем, выдаем новую с начала
		c.s.Warnings = NewWarningSet(c.m.rules, c.m.rng)
		c.s.WarningIndex = 0
		return
	}
	if c.s.WarningIndex < 0 {
		c.s.WarningIndex = 0
		return
	}
	c.s.WarningIndex = n - 1
}

func (c *Controller) notAllowed(event string) error {
	return fmt.Errorf("%s from %s: %w", event, c.s.Phase, model.ErrTransitionNotAllowed)
}
