package game_test

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"testing"

	"wheel_backend/internal/model"
	"wheel_backend/internal/service/game"
	"wheel_backend/internal/service/wheel"
)

// floatRNG для селектора: всегда одно значение
type floatRNG struct{ val float64 }

func (r floatRNG) Float64() float64 { return r.val }

func (r floatRNG) IntN(n int) int { return 0 }

func newMachine(strict bool) *game.Machine {
	return game.NewMachine(game.DefaultRules(), rand.New(rand.NewPCG(7, 8)), strict)
}

// toWheel Доводит контроллер до фазы wheel
func toWheel(t *testing.T, c *game.Controller) {
	t.Helper()
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	for c.Phase() == model.PhaseWarnings {
		if err := c.ConfirmWarning(); err != nil {
			t.Fatalf("confirm: %v", err)
		}
	}
	if c.Phase() != model.PhaseWheel {
		t.Fatalf("expected wheel, got %s", c.Phase())
	}
}

func assertInitial(t *testing.T, c *game.Controller) {
	t.Helper()
	got := c.State()
	got.Epoch = 0
	if !reflect.DeepEqual(got, model.InitialState()) {
		t.Errorf("expected initial state, got %+v", got)
	}
}

func TestController_InitialState(t *testing.T) {
	c := newMachine(true).New()
	assertInitial(t, c)
	if c.Epoch() != 0 {
		t.Errorf("expected epoch 0, got %d", c.Epoch())
	}
}

func TestController_Start(t *testing.T) {
	c := newMachine(true).New()

	if err := c.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	st := c.State()
	if st.Phase != model.PhaseWarnings {
		t.Errorf("expected warnings, got %s", st.Phase)
	}
	if st.WarningIndex != 0 {
		t.Errorf("expected index 0, got %d", st.WarningIndex)
	}
	if len(st.Warnings) == 0 {
		t.Error("expected non-empty warning set")
	}

	text, idx, total, err := c.CurrentWarning()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != st.Warnings[0] || idx != 0 || total != len(st.Warnings) {
		t.Errorf("unexpected current warning: %q %d/%d", text, idx, total)
	}

	if err := c.Start(); !errors.Is(err, model.ErrTransitionNotAllowed) {
		t.Errorf("expected ErrTransitionNotAllowed on second start, got %v", err)
	}
}

func TestController_ConfirmReachesWheelExactlyOnce(t *testing.T) {
	c := newMachine(true).New()
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	total := len(c.State().Warnings)

	for i := 1; i < total; i++ {
		if err := c.ConfirmWarning(); err != nil {
			t.Fatalf("confirm %d: %v", i, err)
		}
		if c.Phase() != model.PhaseWarnings {
			t.Fatalf("left warnings early after %d confirmations", i)
		}
		if c.State().WarningIndex != i {
			t.Fatalf("expected index %d, got %d", i, c.State().WarningIndex)
		}
	}

	if err := c.ConfirmWarning(); err != nil {
		t.Fatalf("last confirm: %v", err)
	}
	if c.Phase() != model.PhaseWheel {
		t.Fatalf("expected wheel after %d confirmations, got %s", total, c.Phase())
	}
	if len(c.State().Warnings) != 0 {
		t.Error("warning set must be cleared on wheel")
	}

	if err := c.ConfirmWarning(); !errors.Is(err, model.ErrTransitionNotAllowed) {
		t.Errorf("expected ErrTransitionNotAllowed after wheel, got %v", err)
	}
}

func TestController_CancelAtAnyIndex(t *testing.T) {
	m := newMachine(true)

	for at := 0; at < 10; at++ {
		c := m.New()
		if err := c.Start(); err != nil {
			t.Fatalf("start: %v", err)
		}
		for i := 0; i < at; i++ {
			if err := c.ConfirmWarning(); err != nil {
				t.Fatalf("confirm: %v", err)
			}
		}
		epoch := c.Epoch()

		if err := c.CancelWarnings(); err != nil {
			t.Fatalf("cancel at %d: %v", at, err)
		}
		assertInitial(t, c)
		if c.Epoch() != epoch+1 {
			t.Errorf("cancel must advance epoch, got %d", c.Epoch())
		}
	}

	c := m.New()
	if err := c.CancelWarnings(); !errors.Is(err, model.ErrTransitionNotAllowed) {
		t.Errorf("expected ErrTransitionNotAllowed from menu, got %v", err)
	}
}

func TestController_ResolveSpin(t *testing.T) {
	cases := []struct {
		outcome  model.Outcome
		phase    model.GamePhase
		lastSeen model.Outcome
	}{
		{model.OutcomeWin, model.PhaseWin, ""},
		{model.OutcomeShutdown, model.PhaseShutdown, model.OutcomeShutdown},
		{model.OutcomeReinstall, model.PhaseReinstall, model.OutcomeReinstall},
	}

	for _, tc := range cases {
		c := newMachine(true).New()
		toWheel(t, c)

		if err := c.ResolveSpin(tc.outcome); err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.outcome, err)
		}
		st := c.State()
		if st.Phase != tc.phase {
			t.Errorf("%s: expected phase %s, got %s", tc.outcome, tc.phase, st.Phase)
		}
		if st.LastOutcome != tc.lastSeen {
			t.Errorf("%s: expected last outcome %q, got %q", tc.outcome, tc.lastSeen, st.LastOutcome)
		}
	}
}

func TestController_ResolveSpinRejectsUnknownOutcome(t *testing.T) {
	c := newMachine(true).New()
	toWheel(t, c)

	if err := c.ResolveSpin("jackpot"); !errors.Is(err, model.ErrTransitionNotAllowed) {
		t.Errorf("expected ErrTransitionNotAllowed, got %v", err)
	}
	if c.Phase() != model.PhaseWheel {
		t.Errorf("phase must stay wheel, got %s", c.Phase())
	}
}

func TestController_SpinLatch(t *testing.T) {
	c := newMachine(true).New()

	if err := c.RequestSpin(); !errors.Is(err, model.ErrTransitionNotAllowed) {
		t.Errorf("expected ErrTransitionNotAllowed from menu, got %v", err)
	}

	toWheel(t, c)
	if err := c.RequestSpin(); err != nil {
		t.Fatalf("first spin: %v", err)
	}
	if err := c.RequestSpin(); !errors.Is(err, model.ErrSpinInProgress) {
		t.Errorf("expected ErrSpinInProgress, got %v", err)
	}
	if err := c.BackToMenu(); !errors.Is(err, model.ErrSpinInProgress) {
		t.Errorf("expected ErrSpinInProgress on back, got %v", err)
	}

	if !c.ResolveSpinAt(c.Epoch(), model.OutcomeReinstall) {
		t.Fatal("resolve must apply while spinning")
	}
	if c.State().Spinning {
		t.Error("latch must be released after resolve")
	}
	if c.ResolveSpinAt(c.Epoch(), model.OutcomeReinstall) {
		t.Error("second resolve must be ignored")
	}
}

func TestController_BackToMenu(t *testing.T) {
	c := newMachine(true).New()
	toWheel(t, c)

	if err := c.BackToMenu(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertInitial(t, c)
}

func TestController_SimulationComplete(t *testing.T) {
	for _, outcome := range []model.Outcome{model.OutcomeShutdown, model.OutcomeReinstall} {
		c := newMachine(true).New()
		toWheel(t, c)
		if err := c.ResolveSpin(outcome); err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if err := c.SimulationComplete(); err != nil {
			t.Fatalf("%s: unexpected error: %v", outcome, err)
		}
		if c.Phase() != model.PhaseReveal {
			t.Errorf("%s: expected reveal, got %s", outcome, c.Phase())
		}
		if c.State().LastOutcome != outcome {
			t.Errorf("%s: last outcome lost on reveal", outcome)
		}
	}
}

func TestController_SimulationCompleteRejectedElsewhere(t *testing.T) {
	m := newMachine(true)

	menu := m.New()
	if err := menu.SimulationComplete(); !errors.Is(err, model.ErrTransitionNotAllowed) {
		t.Errorf("menu: expected ErrTransitionNotAllowed, got %v", err)
	}
	assertInitial(t, menu)

	wheelPhase := m.New()
	toWheel(t, wheelPhase)
	if err := wheelPhase.SimulationComplete(); !errors.Is(err, model.ErrTransitionNotAllowed) {
		t.Errorf("wheel: expected ErrTransitionNotAllowed, got %v", err)
	}
	if wheelPhase.Phase() != model.PhaseWheel {
		t.Errorf("wheel: phase changed to %s", wheelPhase.Phase())
	}

	win := m.New()
	toWheel(t, win)
	if err := win.ResolveSpin(model.OutcomeWin); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if win.SimulationCompleteAt(win.Epoch()) {
		t.Error("win: simulation complete must be a no-op")
	}
	if win.Phase() != model.PhaseWin {
		t.Errorf("win: phase changed to %s", win.Phase())
	}
}

func TestController_Restart(t *testing.T) {
	m := newMachine(true)

	win := m.New()
	toWheel(t, win)
	if err := win.ResolveSpin(model.OutcomeWin); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if err := win.Restart(); err != nil {
		t.Fatalf("restart from win: %v", err)
	}
	assertInitial(t, win)

	reveal := m.New()
	toWheel(t, reveal)
	if err := reveal.ResolveSpin(model.OutcomeReinstall); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if err := reveal.SimulationComplete(); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := reveal.Restart(); err != nil {
		t.Fatalf("restart from reveal: %v", err)
	}
	assertInitial(t, reveal)

	if err := m.New().Restart(); !errors.Is(err, model.ErrTransitionNotAllowed) {
		t.Errorf("expected ErrTransitionNotAllowed from menu, got %v", err)
	}
}

func TestController_StaleSimulationCallbackIgnored(t *testing.T) {
	c := newMachine(true).New()
	toWheel(t, c)
	if err := c.ResolveSpin(model.OutcomeShutdown); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	stale := c.Epoch()

	// Раньше таймера: reveal, рестарт и новое прохождение до той же фазы
	if err := c.SimulationComplete(); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := c.Restart(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	toWheel(t, c)
	if err := c.ResolveSpin(model.OutcomeShutdown); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if c.SimulationCompleteAt(stale) {
		t.Error("stale callback must not apply")
	}
	if c.Phase() != model.PhaseShutdown {
		t.Errorf("expected shutdown, got %s", c.Phase())
	}
	if !c.SimulationCompleteAt(c.Epoch()) {
		t.Error("current callback must apply")
	}
}

func TestController_IndexInvariantStrictPanics(t *testing.T) {
	state := model.SessionState{
		Phase:        model.PhaseWarnings,
		Warnings:     []string{"a", "b"},
		WarningIndex: 5,
	}
	c := newMachine(true).Controller(&state)

	defer func() {
		if recover() == nil {
			t.Error("expected panic in strict mode")
		}
	}()
	_ = c.ConfirmWarning()
}

func TestController_IndexInvariantClampsInProduction(t *testing.T) {
	state := model.SessionState{
		Phase:        model.PhaseWarnings,
		Warnings:     []string{"a", "b", "c"},
		WarningIndex: 9,
	}
	c := newMachine(false).Controller(&state)

	text, idx, total, err := c.CurrentWarning()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "c" || idx != 2 || total != 3 {
		t.Errorf("expected clamp to last warning, got %q %d/%d", text, idx, total)
	}

	if err := c.ConfirmWarning(); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if c.Phase() != model.PhaseWheel {
		t.Errorf("expected wheel after confirming clamped last warning, got %s", c.Phase())
	}
}

func TestController_EndToEndShutdown(t *testing.T) {
	// Первое значение RNG дает серию из 12 предупреждений
	m := game.NewMachine(game.DefaultRules(), &sequenceRNG{values: []int{2, 5, 3, 1}}, true)
	c := m.New()
	selector, err := wheel.NewSelector(wheel.DefaultTable(), floatRNG{val: 0.5})
	if err != nil {
		t.Fatalf("selector: %v", err)
	}

	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if n := len(c.State().Warnings); n != 12 {
		t.Fatalf("expected 12 warnings, got %d", n)
	}
	for i := 0; i < 12; i++ {
		if c.Phase() != model.PhaseWarnings {
			t.Fatalf("left warnings after %d confirmations", i)
		}
		if err := c.ConfirmWarning(); err != nil {
			t.Fatalf("confirm %d: %v", i, err)
		}
	}
	if c.Phase() != model.PhaseWheel {
		t.Fatalf("expected wheel, got %s", c.Phase())
	}

	if err := c.RequestSpin(); err != nil {
		t.Fatalf("spin: %v", err)
	}
	outcome := selector.Draw()
	if outcome != model.OutcomeShutdown {
		t.Fatalf("expected forced shutdown, got %s", outcome)
	}
	if err := c.ResolveSpin(outcome); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if c.Phase() != model.PhaseShutdown || c.State().LastOutcome != model.OutcomeShutdown {
		t.Fatalf("expected shutdown with last outcome shutdown, got %+v", c.State())
	}

	if err := c.SimulationComplete(); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if c.Phase() != model.PhaseReveal {
		t.Fatalf("expected reveal, got %s", c.Phase())
	}

	if err := c.Restart(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	assertInitial(t, c)
}
