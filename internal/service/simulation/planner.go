package simulation

import (
	"math"
	"time"
	"wheel_backend/internal/config"
	"wheel_backend/internal/model"
)

// Число секторов на колесе
const sectors = 3

const (
	StageShutdown = "shutdown"
	StageBlack    = "black"
	StageLoading  = "loading"
	StageInstall  = "install"
	StageReveal   = "reveal"
)

// RNG Источник случайности для пауз и шагов
type RNG interface {
	Float64() float64
	IntN(n int) int
}

// SpinSettings Параметры анимации вращения
type SpinSettings struct {
	MinTurns      int
	MaxTurns      int
	Duration      time.Duration
	AnnounceDelay time.Duration
}

// SpinSettingsFrom Достать параметры вращения из конфига колеса
func SpinSettingsFrom(cfg config.WheelConfig) SpinSettings {
	minTurns, maxTurns := cfg.SpinTurns()
	return SpinSettings{
		MinTurns:      minTurns,
		MaxTurns:      maxTurns,
		Duration:      cfg.SpinDuration(),
		AnnounceDelay: cfg.AnnounceDelay(),
	}
}

// Planner Строит планы анимаций. Распределения пауз не несут
// никакого контракта, важна только ограниченность
type Planner struct {
	spin SpinSettings
	cfg  config.SimulationConfig
	rng  RNG
}

func NewPlanner(spin SpinSettings, cfg config.SimulationConfig, rng RNG) *Planner {
	return &Planner{spin: spin, cfg: cfg, rng: rng}
}

// SpinPlan Несколько полных оборотов и остановка на середине сектора исхода
func (p *Planner) SpinPlan(outcome model.Outcome) model.SpinPlan {
	turns := p.spin.MinTurns + p.rng.IntN(p.spin.MaxTurns-p.spin.MinTurns+1)

	sectorAngle := 360.0 / sectors
	target := float64(outcome.Sector())*sectorAngle + sectorAngle/2

	duration := p.scale(p.spin.Duration)
	return model.SpinPlan{
		Outcome:      outcome,
		Turns:        turns,
		Rotation:     float64(turns)*360 + (360 - target),
		Duration:     duration,
		ResolveAfter: duration + p.scale(p.spin.AnnounceDelay),
	}
}

// SimulationPlan План симуляции. Для выигрыша симуляции нет
func (p *Planner) SimulationPlan(outcome model.Outcome) (model.SimulationPlan, bool) {
	switch outcome {
	case model.OutcomeShutdown:
		return p.shutdownPlan(), true
	case model.OutcomeReinstall:
		return p.reinstallPlan(), true
	default:
		return model.SimulationPlan{}, false
	}
}

// shutdownPlan Экран выключения, черный экран случайной длины, reveal
func (p *Planner) shutdownPlan() model.SimulationPlan {
	t := p.cfg.Shutdown()

	screen := p.scale(t.Screen)
	black := p.scale(p.between(t.BlackMin, t.BlackMax))
	hold := p.scale(t.RevealHold)

	return model.SimulationPlan{
		Outcome: model.OutcomeShutdown,
		Stages: []model.SimulationStage{
			{Name: StageShutdown, At: 0, Label: "Arrêt en cours..."},
			{Name: StageBlack, At: screen},
			{Name: StageReveal, At: screen + black, Label: "Ton PC s'est éteint."},
		},
		Total: screen + black + hold,
	}
}

// reinstallPlan Загрузка, шаги установки по таймеру, прогресс случайными приращениями
func (p *Planner) reinstallPlan() model.SimulationPlan {
	t := p.cfg.Reinstall()

	loading := p.scale(t.Loading)
	total := p.scale(t.Total)

	stages := []model.SimulationStage{
		{Name: StageLoading, At: 0, Label: "Installation de Windows"},
	}
	// Шаги меняются каждые StepEvery с начала симуляции, первый шаг виден сразу после загрузки
	for i, step := range t.Steps {
		at := p.scale(time.Duration(i) * t.StepEvery)
		if at < loading {
			at = loading
		}
		if at >= total {
			break
		}
		stages = append(stages, model.SimulationStage{Name: StageInstall, At: at, Label: step})
	}
	stages = append(stages, model.SimulationStage{Name: StageReveal, At: total, Label: "Réinstallation terminée !"})

	var progress []model.ProgressTick
	percent := 0.0
	every := p.scale(t.ProgressEvery)
	if every > 0 {
		for at := every; at < total && percent < 100; at += every {
			percent = math.Min(percent+t.ProgressMin+p.rng.Float64()*(t.ProgressMax-t.ProgressMin), 100)
			progress = append(progress, model.ProgressTick{At: at, Percent: percent})
		}
	}

	return model.SimulationPlan{
		Outcome:  model.OutcomeReinstall,
		Stages:   stages,
		Progress: progress,
		Total:    total + p.scale(t.RevealHold),
	}
}

// between Случайная длительность в [lo, hi)
func (p *Planner) between(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + time.Duration(p.rng.Float64()*float64(hi-lo))
}

// scale Ускорение/замедление всех таймингов
func (p *Planner) scale(d time.Duration) time.Duration {
	return time.Duration(float64(d) * p.cfg.TimeScale())
}
