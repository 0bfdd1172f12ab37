package env

import (
	"fmt"
	"os"
	"time"
	"wheel_backend/internal/config"
	"wheel_backend/internal/model"

	"gopkg.in/yaml.v3"
)

// yamlFile Структура config.yaml
type yamlFile struct {
	Wheel      yamlWheel      `yaml:"wheel"`
	Simulation yamlSimulation `yaml:"simulation"`
}

type yamlWheel struct {
	Outcomes []yamlOutcome `yaml:"outcomes"`
	Warnings struct {
		Min  int      `yaml:"min"`
		Max  int      `yaml:"max"`
		Pool []string `yaml:"pool"`
	} `yaml:"warnings"`
	Spin struct {
		MinTurns      int           `yaml:"min_turns"`
		MaxTurns      int           `yaml:"max_turns"`
		Duration      time.Duration `yaml:"duration"`
		AnnounceDelay time.Duration `yaml:"announce_delay"`
	} `yaml:"spin"`
}

type yamlOutcome struct {
	Outcome string  `yaml:"outcome"`
	Weight  float64 `yaml:"weight"`
}

type yamlSimulation struct {
	TimeScale float64 `yaml:"time_scale"`
	Shutdown  struct {
		Screen     time.Duration `yaml:"screen"`
		BlackMin   time.Duration `yaml:"black_min"`
		BlackMax   time.Duration `yaml:"black_max"`
		RevealHold time.Duration `yaml:"reveal_hold"`
	} `yaml:"shutdown"`
	Reinstall struct {
		Loading       time.Duration `yaml:"loading"`
		Total         time.Duration `yaml:"total"`
		StepEvery     time.Duration `yaml:"step_every"`
		ProgressEvery time.Duration `yaml:"progress_every"`
		ProgressMin   float64       `yaml:"progress_min"`
		ProgressMax   float64       `yaml:"progress_max"`
		RevealHold    time.Duration `yaml:"reveal_hold"`
		Steps         []string      `yaml:"steps"`
	} `yaml:"reinstall"`
}

// Значения по умолчанию, если ключ в config.yaml отсутствует
const (
	defaultMinWarnings   = 10
	defaultMaxWarnings   = 15
	defaultMinTurns      = 8
	defaultMaxTurns      = 11
	defaultSpinDuration  = 8 * time.Second
	defaultAnnounceDelay = time.Second

	defaultShutdownScreen     = 2 * time.Second
	defaultBlackMin           = 10 * time.Second
	defaultBlackMax           = 45 * time.Second
	defaultShutdownRevealHold = 3 * time.Second

	defaultReinstallLoading    = 3 * time.Second
	defaultReinstallTotal      = 30 * time.Second
	defaultStepEvery           = 4 * time.Second
	defaultProgressEvery       = 500 * time.Millisecond
	defaultProgressMin         = 0.5
	defaultProgressMax         = 2.5
	defaultReinstallRevealHold = 4 * time.Second
)

var defaultInstallSteps = []string{
	"Préparation des fichiers d'installation...",
	"Copie des fichiers système...",
	"Installation des composants Windows...",
	"Installation des mises à jour...",
	"Configuration des paramètres...",
	"Installation des pilotes...",
	"Finalisation de l'installation...",
}

func readYAML(path string) (*yamlFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return parseYAML(raw)
}

func parseYAML(raw []byte) (*yamlFile, error) {
	var f yamlFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return &f, nil
}

type wheelConfig struct {
	outcomes      []model.OutcomeWeight
	pool          []string
	minWarnings   int
	maxWarnings   int
	minTurns      int
	maxTurns      int
	spinDuration  time.Duration
	announceDelay time.Duration
}

// NewWheelConfigFromYAML Таблица исходов, пул предупреждений и параметры вращения.
// Пустые outcomes/pool означают встроенные значения, их проверяет сервис
func NewWheelConfigFromYAML(path string) (config.WheelConfig, error) {
	f, err := readYAML(path)
	if err != nil {
		return nil, err
	}
	return newWheelConfig(f.Wheel)
}

func newWheelConfig(w yamlWheel) (config.WheelConfig, error) {
	cfg := &wheelConfig{
		pool:          w.Warnings.Pool,
		minWarnings:   intOr(w.Warnings.Min, defaultMinWarnings),
		maxWarnings:   intOr(w.Warnings.Max, defaultMaxWarnings),
		minTurns:      intOr(w.Spin.MinTurns, defaultMinTurns),
		maxTurns:      intOr(w.Spin.MaxTurns, defaultMaxTurns),
		spinDuration:  durOr(w.Spin.Duration, defaultSpinDuration),
		announceDelay: durOr(w.Spin.AnnounceDelay, defaultAnnounceDelay),
	}

	for _, o := range w.Outcomes {
		outcome := model.Outcome(o.Outcome)
		if !outcome.Valid() {
			return nil, fmt.Errorf("unknown outcome %q in wheel.outcomes", o.Outcome)
		}
		cfg.outcomes = append(cfg.outcomes, model.OutcomeWeight{Outcome: outcome, Weight: o.Weight})
	}

	if cfg.minTurns < 1 || cfg.minTurns > cfg.maxTurns {
		return nil, fmt.Errorf("invalid wheel.spin turns [%d,%d]", cfg.minTurns, cfg.maxTurns)
	}

	return cfg, nil
}

func (c *wheelConfig) Outcomes() []model.OutcomeWeight {
	return c.outcomes
}

func (c *wheelConfig) WarningPool() []string {
	return c.pool
}

func (c *wheelConfig) WarningRange() (int, int) {
	return c.minWarnings, c.maxWarnings
}

func (c *wheelConfig) SpinTurns() (int, int) {
	return c.minTurns, c.maxTurns
}

func (c *wheelConfig) SpinDuration() time.Duration {
	return c.spinDuration
}

func (c *wheelConfig) AnnounceDelay() time.Duration {
	return c.announceDelay
}

type simulationConfig struct {
	timeScale float64
	shutdown  config.ShutdownTimings
	reinstall config.ReinstallTimings
}

// NewSimulationConfigFromYAML Тайминги симуляций
func NewSimulationConfigFromYAML(path string) (config.SimulationConfig, error) {
	f, err := readYAML(path)
	if err != nil {
		return nil, err
	}
	return newSimulationConfig(f.Simulation)
}

func newSimulationConfig(s yamlSimulation) (config.SimulationConfig, error) {
	scale := s.TimeScale
	if scale == 0 {
		scale = 1
	}
	if scale < 0 {
		return nil, fmt.Errorf("simulation.time_scale must be positive, got %g", scale)
	}

	shutdown := config.ShutdownTimings{
		Screen:     durOr(s.Shutdown.Screen, defaultShutdownScreen),
		BlackMin:   durOr(s.Shutdown.BlackMin, defaultBlackMin),
		BlackMax:   durOr(s.Shutdown.BlackMax, defaultBlackMax),
		RevealHold: durOr(s.Shutdown.RevealHold, defaultShutdownRevealHold),
	}
	if shutdown.BlackMin > shutdown.BlackMax {
		return nil, fmt.Errorf("simulation.shutdown black_min %s exceeds black_max %s", shutdown.BlackMin, shutdown.BlackMax)
	}

	reinstall := config.ReinstallTimings{
		Loading:       durOr(s.Reinstall.Loading, defaultReinstallLoading),
		Total:         durOr(s.Reinstall.Total, defaultReinstallTotal),
		StepEvery:     durOr(s.Reinstall.StepEvery, defaultStepEvery),
		ProgressEvery: durOr(s.Reinstall.ProgressEvery, defaultProgressEvery),
		ProgressMin:   floatOr(s.Reinstall.ProgressMin, defaultProgressMin),
		ProgressMax:   floatOr(s.Reinstall.ProgressMax, defaultProgressMax),
		RevealHold:    durOr(s.Reinstall.RevealHold, defaultReinstallRevealHold),
		Steps:         s.Reinstall.Steps,
	}
	if len(reinstall.Steps) == 0 {
		reinstall.Steps = defaultInstallSteps
	}
	if reinstall.ProgressMin > reinstall.ProgressMax {
		return nil, fmt.Errorf("simulation.reinstall progress_min %g exceeds progress_max %g", reinstall.ProgressMin, reinstall.ProgressMax)
	}
	if reinstall.Loading > reinstall.Total {
		return nil, fmt.Errorf("simulation.reinstall loading %s exceeds total %s", reinstall.Loading, reinstall.Total)
	}

	return &simulationConfig{
		timeScale: scale,
		shutdown:  shutdown,
		reinstall: reinstall,
	}, nil
}

func (c *simulationConfig) TimeScale() float64 {
	return c.timeScale
}

func (c *simulationConfig) Shutdown() config.ShutdownTimings {
	return c.shutdown
}

func (c *simulationConfig) Reinstall() config.ReinstallTimings {
	return c.reinstall
}

func intOr(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

func durOr(v, fallback time.Duration) time.Duration {
	if v == 0 {
		return fallback
	}
	return v
}

func floatOr(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}
