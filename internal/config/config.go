package config

import (
	"time"
	"wheel_backend/internal/model"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type WheelConfig interface {
	Outcomes() []model.OutcomeWeight
	WarningPool() []string
	WarningRange() (minCount, maxCount int)
	SpinTurns() (minTurns, maxTurns int)
	SpinDuration() time.Duration
	AnnounceDelay() time.Duration
}

type SimulationConfig interface {
	TimeScale() float64
	Shutdown() ShutdownTimings
	Reinstall() ReinstallTimings
}

// ShutdownTimings Тайминги фейкового выключения
type ShutdownTimings struct {
	Screen     time.Duration // Экран "Arrêt en cours"
	BlackMin   time.Duration // Черный экран, нижняя граница
	BlackMax   time.Duration // Черный экран, верхняя граница
	RevealHold time.Duration // Пауза перед reveal
}

// ReinstallTimings Тайминги фейковой переустановки
type ReinstallTimings struct {
	Loading       time.Duration
	Total         time.Duration
	StepEvery     time.Duration
	ProgressEvery time.Duration
	ProgressMin   float64
	ProgressMax   float64
	RevealHold    time.Duration
	Steps         []string
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type SessionConfig interface {
	SecretKey() []byte
	TokenTTL() time.Duration
	IdleTTL() time.Duration
}

type RuntimeConfig interface {
	Env() string
	Strict() bool
	Seed() (uint64, bool)
}
