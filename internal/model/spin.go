package model

import "time"

// SpinPlan План анимации вращения
type SpinPlan struct {
	Outcome      Outcome
	Turns        int           // Полных оборотов
	Rotation     float64       // Итоговый угол в градусах
	Duration     time.Duration // Длительность анимации
	ResolveAfter time.Duration // Через сколько исход будет применен
}

// SimulationStage Этап фейковой симуляции
type SimulationStage struct {
	Name  string
	At    time.Duration // Смещение от начала симуляции
	Label string
}

// ProgressTick Отметка прогресса переустановки
type ProgressTick struct {
	At      time.Duration
	Percent float64
}

// SimulationPlan План фейковой симуляции выключения или переустановки
type SimulationPlan struct {
	Outcome  Outcome
	Stages   []SimulationStage
	Progress []ProgressTick // Только для переустановки
	Total    time.Duration  // Когда придет simulationComplete
}

// SpinRecord Запись о вращении для журнала
type SpinRecord struct {
	ID        string
	SessionID string
	Outcome   Outcome
	Roll      float64
	CreatedAt time.Time
}

// OutcomeStats Агрегированная статистика исходов
type OutcomeStats struct {
	TotalSpins int
	Counts     map[Outcome]int
}

// Frequency Наблюдаемая доля исхода в процентах
func (s OutcomeStats) Frequency(o Outcome) float64 {
	if s.TotalSpins == 0 {
		return 0
	}
	return float64(s.Counts[o]) / float64(s.TotalSpins) * 100
}

// StatsReport Статистика для /api/stats
type StatsReport struct {
	Process  OutcomeStats    // С момента запуска процесса
	AllTime  map[Outcome]int // Из журнала вращений
	Table    []OutcomeWeight // Настроенные вероятности
	Sessions int             // Активных сессий
}
