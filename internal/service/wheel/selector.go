package wheel

import (
	"fmt"
	"math"
	"wheel_backend/internal/model"
)

// Верхняя граница броска
const rollRange = 100.0

// Допуск при сравнении суммы весов со 100
const weightEpsilon = 1e-9

type threshold struct {
	upper   float64
	outcome model.Outcome
}

// Selector Выбор исхода по накопленным порогам
type Selector struct {
	rng        RNG
	thresholds []threshold
}

// DefaultTable 1% выигрыш, 10% переустановка, 89% выключение
func DefaultTable() []model.OutcomeWeight {
	return []model.OutcomeWeight{
		{Outcome: model.OutcomeWin, Weight: 1},
		{Outcome: model.OutcomeReinstall, Weight: 10},
		{Outcome: model.OutcomeShutdown, Weight: 89},
	}
}

// NewSelector Проверяет таблицу и строит накопленные пороги.
// Каждый из трех исходов должен встречаться ровно один раз, веса > 0, сумма = 100
func NewSelector(table []model.OutcomeWeight, rng RNG) (*Selector, error) {
	if len(table) != len(model.Outcomes) {
		return nil, fmt.Errorf("%w: expected %d outcomes, got %d", model.ErrInvalidOutcomeTable, len(model.Outcomes), len(table))
	}

	seen := make(map[model.Outcome]bool, len(table))
	thresholds := make([]threshold, 0, len(table))
	cumulative := 0.0
	for _, w := range table {
		if !w.Outcome.Valid() {
			return nil, fmt.Errorf("%w: unknown outcome %q", model.ErrInvalidOutcomeTable, w.Outcome)
		}
		if seen[w.Outcome] {
			return nil, fmt.Errorf("%w: duplicate outcome %q", model.ErrInvalidOutcomeTable, w.Outcome)
		}
		if w.Weight <= 0 || math.IsNaN(w.Weight) || math.IsInf(w.Weight, 0) {
			return nil, fmt.Errorf("%w: weight of %q must be positive", model.ErrInvalidOutcomeTable, w.Outcome)
		}
		seen[w.Outcome] = true
		cumulative += w.Weight
		thresholds = append(thresholds, threshold{upper: cumulative, outcome: w.Outcome})
	}

	if math.Abs(cumulative-rollRange) > weightEpsilon {
		return nil, fmt.Errorf("%w: weights sum to %g", model.ErrInvalidOutcomeTable, cumulative)
	}
	// Последний порог ровно 100, чтобы не было щели из-за округления
	thresholds[len(thresholds)-1].upper = rollRange

	return &Selector{rng: rng, thresholds: thresholds}, nil
}

// Draw Один бросок колеса
func (s *Selector) Draw() model.Outcome {
	outcome, _ := s.Roll()
	return outcome
}

// Roll Бросок с возвратом выпавшего числа в [0, 100)
func (s *Selector) Roll() (model.Outcome, float64) {
	r := s.rng.Float64() * rollRange
	return s.Classify(r), r
}

// Classify Отображение числа из [0, 100) в исход по порогам
func (s *Selector) Classify(r float64) model.Outcome {
	for _, t := range s.thresholds {
		if r < t.upper {
			return t.outcome
		}
	}
	// r >= 100 невозможно для корректного RNG, прижимаем к последнему сектору
	return s.thresholds[len(s.thresholds)-1].outcome
}

// Table Таблица весов, из которой построен селектор
func (s *Selector) Table() []model.OutcomeWeight {
	table := make([]model.OutcomeWeight, len(s.thresholds))
	lower := 0.0
	for i, t := range s.thresholds {
		table[i] = model.OutcomeWeight{Outcome: t.outcome, Weight: t.upper - lower}
		lower = t.upper
	}
	return table
}
