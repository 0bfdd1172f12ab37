package game

import (
	"fmt"
	"wheel_backend/internal/model"
)

// RNG Источник случайности для перемешивания
type RNG interface {
	// IntN Случайное число в [0, n)
	IntN(n int) int
}

// DefaultWarningPool Фиксированный набор из 15 предупреждений
var DefaultWarningPool = []string{
	"Ce n'est pas un jeu.",
	"La roue ne plaisante pas.",
	"Vous êtes responsable de votre curiosité.",
	"Statistiquement, vous devriez partir.",
	"Dernière chance de faire demi-tour.",
	"Nous déclinons toute responsabilité.",
	"Êtes-vous vraiment sûr de vous ?",
	"Votre destin est entre vos mains.",
	"89% des gens regrettent.",
	"La chance n'existe pas ici.",
	"Ce qui va suivre est irréversible.",
	"Vous avez été averti. Encore.",
	"La roue se souvient de tout.",
	"Dernière confirmation (les précédentes comptaient aussi).",
	"Prêt à assumer les conséquences ?",
}

const (
	DefaultMinWarnings = 10
	DefaultMaxWarnings = 15
)

// Rules Параметры серии предупреждений
type Rules struct {
	pool        []string
	minWarnings int
	maxWarnings int
}

// NewRules Проверяет пул: строки уникальны, 1 <= min <= max <= len(pool)
func NewRules(pool []string, minWarnings, maxWarnings int) (Rules, error) {
	if minWarnings < 1 || minWarnings > maxWarnings {
		return Rules{}, fmt.Errorf("%w: bad range [%d,%d]", model.ErrInvalidWarningPool, minWarnings, maxWarnings)
	}
	if maxWarnings > len(pool) {
		return Rules{}, fmt.Errorf("%w: max %d exceeds pool size %d", model.ErrInvalidWarningPool, maxWarnings, len(pool))
	}

	seen := make(map[string]bool, len(pool))
	for _, w := range pool {
		if w == "" {
			return Rules{}, fmt.Errorf("%w: empty warning", model.ErrInvalidWarningPool)
		}
		if seen[w] {
			return Rules{}, fmt.Errorf("%w: duplicate warning %q", model.ErrInvalidWarningPool, w)
		}
		seen[w] = true
	}

	return Rules{
		pool:        append([]string(nil), pool...),
		minWarnings: minWarnings,
		maxWarnings: maxWarnings,
	}, nil
}

// DefaultRules Пул из 15 предупреждений, серия от 10 до 15
func DefaultRules() Rules {
	rules, err := NewRules(DefaultWarningPool, DefaultMinWarnings, DefaultMaxWarnings)
	if err != nil {
		panic("default warning rules are invalid: " + err.Error())
	}
	return rules
}

// Pool Копия пула
func (r Rules) Pool() []string {
	return append([]string(nil), r.pool...)
}

// Range Границы длины серии
func (r Rules) Range() (int, int) {
	return r.minWarnings, r.maxWarnings
}

// Shuffle Тасование Фишера-Йетса: от последнего индекса к первому,
// i меняется со случайным j из [0, i]. Исходный срез не меняется
func Shuffle(items []string, rng RNG) []string {
	shuffled := append([]string(nil), items...)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// NewWarningSet Сначала выбираем длину n из [min, max], затем берем первые n после тасования
func NewWarningSet(rules Rules, rng RNG) []string {
	n := rules.minWarnings + rng.IntN(rules.maxWarnings-rules.minWarnings+1)
	return Shuffle(rules.pool, rng)[:n:n]
}
