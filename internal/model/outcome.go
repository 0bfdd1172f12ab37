package model

// Outcome Результат одного вращения колеса
type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeShutdown  Outcome = "shutdown"
	OutcomeReinstall Outcome = "reinstall"
)

// Outcomes Все исходы в порядке секторов колеса
var Outcomes = []Outcome{OutcomeWin, OutcomeReinstall, OutcomeShutdown}

// Valid Проверка, что исход входит в известный набор
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeWin, OutcomeShutdown, OutcomeReinstall:
		return true
	}
	return false
}

// Sector Номер сектора на колесе (0 - выигрыш, 1 - переустановка, 2 - выключение)
func (o Outcome) Sector() int {
	switch o {
	case OutcomeWin:
		return 0
	case OutcomeReinstall:
		return 1
	default:
		return 2
	}
}

// OutcomeWeight Вес исхода в процентах
type OutcomeWeight struct {
	Outcome Outcome
	Weight  float64
}
