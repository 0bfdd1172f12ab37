package model

// GamePhase Текущий экран игры
type GamePhase string

const (
	PhaseMenu      GamePhase = "menu"
	PhaseWarnings  GamePhase = "warnings"
	PhaseWheel     GamePhase = "wheel"
	PhaseShutdown  GamePhase = "shutdown"
	PhaseReinstall GamePhase = "reinstall"
	PhaseWin       GamePhase = "win"
	PhaseReveal    GamePhase = "reveal"
)

// Simulating Идет ли сейчас фейковая симуляция
func (p GamePhase) Simulating() bool {
	return p == PhaseShutdown || p == PhaseReinstall
}
