package game

type StateResponse struct {
	SessionID   string          `json:"session_id"`
	Phase       string          `json:"phase"`                  // menu, warnings, wheel, shutdown, reinstall, win, reveal
	Warning     *WarningView    `json:"warning,omitempty"`      // Только в фазе warnings
	LastOutcome string          `json:"last_outcome,omitempty"` // Последний проигрышный исход
	Spinning    bool            `json:"spinning"`
	Epoch       uint64          `json:"epoch"`                // Номер прохождения
	Spin        *SpinView       `json:"spin,omitempty"`       // План текущего вращения
	Simulation  *SimulationView `json:"simulation,omitempty"` // План текущей симуляции
	Screen      *ScreenView     `json:"screen,omitempty"`     // Тексты экрана
}

type WarningView struct {
	Text    string `json:"text"`
	Index   int    `json:"index"` // С нуля
	Total   int    `json:"total"`
	Confirm string `json:"confirm"` // Надпись на кнопке подтверждения
}

type SpinView struct {
	Outcome        string  `json:"outcome"`
	Turns          int     `json:"turns"`
	Rotation       float64 `json:"rotation"`         // Градусы
	DurationMs     int64   `json:"duration_ms"`      // Длительность анимации
	ResolveAfterMs int64   `json:"resolve_after_ms"` // Когда сервер применит результат
}

type SimulationView struct {
	Outcome  string         `json:"outcome"`
	Stages   []StageView    `json:"stages"`
	Progress []ProgressView `json:"progress,omitempty"` // Только для reinstall
	TotalMs  int64          `json:"total_ms"`
}

type StageView struct {
	Name  string `json:"name"`
	AtMs  int64  `json:"at_ms"` // От начала симуляции
	Label string `json:"label"`
}

type ProgressView struct {
	AtMs    int64   `json:"at_ms"`
	Percent float64 `json:"percent"` // 0-100
}

type ScreenView struct {
	Title  string   `json:"title"`
	Lines  []string `json:"lines,omitempty"`
	Action string   `json:"action,omitempty"` // Надпись на главной кнопке
	Back   string   `json:"back,omitempty"`   // Надпись на кнопке возврата
}

type StatsResponse struct {
	TotalSpins  int                `json:"total_spins"`
	Counts      map[string]int     `json:"counts"`      // С момента запуска
	Frequencies map[string]float64 `json:"frequencies"` // Проценты
	AllTime     map[string]int     `json:"all_time"`    // Из журнала
	Table       []OutcomeWeight    `json:"table"`
	Sessions    int                `json:"sessions"`
}

type OutcomeWeight struct {
	Outcome string  `json:"outcome"`
	Weight  float64 `json:"weight"` // Проценты
}
