package converter

import (
	"time"
	"wheel_backend/internal/api/dto/game"
	"wheel_backend/internal/model"
)

func ToStateResponse(snap model.Snapshot) game.StateResponse {
	res := game.StateResponse{
		SessionID:   snap.SessionID,
		Phase:       string(snap.Phase),
		LastOutcome: string(snap.LastOutcome),
		Spinning:    snap.Spinning,
		Epoch:       snap.Epoch,
		Screen:      toScreen(snap),
	}

	if snap.Phase == model.PhaseWarnings {
		confirm := "Continuer"
		if snap.WarningIndex == snap.WarningTotal-1 {
			confirm = "LANCER LA ROUE"
		}
		res.Warning = &game.WarningView{
			Text:    snap.Warning,
			Index:   snap.WarningIndex,
			Total:   snap.WarningTotal,
			Confirm: confirm,
		}
	}

	if snap.Spin != nil {
		res.Spin = &game.SpinView{
			Outcome:        string(snap.Spin.Outcome),
			Turns:          snap.Spin.Turns,
			Rotation:       snap.Spin.Rotation,
			DurationMs:     ms(snap.Spin.Duration),
			ResolveAfterMs: ms(snap.Spin.ResolveAfter),
		}
	}

	if snap.Simulation != nil {
		res.Simulation = toSimulation(*snap.Simulation)
	}

	return res
}

func toSimulation(plan model.SimulationPlan) *game.SimulationView {
	stages := make([]game.StageView, len(plan.Stages))
	for i, s := range plan.Stages {
		stages[i] = game.StageView{
			Name:  s.Name,
			AtMs:  ms(s.At),
			Label: s.Label,
		}
	}

	var progress []game.ProgressView
	for _, p := range plan.Progress {
		progress = append(progress, game.ProgressView{
			AtMs:    ms(p.At),
			Percent: p.Percent,
		})
	}

	return &game.SimulationView{
		Outcome:  string(plan.Outcome),
		Stages:   stages,
		Progress: progress,
		TotalMs:  ms(plan.Total),
	}
}

// toScreen Тексты экранов без анимации
func toScreen(snap model.Snapshot) *game.ScreenView {
	switch snap.Phase {
	case model.PhaseMenu:
		return &game.ScreenView{
			Title: "LA ROUE DU 1%",
			Lines: []string{
				"Tu n'as presque aucune chance. Mais presque.",
				"En continuant, vous acceptez de subir les conséquences de vos actes.",
			},
			Action: "J'ai compris les risques",
		}
	case model.PhaseWarnings:
		return &game.ScreenView{
			Title: "Avertissement",
			Back:  "Abandonner",
		}
	case model.PhaseWheel:
		action := "Cliquez sur la roue pour la lancer"
		if snap.Spinning {
			action = "La roue tourne..."
		}
		screen := &game.ScreenView{
			Title:  "Le moment est venu.",
			Action: action,
		}
		if !snap.Spinning {
			screen.Back = "← Retour (lâche)"
		}
		return screen
	case model.PhaseWin:
		return &game.ScreenView{
			Title: "Incroyable.",
			Lines: []string{
				"La roue t'a épargné.",
				"1% de chance. Tu fais partie des élus.",
			},
			Action: "Tenter à nouveau sa chance",
		}
	case model.PhaseReveal:
		detail := "Ton PC n'a jamais été éteint."
		if snap.LastOutcome == model.OutcomeReinstall {
			detail = "Aucun fichier n'a été touché."
		}
		return &game.ScreenView{
			Title: "Tout était simulé.",
			Lines: []string{
				"Tu avais été prévenu.",
				detail,
				"Merci d'avoir joué.",
			},
			Action: "Retourner au menu",
		}
	}
	// Во время симуляции тексты идут из плана
	return nil
}

func ToStatsResponse(report model.StatsReport) game.StatsResponse {
	res := game.StatsResponse{
		TotalSpins:  report.Process.TotalSpins,
		Counts:      make(map[string]int, len(model.Outcomes)),
		Frequencies: make(map[string]float64, len(model.Outcomes)),
		AllTime:     make(map[string]int, len(model.Outcomes)),
		Table:       make([]game.OutcomeWeight, len(report.Table)),
		Sessions:    report.Sessions,
	}

	for _, o := range model.Outcomes {
		res.Counts[string(o)] = report.Process.Counts[o]
		res.Frequencies[string(o)] = report.Process.Frequency(o)
		res.AllTime[string(o)] = report.AllTime[o]
	}
	for i, w := range report.Table {
		res.Table[i] = game.OutcomeWeight{
			Outcome: string(w.Outcome),
			Weight:  w.Weight,
		}
	}

	return res
}

func ms(d time.Duration) int64 {
	return d.Milliseconds()
}
