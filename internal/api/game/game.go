package game

import (
	"context"
	"errors"
	"log"
	"net/http"
	"wheel_backend/internal/converter"
	"wheel_backend/internal/middleware"
	"wheel_backend/internal/model"
	"wheel_backend/internal/service"
	"wheel_backend/pkg/resp"
)

type HandlerDeps struct {
	Serv service.GameService
}

type Handler struct {
	serv service.GameService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// event Событие сессии, которое вызывает ручка
type event func(ctx context.Context, sessionID string) (model.Snapshot, error)

// handle Общая обвязка: сессия из контекста, событие, снимок в ответ
func (h *Handler) handle(fn event) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := middleware.SessionIDFromContext(r.Context())
		if !ok {
			resp.WriteJSONError(w, http.StatusUnauthorized, "no session")
			return
		}

		snap, err := fn(r.Context(), sessionID)
		if err != nil {
			writeError(w, err)
			return
		}

		resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(snap))
	}
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	h.handle(h.serv.State)(w, r)
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	h.handle(h.serv.Start)(w, r)
}

func (h *Handler) ConfirmWarning(w http.ResponseWriter, r *http.Request) {
	h.handle(h.serv.ConfirmWarning)(w, r)
}

func (h *Handler) CancelWarnings(w http.ResponseWriter, r *http.Request) {
	h.handle(h.serv.CancelWarnings)(w, r)
}

// Spin Ответ содержит план вращения, результат придет событием
func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	h.handle(h.serv.Spin)(w, r)
}

func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	h.handle(h.serv.BackToMenu)(w, r)
}

func (h *Handler) Restart(w http.ResponseWriter, r *http.Request) {
	h.handle(h.serv.Restart)(w, r)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	report, err := h.serv.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(*report))
}

// writeError Доменные ошибки в HTTP статусы
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrTransitionNotAllowed), errors.Is(err, model.ErrSpinInProgress):
		resp.WriteJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, model.ErrSessionNotFound):
		resp.WriteJSONError(w, http.StatusUnauthorized, err.Error())
	default:
		log.Println("game error:", err)
		resp.WriteJSONError(w, http.StatusInternalServerError, "internal error")
	}
}
