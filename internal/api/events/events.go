package events

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
	"wheel_backend/internal/converter"
	"wheel_backend/internal/middleware"
	"wheel_backend/internal/model"
	"wheel_backend/internal/service"
	"wheel_backend/pkg/resp"
)

// Имя SSE события со снимком состояния
const EventState = "state"

// Как часто шлем комментарий, чтобы прокси не рвали соединение
const keepAliveEvery = 15 * time.Second

type HandlerDeps struct {
	Serv service.GameService
}

type Handler struct {
	serv      service.GameService
	keepAlive time.Duration
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, keepAlive: keepAliveEvery}
}

// Stream SSE поток снимков сессии. Первым идет текущее состояние
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		resp.WriteJSONError(w, http.StatusUnauthorized, "no session")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		resp.WriteJSONError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	// Подписываемся до чтения состояния, чтобы не потерять изменение между ними
	ch, unsubscribe, err := h.serv.Subscribe(r.Context(), sessionID)
	if err != nil {
		log.Println("subscribe error:", err)
		resp.WriteJSONError(w, http.StatusInternalServerError, "subscribe failed")
		return
	}
	defer unsubscribe()

	snap, err := h.serv.State(r.Context(), sessionID)
	if err != nil {
		log.Println("state error:", err)
		resp.WriteJSONError(w, http.StatusInternalServerError, "state failed")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	if err := writeSnapshot(w, snap); err != nil {
		return
	}
	flusher.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case snap, ok := <-ch:
			if !ok {
				// Сессия удалена
				return
			}
			if err := writeSnapshot(w, snap); err != nil {
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeSnapshot(w http.ResponseWriter, snap model.Snapshot) error {
	data, err := json.Marshal(converter.ToStateResponse(snap))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", EventState, data)
	return err
}
