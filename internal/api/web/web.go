package web

import (
	_ "embed"
	"net/http"
)

//go:embed index.html
var index []byte

// Index Страница-клиент: рисует снимки из /api/events и шлет клики в /api
func Index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(index)
}
