package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
)

// StatusHandler обрабатывает GET запрос к /_status
func StatusHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		if _, err := fmt.Fprint(w, "ok"); err != nil {
			logger.Error("failed to write status", slog.Any("error", err))
		}
	}
}
