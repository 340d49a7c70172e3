package handlers

import (
	"net/http"
)

// NewHealthHandler reports that the service is up.
// @Summary Health check
// @Tags health
// @Produce plain
// @Success 200 {string} string "FinanceFlow backend running!"
// @Router / [get]
func NewHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("FinanceFlow backend running!"))
	}
}
