package api

import (
	"net/http"
)

// RegisterRoutes регистрирует все маршруты API.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Middleware chain
	chain := Chain(
		Recovery(h.logger),
		Logging(h.logger),
	)

	// Reflow
	mux.Handle("POST /api/v1/reflow", chain(http.HandlerFunc(h.ProcessReflow)))

	// История пересчётов
	mux.Handle("GET /api/v1/reflows", chain(http.HandlerFunc(h.ListReflowRuns)))
	mux.Handle("GET /api/v1/reflows/{id}", chain(http.HandlerFunc(h.GetReflowRun)))
}
