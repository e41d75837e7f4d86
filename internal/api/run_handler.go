package api

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

// ListReflowRuns возвращает историю пересчётов.
// GET /api/v1/reflows?status=...&limit=...&offset=...
func (h *Handler) ListReflowRuns(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		List(w, []ReflowRunResponse{}, 0)
		return
	}

	limit := parseIntParam(r.URL.Query().Get("limit"), 50)
	offset := parseIntParam(r.URL.Query().Get("offset"), 0)
	status := r.URL.Query().Get("status")

	runs, err := h.runs.List(r.Context(), status, limit, offset)
	if HandleRepoError(w, h.logger, err, "") {
		return
	}

	result := make([]ReflowRunResponse, len(runs))
	for i, run := range runs {
		result[i] = RunFromDomain(run)
	}

	List(w, result, len(result))
}

// GetReflowRun возвращает запись пересчёта по ID.
// GET /api/v1/reflows/{id}
func (h *Handler) GetReflowRun(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		NotFound(w, "reflow run not found")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		BadRequest(w, "invalid run id")
		return
	}

	run, err := h.runs.GetByID(r.Context(), id)
	if HandleRepoError(w, h.logger, err, "reflow run not found") {
		return
	}

	Success(w, RunFromDomain(*run))
}

// parseIntParam парсит числовой query-параметр с дефолтным значением.
func parseIntParam(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return defaultVal
	}
	return n
}
