package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shaiso/Reflow/internal/domain"
	"github.com/shaiso/Reflow/internal/engine"
	"github.com/shaiso/Reflow/internal/telemetry"
)

// ProcessReflow пересчитывает расписание пакета документов.
// POST /api/v1/reflow
//
// Пересчёт выполняется целиком на данных запроса: состояние между
// вызовами не переносится. Запись в историю и публикация события —
// побочные эффекты после вычисления, их отказ не ломает ответ.
func (h *Handler) ProcessReflow(w http.ResponseWriter, r *http.Request) {
	var req ProcessReflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		BadRequest(w, err.Error())
		return
	}

	input, err := h.buildInput(req.Documents)
	if err != nil {
		BadRequest(w, err.Error())
		return
	}

	started := time.Now()
	result, err := engine.Reflow(input)
	elapsed := time.Since(started)

	if err != nil {
		run := domain.NewFailedRun(len(req.Documents), len(input.WorkOrders), err, elapsed)
		h.recordRun(r, run)
		HandleScheduleError(w, h.logger, err)
		return
	}

	run := domain.NewSucceededRun(len(req.Documents), result, elapsed)
	h.recordRun(r, run)

	telemetry.FromContext(r.Context()).Info("reflow processed",
		"run_id", run.ID,
		"documents", run.DocumentCount,
		"work_orders", run.WorkOrderCount,
		"changes", run.ChangeCount,
		"duration", elapsed,
	)

	Success(w, ReflowResponseFromResult(run.ID, result))
}

// recordRun сохраняет запись пересчёта и публикует событие.
// Ошибки побочных эффектов логируются, но не влияют на ответ клиенту.
func (h *Handler) recordRun(r *http.Request, run *domain.ReflowRun) {
	ctx := r.Context()

	if h.runs != nil {
		if err := h.runs.Create(ctx, run); err != nil {
			h.logger.Warn("failed to store reflow run", "run_id", run.ID, "error", err)
		}
	}

	if h.publisher == nil {
		return
	}
	if run.IsFailed() {
		if err := h.publisher.PublishRunFailed(ctx, run); err != nil {
			h.logger.Warn("failed to publish run.failed", "run_id", run.ID, "error", err)
		}
		return
	}
	if err := h.publisher.PublishRunCompleted(ctx, run); err != nil {
		h.logger.Warn("failed to publish run.completed", "run_id", run.ID, "error", err)
	}
}
