package domain

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus — статус выполненного пересчёта.
type RunStatus string

const (
	RunStatusSucceeded RunStatus = "SUCCEEDED"
	RunStatusFailed    RunStatus = "FAILED"
)

// ReflowRun — сохранённая запись об одном пересчёте расписания.
//
// Сам пересчёт — чистая функция от входа; запись создаётся постфактум
// для истории и аудита и никогда не читается обратно в алгоритм.
type ReflowRun struct {
	// ID — уникальный идентификатор пересчёта.
	ID uuid.UUID `json:"id"`

	// Status — SUCCEEDED или FAILED.
	Status RunStatus `json:"status"`

	// DocumentCount — количество документов во входе.
	DocumentCount int `json:"document_count"`

	// WorkOrderCount — количество заданий во входе.
	WorkOrderCount int `json:"work_order_count"`

	// ChangeCount — количество изменений в результате.
	ChangeCount int `json:"change_count"`

	// Result — результат пересчёта. Nil при FAILED.
	Result *ReflowResult `json:"result,omitempty"`

	// Error — текст ошибки при FAILED.
	Error string `json:"error,omitempty"`

	// Duration — длительность вычисления.
	Duration time.Duration `json:"duration_ns"`

	// CreatedAt — время создания записи.
	CreatedAt time.Time `json:"created_at"`
}

// NewSucceededRun создаёт запись об успешном пересчёте.
func NewSucceededRun(documentCount int, result *ReflowResult, duration time.Duration) *ReflowRun {
	return &ReflowRun{
		ID:             uuid.New(),
		Status:         RunStatusSucceeded,
		DocumentCount:  documentCount,
		WorkOrderCount: len(result.UpdatedWorkOrders),
		ChangeCount:    result.ChangeCount(),
		Result:         result,
		Duration:       duration,
		CreatedAt:      time.Now().UTC(),
	}
}

// NewFailedRun создаёт запись о неудачном пересчёте.
func NewFailedRun(documentCount, workOrderCount int, err error, duration time.Duration) *ReflowRun {
	return &ReflowRun{
		ID:             uuid.New(),
		Status:         RunStatusFailed,
		DocumentCount:  documentCount,
		WorkOrderCount: workOrderCount,
		Error:          err.Error(),
		Duration:       duration,
		CreatedAt:      time.Now().UTC(),
	}
}

// IsFailed возвращает true, если пересчёт завершился с ошибкой.
func (r *ReflowRun) IsFailed() bool {
	return r.Status == RunStatusFailed
}
