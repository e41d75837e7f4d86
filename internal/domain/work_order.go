package domain

import "time"

// WorkOrder — производственное задание.
//
// Задание выполняется на одном рабочем центре (WorkCenterID) и требует
// DurationMinutes рабочих минут по календарю этого центра. Задание может
// зависеть от других заданий: все родители из DependsOnWorkOrderIDs должны
// завершиться до его старта.
//
// Алгоритм пересчёта никогда не мутирует задание на месте — на каждом шаге
// порождается новое значение с обновлёнными датами.
type WorkOrder struct {
	// WorkOrderNumber — уникальный идентификатор задания.
	WorkOrderNumber string `json:"workOrderNumber"`

	// ManufacturingOrderID — ссылка на производственный заказ.
	ManufacturingOrderID string `json:"manufacturingOrderId"`

	// WorkCenterID — имя рабочего центра, на котором выполняется задание.
	WorkCenterID string `json:"workCenterId"`

	// StartDate — запрошенное (или пересчитанное) время начала.
	StartDate time.Time `json:"startDate"`

	// EndDate — запрошенное (или пересчитанное) время окончания.
	EndDate time.Time `json:"endDate"`

	// DurationMinutes — требуемое рабочее время в минутах (≥0).
	// Минуты вне смен и внутри окон обслуживания не считаются.
	DurationMinutes int `json:"durationMinutes"`

	// IsMaintenance — задание обслуживания: его время неизменяемо,
	// алгоритм планирует остальные задания вокруг него.
	IsMaintenance bool `json:"isMaintenance"`

	// DependsOnWorkOrderIDs — идентификаторы родительских заданий.
	DependsOnWorkOrderIDs []string `json:"dependsOnWorkOrderIds"`
}

// WithSchedule возвращает копию задания с новыми датами (в UTC).
func (w WorkOrder) WithSchedule(start, end time.Time) WorkOrder {
	w.StartDate = start.UTC()
	w.EndDate = end.UTC()
	return w
}
