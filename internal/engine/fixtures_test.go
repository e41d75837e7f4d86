package engine

import (
	"time"

	"github.com/shaiso/Reflow/internal/domain"
)

// Тестовые фикстуры. Опорная дата — понедельник 2026-01-05.

// at возвращает момент в январе 2026 (UTC).
func at(day, hour, minute int) time.Time {
	return time.Date(2026, time.January, day, hour, minute, 0, 0, time.UTC)
}

// workCenter создаёт рабочий центр для тестов.
func workCenter(name string, shifts []domain.Shift, windows ...domain.MaintenanceWindow) *domain.WorkCenter {
	return &domain.WorkCenter{
		Name:               name,
		Shifts:             shifts,
		MaintenanceWindows: windows,
	}
}

// mondayShift — смена понедельник 08:00–17:00.
func mondayShift() []domain.Shift {
	return []domain.Shift{{DayOfWeek: 1, StartHour: 8, EndHour: 17}}
}

// workOrder создаёт задание с валидными значениями по умолчанию:
// понедельник 08:00–10:00, 120 рабочих минут, центр WC-001.
func workOrder(number string, deps ...string) domain.WorkOrder {
	return domain.WorkOrder{
		WorkOrderNumber:       number,
		ManufacturingOrderID:  "MO-" + number,
		WorkCenterID:          "WC-001",
		StartDate:             at(5, 8, 0),
		EndDate:               at(5, 10, 0),
		DurationMinutes:       120,
		IsMaintenance:         false,
		DependsOnWorkOrderIDs: deps,
	}
}
