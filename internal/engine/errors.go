package engine

import "errors"

// Ошибки построения графа зависимостей.
var (
	// ErrDuplicateWorkOrder — два задания с одинаковым номером.
	ErrDuplicateWorkOrder = errors.New("work order already exists")

	// ErrDependencyNotFound — задание ссылается на неизвестного родителя.
	ErrDependencyNotFound = errors.New("dependency work order not found")

	// ErrCyclicDependency — обнаружен цикл в зависимостях.
	ErrCyclicDependency = errors.New("cyclic dependency detected")
)

// Ошибки планирования.
var (
	// ErrWorkCenterNotFound — задание ссылается на неизвестный рабочий центр.
	ErrWorkCenterNotFound = errors.New("work center not found")

	// ErrNoFreeSlot — поиск свободного интервала исчерпал попытки.
	ErrNoFreeSlot = errors.New("no free slot found")

	// ErrNoWorkingShift — у центра нет ни одной смены ненулевой ширины,
	// доступность недостижима.
	ErrNoWorkingShift = errors.New("work center has no working shift")
)

// ScheduleError — ошибка планирования с контекстом.
//
// Любая такая ошибка фатальна: пересчёт прерывается целиком,
// частичный результат не возвращается.
type ScheduleError struct {
	WorkOrder string // номер задания, на котором произошла ошибка
	Related   string // связанная сущность (родитель, рабочий центр)
	Message   string // описание ошибки
	Err       error  // базовая ошибка
}

// Error реализует интерфейс error.
func (e *ScheduleError) Error() string {
	if e.WorkOrder != "" {
		return "work order " + e.WorkOrder + ": " + e.Message
	}
	return e.Message
}

// Unwrap возвращает базовую ошибку.
func (e *ScheduleError) Unwrap() error {
	return e.Err
}

// NewScheduleError создаёт новую ошибку планирования.
func NewScheduleError(workOrder, related, message string, err error) *ScheduleError {
	return &ScheduleError{
		WorkOrder: workOrder,
		Related:   related,
		Message:   message,
		Err:       err,
	}
}
