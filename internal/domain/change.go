package domain

import (
	"fmt"
	"time"
)

// ChangeField — поле задания, изменённое при пересчёте.
type ChangeField string

const (
	FieldStartDate ChangeField = "startDate"
	FieldEndDate   ChangeField = "endDate"
)

// Change — запись об одном изменении расписания.
//
// Запись порождается только когда новое значение действительно отличается
// от предыдущего на данном шаге алгоритма.
type Change struct {
	// WorkOrderNumber — задание, у которого изменилось поле.
	WorkOrderNumber string `json:"workOrderNumber"`

	// Field — изменённое поле: startDate или endDate.
	Field ChangeField `json:"field"`

	// OldValue — значение до изменения.
	OldValue time.Time `json:"oldValue"`

	// NewValue — значение после изменения.
	NewValue time.Time `json:"newValue"`

	// Reason — причина изменения (для человекочитаемого объяснения).
	Reason string `json:"reason"`
}

// String возвращает машинно-ориентированную строку изменения:
// "<id> changed the <field> from <old> to <new>".
// Метки времени нормализуются в UTC.
func (c Change) String() string {
	return fmt.Sprintf("%s changed the %s from %s to %s",
		c.WorkOrderNumber,
		c.Field,
		FormatTime(c.OldValue),
		FormatTime(c.NewValue),
	)
}

// Explain возвращает строку изменения с причиной:
// "<id> changed the <field> from <old> to <new> because <reason>".
func (c Change) Explain() string {
	return c.String() + " because " + c.Reason
}

// FormatTime форматирует момент времени для вывода: UTC, RFC 3339.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
