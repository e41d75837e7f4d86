package domain

import "time"

// Shift — повторяющееся недельное окно доступности рабочего центра.
//
// Окно полуоткрытое: [StartHour, EndHour) в указанный день недели.
type Shift struct {
	// DayOfWeek — день недели, 0–6, воскресенье = 0.
	// Совпадает с нумерацией time.Weekday.
	DayOfWeek int `json:"dayOfWeek"`

	// StartHour — час начала смены, 0–23.
	StartHour int `json:"startHour"`

	// EndHour — час окончания смены, 0–23 (не включается).
	EndHour int `json:"endHour"`
}

// MaintenanceWindow — абсолютный интервал недоступности центра.
//
// Интервал полуоткрытый: [StartDate, EndDate). Внутри окна центр
// недоступен независимо от смен.
type MaintenanceWindow struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`

	// Reason — необязательное описание причины.
	Reason string `json:"reason,omitempty"`
}

// WorkCenter — рабочий центр: ресурс с календарём смен и окнами обслуживания.
//
// Смены повторяются еженедельно и проверяются по гражданскому времени
// (день недели и час момента); окна обслуживания — по абсолютному времени.
type WorkCenter struct {
	// Name — уникальное имя центра, оно же идентификатор ресурса
	// при бронировании интервалов.
	Name string `json:"name"`

	Shifts             []Shift             `json:"shifts"`
	MaintenanceWindows []MaintenanceWindow `json:"maintenanceWindows"`
}

// HasWorkingShift возвращает true, если у центра есть хотя бы одна смена
// ненулевой ширины. Центр без такой смены никогда не станет доступным —
// это вырожденный вход для планировщика.
func (wc *WorkCenter) HasWorkingShift() bool {
	for _, s := range wc.Shifts {
		if s.StartHour < s.EndHour {
			return true
		}
	}
	return false
}
