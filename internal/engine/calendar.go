package engine

import (
	"time"

	"github.com/shaiso/Reflow/internal/domain"
)

// IsInShift возвращает true, если момент попадает в какую-либо смену центра.
//
// Смены проверяются по гражданскому времени момента: день недели
// (time.Weekday, воскресенье = 0) и час в полуоткрытом окне
// [StartHour, EndHour).
func IsInShift(wc *domain.WorkCenter, t time.Time) bool {
	day := int(t.Weekday())
	hour := t.Hour()

	for _, s := range wc.Shifts {
		if s.DayOfWeek == day && s.StartHour <= hour && hour < s.EndHour {
			return true
		}
	}
	return false
}

// IsInMaintenanceWindow возвращает true, если момент попадает в окно
// обслуживания. Окна сравниваются по абсолютному времени, границы
// полуоткрытые: [StartDate, EndDate).
func IsInMaintenanceWindow(wc *domain.WorkCenter, t time.Time) bool {
	for _, w := range wc.MaintenanceWindows {
		if !t.Before(w.StartDate) && t.Before(w.EndDate) {
			return true
		}
	}
	return false
}

// IsAvailable возвращает true, если центр может работать в данный момент:
// момент в смене и не в окне обслуживания.
func IsAvailable(wc *domain.WorkCenter, t time.Time) bool {
	return IsInShift(wc, t) && !IsInMaintenanceWindow(wc, t)
}

// NextAvailableMoment возвращает ближайший доступный момент, начиная с t.
// Если t уже доступен — возвращает его без изменений.
//
// Поиск идёт фиксированным шагом в одну минуту. Требует центра хотя бы
// с одной сменой ненулевой ширины (wc.HasWorkingShift()), иначе цикл
// не завершится — вызывающий обязан проверить это заранее.
func NextAvailableMoment(wc *domain.WorkCenter, t time.Time) time.Time {
	for !IsAvailable(wc, t) {
		t = t.Add(time.Minute)
	}
	return t
}

// AddWorkingMinutes возвращает момент, к которому с начала start накопится
// minutes рабочих минут по календарю центра.
//
// Минута "тратится" только когда текущий момент доступен; на недоступных
// участках (вне смены, окно обслуживания) время перематывается вперёд через
// NextAvailableMoment без расхода минут. Так задание "переживает" окно
// обслуживания, не засчитывая его как работу.
//
// При minutes = 0 возвращает start без изменений.
func AddWorkingMinutes(wc *domain.WorkCenter, start time.Time, minutes int) time.Time {
	t := start
	for remaining := minutes; remaining > 0; remaining-- {
		if !IsAvailable(wc, t) {
			t = NextAvailableMoment(wc, t)
		}
		t = t.Add(time.Minute)
	}
	return t
}
