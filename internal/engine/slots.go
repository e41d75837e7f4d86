package engine

import (
	"fmt"
	"slices"
	"time"

	"github.com/shaiso/Reflow/internal/domain"
)

// Interval — полуоткрытый интервал времени [Start, End),
// закреплённый за одним рабочим центром на время пересчёта.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps возвращает true, если интервалы пересекаются.
// Соприкосновение границ пересечением не считается.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// FirstFreeSlot находит самый ранний интервал на центре, который:
//   - начинается не раньше earliest,
//   - вмещает durationMinutes рабочих минут по календарю центра,
//   - не пересекается ни с одним из booked.
//
// booked может быть не отсортирован (функция сортирует копию сама),
// но интервалы не должны пересекаться между собой.
//
// Поиск ограничен len(booked)+1 попытками: каждая попытка либо успешна,
// либо сдвигает кандидата за конец ровно одного занятого интервала.
func FirstFreeSlot(wc *domain.WorkCenter, booked []Interval, earliest time.Time, durationMinutes int) (Interval, error) {
	if !wc.HasWorkingShift() {
		return Interval{}, NewScheduleError("", wc.Name,
			fmt.Sprintf("work center %s has no working shift", wc.Name),
			ErrNoWorkingShift)
	}

	sorted := slices.Clone(booked)
	slices.SortFunc(sorted, func(a, b Interval) int {
		return a.Start.Compare(b.Start)
	})

	candidate := NextAvailableMoment(wc, earliest)
	for attempt := 0; attempt <= len(sorted); attempt++ {
		slot := Interval{
			Start: candidate,
			End:   AddWorkingMinutes(wc, candidate, durationMinutes),
		}

		conflict, ok := firstConflict(sorted, slot)
		if !ok {
			return slot, nil
		}

		candidate = NextAvailableMoment(wc, conflict.End)
	}

	return Interval{}, NewScheduleError("", wc.Name,
		fmt.Sprintf("no free slot on work center %s starting from %s",
			wc.Name, domain.FormatTime(earliest)),
		ErrNoFreeSlot)
}

// firstConflict возвращает первый (по времени начала) занятый интервал,
// пересекающийся со slot.
func firstConflict(sorted []Interval, slot Interval) (Interval, bool) {
	for _, b := range sorted {
		if slot.Overlaps(b) {
			return b, true
		}
	}
	return Interval{}, false
}
