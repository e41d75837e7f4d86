package engine

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/shaiso/Reflow/internal/domain"
)

// Input — вход пересчёта: уже провалидированные коллекции документов.
//
// ManufacturingOrders принимаются для полноты контракта, но алгоритмом
// не используются.
type Input struct {
	WorkOrders          []domain.WorkOrder
	WorkCenters         []domain.WorkCenter
	ManufacturingOrders []domain.ManufacturingOrder
}

// Reflow пересчитывает расписание пакета заданий.
//
// Алгоритм:
//  1. Задания делятся на maintenance и подвижные; каждая группа сортируется
//     по исходному StartDate, maintenance идут первыми. В таком порядке
//     строится граф — при прочих равных топологический порядок
//     предпочитает задания обслуживания.
//  2. Задания обходятся в топологическом порядке. Maintenance-задания
//     не двигаются: их интервал бронируется как есть. Для подвижного
//     задания вычисляется самый ранний допустимый старт (после родителей,
//     в доступный момент центра), затем ищется первый свободный интервал.
//  3. Каждое фактическое изменение даты фиксируется записью Change.
//
// Любая ошибка (цикл, дубликат, неизвестная зависимость или центр,
// исчерпанный поиск интервала) прерывает пересчёт целиком.
func Reflow(input Input) (*domain.ReflowResult, error) {
	centers := make(map[string]*domain.WorkCenter, len(input.WorkCenters))
	for i := range input.WorkCenters {
		wc := &input.WorkCenters[i]
		centers[wc.Name] = wc
	}

	wf, err := BuildWorkflow(partitionAndSort(input.WorkOrders))
	if err != nil {
		return nil, err
	}

	// Состояние одного пересчёта: занятые интервалы по центрам и время
	// завершения обработанных заданий. Живёт только внутри этого вызова.
	booked := make(map[string][]Interval)
	completed := make(map[string]time.Time)

	updated := make([]domain.WorkOrder, 0, wf.Size())
	var records []domain.Change

	for _, id := range wf.TopologicalOrder() {
		wo, _ := wf.Get(id)

		if wo.IsMaintenance {
			// Время обслуживания неизменно: бронируем интервал как есть,
			// подвижные задания будут планироваться вокруг него.
			completed[id] = wo.EndDate
			booked[wo.WorkCenterID] = append(booked[wo.WorkCenterID], Interval{
				Start: wo.StartDate,
				End:   wo.EndDate,
			})
			updated = append(updated, wo)
			continue
		}

		wc, ok := centers[wo.WorkCenterID]
		if !ok {
			return nil, NewScheduleError(id, wo.WorkCenterID,
				fmt.Sprintf("work center %s not found", wo.WorkCenterID),
				ErrWorkCenterNotFound)
		}
		if !wc.HasWorkingShift() {
			return nil, NewScheduleError(id, wc.Name,
				fmt.Sprintf("work center %s has no working shift", wc.Name),
				ErrNoWorkingShift)
		}

		earliest := wo.StartDate
		startMoved := 0

		// Родители должны завершиться до старта
		for _, parentID := range wo.DependsOnWorkOrderIDs {
			done, processed := completed[parentID]
			if !processed || !done.After(earliest) {
				continue
			}
			records = append(records, domain.Change{
				WorkOrderNumber: id,
				Field:           domain.FieldStartDate,
				OldValue:        earliest,
				NewValue:        done,
				Reason: fmt.Sprintf("it has to wait for %s to complete at %s",
					parentID, domain.FormatTime(done)),
			})
			earliest = done
			startMoved++
		}

		// Старт должен попадать в доступный момент центра
		if next := NextAvailableMoment(wc, earliest); !next.Equal(earliest) {
			records = append(records, domain.Change{
				WorkOrderNumber: id,
				Field:           domain.FieldStartDate,
				OldValue:        earliest,
				NewValue:        next,
				Reason: fmt.Sprintf("%s has no shift or is under maintenance at %s",
					wc.Name, domain.FormatTime(earliest)),
			})
			earliest = next
			startMoved++
		}

		slot, err := FirstFreeSlot(wc, booked[wo.WorkCenterID], earliest, wo.DurationMinutes)
		if err != nil {
			var se *ScheduleError
			if errors.As(err, &se) && se.WorkOrder == "" {
				se.WorkOrder = id
			}
			return nil, err
		}
		if slot.Start.After(earliest) {
			records = append(records, domain.Change{
				WorkOrderNumber: id,
				Field:           domain.FieldStartDate,
				OldValue:        earliest,
				NewValue:        slot.Start,
				Reason: fmt.Sprintf("%s is busy with another work order at %s",
					wc.Name, domain.FormatTime(earliest)),
			})
			startMoved++
		}

		// Запрошенный EndDate может не сходиться с длительностью по
		// календарю даже при неизменном старте — фиксируем отдельно.
		if startMoved == 0 && !slot.End.Equal(wo.EndDate) {
			records = append(records, domain.Change{
				WorkOrderNumber: id,
				Field:           domain.FieldEndDate,
				OldValue:        wo.EndDate,
				NewValue:        slot.End,
				Reason: fmt.Sprintf("%d working minutes on %s end at %s",
					wo.DurationMinutes, wc.Name, domain.FormatTime(slot.End)),
			})
		}

		completed[id] = slot.End
		booked[wo.WorkCenterID] = append(booked[wo.WorkCenterID], slot)
		updated = append(updated, wo.WithSchedule(slot.Start, slot.End))
	}

	result := &domain.ReflowResult{
		UpdatedWorkOrders: updated,
		Changes:           make([]string, len(records)),
		Explanation:       make([]string, len(records)),
		Records:           records,
	}
	for i, c := range records {
		result.Changes[i] = c.String()
		result.Explanation[i] = c.Explain()
	}
	return result, nil
}

// partitionAndSort делит задания на maintenance и подвижные, сортирует
// каждую группу по исходному StartDate (стабильно) и возвращает
// maintenance ++ movable.
func partitionAndSort(orders []domain.WorkOrder) []domain.WorkOrder {
	var maintenance, movable []domain.WorkOrder
	for _, wo := range orders {
		if wo.IsMaintenance {
			maintenance = append(maintenance, wo)
		} else {
			movable = append(movable, wo)
		}
	}

	byStart := func(a, b domain.WorkOrder) int {
		return a.StartDate.Compare(b.StartDate)
	}
	slices.SortStableFunc(maintenance, byStart)
	slices.SortStableFunc(movable, byStart)

	return append(maintenance, movable...)
}
