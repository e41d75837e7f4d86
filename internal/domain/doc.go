// Package domain содержит основные сущности системы Reflow.
//
// Сущности:
//   - WorkOrder          — производственное задание с длительностью и зависимостями
//   - WorkCenter         — ресурс с недельным календарём смен и окнами обслуживания
//   - ManufacturingOrder — производственный заказ (контекст, планированием не используется)
//   - Change             — запись об одном изменении расписания
//   - ReflowResult       — итог одного пересчёта расписания
//   - ReflowRun          — сохранённая запись о выполненном пересчёте
//
// Domain не зависит от других internal-пакетов и не содержит I/O.
package domain
