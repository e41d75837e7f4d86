// Package engine содержит ядро пересчёта расписания.
//
// Включает:
//   - calendar.go — доступность центра по сменам и окнам обслуживания
//   - workflow.go — DAG зависимостей заданий и топологический порядок
//   - slots.go    — поиск первого свободного интервала на ресурсе
//   - reflow.go   — оркестрация полного пересчёта
//
// Весь пакет — чистые функции без I/O: каждый пересчёт детерминирован
// и зависит только от входа.
package engine
