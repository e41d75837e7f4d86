// Package api содержит HTTP API сервер.
//
// Структура:
//   - handler.go        — Handler с DI (репозиторий, publisher, logger)
//   - routes.go         — регистрация маршрутов
//   - middleware.go     — middleware (logging, recovery)
//   - response.go       — унифицированные JSON-ответы и обработка ошибок
//   - dto.go            — Data Transfer Objects (request/response)
//   - validate.go       — валидатор входных документов
//   - reflow_handler.go — обработчик пересчёта расписания
//   - run_handler.go    — обработчики истории пересчётов
//
// API предоставляет REST endpoints для запуска пересчёта и просмотра
// его истории.
package api
