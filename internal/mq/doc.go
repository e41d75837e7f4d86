// Package mq предоставляет инфраструктуру для работы с RabbitMQ.
//
// Структура:
//   - connection.go — управление соединением с RabbitMQ (reconnect, graceful shutdown)
//   - topology.go   — объявление exchanges, queues, bindings
//   - publisher.go  — публикация сообщений в очереди
//   - consumer.go   — потребление сообщений из очередей
//
// Типы сообщений:
//   - run.completed — пересчёт завершился успешно
//   - run.failed    — пересчёт завершился с ошибкой
//
// Exchanges:
//   - reflow.runs — события пересчётов
package mq
