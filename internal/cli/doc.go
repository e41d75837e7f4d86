// Package cli реализует инструмент командной строки Reflow.
//
// # Обзор
//
// CLI — клиентская утилита для взаимодействия с Reflow API.
// Работает через HTTP, не импортирует внутренние пакеты системы.
// CLI используется для запуска пересчёта и просмотра его истории.
//
// # Ключевые компоненты
//
// ## Client
//
// HTTP-клиент для Reflow API. Инкапсулирует все HTTP-запросы,
// парсинг ответов (DataResponse, ListResponse, ErrorResponse)
// и обработку ошибок.
//
//	client := cli.NewClient("http://localhost:8080")
//	result, err := client.ProcessReflow(documents)
//
// ## Output
//
// Форматирование вывода. Поддерживает два режима:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON (json.MarshalIndent) — с флагом --json
//
// Данные выводятся в stdout, сообщения (Success/Error) — в stderr.
// Это позволяет использовать pipe: reflow runs list --json | jq .
//
// ## Commands
//
// Cobra-команды:
//   - plan: пересчёт пакета документов из JSON-файла
//   - runs: list, show — история пересчётов
//
// Каждая группа создаётся через фабричную функцию (NewPlanCmd и т.д.),
// принимающую clientFn и outputFn — замыкания для ленивого создания
// Client и Output после парсинга PersistentFlags.
package cli
