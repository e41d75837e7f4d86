package domain

import "time"

// ManufacturingOrder — производственный заказ.
//
// Заказы принимаются и валидируются на границе, но алгоритмом пересчёта
// не используются — это контекстные данные для потребителей результата.
type ManufacturingOrder struct {
	// ManufacturingOrderNumber — уникальный идентификатор заказа.
	ManufacturingOrderNumber string `json:"manufacturingOrderNumber"`

	// ItemID — производимая номенклатура.
	ItemID string `json:"itemId"`

	// Quantity — количество к производству.
	Quantity int `json:"quantity"`

	// DueDate — срок исполнения заказа.
	DueDate time.Time `json:"dueDate"`
}
