package domain

// ReflowResult — итог одного пересчёта расписания.
//
// Changes и Explanation параллельны списку Records: по одной строке на
// каждую запись об изменении, в порядке их возникновения.
type ReflowResult struct {
	// UpdatedWorkOrders — задания с финальными датами, в порядке обработки.
	UpdatedWorkOrders []WorkOrder `json:"updatedWorkOrders"`

	// Changes — машинно-ориентированные строки изменений.
	Changes []string `json:"changes"`

	// Explanation — те же изменения с причиной ("... because <reason>").
	Explanation []string `json:"explanation"`

	// Records — структурированные записи изменений (не сериализуются:
	// внешний контракт — строки выше).
	Records []Change `json:"-"`
}

// ChangeCount возвращает количество изменений.
func (r *ReflowResult) ChangeCount() int {
	return len(r.Records)
}
