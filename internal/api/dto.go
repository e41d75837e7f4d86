package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Reflow/internal/domain"
	"github.com/shaiso/Reflow/internal/engine"
)

// Типы документов во входном пакете.
const (
	DocTypeWorkOrder          = "workOrder"
	DocTypeWorkCenter         = "workCenter"
	DocTypeManufacturingOrder = "manufacturingOrder"
)

// ProcessReflowRequest — запрос на пересчёт: пакет документов.
type ProcessReflowRequest struct {
	Documents []ReflowDocument `json:"documents" validate:"required,min=1,dive"`
}

// ReflowDocument — tagged union: тип полезной нагрузки определяется
// полем docType, данные разбираются вторым проходом по Data.
type ReflowDocument struct {
	DocID   string          `json:"docId" validate:"required"`
	DocType string          `json:"docType" validate:"required,oneof=workOrder workCenter manufacturingOrder"`
	Data    json.RawMessage `json:"data" validate:"required"`
}

// WorkOrderData — полезная нагрузка документа workOrder.
// Даты передаются строками RFC 3339.
type WorkOrderData struct {
	WorkOrderNumber       string   `json:"workOrderNumber" validate:"required"`
	ManufacturingOrderID  string   `json:"manufacturingOrderId" validate:"required"`
	WorkCenterID          string   `json:"workCenterId" validate:"required"`
	StartDate             string   `json:"startDate" validate:"required"`
	EndDate               string   `json:"endDate" validate:"required"`
	DurationMinutes       int      `json:"durationMinutes" validate:"gte=0"`
	IsMaintenance         bool     `json:"isMaintenance"`
	DependsOnWorkOrderIDs []string `json:"dependsOnWorkOrderIds"`
}

// WorkCenterData — полезная нагрузка документа workCenter.
type WorkCenterData struct {
	Name               string                  `json:"name" validate:"required"`
	Shifts             []ShiftData             `json:"shifts" validate:"dive"`
	MaintenanceWindows []MaintenanceWindowData `json:"maintenanceWindows" validate:"dive"`
}

// ShiftData — недельная смена рабочего центра.
type ShiftData struct {
	DayOfWeek int `json:"dayOfWeek" validate:"gte=0,lte=6"`
	StartHour int `json:"startHour" validate:"gte=0,lte=23"`
	EndHour   int `json:"endHour" validate:"gte=0,lte=23"`
}

// MaintenanceWindowData — окно обслуживания рабочего центра.
type MaintenanceWindowData struct {
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
	Reason    string `json:"reason,omitempty"`
}

// ManufacturingOrderData — полезная нагрузка документа manufacturingOrder.
type ManufacturingOrderData struct {
	ManufacturingOrderNumber string `json:"manufacturingOrderNumber" validate:"required"`
	ItemID                   string `json:"itemId" validate:"required"`
	Quantity                 int    `json:"quantity" validate:"gte=0"`
	DueDate                  string `json:"dueDate" validate:"required"`
}

// parseDate разбирает дату RFC 3339 из документа.
func parseDate(docID, field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("document %s: invalid %s: %q", docID, field, value)
	}
	return t.UTC(), nil
}

// ToWorkOrder конвертирует данные документа в domain.WorkOrder.
func (d WorkOrderData) ToWorkOrder(docID string) (domain.WorkOrder, error) {
	start, err := parseDate(docID, "startDate", d.StartDate)
	if err != nil {
		return domain.WorkOrder{}, err
	}
	end, err := parseDate(docID, "endDate", d.EndDate)
	if err != nil {
		return domain.WorkOrder{}, err
	}

	return domain.WorkOrder{
		WorkOrderNumber:       d.WorkOrderNumber,
		ManufacturingOrderID:  d.ManufacturingOrderID,
		WorkCenterID:          d.WorkCenterID,
		StartDate:             start,
		EndDate:               end,
		DurationMinutes:       d.DurationMinutes,
		IsMaintenance:         d.IsMaintenance,
		DependsOnWorkOrderIDs: d.DependsOnWorkOrderIDs,
	}, nil
}

// ToWorkCenter конвертирует данные документа в domain.WorkCenter.
func (d WorkCenterData) ToWorkCenter(docID string) (domain.WorkCenter, error) {
	wc := domain.WorkCenter{Name: d.Name}

	for _, s := range d.Shifts {
		wc.Shifts = append(wc.Shifts, domain.Shift{
			DayOfWeek: s.DayOfWeek,
			StartHour: s.StartHour,
			EndHour:   s.EndHour,
		})
	}

	for _, w := range d.MaintenanceWindows {
		start, err := parseDate(docID, "maintenanceWindows.startDate", w.StartDate)
		if err != nil {
			return domain.WorkCenter{}, err
		}
		end, err := parseDate(docID, "maintenanceWindows.endDate", w.EndDate)
		if err != nil {
			return domain.WorkCenter{}, err
		}
		wc.MaintenanceWindows = append(wc.MaintenanceWindows, domain.MaintenanceWindow{
			StartDate: start,
			EndDate:   end,
			Reason:    w.Reason,
		})
	}

	return wc, nil
}

// ToManufacturingOrder конвертирует данные документа в domain.ManufacturingOrder.
func (d ManufacturingOrderData) ToManufacturingOrder(docID string) (domain.ManufacturingOrder, error) {
	due, err := parseDate(docID, "dueDate", d.DueDate)
	if err != nil {
		return domain.ManufacturingOrder{}, err
	}

	return domain.ManufacturingOrder{
		ManufacturingOrderNumber: d.ManufacturingOrderNumber,
		ItemID:                   d.ItemID,
		Quantity:                 d.Quantity,
		DueDate:                  due,
	}, nil
}

// ProcessReflowResponse — ответ на пересчёт.
type ProcessReflowResponse struct {
	RunID             uuid.UUID          `json:"runId"`
	UpdatedWorkOrders []domain.WorkOrder `json:"updatedWorkOrders"`
	Changes           []string           `json:"changes"`
	Explanation       []string           `json:"explanation"`
}

// ReflowResponseFromResult собирает ответ из результата пересчёта.
func ReflowResponseFromResult(runID uuid.UUID, result *domain.ReflowResult) ProcessReflowResponse {
	return ProcessReflowResponse{
		RunID:             runID,
		UpdatedWorkOrders: result.UpdatedWorkOrders,
		Changes:           result.Changes,
		Explanation:       result.Explanation,
	}
}

// ReflowRunResponse — запись истории пересчётов.
type ReflowRunResponse struct {
	ID             uuid.UUID            `json:"id"`
	Status         string               `json:"status"`
	DocumentCount  int                  `json:"document_count"`
	WorkOrderCount int                  `json:"work_order_count"`
	ChangeCount    int                  `json:"change_count"`
	Result         *domain.ReflowResult `json:"result,omitempty"`
	Error          string               `json:"error,omitempty"`
	DurationMS     int64                `json:"duration_ms"`
	CreatedAt      time.Time            `json:"created_at"`
}

// RunFromDomain конвертирует domain.ReflowRun в ReflowRunResponse.
func RunFromDomain(r domain.ReflowRun) ReflowRunResponse {
	return ReflowRunResponse{
		ID:             r.ID,
		Status:         string(r.Status),
		DocumentCount:  r.DocumentCount,
		WorkOrderCount: r.WorkOrderCount,
		ChangeCount:    r.ChangeCount,
		Result:         r.Result,
		Error:          r.Error,
		DurationMS:     r.Duration.Milliseconds(),
		CreatedAt:      r.CreatedAt,
	}
}

// buildInput разбирает документы пакета в коллекции входа пересчёта.
//
// Полезная нагрузка каждого документа разбирается и валидируется по типу
// из docType: envelope валидируется отдельно до вызова.
func (h *Handler) buildInput(docs []ReflowDocument) (engine.Input, error) {
	var input engine.Input

	for _, doc := range docs {
		switch doc.DocType {
		case DocTypeWorkOrder:
			var data WorkOrderData
			if err := h.decodeData(doc, &data); err != nil {
				return engine.Input{}, err
			}
			wo, err := data.ToWorkOrder(doc.DocID)
			if err != nil {
				return engine.Input{}, err
			}
			input.WorkOrders = append(input.WorkOrders, wo)

		case DocTypeWorkCenter:
			var data WorkCenterData
			if err := h.decodeData(doc, &data); err != nil {
				return engine.Input{}, err
			}
			wc, err := data.ToWorkCenter(doc.DocID)
			if err != nil {
				return engine.Input{}, err
			}
			input.WorkCenters = append(input.WorkCenters, wc)

		case DocTypeManufacturingOrder:
			var data ManufacturingOrderData
			if err := h.decodeData(doc, &data); err != nil {
				return engine.Input{}, err
			}
			mo, err := data.ToManufacturingOrder(doc.DocID)
			if err != nil {
				return engine.Input{}, err
			}
			input.ManufacturingOrders = append(input.ManufacturingOrders, mo)

		default:
			return engine.Input{}, fmt.Errorf("document %s: unknown docType %q", doc.DocID, doc.DocType)
		}
	}

	return input, nil
}

// decodeData разбирает и валидирует полезную нагрузку документа.
func (h *Handler) decodeData(doc ReflowDocument, dst any) error {
	if err := json.Unmarshal(doc.Data, dst); err != nil {
		return fmt.Errorf("document %s: %w", doc.DocID, err)
	}
	if err := h.validate.Struct(dst); err != nil {
		return fmt.Errorf("document %s: %w", doc.DocID, err)
	}
	return nil
}
