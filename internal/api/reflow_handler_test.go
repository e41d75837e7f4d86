package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newTestHandler создаёт Handler без БД и RabbitMQ:
// пересчёт работает, история и события отключены.
func newTestHandler() *Handler {
	return NewHandler(Config{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	newTestHandler().RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

const reflowBatch = `{
	"documents": [
		{
			"docId": "doc-1",
			"docType": "workCenter",
			"data": {
				"name": "WC-001",
				"shifts": [{"dayOfWeek": 1, "startHour": 8, "endHour": 17}],
				"maintenanceWindows": []
			}
		},
		{
			"docId": "doc-2",
			"docType": "workOrder",
			"data": {
				"workOrderNumber": "WO-001",
				"manufacturingOrderId": "MO-001",
				"workCenterId": "WC-001",
				"startDate": "2026-01-05T08:00:00Z",
				"endDate": "2026-01-05T10:00:00Z",
				"durationMinutes": 120,
				"isMaintenance": false,
				"dependsOnWorkOrderIds": []
			}
		},
		{
			"docId": "doc-3",
			"docType": "workOrder",
			"data": {
				"workOrderNumber": "WO-002",
				"manufacturingOrderId": "MO-001",
				"workCenterId": "WC-001",
				"startDate": "2026-01-05T09:00:00Z",
				"endDate": "2026-01-05T11:00:00Z",
				"durationMinutes": 120,
				"isMaintenance": false,
				"dependsOnWorkOrderIds": []
			}
		}
	]
}`

func TestProcessReflow_Success(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/reflow", "application/json",
		strings.NewReader(reflowBatch))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}

	var dr struct {
		Data ProcessReflowResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(dr.Data.UpdatedWorkOrders) != 2 {
		t.Errorf("expected 2 work orders, got %d", len(dr.Data.UpdatedWorkOrders))
	}
	if len(dr.Data.Changes) != 1 {
		t.Fatalf("expected 1 change, got %v", dr.Data.Changes)
	}

	want := "WO-002 changed the startDate from 2026-01-05T09:00:00Z to 2026-01-05T10:00:00Z"
	if dr.Data.Changes[0] != want {
		t.Errorf("change mismatch:\n got %q\nwant %q", dr.Data.Changes[0], want)
	}
}

func TestProcessReflow_InvalidBody(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/reflow", "application/json",
		strings.NewReader("not json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestProcessReflow_EmptyDocuments(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/reflow", "application/json",
		strings.NewReader(`{"documents": []}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestProcessReflow_UnknownDocType(t *testing.T) {
	srv := newTestServer(t)

	body := `{"documents": [{"docId": "doc-1", "docType": "shipment", "data": {}}]}`
	resp, err := http.Post(srv.URL+"/api/v1/reflow", "application/json",
		strings.NewReader(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestProcessReflow_InvalidDate(t *testing.T) {
	srv := newTestServer(t)

	body := `{
		"documents": [{
			"docId": "doc-1",
			"docType": "workOrder",
			"data": {
				"workOrderNumber": "WO-001",
				"manufacturingOrderId": "MO-001",
				"workCenterId": "WC-001",
				"startDate": "not-a-date",
				"endDate": "2026-01-05T10:00:00Z",
				"durationMinutes": 120,
				"isMaintenance": false,
				"dependsOnWorkOrderIds": []
			}
		}]
	}`
	resp, err := http.Post(srv.URL+"/api/v1/reflow", "application/json",
		strings.NewReader(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}

	var er ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if !strings.Contains(er.Error.Message, "doc-1") {
		t.Errorf("error should name the document: %q", er.Error.Message)
	}
}

func TestProcessReflow_UnknownWorkCenter(t *testing.T) {
	srv := newTestServer(t)

	// Задание ссылается на центр, которого нет в пакете
	body := `{
		"documents": [{
			"docId": "doc-1",
			"docType": "workOrder",
			"data": {
				"workOrderNumber": "WO-001",
				"manufacturingOrderId": "MO-001",
				"workCenterId": "WC-404",
				"startDate": "2026-01-05T08:00:00Z",
				"endDate": "2026-01-05T10:00:00Z",
				"durationMinutes": 120,
				"isMaintenance": false,
				"dependsOnWorkOrderIds": []
			}
		}]
	}`
	resp, err := http.Post(srv.URL+"/api/v1/reflow", "application/json",
		strings.NewReader(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}

	var er ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if er.Error.Code != ErrCodeInvalidState {
		t.Errorf("expected INVALID_STATE, got %s", er.Error.Code)
	}
	if !strings.Contains(er.Error.Message, "WC-404") {
		t.Errorf("error should name the work center: %q", er.Error.Message)
	}
}

func TestListReflowRuns_WithoutRepo(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/reflows")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var lr struct {
		Data []ReflowRunResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(lr.Data) != 0 {
		t.Errorf("expected empty list, got %d entries", len(lr.Data))
	}
}

func TestGetReflowRun_WithoutRepo(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/reflows/3a6f9c4e-6a9f-4d3e-8f4b-111111111111")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}
