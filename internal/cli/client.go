package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// --- Response types (дублируются из api/dto.go, CLI не импортирует internal/api) ---

// WorkOrderResponse — задание из ответа пересчёта.
type WorkOrderResponse struct {
	WorkOrderNumber       string   `json:"workOrderNumber"`
	ManufacturingOrderID  string   `json:"manufacturingOrderId"`
	WorkCenterID          string   `json:"workCenterId"`
	StartDate             string   `json:"startDate"`
	EndDate               string   `json:"endDate"`
	DurationMinutes       int      `json:"durationMinutes"`
	IsMaintenance         bool     `json:"isMaintenance"`
	DependsOnWorkOrderIDs []string `json:"dependsOnWorkOrderIds"`
}

// ReflowResponse — результат пересчёта из API.
type ReflowResponse struct {
	RunID             string              `json:"runId"`
	UpdatedWorkOrders []WorkOrderResponse `json:"updatedWorkOrders"`
	Changes           []string            `json:"changes"`
	Explanation       []string            `json:"explanation"`
}

// ReflowRunResponse — запись истории пересчётов из API.
type ReflowRunResponse struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	DocumentCount  int    `json:"document_count"`
	WorkOrderCount int    `json:"work_order_count"`
	ChangeCount    int    `json:"change_count"`
	Result         any    `json:"result,omitempty"`
	Error          string `json:"error,omitempty"`
	DurationMS     int64  `json:"duration_ms"`
	CreatedAt      string `json:"created_at"`
}

// --- API response wrappers ---

type dataResponse struct {
	Data json.RawMessage `json:"data"`
}

type listResponse struct {
	Data  json.RawMessage `json:"data"`
	Total int             `json:"total"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// --- Client ---

// Client — HTTP-клиент для Reflow API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиент для API.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// --- Reflow ---

// ProcessReflow отправляет пакет документов на пересчёт.
// documents — сырой JSON-массив документов из файла.
func (c *Client) ProcessReflow(documents json.RawMessage) (*ReflowResponse, error) {
	body := map[string]json.RawMessage{"documents": documents}
	var result ReflowResponse
	err := c.post("/api/v1/reflow", body, &result)
	return &result, err
}

// --- Runs ---

// ListRunsOpts — параметры фильтрации истории пересчётов.
type ListRunsOpts struct {
	Status string
	Limit  int
}

// ListRuns возвращает историю пересчётов.
func (c *Client) ListRuns(opts ListRunsOpts) ([]ReflowRunResponse, error) {
	params := url.Values{}
	if opts.Status != "" {
		params.Set("status", opts.Status)
	}
	if opts.Limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", opts.Limit))
	}

	var runs []ReflowRunResponse
	err := c.list("/api/v1/reflows", params, &runs)
	return runs, err
}

// GetRun возвращает запись пересчёта по ID.
func (c *Client) GetRun(id string) (*ReflowRunResponse, error) {
	var run ReflowRunResponse
	err := c.get("/api/v1/reflows/"+id, &run)
	return &run, err
}

// --- HTTP helpers ---

func (c *Client) get(path string, result any) error {
	return c.doData(http.MethodGet, path, nil, result)
}

func (c *Client) post(path string, body any, result any) error {
	return c.doData(http.MethodPost, path, body, result)
}

func (c *Client) list(path string, params url.Values, result any) error {
	if len(params) > 0 {
		path = path + "?" + params.Encode()
	}

	resp, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	var lr listResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return json.Unmarshal(lr.Data, result)
}

func (c *Client) doData(method, path string, body any, result any) error {
	resp, err := c.do(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := c.checkError(resp); err != nil {
		return err
	}

	// 204 No Content
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var dr dataResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if result != nil {
		return json.Unmarshal(dr.Data, result)
	}
	return nil
}

func (c *Client) do(method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

func (c *Client) checkError(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}

	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return fmt.Errorf("API error: HTTP %d", resp.StatusCode)
	}

	return fmt.Errorf("%s: %s", er.Error.Code, er.Error.Message)
}
