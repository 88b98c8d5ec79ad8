// Package webhook is the typed client for the third-party webhook
// backend that owns all business data: menu, delivery zones, clients,
// orders and historical sales. Responses are normalized into typed
// records at this boundary; rows that fail validation are skipped and
// logged rather than silently coerced.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"ComandaApp/app/models"
)

// Client talks JSON over HTTP to the webhook backend. A request timeout
// is always set; a hung backend call must not hang the caller.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a backend client for baseURL. token may be empty
// for an unauthenticated backend.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading backend response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("backend returned %d: %s", resp.StatusCode, truncate(string(data), 200))
	}

	return data, nil
}

func (c *Client) getRows(ctx context.Context, path string) ([]map[string]any, error) {
	data, err := c.do(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("error decoding backend response: %w", err)
	}
	return rows, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error encoding payload: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, path, bytes.NewReader(body), "application/json")
	return err
}

// FetchMenu retrieves the current menu.
func (c *Client) FetchMenu(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := c.getRows(ctx, "/menu")
	if err != nil {
		return nil, err
	}

	items := make([]models.MenuItem, 0, len(rows))
	for i, row := range rows {
		item, err := NormalizeMenuItem(row)
		if err != nil {
			log.Printf("Skipping invalid menu row %d: %v", i+1, err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// UpdateMenuAvailability toggles a dish on or off the customer menu.
func (c *Client) UpdateMenuAvailability(ctx context.Context, id int, available bool) error {
	return c.postJSON(ctx, "/menu/availability", map[string]any{
		"id":        id,
		"available": available,
	})
}

// FetchDeliveryAreas retrieves the delivery zone price list.
func (c *Client) FetchDeliveryAreas(ctx context.Context) ([]models.DeliveryArea, error) {
	rows, err := c.getRows(ctx, "/delivery-areas")
	if err != nil {
		return nil, err
	}

	areas := make([]models.DeliveryArea, 0, len(rows))
	for i, row := range rows {
		area, err := NormalizeDeliveryArea(row)
		if err != nil {
			log.Printf("Skipping invalid delivery area row %d: %v", i+1, err)
			continue
		}
		areas = append(areas, area)
	}
	return areas, nil
}

// SaveDeliveryArea creates or updates a zone's delivery fee.
func (c *Client) SaveDeliveryArea(ctx context.Context, area models.DeliveryArea) error {
	return c.postJSON(ctx, "/delivery-areas", area)
}

// FetchClients retrieves the customer records.
func (c *Client) FetchClients(ctx context.Context) ([]models.Client, error) {
	rows, err := c.getRows(ctx, "/clients")
	if err != nil {
		return nil, err
	}

	clients := make([]models.Client, 0, len(rows))
	for i, row := range rows {
		client, err := NormalizeClient(row)
		if err != nil {
			log.Printf("Skipping invalid client row %d: %v", i+1, err)
			continue
		}
		clients = append(clients, client)
	}
	return clients, nil
}

// SaveClient creates or updates a customer record.
func (c *Client) SaveClient(ctx context.Context, client models.Client) error {
	return c.postJSON(ctx, "/clients", client)
}

// FetchOrders retrieves the current order sheet.
func (c *Client) FetchOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := c.getRows(ctx, "/orders")
	if err != nil {
		return nil, err
	}

	orders := make([]models.Order, 0, len(rows))
	for i, row := range rows {
		order, err := NormalizeOrder(row)
		if err != nil {
			log.Printf("Skipping invalid order row %d: %v", i+1, err)
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// CreateOrder appends a new order to the backend sheet.
func (c *Client) CreateOrder(ctx context.Context, order models.Order) error {
	return c.postJSON(ctx, "/orders", order)
}

// UpdateOrderStatus posts a status change for one order row.
func (c *Client) UpdateOrderStatus(ctx context.Context, row int, status models.OrderStatus) error {
	return c.postJSON(ctx, "/orders/status", models.StatusUpdate{
		Row:       row,
		Status:    status,
		UpdatedAt: time.Now().UTC(),
	})
}

// FetchSales retrieves historical sales between two dates (inclusive,
// "2006-01-02" format).
func (c *Client) FetchSales(ctx context.Context, from, to string) ([]models.SaleRecord, error) {
	rows, err := c.getRows(ctx, "/sales?from="+from+"&to="+to)
	if err != nil {
		return nil, err
	}

	sales := make([]models.SaleRecord, 0, len(rows))
	for i, row := range rows {
		sale, err := NormalizeSale(row)
		if err != nil {
			log.Printf("Skipping invalid sales row %d: %v", i+1, err)
			continue
		}
		sales = append(sales, sale)
	}
	return sales, nil
}

// UploadDictation posts a merged dictation WAV to the transcription
// webhook as multipart form data and returns the transcribed text.
func (c *Client) UploadDictation(ctx context.Context, wav []byte, filename string) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("audio", filename)
	if err != nil {
		return "", fmt.Errorf("error building upload: %w", err)
	}
	if _, err := part.Write(wav); err != nil {
		return "", fmt.Errorf("error building upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("error building upload: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, "/dictation", &body, mw.FormDataContentType())
	if err != nil {
		return "", err
	}

	var resp struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("error decoding transcription response: %w", err)
	}
	return resp.Text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
