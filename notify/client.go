package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/caffio-app/caffio-api/models"
)

// APIOrderFetcher fetches a customer's orders from the orders endpoint. It is
// the production OrderFetcher: the same list endpoint the app screens use,
// so the poller needs no dedicated server support.
type APIOrderFetcher struct {
	baseURL    string
	customerID uint
	httpClient *http.Client
}

// NewAPIOrderFetcher creates a fetcher for the given customer against baseURL,
// e.g. "https://api.caffio.app/api/v1".
func NewAPIOrderFetcher(baseURL string, customerID uint) *APIOrderFetcher {
	return &APIOrderFetcher{
		baseURL:    baseURL,
		customerID: customerID,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type orderListResponse struct {
	Success bool           `json:"success"`
	Data    []models.Order `json:"data"`
}

// FetchOrders returns the customer's current orders
func (f *APIOrderFetcher) FetchOrders(ctx context.Context) ([]models.Order, error) {
	endpoint := fmt.Sprintf("%s/orders?customerId=%d", f.baseURL, f.customerID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build orders request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("orders request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("orders request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read orders response: %w", err)
	}

	var parsed orderListResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode orders response: %w", err)
	}
	if !parsed.Success {
		return nil, fmt.Errorf("orders request was not successful")
	}

	return parsed.Data, nil
}

// LogNotifier writes notifications to the process log. Platform integrations
// (APNs, FCM, OS notification centers) satisfy Notifier the same way.
type LogNotifier struct{}

// Notify logs the notification
func (LogNotifier) Notify(orderID uint, title, body string) error {
	log.Printf("notification for order %d: %s: %s", orderID, title, body)
	return nil
}
