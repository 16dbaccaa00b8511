package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/caffio-app/caffio-api/config"
	"github.com/caffio-app/caffio-api/models"
)

// PaymentIntentResult is the subset of the processor's intent the API exposes
type PaymentIntentResult struct {
	PaymentIntentID string `json:"payment_intent_id"`
	ClientSecret    string `json:"client_secret,omitempty"`
	Status          string `json:"status"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
}

// PaymentProvider is the boundary to the payment processor
type PaymentProvider interface {
	CreateIntent(amount int64, currency string) (*PaymentIntentResult, error)
	RetrieveIntent(providerID string) (*PaymentIntentResult, error)
}

// StripeProvider talks to the Stripe payment-intents API
type StripeProvider struct {
	secretKey  string
	apiBase    string
	httpClient *http.Client
}

// NewStripeProvider creates a Stripe-backed payment provider
func NewStripeProvider(cfg *config.Config) *StripeProvider {
	return &StripeProvider{
		secretKey: cfg.StripeSecretKey,
		apiBase:   cfg.StripeAPIBase,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type stripeIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

func (p *StripeProvider) do(method, path string, form url.Values) (*stripeIntentResponse, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequest(method, p.apiBase+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response", ErrUpstream)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: processor returned status %d", ErrUpstream, resp.StatusCode)
	}

	var intent stripeIntentResponse
	if err := json.Unmarshal(data, &intent); err != nil {
		return nil, fmt.Errorf("%w: malformed processor response", ErrUpstream)
	}
	return &intent, nil
}

// CreateIntent creates a payment intent with the processor
func (p *StripeProvider) CreateIntent(amount int64, currency string) (*PaymentIntentResult, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", strings.ToLower(currency))

	intent, err := p.do(http.MethodPost, "/v1/payment_intents", form)
	if err != nil {
		return nil, err
	}
	return &PaymentIntentResult{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Status:          intent.Status,
		Amount:          intent.Amount,
		Currency:        intent.Currency,
	}, nil
}

// RetrieveIntent fetches the current state of an intent from the processor
func (p *StripeProvider) RetrieveIntent(providerID string) (*PaymentIntentResult, error) {
	intent, err := p.do(http.MethodGet, "/v1/payment_intents/"+providerID, nil)
	if err != nil {
		return nil, err
	}
	return &PaymentIntentResult{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Status:          intent.Status,
		Amount:          intent.Amount,
		Currency:        intent.Currency,
	}, nil
}

// PaymentService creates intents with the processor and records them locally
// so lookups can resolve provider ids without a round trip.
type PaymentService struct {
	db       *gorm.DB
	provider PaymentProvider
}

// NewPaymentService creates a new payment service
func NewPaymentService(db *gorm.DB, provider PaymentProvider) *PaymentService {
	return &PaymentService{db: db, provider: provider}
}

// CreateIntent creates an intent with the processor and persists a local record
func (s *PaymentService) CreateIntent(amount int64, currency string, orderID, customerID *uint) (*PaymentIntentResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidArgument)
	}
	if currency == "" {
		return nil, fmt.Errorf("%w: currency is required", ErrInvalidArgument)
	}

	result, err := s.provider.CreateIntent(amount, currency)
	if err != nil {
		return nil, err
	}

	record := models.PaymentIntent{
		ProviderID: result.PaymentIntentID,
		Amount:     result.Amount,
		Currency:   result.Currency,
		Status:     result.Status,
		OrderID:    orderID,
		CustomerID: customerID,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// RetrieveIntent returns the current intent state, refreshing the local record
func (s *PaymentService) RetrieveIntent(providerID string) (*PaymentIntentResult, error) {
	var record models.PaymentIntent
	if err := s.db.Where("provider_id = ?", providerID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: payment intent %s", ErrNotFound, providerID)
		}
		return nil, err
	}

	result, err := s.provider.RetrieveIntent(providerID)
	if err != nil {
		return nil, err
	}

	if result.Status != record.Status {
		if err := s.db.Model(&record).Update("status", result.Status).Error; err != nil {
			return nil, err
		}
	}

	return result, nil
}

// MockPaymentProvider is an in-memory provider for testing
type MockPaymentProvider struct {
	intents map[string]*PaymentIntentResult
	nextID  int
	Fail    bool // when true every call reports an upstream failure
}

// NewMockPaymentProvider creates a new mock payment provider
func NewMockPaymentProvider() *MockPaymentProvider {
	return &MockPaymentProvider{intents: make(map[string]*PaymentIntentResult)}
}

// CreateIntent simulates creating an intent with the processor
func (m *MockPaymentProvider) CreateIntent(amount int64, currency string) (*PaymentIntentResult, error) {
	if m.Fail {
		return nil, fmt.Errorf("%w: mock processor unavailable", ErrUpstream)
	}
	m.nextID++
	id := fmt.Sprintf("pi_mock_%d", m.nextID)
	result := &PaymentIntentResult{
		PaymentIntentID: id,
		ClientSecret:    id + "_secret",
		Status:          "requires_payment_method",
		Amount:          amount,
		Currency:        strings.ToLower(currency),
	}
	m.intents[id] = result
	return result, nil
}

// RetrieveIntent simulates fetching an intent from the processor
func (m *MockPaymentProvider) RetrieveIntent(providerID string) (*PaymentIntentResult, error) {
	if m.Fail {
		return nil, fmt.Errorf("%w: mock processor unavailable", ErrUpstream)
	}
	intent, ok := m.intents[providerID]
	if !ok {
		return nil, fmt.Errorf("%w: unknown intent %s", ErrUpstream, providerID)
	}
	return intent, nil
}
