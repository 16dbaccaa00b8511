package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caffio-app/caffio-api/models"
	"github.com/caffio-app/caffio-api/services"
)

func setupPaymentProvider(t *testing.T) *services.MockPaymentProvider {
	t.Helper()
	provider := services.NewMockPaymentProvider()
	SetPaymentProvider(provider)
	t.Cleanup(func() { SetPaymentProvider(nil) })
	return provider
}

func TestCreatePaymentIntentEndpoint(t *testing.T) {
	db := setupControllerTestDB(t)
	setupPaymentProvider(t)
	router := newTestRouter()

	w, response := doJSON(t, router, http.MethodPost, "/api/v1/payments/create-intent", map[string]interface{}{
		"amount":   1740,
		"currency": "usd",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	data := response["data"].(map[string]interface{})
	assert.NotEmpty(t, data["payment_intent_id"])
	assert.NotEmpty(t, data["client_secret"])

	var record models.PaymentIntent
	assert.NoError(t, db.Where("provider_id = ?", data["payment_intent_id"]).First(&record).Error)
	assert.Equal(t, int64(1740), record.Amount)

	// Zero and missing amounts fail binding
	w, response = doJSON(t, router, http.MethodPost, "/api/v1/payments/create-intent", map[string]interface{}{
		"amount":   0,
		"currency": "usd",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(response))

	w, response = doJSON(t, router, http.MethodPost, "/api/v1/payments/create-intent", map[string]interface{}{
		"currency": "usd",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(response))
}

func TestCreatePaymentIntentUpstreamFailure(t *testing.T) {
	setupControllerTestDB(t)
	provider := setupPaymentProvider(t)
	provider.Fail = true
	router := newTestRouter()

	w, response := doJSON(t, router, http.MethodPost, "/api/v1/payments/create-intent", map[string]interface{}{
		"amount":   500,
		"currency": "usd",
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "UPSTREAM_ERROR", errorCode(response))
}

func TestGetPaymentIntentEndpoint(t *testing.T) {
	setupControllerTestDB(t)
	setupPaymentProvider(t)
	router := newTestRouter()

	w, response := doJSON(t, router, http.MethodPost, "/api/v1/payments/create-intent", map[string]interface{}{
		"amount":   2500,
		"currency": "eur",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	intentID := response["data"].(map[string]interface{})["payment_intent_id"].(string)

	w, response = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/payments/intent/%s", intentID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, intentID, data["payment_intent_id"])

	w, response = doJSON(t, router, http.MethodGet, "/api/v1/payments/intent/pi_unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(response))
}
