package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caffio-app/caffio-api/models"
)

func TestCreateIntentPersistsLocalRecord(t *testing.T) {
	db := setupServiceTestDB(t)
	provider := NewMockPaymentProvider()
	paymentService := NewPaymentService(db, provider)

	result, err := paymentService.CreateIntent(1740, "usd", nil, nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, result.PaymentIntentID)
	assert.NotEmpty(t, result.ClientSecret)

	var record models.PaymentIntent
	assert.NoError(t, db.Where("provider_id = ?", result.PaymentIntentID).First(&record).Error)
	assert.Equal(t, int64(1740), record.Amount)
	assert.Equal(t, "usd", record.Currency)
	assert.Equal(t, "requires_payment_method", record.Status)
}

func TestCreateIntentValidation(t *testing.T) {
	db := setupServiceTestDB(t)
	paymentService := NewPaymentService(db, NewMockPaymentProvider())

	_, err := paymentService.CreateIntent(0, "usd", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = paymentService.CreateIntent(500, "", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// Nothing persisted on validation failure
	var count int64
	db.Model(&models.PaymentIntent{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateIntentUpstreamFailure(t *testing.T) {
	db := setupServiceTestDB(t)
	provider := NewMockPaymentProvider()
	provider.Fail = true
	paymentService := NewPaymentService(db, provider)

	_, err := paymentService.CreateIntent(500, "usd", nil, nil)
	assert.ErrorIs(t, err, ErrUpstream)

	var count int64
	db.Model(&models.PaymentIntent{}).Count(&count)
	assert.Zero(t, count, "failed upstream call leaves no local record")
}

func TestRetrieveIntent(t *testing.T) {
	db := setupServiceTestDB(t)
	provider := NewMockPaymentProvider()
	paymentService := NewPaymentService(db, provider)

	created, err := paymentService.CreateIntent(2500, "eur", nil, nil)
	assert.NoError(t, err)

	result, err := paymentService.RetrieveIntent(created.PaymentIntentID)
	assert.NoError(t, err)
	assert.Equal(t, created.PaymentIntentID, result.PaymentIntentID)
	assert.Equal(t, int64(2500), result.Amount)

	_, err = paymentService.RetrieveIntent("pi_unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}
