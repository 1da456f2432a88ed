package payment

import (
	"context"
	"testing"

	"tripdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func TestMapIntentStatus(t *testing.T) {
	assert.Equal(t, StatusPaid, mapIntentStatus(stripe.PaymentIntentStatusSucceeded))
	assert.Equal(t, StatusRequiresAction, mapIntentStatus(stripe.PaymentIntentStatusRequiresAction))
	assert.Equal(t, StatusRequiresAction, mapIntentStatus(stripe.PaymentIntentStatusRequiresConfirmation))
	assert.Equal(t, StatusRequiresAction, mapIntentStatus(stripe.PaymentIntentStatusProcessing))
	assert.Equal(t, StatusFailed, mapIntentStatus(stripe.PaymentIntentStatusCanceled))
	assert.Equal(t, StatusFailed, mapIntentStatus(stripe.PaymentIntentStatusRequiresPaymentMethod))
}

func TestStripeCharge_InvalidInput(t *testing.T) {
	gateway := NewStripeGateway(zap.NewNop())
	ctx := context.Background()

	_, err := gateway.Charge(ctx, models.ChargeRequest{
		Gateway:  models.GatewayStripe,
		Amount:   10,
		Currency: "usd",
	})
	assert.EqualError(t, err, "missing payment method token")

	_, err = gateway.Charge(ctx, models.ChargeRequest{
		Gateway:       models.GatewayStripe,
		Amount:        -1,
		Currency:      "usd",
		PaymentMethod: "pm_card_visa",
	})
	assert.EqualError(t, err, "invalid charge amount")

	_, err = gateway.Charge(ctx, models.ChargeRequest{
		Gateway:       models.GatewayStripe,
		Amount:        10,
		PaymentMethod: "pm_card_visa",
	})
	assert.EqualError(t, err, "missing currency")
}

func TestGatewayNames(t *testing.T) {
	assert.Equal(t, models.GatewayStripe, NewStripeGateway(zap.NewNop()).Name())
	assert.Equal(t, models.GatewayAuthorizeNet,
		NewAuthorizeNetGateway("http://unused.test", "l", "k", zap.NewNop()).Name())
}
