package payment

import (
	"context"
	"errors"
	"fmt"

	"tripdesk/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// StripeGateway charges cards through Stripe PaymentIntents, confirmed on
// creation. The global stripe.Key is set at startup.
type StripeGateway struct {
	logger *zap.Logger
}

// NewStripeGateway creates the Stripe adapter.
func NewStripeGateway(logger *zap.Logger) *StripeGateway {
	return &StripeGateway{logger: logger}
}

func (g *StripeGateway) Name() string {
	return models.GatewayStripe
}

// Charge creates and confirms a PaymentIntent for the tokenized card in
// req.PaymentMethod. Card declines come back as a failed result; only
// invalid input and transport problems are errors.
func (g *StripeGateway) Charge(ctx context.Context, req models.ChargeRequest) (*models.ChargeResult, error) {
	if err := validateCharge(req); err != nil {
		return nil, err
	}
	if req.PaymentMethod == "" {
		return nil, errors.New("missing payment method token")
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(int64(req.Amount * 100)),
		Currency:      stripe.String(req.Currency),
		PaymentMethod: stripe.String(req.PaymentMethod),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			g.logger.Warn("stripe charge declined",
				zap.String("requestId", req.RequestID),
				zap.String("code", string(stripeErr.Code)))
			return &models.ChargeResult{
				Status:  StatusFailed,
				Message: stripeErr.Msg,
			}, nil
		}
		return nil, fmt.Errorf("stripe charge failed: %w", err)
	}

	result := &models.ChargeResult{
		Status:        mapIntentStatus(intent.Status),
		TransactionID: intent.ID,
	}
	if result.Status != StatusPaid {
		result.Message = fmt.Sprintf("payment intent status: %s", intent.Status)
	}

	g.logger.Info("stripe charge processed",
		zap.String("requestId", req.RequestID),
		zap.String("intent", intent.ID),
		zap.String("status", result.Status))
	return result, nil
}

// mapIntentStatus folds Stripe's intent lifecycle onto the ticket request
// status vocabulary.
func mapIntentStatus(status stripe.PaymentIntentStatus) string {
	switch status {
	case stripe.PaymentIntentStatusSucceeded:
		return StatusPaid
	case stripe.PaymentIntentStatusRequiresAction,
		stripe.PaymentIntentStatusRequiresConfirmation,
		stripe.PaymentIntentStatusProcessing:
		return StatusRequiresAction
	default:
		return StatusFailed
	}
}
