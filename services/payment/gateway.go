package payment

import (
	"context"
	"errors"

	"tripdesk/models"
)

// Charge result statuses shared by both gateways.
const (
	StatusPaid           = "paid"
	StatusRequiresAction = "requires_action"
	StatusFailed         = "failed"
)

// ErrUnsupportedGateway is returned when a charge names a gateway this
// deployment does not have configured.
var ErrUnsupportedGateway = errors.New("unsupported payment gateway")

// Gateway is one external payment processor. Charges are single-shot: no
// retry, no idempotency key. A declined card is a result, not an error;
// errors are reserved for invalid input and transport failures.
type Gateway interface {
	Name() string
	Charge(ctx context.Context, req models.ChargeRequest) (*models.ChargeResult, error)
}

func validateCharge(req models.ChargeRequest) error {
	if req.Amount <= 0 {
		return errors.New("invalid charge amount")
	}
	if req.Currency == "" {
		return errors.New("missing currency")
	}
	return nil
}
