package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tripdesk/models"

	"go.uber.org/zap"
)

// AuthorizeNetGateway charges cards through the Authorize.Net transaction
// JSON API. There is no maintained Go SDK, so this speaks the wire format
// directly with the same HTTP discipline as the partner client.
type AuthorizeNetGateway struct {
	endpoint string
	loginID  string
	transKey string
	client   *http.Client
	logger   *zap.Logger
}

// NewAuthorizeNetGateway creates the Authorize.Net adapter.
func NewAuthorizeNetGateway(endpoint, loginID, transKey string, logger *zap.Logger) *AuthorizeNetGateway {
	return &AuthorizeNetGateway{
		endpoint: endpoint,
		loginID:  loginID,
		transKey: transKey,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

func (g *AuthorizeNetGateway) Name() string {
	return models.GatewayAuthorizeNet
}

type authNetRequest struct {
	CreateTransactionRequest struct {
		MerchantAuthentication struct {
			Name           string `json:"name"`
			TransactionKey string `json:"transactionKey"`
		} `json:"merchantAuthentication"`
		TransactionRequest struct {
			TransactionType string `json:"transactionType"`
			Amount          string `json:"amount"`
			Payment         struct {
				CreditCard struct {
					CardNumber     string `json:"cardNumber"`
					ExpirationDate string `json:"expirationDate"`
					CardCode       string `json:"cardCode,omitempty"`
				} `json:"creditCard"`
			} `json:"payment"`
		} `json:"transactionRequest"`
	} `json:"createTransactionRequest"`
}

type authNetResponse struct {
	TransactionResponse struct {
		ResponseCode string `json:"responseCode"`
		TransID      string `json:"transId"`
		Messages     []struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"messages"`
		Errors []struct {
			ErrorCode string `json:"errorCode"`
			ErrorText string `json:"errorText"`
		} `json:"errors"`
	} `json:"transactionResponse"`
	Messages struct {
		ResultCode string `json:"resultCode"`
		Message    []struct {
			Code string `json:"code"`
			Text string `json:"text"`
		} `json:"message"`
	} `json:"messages"`
}

// Charge submits one authCaptureTransaction. Response code 1 is approved;
// everything else is a failed result carrying the gateway's message.
func (g *AuthorizeNetGateway) Charge(ctx context.Context, req models.ChargeRequest) (*models.ChargeResult, error) {
	if err := validateCharge(req); err != nil {
		return nil, err
	}
	if req.CardNumber == "" || req.ExpirationDate == "" {
		return nil, errors.New("missing card details")
	}

	var payload authNetRequest
	payload.CreateTransactionRequest.MerchantAuthentication.Name = g.loginID
	payload.CreateTransactionRequest.MerchantAuthentication.TransactionKey = g.transKey
	payload.CreateTransactionRequest.TransactionRequest.TransactionType = "authCaptureTransaction"
	payload.CreateTransactionRequest.TransactionRequest.Amount = fmt.Sprintf("%.2f", req.Amount)
	payload.CreateTransactionRequest.TransactionRequest.Payment.CreditCard.CardNumber = req.CardNumber
	payload.CreateTransactionRequest.TransactionRequest.Payment.CreditCard.ExpirationDate = req.ExpirationDate
	payload.CreateTransactionRequest.TransactionRequest.Payment.CreditCard.CardCode = req.CardCode

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("authorize.net unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("authorize.net responded with status %d", resp.StatusCode)
	}

	var decoded authNetResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode authorize.net response: %w", err)
	}

	result := interpretAuthNetResponse(decoded)
	g.logger.Info("authorize.net charge processed",
		zap.String("requestId", req.RequestID),
		zap.String("transactionId", result.TransactionID),
		zap.String("status", result.Status))
	return result, nil
}

// interpretAuthNetResponse maps the gateway's response code onto a charge
// result. Kept pure for testing.
func interpretAuthNetResponse(resp authNetResponse) *models.ChargeResult {
	tx := resp.TransactionResponse

	result := &models.ChargeResult{TransactionID: tx.TransID}
	if tx.ResponseCode == "1" {
		result.Status = StatusPaid
		if len(tx.Messages) > 0 {
			result.Message = tx.Messages[0].Description
		}
		return result
	}

	result.Status = StatusFailed
	switch {
	case len(tx.Errors) > 0:
		result.Message = tx.Errors[0].ErrorText
	case len(tx.Messages) > 0:
		result.Message = tx.Messages[0].Description
	case len(resp.Messages.Message) > 0:
		result.Message = resp.Messages.Message[0].Text
	default:
		result.Message = "transaction declined"
	}
	return result
}
