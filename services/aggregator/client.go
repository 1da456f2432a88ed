package aggregator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"tripdesk/models"

	"go.uber.org/zap"
)

// PartnerTimeout bounds every single partner call. It also bounds the
// worst-case wall-clock time of a whole aggregation pass, since partners are
// queried concurrently.
const PartnerTimeout = 10 * time.Second

// StatusHintConnectionError is the statusHint sentinel for failures where no
// HTTP response was received (timeout, DNS, connection refused).
const StatusHintConnectionError = "Connection Error"

// UpstreamError carries the status a partner answered with so delete
// operations can propagate it. Status is 500 for connection-level failures.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// PartnerClient performs single network calls against one partner system.
type PartnerClient interface {
	FetchBookings(ctx context.Context, partner models.PartnerDescriptor) models.PartnerOutcome
	DeleteBooking(ctx context.Context, partner models.PartnerDescriptor, bookingID string) error
}

// HTTPPartnerClient implements PartnerClient over plain HTTP with a fixed
// per-call timeout. It never returns an error from FetchBookings: every
// failure is folded into the outcome value.
type HTTPPartnerClient struct {
	client *http.Client
	logger *zap.Logger
}

// NewHTTPPartnerClient creates a partner client with the fixed timeout.
func NewHTTPPartnerClient(logger *zap.Logger) *HTTPPartnerClient {
	return &HTTPPartnerClient{
		client: &http.Client{Timeout: PartnerTimeout},
		logger: logger,
	}
}

// FetchBookings issues a GET against the partner's user-details endpoint and
// normalizes the response into a PartnerOutcome.
func (c *HTTPPartnerClient) FetchBookings(ctx context.Context, partner models.PartnerDescriptor) models.PartnerOutcome {
	url := partner.BaseURL + partner.Endpoints.GetUserDetails

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return c.failure(partner, fmt.Sprintf("invalid partner request: %v", err), StatusHintConnectionError)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("partner unreachable",
			zap.String("partner", partner.ID),
			zap.Error(err))
		return c.failure(partner, err.Error(), StatusHintConnectionError)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("partner rejected request",
			zap.String("partner", partner.ID),
			zap.Int("status", resp.StatusCode))
		return c.failure(partner,
			fmt.Sprintf("partner responded with status %d", resp.StatusCode),
			strconv.Itoa(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.failure(partner, fmt.Sprintf("failed to read partner response: %v", err), StatusHintConnectionError)
	}

	records, err := extractRecords(body)
	if err != nil {
		return c.failure(partner,
			fmt.Sprintf("failed to decode partner response: %v", err),
			strconv.Itoa(resp.StatusCode))
	}

	source := models.WebsiteSource{ID: partner.ID, Name: partner.Name, BaseURL: partner.BaseURL}
	for _, record := range records {
		record["websiteSource"] = source
	}

	return models.PartnerOutcome{
		Success:     true,
		PartnerID:   partner.ID,
		PartnerName: partner.Name,
		Count:       len(records),
		Data:        records,
	}
}

// DeleteBooking issues a DELETE for one booking. The upstream status code is
// preserved inside the returned UpstreamError; connection-level failures
// default to 500. No retry.
func (c *HTTPPartnerClient) DeleteBooking(ctx context.Context, partner models.PartnerDescriptor, bookingID string) error {
	url := partner.BaseURL + partner.Endpoints.DeleteBooking + "/" + bookingID

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return &UpstreamError{Status: http.StatusInternalServerError, Message: fmt.Sprintf("invalid partner request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("partner delete unreachable",
			zap.String("partner", partner.ID),
			zap.String("bookingId", bookingID),
			zap.Error(err))
		return &UpstreamError{Status: http.StatusInternalServerError, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &UpstreamError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("partner responded with status %d", resp.StatusCode),
		}
	}
	return nil
}

func (c *HTTPPartnerClient) failure(partner models.PartnerDescriptor, message, statusHint string) models.PartnerOutcome {
	return models.PartnerOutcome{
		Success:     false,
		PartnerID:   partner.ID,
		PartnerName: partner.Name,
		Count:       0,
		Data:        []models.BookingRecord{},
		Error:       message,
		StatusHint:  statusHint,
	}
}

// extractRecords unwraps the partner response envelope. Partners drift
// between three shapes: a bare array, {data: [...]}, and {data: {data: [...]}}.
// A parseable body matching none of them counts as an empty successful result.
// Only an unparseable body is an error. Non-object array entries are dropped
// so count always equals the number of records returned.
func extractRecords(body []byte) ([]models.BookingRecord, error) {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}

	arr, ok := payload.([]any)
	if !ok {
		if envelope, isMap := payload.(map[string]any); isMap {
			if inner, isArr := envelope["data"].([]any); isArr {
				arr = inner
			} else if nested, isNested := envelope["data"].(map[string]any); isNested {
				arr, _ = nested["data"].([]any)
			}
		}
	}

	records := make([]models.BookingRecord, 0, len(arr))
	for _, entry := range arr {
		if obj, isObj := entry.(map[string]any); isObj {
			records = append(records, models.BookingRecord(obj))
		}
	}
	return records, nil
}
