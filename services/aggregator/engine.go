package aggregator

import (
	"context"
	"sync"
	"time"

	"tripdesk/models"

	"go.uber.org/zap"
)

// AggregationService is the interface handlers depend on.
type AggregationService interface {
	AggregateAll(ctx context.Context) (*models.AggregatedResponse, error)
	AggregateOne(ctx context.Context, partnerID string) (*models.PartnerOutcome, error)
	DeleteBooking(ctx context.Context, partnerID, bookingID string) error
	SetPartnerActive(ctx context.Context, partnerID string, active bool) (*models.PartnerDescriptor, error)
	Partners() []models.PartnerDescriptor
	PartnerCounts() (active int, total int)
}

// Engine orchestrates querying all active partners and merging the results.
type Engine struct {
	registry *Registry
	client   PartnerClient
	cache    *ResponseCache
	logger   *zap.Logger
}

// NewEngine wires the aggregation engine. cache may be nil to disable caching.
func NewEngine(registry *Registry, client PartnerClient, cache *ResponseCache, logger *zap.Logger) *Engine {
	return &Engine{
		registry: registry,
		client:   client,
		cache:    cache,
		logger:   logger,
	}
}

// AggregateAll queries every active partner concurrently, waits for all of
// them to settle, and merges the successful results. A partner failure never
// fails the call; it is recorded in the summary. Worst-case latency is one
// partner timeout, not the sum.
func (e *Engine) AggregateAll(ctx context.Context) (*models.AggregatedResponse, error) {
	if cached := e.cache.Get(ctx); cached != nil {
		return cached, nil
	}

	partners := e.registry.ListActive()

	// One slot per partner, addressed by index so summary order matches
	// registry order no matter which call settles first.
	outcomes := make([]models.PartnerOutcome, len(partners))
	var wg sync.WaitGroup
	for i, partner := range partners {
		wg.Add(1)
		go func(slot int, p models.PartnerDescriptor) {
			defer wg.Done()
			outcomes[slot] = e.client.FetchBookings(ctx, p)
		}(i, partner)
	}
	wg.Wait()

	summaries, counts := BuildSummary(outcomes)
	merged := MergeRecords(outcomes)

	resp := &models.AggregatedResponse{
		Success:            true,
		TotalUsers:         len(merged),
		TotalWebsites:      len(partners),
		SuccessfulWebsites: counts.SuccessfulWebsites,
		FailedWebsites:     counts.FailedWebsites,
		WebsiteSummary:     summaries,
		Data:               merged,
		FetchedAt:          time.Now().UTC().Format(time.RFC3339),
	}

	e.logger.Info("aggregation completed",
		zap.Int("totalWebsites", resp.TotalWebsites),
		zap.Int("successfulWebsites", resp.SuccessfulWebsites),
		zap.Int("failedWebsites", resp.FailedWebsites),
		zap.Int("totalUsers", resp.TotalUsers))

	e.cache.Set(ctx, resp)
	return resp, nil
}

// AggregateOne queries a single partner. Unknown and inactive ids are one
// case: ErrPartnerNotFound. The outcome may still describe a remote failure;
// that is the caller's to interpret, not an error here.
func (e *Engine) AggregateOne(ctx context.Context, partnerID string) (*models.PartnerOutcome, error) {
	partner, err := e.registry.Find(partnerID)
	if err != nil {
		return nil, err
	}
	if !partner.Active {
		return nil, ErrPartnerNotFound
	}

	outcome := e.client.FetchBookings(ctx, *partner)
	return &outcome, nil
}

// DeleteBooking removes one booking on the owning partner's system.
func (e *Engine) DeleteBooking(ctx context.Context, partnerID, bookingID string) error {
	partner, err := e.registry.Find(partnerID)
	if err != nil {
		return err
	}
	if !partner.Active {
		return ErrPartnerNotFound
	}

	if err := e.client.DeleteBooking(ctx, *partner, bookingID); err != nil {
		return err
	}

	// The cached aggregate still references the deleted booking.
	e.cache.Invalidate(ctx)
	return nil
}

// SetPartnerActive toggles a partner's active flag and invalidates the cache
// so the change is visible on the next aggregation.
func (e *Engine) SetPartnerActive(ctx context.Context, partnerID string, active bool) (*models.PartnerDescriptor, error) {
	partner, err := e.registry.SetActive(partnerID, active)
	if err != nil {
		return nil, err
	}

	e.cache.Invalidate(ctx)
	e.logger.Info("partner status updated",
		zap.String("partner", partnerID),
		zap.Bool("active", active))
	return partner, nil
}

// Partners returns the full descriptor table, active or not.
func (e *Engine) Partners() []models.PartnerDescriptor {
	return e.registry.List()
}

// PartnerCounts reports active and total partner counts.
func (e *Engine) PartnerCounts() (int, int) {
	return e.registry.Counts()
}
