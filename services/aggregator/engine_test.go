package aggregator

import (
	"context"
	"testing"
	"time"

	"tripdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubPartnerClient returns canned outcomes per partner, optionally delaying
// to exercise out-of-order completion.
type stubPartnerClient struct {
	outcomes   map[string]models.PartnerOutcome
	delays     map[string]time.Duration
	deleteErrs map[string]error
}

func (s *stubPartnerClient) FetchBookings(ctx context.Context, partner models.PartnerDescriptor) models.PartnerOutcome {
	if d, ok := s.delays[partner.ID]; ok {
		time.Sleep(d)
	}
	if outcome, ok := s.outcomes[partner.ID]; ok {
		return outcome
	}
	return models.PartnerOutcome{
		Success:     false,
		PartnerID:   partner.ID,
		PartnerName: partner.Name,
		Data:        []models.BookingRecord{},
		Error:       "no stub configured",
		StatusHint:  StatusHintConnectionError,
	}
}

func (s *stubPartnerClient) DeleteBooking(ctx context.Context, partner models.PartnerDescriptor, bookingID string) error {
	return s.deleteErrs[partner.ID]
}

func record(name, createdAt string) models.BookingRecord {
	r := models.BookingRecord{"name": name}
	if createdAt != "" {
		r["createdAt"] = createdAt
	}
	return r
}

func newTestEngine(client PartnerClient, partners []models.PartnerDescriptor) *Engine {
	return NewEngine(NewRegistryWith(partners), client, nil, zap.NewNop())
}

// Three active partners: one returns two records, one times out, one returns
// a single record. The merged data must be globally time-sorted and the
// summary must reflect the partial failure.
func TestAggregateAll_PartialFailure(t *testing.T) {
	client := &stubPartnerClient{
		outcomes: map[string]models.PartnerOutcome{
			"p1": {
				Success: true, PartnerID: "p1", PartnerName: "Partner One", Count: 2,
				Data: []models.BookingRecord{
					record("t3", "2024-05-03T00:00:00Z"),
					record("t1", "2024-05-01T00:00:00Z"),
				},
			},
			"p2": {
				Success: false, PartnerID: "p2", PartnerName: "Partner Two",
				Data: []models.BookingRecord{}, Error: "context deadline exceeded",
				StatusHint: StatusHintConnectionError,
			},
			"p3": {
				Success: true, PartnerID: "p3", PartnerName: "Partner Three", Count: 1,
				Data: []models.BookingRecord{
					record("t2", "2024-05-02T00:00:00Z"),
				},
			},
		},
	}
	engine := newTestEngine(client, testPartners2())

	resp, err := engine.AggregateAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, resp.TotalWebsites)
	assert.Equal(t, 2, resp.SuccessfulWebsites)
	assert.Equal(t, 1, resp.FailedWebsites)
	assert.Equal(t, 3, resp.TotalUsers)
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "t3", resp.Data[0]["name"])
	assert.Equal(t, "t2", resp.Data[1]["name"])
	assert.Equal(t, "t1", resp.Data[2]["name"])
	require.Len(t, resp.WebsiteSummary, 3)
	assert.False(t, resp.WebsiteSummary[1].Success)
	assert.NotEmpty(t, resp.FetchedAt)
	_, parseErr := time.Parse(time.RFC3339, resp.FetchedAt)
	assert.NoError(t, parseErr)
}

func testPartners2() []models.PartnerDescriptor {
	return []models.PartnerDescriptor{
		{ID: "p1", Name: "Partner One", Active: true},
		{ID: "p2", Name: "Partner Two", Active: true},
		{ID: "p3", Name: "Partner Three", Active: true},
	}
}

// totalUsers must equal the sum of successful counts and the merged length.
func TestAggregateAll_TotalsMatchData(t *testing.T) {
	client := &stubPartnerClient{
		outcomes: map[string]models.PartnerOutcome{
			"p1": {Success: true, PartnerID: "p1", PartnerName: "Partner One", Count: 2,
				Data: []models.BookingRecord{record("a", ""), record("b", "")}},
			"p2": {Success: false, PartnerID: "p2", PartnerName: "Partner Two",
				Data: []models.BookingRecord{}, Error: "boom", StatusHint: "500"},
			"p3": {Success: true, PartnerID: "p3", PartnerName: "Partner Three", Count: 1,
				Data: []models.BookingRecord{record("c", "")}},
		},
	}
	engine := newTestEngine(client, testPartners2())

	resp, err := engine.AggregateAll(context.Background())
	require.NoError(t, err)

	sum := 0
	for _, s := range resp.WebsiteSummary {
		if s.Success {
			sum += s.Count
		}
	}
	assert.Equal(t, sum, resp.TotalUsers)
	assert.Equal(t, resp.TotalUsers, len(resp.Data))
}

// Summary order must follow registry order even when partners settle in
// reverse order.
func TestAggregateAll_PreservesRegistryOrder(t *testing.T) {
	client := &stubPartnerClient{
		outcomes: map[string]models.PartnerOutcome{
			"p1": {Success: true, PartnerID: "p1", PartnerName: "Partner One", Count: 0, Data: []models.BookingRecord{}},
			"p2": {Success: true, PartnerID: "p2", PartnerName: "Partner Two", Count: 0, Data: []models.BookingRecord{}},
			"p3": {Success: true, PartnerID: "p3", PartnerName: "Partner Three", Count: 0, Data: []models.BookingRecord{}},
		},
		delays: map[string]time.Duration{
			"p1": 30 * time.Millisecond,
			"p2": 15 * time.Millisecond,
			"p3": 0,
		},
	}
	engine := newTestEngine(client, testPartners2())

	resp, err := engine.AggregateAll(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.WebsiteSummary, 3)
	assert.Equal(t, "p1", resp.WebsiteSummary[0].WebsiteID)
	assert.Equal(t, "p2", resp.WebsiteSummary[1].WebsiteID)
	assert.Equal(t, "p3", resp.WebsiteSummary[2].WebsiteID)
}

// Toggling a partner inactive removes it from the next aggregation entirely;
// toggling it back restores it.
func TestAggregateAll_MutationVisibility(t *testing.T) {
	client := &stubPartnerClient{
		outcomes: map[string]models.PartnerOutcome{
			"p1": {Success: true, PartnerID: "p1", PartnerName: "Partner One", Count: 1,
				Data: []models.BookingRecord{record("a", "")}},
			"p2": {Success: true, PartnerID: "p2", PartnerName: "Partner Two", Count: 1,
				Data: []models.BookingRecord{record("b", "")}},
			"p3": {Success: true, PartnerID: "p3", PartnerName: "Partner Three", Count: 1,
				Data: []models.BookingRecord{record("c", "")}},
		},
	}
	engine := newTestEngine(client, testPartners2())
	ctx := context.Background()

	_, err := engine.SetPartnerActive(ctx, "p2", false)
	require.NoError(t, err)

	resp, err := engine.AggregateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalWebsites)
	for _, s := range resp.WebsiteSummary {
		assert.NotEqual(t, "p2", s.WebsiteID)
	}
	for _, r := range resp.Data {
		assert.NotEqual(t, "b", r["name"])
	}

	_, err = engine.SetPartnerActive(ctx, "p2", true)
	require.NoError(t, err)

	resp, err = engine.AggregateAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalWebsites)
}

func TestAggregateAll_NoActivePartners(t *testing.T) {
	client := &stubPartnerClient{}
	engine := newTestEngine(client, []models.PartnerDescriptor{
		{ID: "p1", Name: "Partner One", Active: false},
	})

	resp, err := engine.AggregateAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, resp.TotalWebsites)
	assert.Equal(t, 0, resp.TotalUsers)
	assert.Empty(t, resp.Data)
	assert.Empty(t, resp.WebsiteSummary)
}

func TestAggregateOne(t *testing.T) {
	client := &stubPartnerClient{
		outcomes: map[string]models.PartnerOutcome{
			"p1": {Success: true, PartnerID: "p1", PartnerName: "Partner One", Count: 1,
				Data: []models.BookingRecord{record("a", "")}},
		},
	}
	engine := newTestEngine(client, testPartners2())

	outcome, err := engine.AggregateOne(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, outcome.Success)
	assert.Equal(t, 1, outcome.Count)
}

func TestAggregateOne_UnknownAndInactiveAreOneCase(t *testing.T) {
	client := &stubPartnerClient{}
	engine := newTestEngine(client, []models.PartnerDescriptor{
		{ID: "p1", Name: "Partner One", Active: true},
		{ID: "p2", Name: "Partner Two", Active: false},
	})
	ctx := context.Background()

	_, err := engine.AggregateOne(ctx, "nonexistent")
	assert.ErrorIs(t, err, ErrPartnerNotFound)

	_, err = engine.AggregateOne(ctx, "p2")
	assert.ErrorIs(t, err, ErrPartnerNotFound)
}

// A remote failure is an outcome, not an engine error.
func TestAggregateOne_RemoteFailureIsOutcome(t *testing.T) {
	client := &stubPartnerClient{
		outcomes: map[string]models.PartnerOutcome{
			"p1": {Success: false, PartnerID: "p1", PartnerName: "Partner One",
				Data: []models.BookingRecord{}, Error: "partner responded with status 503", StatusHint: "503"},
		},
	}
	engine := newTestEngine(client, testPartners2())

	outcome, err := engine.AggregateOne(context.Background(), "p1")
	require.NoError(t, err)
	assert.False(t, outcome.Success)
	assert.Equal(t, "503", outcome.StatusHint)
}

func TestDeleteBooking_UnknownPartner(t *testing.T) {
	client := &stubPartnerClient{}
	engine := newTestEngine(client, testPartners2())

	err := engine.DeleteBooking(context.Background(), "ghost", "booking-42")
	assert.ErrorIs(t, err, ErrPartnerNotFound)
}

func TestDeleteBooking_PropagatesUpstreamError(t *testing.T) {
	client := &stubPartnerClient{
		deleteErrs: map[string]error{
			"p1": &UpstreamError{Status: 404, Message: "partner responded with status 404"},
		},
	}
	engine := newTestEngine(client, testPartners2())

	err := engine.DeleteBooking(context.Background(), "p1", "booking-42")

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, 404, upstream.Status)
}
