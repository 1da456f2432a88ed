package aggregator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tripdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func descriptorFor(srv *httptest.Server) models.PartnerDescriptor {
	return models.PartnerDescriptor{
		ID:      "p1",
		Name:    "Partner One",
		BaseURL: srv.URL,
		Endpoints: models.PartnerEndpoints{
			GetUserDetails: "/api/users/details",
			DeleteBooking:  "/api/bookings",
		},
		Active: true,
	}
}

func TestFetchBookings_BareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/users/details", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name":"alice","createdAt":"2024-05-01T10:00:00Z"},{"name":"bob"}]`))
	}))
	defer srv.Close()

	client := NewHTTPPartnerClient(zap.NewNop())
	outcome := client.FetchBookings(context.Background(), descriptorFor(srv))

	require.True(t, outcome.Success)
	assert.Equal(t, 2, outcome.Count)
	assert.Len(t, outcome.Data, 2)
	assert.Empty(t, outcome.Error)
}

func TestFetchBookings_DataEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":[{"name":"alice"}]}`))
	}))
	defer srv.Close()

	client := NewHTTPPartnerClient(zap.NewNop())
	outcome := client.FetchBookings(context.Background(), descriptorFor(srv))

	require.True(t, outcome.Success)
	assert.Equal(t, 1, outcome.Count)
}

func TestFetchBookings_NestedDataEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"data":[{"name":"alice"},{"name":"bob"},{"name":"carol"}]}}`))
	}))
	defer srv.Close()

	client := NewHTTPPartnerClient(zap.NewNop())
	outcome := client.FetchBookings(context.Background(), descriptorFor(srv))

	require.True(t, outcome.Success)
	assert.Equal(t, 3, outcome.Count)
}

func TestFetchBookings_UnrecognizedShapeIsEmptySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":"no bookings here"}`))
	}))
	defer srv.Close()

	client := NewHTTPPartnerClient(zap.NewNop())
	outcome := client.FetchBookings(context.Background(), descriptorFor(srv))

	require.True(t, outcome.Success)
	assert.Equal(t, 0, outcome.Count)
	assert.Empty(t, outcome.Data)
}

// Primitives mixed into the array cannot carry a provenance tag; they are
// dropped and excluded from the count so count stays equal to len(data).
func TestFetchBookings_NonObjectEntriesDropped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name":"alice"}, 42, "junk", null]`))
	}))
	defer srv.Close()

	client := NewHTTPPartnerClient(zap.NewNop())
	outcome := client.FetchBookings(context.Background(), descriptorFor(srv))

	require.True(t, outcome.Success)
	assert.Equal(t, 1, outcome.Count)
	require.Len(t, outcome.Data, 1)
	assert.Equal(t, "alice", outcome.Data[0]["name"])
}

func TestFetchBookings_UnparseableBodyFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	client := NewHTTPPartnerClient(zap.NewNop())
	outcome := client.FetchBookings(context.Background(), descriptorFor(srv))

	require.False(t, outcome.Success)
	assert.Equal(t, 0, outcome.Count)
	assert.Empty(t, outcome.Data)
	assert.NotEmpty(t, outcome.Error)
	assert.Equal(t, "200", outcome.StatusHint)
}

func TestFetchBookings_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewHTTPPartnerClient(zap.NewNop())
	outcome := client.FetchBookings(context.Background(), descriptorFor(srv))

	require.False(t, outcome.Success)
	assert.Equal(t, "502", outcome.StatusHint)
	assert.Contains(t, outcome.Error, "502")
}

func TestFetchBookings_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	client := NewHTTPPartnerClient(zap.NewNop())
	outcome := client.FetchBookings(context.Background(), descriptorFor(srv))

	require.False(t, outcome.Success)
	assert.Equal(t, StatusHintConnectionError, outcome.StatusHint)
	assert.NotEmpty(t, outcome.Error)
}

func TestFetchBookings_TagsProvenance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name":"alice"}]`))
	}))
	defer srv.Close()

	client := NewHTTPPartnerClient(zap.NewNop())
	partner := descriptorFor(srv)
	outcome := client.FetchBookings(context.Background(), partner)

	require.True(t, outcome.Success)
	require.Len(t, outcome.Data, 1)

	source, ok := outcome.Data[0]["websiteSource"].(models.WebsiteSource)
	require.True(t, ok)
	assert.Equal(t, partner.ID, source.ID)
	assert.Equal(t, partner.Name, source.Name)
	assert.Equal(t, partner.BaseURL, source.BaseURL)
}

func TestDeleteBooking_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/bookings/booking-42", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewHTTPPartnerClient(zap.NewNop())
	err := client.DeleteBooking(context.Background(), descriptorFor(srv), "booking-42")
	assert.NoError(t, err)
}

func TestDeleteBooking_UpstreamStatusPreserved(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewHTTPPartnerClient(zap.NewNop())
	err := client.DeleteBooking(context.Background(), descriptorFor(srv), "missing")

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusNotFound, upstream.Status)
}

func TestDeleteBooking_ConnectionFailureDefaultsTo500(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewHTTPPartnerClient(zap.NewNop())
	err := client.DeleteBooking(context.Background(), descriptorFor(srv), "booking-42")

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusInternalServerError, upstream.Status)
}
