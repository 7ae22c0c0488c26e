package gateway

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4the-win/go-party-weekend/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testRequest() types.ItineraryRequest {
	return types.ItineraryRequest{
		Event:         "Folsom Weekend",
		SelectedTags:  []string{"Circuit", "Leather", "Techno"},
		ArrivalDate:   "2026-09-24",
		DepartureDate: "2026-09-28",
	}
}

const objectBody = `{
	"event": "Folsom Weekend",
	"vibe_summary": "Sweaty and glorious.",
	"itinerary": [
		{"date": "2026-09-25", "day_label": "Sep 25 (Fri)", "day_number": 1, "parties": [
			{"party_name": "Magnitude", "start_time": "10:00 PM", "ticket_price": "$75", "confirmed": "Yes", "date": "2026-09-25"}
		]},
		{"date": "2026-09-26", "day_label": "Sep 26 (Sat)", "day_number": 2, "parties": [
			{"party_name": "Brut", "start_time": "9:00 PM", "ticket_price": "$50", "confirmed": "Likely", "date": "2026-09-26"}
		]}
	]
}`

func TestGenerateItineraryNormalizesObjectResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(objectBody))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, DefaultTimeout, testLogger())
	resp, err := client.GenerateItinerary(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, "Sweaty and glorious.", resp.VibeSummary)
	require.Len(t, resp.Itinerary, 2)
	// total cost missing from the wire is derived by summing parsed prices
	assert.Equal(t, 125, resp.TotalCost)
	// all_parties missing from the wire defaults to empty, never nil
	assert.NotNil(t, resp.AllParties)
	assert.Empty(t, resp.AllParties)
	// confirmation spellings are resolved at ingestion
	assert.Equal(t, types.ConfirmationConfirmed, resp.Itinerary[0].Parties[0].Confirmed)
	assert.Equal(t, types.ConfirmationPredicted, resp.Itinerary[1].Parties[0].Confirmed)
}

func TestGenerateItineraryAcceptsArrayWrappedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[" + objectBody + "]"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, DefaultTimeout, testLogger())
	resp, err := client.GenerateItinerary(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, 125, resp.TotalCost)
	require.Len(t, resp.Itinerary, 2)
}

func TestGenerateItineraryRespectsProvidedTotal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"itinerary": [], "total_cost": 300, "all_parties": []}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, DefaultTimeout, testLogger())
	resp, err := client.GenerateItinerary(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, 300, resp.TotalCost)
}

func TestGenerateItineraryEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("  \n"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, DefaultTimeout, testLogger())
	_, err := client.GenerateItinerary(context.Background(), testRequest())

	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGenerateItineraryNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, DefaultTimeout, testLogger())
	_, err := client.GenerateItinerary(context.Background(), testRequest())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestGenerateItineraryMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>definitely not json</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, DefaultTimeout, testLogger())
	_, err := client.GenerateItinerary(context.Background(), testRequest())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid response")
}

func TestGenerateItineraryTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(srv.URL, 50*time.Millisecond, testLogger())
	_, err := client.GenerateItinerary(context.Background(), testRequest())

	assert.ErrorIs(t, err, ErrTimeout)
}
