package party

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4the-win/go-party-weekend/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

var partyRowColumns = []string{
	"party_name", "description", "date", "day", "confirmed", "start_time",
	"end_time", "venue", "tags", "link", "ticket_tier_1", "ticket_tier_2", "ticket_tier_3",
}

func TestGetPartiesByEvent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT(.|\n)*FROM parties(.|\n)*WHERE weekend_party = \\$1").
		WithArgs("Folsom Weekend").
		WillReturnRows(pgxmock.NewRows(partyRowColumns).
			AddRow("Magnitude", "", "2026-09-25", "Sep 25 (Fri)", "Yes", "10:00 PM",
				"4:00 AM", "The Midway", "Circuit, Leather", "https://example.com/mag", "$75", "$95", "").
			AddRow("Beer Bust", "", "2026-09-26", "Sep 26 (Sat)", "Maybe", "2:00 PM",
				"", "The Eagle", "", "", "", "", ""))

	repo := NewPostgresRepository(mock, testLogger())
	parties, err := repo.GetPartiesByEvent(context.Background(), "Folsom Weekend")

	require.NoError(t, err)
	require.Len(t, parties, 2)

	assert.Equal(t, "Magnitude", parties[0].PartyName)
	assert.Equal(t, []string{"Circuit", "Leather"}, parties[0].Tags)
	assert.Equal(t, "$75", parties[0].TicketPrice, "first populated tier wins")
	assert.Equal(t, types.ConfirmationConfirmed, parties[0].Confirmed)

	assert.Nil(t, parties[1].Tags, "empty tags CSV yields no tags")
	assert.Equal(t, "TBD", parties[1].TicketPrice, "no tiers falls back to TBD")
	assert.Equal(t, types.ConfirmationPredicted, parties[1].Confirmed)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPartiesByEventQueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT(.|\n)*FROM parties").
		WithArgs("Folsom Weekend").
		WillReturnError(errors.New("connection refused"))

	repo := NewPostgresRepository(mock, testLogger())
	_, err = repo.GetPartiesByEvent(context.Background(), "Folsom Weekend")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch parties")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestGetPartiesByDateRange(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT(.|\n)*FROM parties(.|\n)*date >= \\$2 AND date <= \\$3").
		WithArgs("Folsom Weekend", "2026-09-25", "2026-09-26").
		WillReturnRows(pgxmock.NewRows(partyRowColumns).
			AddRow("Magnitude", "", "2026-09-25", "Sep 25 (Fri)", "Confirmed", "10:00 PM",
				"", "The Midway", "Circuit", "", "$75", "", ""))

	repo := NewPostgresRepository(mock, testLogger())
	parties, err := repo.GetPartiesByDateRange(context.Background(), "Folsom Weekend", "2026-09-25", "2026-09-26")

	require.NoError(t, err)
	require.Len(t, parties, 1)
	assert.Equal(t, "Magnitude", parties[0].PartyName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEventNames(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT DISTINCT weekend_party FROM parties").
		WillReturnRows(pgxmock.NewRows([]string{"weekend_party"}).
			AddRow("Folsom Weekend").
			AddRow("Market Days"))

	repo := NewPostgresRepository(mock, testLogger())
	names, err := repo.ListEventNames(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Folsom Weekend", "Market Days"}, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}
