package party

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/4the-win/go-party-weekend/app/observability/metrics"
	"github.com/4the-win/go-party-weekend/internal/types"
)

var _ Repository = (*PostgresRepository)(nil)

// Repository is the data-access contract for the party catalog.
type Repository interface {
	GetPartiesByEvent(ctx context.Context, event string) ([]types.Party, error)
	GetPartiesByDateRange(ctx context.Context, event, startDate, endDate string) ([]types.Party, error)
	ListEventNames(ctx context.Context) ([]string, error)
}

// Querier is the slice of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

type PostgresRepository struct {
	logger *slog.Logger
	pgpool Querier
}

func NewPostgresRepository(pgpool Querier, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

// partyRow mirrors the parties table. Nullable columns arrive coalesced to
// empty strings; the transform below owns the fallbacks.
type partyRow struct {
	PartyName   string
	Description string
	Date        string
	Day         string
	Confirmed   string
	StartTime   string
	EndTime     string
	Venue       string
	Tags        string
	Link        string
	TicketTier1 string
	TicketTier2 string
	TicketTier3 string
}

const partyColumns = `
        party_name,
        COALESCE(description, ''),
        COALESCE(date, ''),
        COALESCE(day, ''),
        COALESCE(confirmed, ''),
        COALESCE(start_time, ''),
        COALESCE(end_time, ''),
        COALESCE(venue, ''),
        COALESCE(tags, ''),
        COALESCE(link, ''),
        COALESCE(ticket_tier_1, ''),
        COALESCE(ticket_tier_2, ''),
        COALESCE(ticket_tier_3, '')`

// GetPartiesByEvent returns the full catalog for one weekend, sorted by date
// then start time ascending.
func (r *PostgresRepository) GetPartiesByEvent(ctx context.Context, event string) ([]types.Party, error) {
	query := `
        SELECT` + partyColumns + `
        FROM parties
        WHERE weekend_party = $1
        ORDER BY date ASC, start_time ASC
    `
	return r.queryParties(ctx, query, event)
}

// GetPartiesByDateRange returns the catalog restricted to dates within
// [startDate, endDate], inclusive (YYYY-MM-DD).
func (r *PostgresRepository) GetPartiesByDateRange(ctx context.Context, event, startDate, endDate string) ([]types.Party, error) {
	query := `
        SELECT` + partyColumns + `
        FROM parties
        WHERE weekend_party = $1 AND date >= $2 AND date <= $3
        ORDER BY date ASC, start_time ASC
    `
	return r.queryParties(ctx, query, event, startDate, endDate)
}

func (r *PostgresRepository) queryParties(ctx context.Context, query string, args ...interface{}) ([]types.Party, error) {
	start := time.Now()
	rows, err := r.pgpool.Query(ctx, query, args...)
	if m := metrics.Get(); m != nil {
		m.CatalogQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
		if err != nil {
			m.CatalogQueryErrorsTotal.Add(ctx, 1)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch parties: %w", err)
	}
	defer rows.Close()

	var parties []types.Party
	for rows.Next() {
		var row partyRow
		if err := rows.Scan(
			&row.PartyName, &row.Description, &row.Date, &row.Day,
			&row.Confirmed, &row.StartTime, &row.EndTime, &row.Venue,
			&row.Tags, &row.Link, &row.TicketTier1, &row.TicketTier2, &row.TicketTier3,
		); err != nil {
			return nil, fmt.Errorf("failed to scan party row: %w", err)
		}
		parties = append(parties, row.toParty())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch parties: %w", err)
	}
	return parties, nil
}

// ListEventNames returns the distinct weekend names present in the catalog.
func (r *PostgresRepository) ListEventNames(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT weekend_party FROM parties ORDER BY weekend_party ASC`
	rows, err := r.pgpool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan event name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch event names: %w", err)
	}
	return names, nil
}

// toParty maps a catalog row to the wire type: the tags CSV becomes a slice,
// the first populated ticket tier becomes the price (else "TBD"), and the
// loose confirmation text is normalized once here.
func (row partyRow) toParty() types.Party {
	var tags []string
	for _, t := range strings.Split(row.Tags, ",") {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}

	price := row.TicketTier1
	if price == "" {
		price = row.TicketTier2
	}
	if price == "" {
		price = row.TicketTier3
	}
	if price == "" {
		price = "TBD"
	}

	return types.Party{
		PartyName:   row.PartyName,
		Description: row.Description,
		Tags:        tags,
		StartTime:   row.StartTime,
		EndTime:     row.EndTime,
		Venue:       row.Venue,
		TicketPrice: price,
		Confirmed:   types.ParseConfirmation(row.Confirmed),
		Date:        row.Date,
		Day:         row.Day,
		Link:        row.Link,
	}
}
