// Package gateway wraps the external itinerary-generation workflow. The
// workflow is a black box reached over HTTP; this package owns the request
// timeout, the failure taxonomy, and the one canonical normalization of its
// loosely shaped response.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/4the-win/go-party-weekend/internal/planner"
	"github.com/4the-win/go-party-weekend/internal/types"
)

// DefaultTimeout is the client-side cap on a generation call.
const DefaultTimeout = 30 * time.Second

var (
	// ErrTimeout is returned when the workflow does not answer within the
	// client timeout. Distinct from other failures so the UI can word it.
	ErrTimeout = errors.New("generation request timed out")

	// ErrEmptyResponse is returned for a 2xx answer with an empty body,
	// which the workflow produces when nothing matched the selection.
	ErrEmptyResponse = errors.New("generation returned no parties for the selection")
)

// Generator is the contract the wizard consumes for itinerary generation.
type Generator interface {
	GenerateItinerary(ctx context.Context, req types.ItineraryRequest) (*types.ItineraryResponse, error)
}

var _ Generator = (*Client)(nil)

// Client calls the generation workflow webhook.
type Client struct {
	webhookURL string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(webhookURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		webhookURL: webhookURL,
		timeout:    timeout,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// GenerateItinerary posts the selection to the workflow and normalizes the
// result. Failure modes are distinguishable: ErrTimeout, ErrEmptyResponse,
// non-2xx status errors, and malformed-body errors with a body excerpt.
func (c *Client) GenerateItinerary(ctx context.Context, req types.ItineraryRequest) (*types.ItineraryResponse, error) {
	ctx, span := otel.Tracer("GenerationClient").Start(ctx, "GenerateItinerary")
	defer span.End()
	span.SetAttributes(
		attribute.String("event", req.Event),
		attribute.Int("tags", len(req.SelectedTags)),
	)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode generation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build generation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			span.SetStatus(codes.Error, "timeout")
			return nil, ErrTimeout
		}
		span.RecordError(err)
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "Generation workflow answered",
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		span.SetStatus(codes.Error, "non-2xx status")
		return nil, fmt.Errorf("generation service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			span.SetStatus(codes.Error, "timeout")
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("failed to read generation response: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		span.SetStatus(codes.Error, "empty body")
		return nil, ErrEmptyResponse
	}

	result, err := normalizeResponse(body)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetStatus(codes.Ok, "Itinerary generated")
	return result, nil
}

// workflowResponse is the raw wire shape; totals and the catalog snapshot
// are optional and confirmation fields arrive as free text.
type workflowResponse struct {
	Event        string     `json:"event"`
	SelectedTags []string   `json:"selected_tags"`
	VibeSummary  string     `json:"vibe_summary"`
	Itinerary    []rawDay   `json:"itinerary"`
	TotalCost    *int       `json:"total_cost"`
	AllParties   []rawParty `json:"all_parties"`
}

type rawDay struct {
	Date      string     `json:"date"`
	DayLabel  string     `json:"day_label"`
	DayNumber int        `json:"day_number"`
	Parties   []rawParty `json:"parties"`
}

type rawParty struct {
	PartyName   string   `json:"party_name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Venue       string   `json:"venue"`
	TicketPrice string   `json:"ticket_price"`
	Confirmed   string   `json:"confirmed"`
	Date        string   `json:"date"`
	Day         string   `json:"day"`
	Link        string   `json:"link"`
}

// normalizeResponse accepts both shapes the workflow has been observed to
// emit (a bare object, or a single-element array wrapping it), derives the
// total cost when absent, and defaults the catalog snapshot to empty.
func normalizeResponse(body []byte) (*types.ItineraryResponse, error) {
	trimmed := bytes.TrimSpace(body)

	var raw workflowResponse
	if trimmed[0] == '[' {
		var list []workflowResponse
		if err := json.Unmarshal(trimmed, &list); err != nil || len(list) == 0 {
			return nil, malformedBodyError(trimmed)
		}
		raw = list[0]
	} else if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, malformedBodyError(trimmed)
	}

	out := &types.ItineraryResponse{
		Event:        raw.Event,
		SelectedTags: raw.SelectedTags,
		VibeSummary:  raw.VibeSummary,
		Itinerary:    make([]types.ItineraryDay, 0, len(raw.Itinerary)),
		AllParties:   make([]types.Party, 0, len(raw.AllParties)),
	}
	for _, d := range raw.Itinerary {
		day := types.ItineraryDay{
			Date:      d.Date,
			DayLabel:  d.DayLabel,
			DayNumber: d.DayNumber,
			Parties:   make([]types.Party, 0, len(d.Parties)),
		}
		for _, p := range d.Parties {
			day.Parties = append(day.Parties, p.toParty())
		}
		out.Itinerary = append(out.Itinerary, day)
	}
	for _, p := range raw.AllParties {
		out.AllParties = append(out.AllParties, p.toParty())
	}

	if raw.TotalCost != nil {
		out.TotalCost = *raw.TotalCost
	} else {
		out.TotalCost = planner.SumItinerary(out.Itinerary)
	}
	return out, nil
}

func (p rawParty) toParty() types.Party {
	return types.Party{
		PartyName:   p.PartyName,
		Description: p.Description,
		Tags:        p.Tags,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		Venue:       p.Venue,
		TicketPrice: p.TicketPrice,
		Confirmed:   types.ParseConfirmation(p.Confirmed),
		Date:        p.Date,
		Day:         p.Day,
		Link:        p.Link,
	}
}

func malformedBodyError(body []byte) error {
	excerpt := string(body)
	if len(excerpt) > 100 {
		excerpt = excerpt[:100]
	}
	excerpt = strings.ReplaceAll(excerpt, "\n", " ")
	return fmt.Errorf("invalid response from generation service: %s", excerpt)
}
