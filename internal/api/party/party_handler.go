package party

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/4the-win/go-party-weekend/internal/api"
)

type Handler struct {
	partyService Service
	logger       *slog.Logger
}

func NewHandler(partyService Service, logger *slog.Logger) *Handler {
	return &Handler{
		partyService: partyService,
		logger:       logger,
	}
}

// GetPartiesByEvent serves the catalog for one weekend. Optional `from` and
// `to` query params (YYYY-MM-DD) restrict the date range.
func (h *Handler) GetPartiesByEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PartyHandler").Start(r.Context(), "GetPartiesByEvent", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/events/{event}/parties"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GetPartiesByEvent"))

	event, err := url.PathUnescape(chi.URLParam(r, "event"))
	if err != nil || event == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Event name is required")
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if (from == "") != (to == "") {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Both from and to are required for a date range")
		return
	}

	var parties interface{}
	if from != "" {
		parties, err = h.partyService.FetchPartiesByDateRange(ctx, event, from, to)
	} else {
		parties, err = h.partyService.FetchPartyCatalog(ctx, event)
	}
	if err != nil {
		l.ErrorContext(ctx, "Failed to fetch parties", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, parties)
}

// GetAvailableEvents serves the distinct weekend names present in the
// catalog, sorted alphabetically.
func (h *Handler) GetAvailableEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PartyHandler").Start(r.Context(), "GetAvailableEvents", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/parties/events"),
	))
	defer span.End()

	names, err := h.partyService.ListEventNames(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list event names", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, names)
}
