package wizard

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/4the-win/go-party-weekend/internal/api"
	"github.com/4the-win/go-party-weekend/internal/types"
)

type Handler struct {
	wizardService Service
	logger        *slog.Logger
}

func NewHandler(wizardService Service, logger *slog.Logger) *Handler {
	return &Handler{
		wizardService: wizardService,
		logger:        logger,
	}
}

// RegisterRoutes mounts the wizard session surface on the given router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/wizard/sessions", h.CreateSession)
	r.Route("/wizard/sessions/{sessionID}", func(r chi.Router) {
		r.Get("/", h.GetSession)
		r.Post("/advance", h.Advance)
		r.Post("/retreat", h.Retreat)
		r.Post("/jump", h.Jump)
		r.Post("/reset", h.Reset)
		r.Put("/event", h.SetEvent)
		r.Put("/tags", h.SetTags)
		r.Post("/tags/toggle", h.ToggleTag)
		r.Put("/dates", h.SetDates)
		r.Post("/itinerary/generate", h.GenerateItinerary)
		r.Post("/itinerary/retry", h.RetryItinerary)
		r.Post("/itinerary/parties", h.AddParty)
		r.Delete("/itinerary/days/{dayIndex}/parties/{partyIndex}", h.RemoveParty)
		r.Post("/catalog/load", h.LoadCatalog)
	})
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid session ID format")
		return uuid.Nil, false
	}
	return id, true
}

// writeSnapshot maps service errors to status codes and writes the snapshot.
func (h *Handler) writeSnapshot(w http.ResponseWriter, r *http.Request, snap types.WizardSnapshot, err error, action string) {
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "Session not found or expired")
		case errors.Is(err, errMissingSelection):
			api.ErrorResponse(w, r, http.StatusConflict, err.Error())
		default:
			h.logger.ErrorContext(r.Context(), "Wizard action failed",
				slog.String("action", action), slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, err.Error())
		}
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, snap)
}

// CreateSession starts a new wizard session on the event-selection step.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("WizardHandler").Start(r.Context(), "CreateSession", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/wizard/sessions"),
	))
	defer span.End()

	snap := h.wizardService.CreateSession(ctx)
	api.WriteJSONResponse(w, r, http.StatusCreated, snap)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	snap, err := h.wizardService.GetSession(r.Context(), id)
	h.writeSnapshot(w, r, snap, err, "GetSession")
}

func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	snap, err := h.wizardService.Advance(r.Context(), id)
	h.writeSnapshot(w, r, snap, err, "Advance")
}

func (h *Handler) Retreat(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	snap, err := h.wizardService.Retreat(r.Context(), id)
	h.writeSnapshot(w, r, snap, err, "Retreat")
}

func (h *Handler) Jump(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	var req types.JumpRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	snap, err := h.wizardService.JumpTo(r.Context(), id, req.Step)
	h.writeSnapshot(w, r, snap, err, "Jump")
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	snap, err := h.wizardService.Reset(r.Context(), id)
	h.writeSnapshot(w, r, snap, err, "Reset")
}

func (h *Handler) SetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	var req types.SetEventRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	snap, err := h.wizardService.SetEvent(r.Context(), id, req.EventID)
	h.writeSnapshot(w, r, snap, err, "SetEvent")
}

func (h *Handler) ToggleTag(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	var req types.ToggleTagRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Tag == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Tag is required")
		return
	}
	snap, err := h.wizardService.ToggleTag(r.Context(), id, req.Tag)
	h.writeSnapshot(w, r, snap, err, "ToggleTag")
}

func (h *Handler) SetTags(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	var req types.SetTagsRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	snap, err := h.wizardService.SetTags(r.Context(), id, req.Tags)
	h.writeSnapshot(w, r, snap, err, "SetTags")
}

func (h *Handler) SetDates(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	var req types.SetDatesRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	snap, err := h.wizardService.SetDates(r.Context(), id, req.ArrivalDate, req.DepartureDate)
	h.writeSnapshot(w, r, snap, err, "SetDates")
}

// GenerateItinerary triggers the latched generation call for this entry
// into the generating step.
func (h *Handler) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("WizardHandler").Start(r.Context(), "GenerateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/wizard/sessions/{sessionID}/itinerary/generate"),
	))
	defer span.End()

	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	snap, err := h.wizardService.RequestItinerary(ctx, id)
	h.writeSnapshot(w, r, snap, err, "GenerateItinerary")
}

func (h *Handler) RetryItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	snap, err := h.wizardService.RetryItinerary(r.Context(), id)
	h.writeSnapshot(w, r, snap, err, "RetryItinerary")
}

func (h *Handler) AddParty(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	var req types.AddPartyRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Party.PartyName == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Party name is required")
		return
	}
	snap, err := h.wizardService.AddParty(r.Context(), id, req.Party)
	h.writeSnapshot(w, r, snap, err, "AddParty")
}

func (h *Handler) RemoveParty(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	dayIndex, err := strconv.Atoi(chi.URLParam(r, "dayIndex"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid day index")
		return
	}
	partyIndex, err := strconv.Atoi(chi.URLParam(r, "partyIndex"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid party index")
		return
	}
	snap, err := h.wizardService.RemoveParty(r.Context(), id, dayIndex, partyIndex)
	h.writeSnapshot(w, r, snap, err, "RemoveParty")
}

func (h *Handler) LoadCatalog(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	snap, err := h.wizardService.LoadCatalog(r.Context(), id)
	h.writeSnapshot(w, r, snap, err, "LoadCatalog")
}
