package event

import (
	"log/slog"
	"net/http"

	"github.com/4the-win/go-party-weekend/internal/api"
)

type Handler struct {
	eventService Service
	logger       *slog.Logger
}

func NewHandler(eventService Service, logger *slog.Logger) *Handler {
	return &Handler{
		eventService: eventService,
		logger:       logger,
	}
}

// ListEvents serves the static weekend catalog the wizard's first step
// renders.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, h.eventService.ListEvents())
}
