package contact

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/4the-win/go-party-weekend/internal/api"
	"github.com/4the-win/go-party-weekend/internal/types"
)

type Handler struct {
	contactService Service
	logger         *slog.Logger
}

func NewHandler(contactService Service, logger *slog.Logger) *Handler {
	return &Handler{
		contactService: contactService,
		logger:         logger,
	}
}

// Submit accepts a contact form submission. The caller's wizard session ID
// (X-Session-ID header) scopes the rate limit; anonymous submitters share
// the remote address bucket.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "ContactSubmit"))

	var req types.ContactRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sessionID := r.Header.Get("X-Session-ID")
	if sessionID == "" {
		sessionID = r.RemoteAddr
	}

	if err := h.contactService.Submit(r.Context(), sessionID, req); err != nil {
		switch {
		case errors.Is(err, ErrRateLimited):
			api.ErrorResponse(w, r, http.StatusTooManyRequests, err.Error())
		case errors.Is(err, ErrInvalidSubmission):
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		default:
			l.ErrorContext(r.Context(), "Contact submission failed", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusBadGateway, "Failed to send message. Please try again later.")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, types.ContactResponse{
		Success: true,
		Message: "Message sent. We'll get back to you soon.",
	})
}
