// Package contact implements the contact form: validation, session-scoped
// rate limiting and delivery through a transactional-email HTTP function.
package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/4the-win/go-party-weekend/app/observability/metrics"
	"github.com/4the-win/go-party-weekend/internal/types"
)

const maxPerSession = 3

var (
	// ErrRateLimited is returned once a session has used up its submissions.
	ErrRateLimited = errors.New("you've reached the maximum number of messages for this session, please try again later")

	// ErrInvalidSubmission wraps all validation failures.
	ErrInvalidSubmission = errors.New("invalid contact submission")
)

var validSubjects = map[string]struct{}{
	"General Inquiry":  {},
	"Event Suggestion": {},
	"Bug Report":       {},
	"Partnership":      {},
	"Other":            {},
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Mailer delivers a validated submission.
type Mailer interface {
	SendContactEmail(ctx context.Context, req types.ContactRequest) error
}

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	Submit(ctx context.Context, sessionID string, req types.ContactRequest) error
}

type ServiceImpl struct {
	logger   *slog.Logger
	mailer   Mailer
	counters *cache.Cache
}

func NewServiceImpl(mailer Mailer, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:   logger,
		mailer:   mailer,
		counters: cache.New(24*time.Hour, 1*time.Hour),
	}
}

// Submit validates, rate-limits per session and forwards the message.
// Honeypot hits are dropped silently so bots see a success.
func (s *ServiceImpl) Submit(ctx context.Context, sessionID string, req types.ContactRequest) error {
	if req.Website != "" {
		s.logger.InfoContext(ctx, "Contact honeypot triggered, dropping submission",
			slog.String("sessionID", sessionID))
		return nil
	}
	if err := validate(req); err != nil {
		return err
	}

	count := 0
	if v, ok := s.counters.Get(sessionID); ok {
		count = v.(int)
	}
	if count >= maxPerSession {
		return ErrRateLimited
	}

	if err := s.mailer.SendContactEmail(ctx, req); err != nil {
		s.logger.ErrorContext(ctx, "Failed to send contact email", slog.Any("error", err))
		return fmt.Errorf("failed to send message: %w", err)
	}

	s.counters.Set(sessionID, count+1, cache.DefaultExpiration)
	if m := metrics.Get(); m != nil {
		m.ContactSubmissionsTotal.Add(ctx, 1)
	}
	return nil
}

func validate(req types.ContactRequest) error {
	if len(req.Name) < 2 || len(req.Name) > 100 {
		return fmt.Errorf("%w: name must be between 2 and 100 characters", ErrInvalidSubmission)
	}
	if !emailPattern.MatchString(req.Email) {
		return fmt.Errorf("%w: please enter a valid email address", ErrInvalidSubmission)
	}
	if _, ok := validSubjects[req.Subject]; !ok {
		return fmt.Errorf("%w: please select a subject", ErrInvalidSubmission)
	}
	if len(req.Message) < 10 || len(req.Message) > 2000 {
		return fmt.Errorf("%w: message must be between 10 and 2000 characters", ErrInvalidSubmission)
	}
	return nil
}
