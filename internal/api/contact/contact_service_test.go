package contact

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/4the-win/go-party-weekend/internal/types"
)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendContactEmail(ctx context.Context, req types.ContactRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func validRequest() types.ContactRequest {
	return types.ContactRequest{
		Name:    "Winslow",
		Email:   "winslow@example.com",
		Subject: "General Inquiry",
		Message: "Loving the planner, one small request about the calendar.",
	}
}

func TestSubmitDeliversEmail(t *testing.T) {
	mailer := new(MockMailer)
	svc := NewServiceImpl(mailer, testLogger())

	mailer.On("SendContactEmail", mock.Anything, validRequest()).Return(nil).Once()

	err := svc.Submit(context.Background(), "session-1", validRequest())
	require.NoError(t, err)
	mailer.AssertExpectations(t)
}

func TestSubmitRateLimitsPerSession(t *testing.T) {
	mailer := new(MockMailer)
	svc := NewServiceImpl(mailer, testLogger())

	mailer.On("SendContactEmail", mock.Anything, mock.Anything).Return(nil).Times(maxPerSession)

	for i := 0; i < maxPerSession; i++ {
		require.NoError(t, svc.Submit(context.Background(), "session-1", validRequest()))
	}

	err := svc.Submit(context.Background(), "session-1", validRequest())
	assert.ErrorIs(t, err, ErrRateLimited)

	// a different session has its own budget
	mailer.On("SendContactEmail", mock.Anything, mock.Anything).Return(nil).Once()
	assert.NoError(t, svc.Submit(context.Background(), "session-2", validRequest()))
}

func TestSubmitFailedDeliveryDoesNotConsumeBudget(t *testing.T) {
	mailer := new(MockMailer)
	svc := NewServiceImpl(mailer, testLogger())

	mailer.On("SendContactEmail", mock.Anything, mock.Anything).
		Return(errors.New("smtp down")).Once()
	mailer.On("SendContactEmail", mock.Anything, mock.Anything).
		Return(nil).Times(maxPerSession)

	require.Error(t, svc.Submit(context.Background(), "session-1", validRequest()))
	for i := 0; i < maxPerSession; i++ {
		require.NoError(t, svc.Submit(context.Background(), "session-1", validRequest()))
	}
}

func TestSubmitHoneypotDropsSilently(t *testing.T) {
	mailer := new(MockMailer)
	svc := NewServiceImpl(mailer, testLogger())

	req := validRequest()
	req.Website = "https://spam.example"

	err := svc.Submit(context.Background(), "session-1", req)
	assert.NoError(t, err)
	mailer.AssertNotCalled(t, "SendContactEmail", mock.Anything, mock.Anything)
}

func TestSubmitValidation(t *testing.T) {
	mailer := new(MockMailer)
	svc := NewServiceImpl(mailer, testLogger())

	tests := []struct {
		name   string
		mutate func(*types.ContactRequest)
	}{
		{"short name", func(r *types.ContactRequest) { r.Name = "W" }},
		{"bad email", func(r *types.ContactRequest) { r.Email = "not-an-email" }},
		{"unknown subject", func(r *types.ContactRequest) { r.Subject = "Fan Mail" }},
		{"short message", func(r *types.ContactRequest) { r.Message = "hi" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := svc.Submit(context.Background(), "session-1", req)
			assert.ErrorIs(t, err, ErrInvalidSubmission)
		})
	}
	mailer.AssertNotCalled(t, "SendContactEmail", mock.Anything, mock.Anything)
}
