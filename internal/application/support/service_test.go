package support

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/synapsehub/support-portal/internal/application/session"
	"github.com/synapsehub/support-portal/internal/domain"
)

// --- mocks ---

type mockRelay struct{ mock.Mock }

func (m *mockRelay) RelayTicket(ctx context.Context, t *domain.SupportTicket) error {
	return m.Called(ctx, t).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendHTML(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

// --- helpers ---

func verifiedSession(t *testing.T, email string) *session.Session {
	t.Helper()
	s := session.NewManager(time.Hour).Create()
	s.SetVerifiedEmail(email)
	return s
}

func ticket(email string) domain.SupportTicket {
	return domain.SupportTicket{Email: email, Title: "t", Message: "m"}
}

// --- Submit ---

func TestSubmit_UnverifiedSession(t *testing.T) {
	rl, ml := &mockRelay{}, &mockMailer{}
	svc := NewService(rl, ml)
	sess := session.NewManager(time.Hour).Create()

	err := svc.Submit(context.Background(), ticket("a@x.com"), sess)

	assert.ErrorIs(t, err, domain.ErrUnverified)
	rl.AssertNotCalled(t, "RelayTicket", mock.Anything, mock.Anything)
}

func TestSubmit_VerifiedForDifferentEmail(t *testing.T) {
	rl, ml := &mockRelay{}, &mockMailer{}
	svc := NewService(rl, ml)
	sess := verifiedSession(t, "a@x.com")

	err := svc.Submit(context.Background(), ticket("b@y.com"), sess)

	assert.ErrorIs(t, err, domain.ErrUnverified)
	// The grant is untouched by a mismatched attempt.
	assert.Equal(t, "a@x.com", sess.VerifiedEmail())
}

func TestSubmit_IdentityCheckedBeforeContent(t *testing.T) {
	rl, ml := &mockRelay{}, &mockMailer{}
	svc := NewService(rl, ml)
	sess := session.NewManager(time.Hour).Create()

	// Invalid content and no verification: identity wins.
	err := svc.Submit(context.Background(), domain.SupportTicket{Email: "a@x.com"}, sess)

	assert.ErrorIs(t, err, domain.ErrUnverified)
}

func TestSubmit_MissingContent(t *testing.T) {
	rl, ml := &mockRelay{}, &mockMailer{}
	svc := NewService(rl, ml)
	sess := verifiedSession(t, "a@x.com")

	err := svc.Submit(context.Background(), domain.SupportTicket{Email: "a@x.com", Title: "t"}, sess)

	assert.ErrorIs(t, err, domain.ErrBadRequest)
	rl.AssertNotCalled(t, "RelayTicket", mock.Anything, mock.Anything)
}

func TestSubmit_Success_RelaysConfirmsAndSpendsGrant(t *testing.T) {
	rl, ml := &mockRelay{}, &mockMailer{}
	rl.On("RelayTicket", mock.Anything, mock.AnythingOfType("*domain.SupportTicket")).Return(nil)
	ml.On("SendHTML", "a@x.com", mock.Anything, mock.Anything).Return(nil)
	svc := NewService(rl, ml)
	sess := verifiedSession(t, "a@x.com")

	require.NoError(t, svc.Submit(context.Background(), ticket("a@x.com"), sess))

	relayed := rl.Calls[0].Arguments.Get(1).(*domain.SupportTicket)
	assert.NotEmpty(t, relayed.ReferenceID)
	assert.Equal(t, "a@x.com", relayed.Email)

	body := ml.Calls[0].Arguments.String(2)
	assert.Contains(t, body, relayed.ReferenceID)

	// One ticket per verification.
	assert.Empty(t, sess.VerifiedEmail())
	err := svc.Submit(context.Background(), ticket("a@x.com"), sess)
	assert.ErrorIs(t, err, domain.ErrUnverified)
}

func TestSubmit_RelayFailure(t *testing.T) {
	rl, ml := &mockRelay{}, &mockMailer{}
	rl.On("RelayTicket", mock.Anything, mock.Anything).Return(assert.AnError)
	svc := NewService(rl, ml)
	sess := verifiedSession(t, "a@x.com")

	err := svc.Submit(context.Background(), ticket("a@x.com"), sess)

	assert.ErrorIs(t, err, domain.ErrUpstream)
	ml.AssertNotCalled(t, "SendHTML", mock.Anything, mock.Anything, mock.Anything)
	// No rollback, and the grant is not spent on failure.
	assert.Equal(t, "a@x.com", sess.VerifiedEmail())
}

func TestSubmit_ConfirmationFailure(t *testing.T) {
	rl, ml := &mockRelay{}, &mockMailer{}
	rl.On("RelayTicket", mock.Anything, mock.Anything).Return(nil)
	ml.On("SendHTML", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)
	svc := NewService(rl, ml)
	sess := verifiedSession(t, "a@x.com")

	err := svc.Submit(context.Background(), ticket("a@x.com"), sess)

	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Equal(t, "a@x.com", sess.VerifiedEmail())
}
