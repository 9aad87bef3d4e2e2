package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synapsehub/support-portal/internal/application/session"
	"github.com/synapsehub/support-portal/internal/config"
	"github.com/synapsehub/support-portal/internal/domain"
	jwtinfra "github.com/synapsehub/support-portal/internal/infrastructure/jwt"
	"github.com/synapsehub/support-portal/internal/infrastructure/memstore"
)

type captureMailer struct {
	bodies []string
	to     []string
}

func (m *captureMailer) SendHTML(to, subject, body string) error {
	m.to = append(m.to, to)
	m.bodies = append(m.bodies, body)
	return nil
}

type captureRelay struct {
	tickets []*domain.SupportTicket
}

func (r *captureRelay) RelayTicket(_ context.Context, t *domain.SupportTicket) error {
	r.tickets = append(r.tickets, t)
	return nil
}

type stubCompleter struct {
	reply string
	err   error
}

func (c *stubCompleter) Complete(context.Context, []domain.ChatMessage) (string, error) {
	return c.reply, c.err
}

type testEnv struct {
	srv    *httptest.Server
	client *http.Client
	mailer *captureMailer
	relay  *captureRelay
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		AppEnv:          "test",
		SessionSecret:   "e2e-test-secret",
		SessionTTL:      24 * time.Hour,
		OTPTTL:          10 * time.Minute,
		RateLimitMax:    2,
		RateLimitWindow: 30 * time.Minute,
		AllowedOrigins:  []string{"*"},
	}
	provider, err := jwtinfra.NewProvider(cfg)
	require.NoError(t, err)

	mailer := &captureMailer{}
	relay := &captureRelay{}
	router := NewRouter(cfg, &Deps{
		Codes:         memstore.NewCodeStore(),
		Mailer:        mailer,
		TeamRelay:     relay,
		ChatClient:    &stubCompleter{reply: "hello from support"},
		Sessions:      session.NewManager(cfg.SessionTTL),
		TokenProvider: provider,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		srv:    srv,
		client: &http.Client{Jar: jar},
		mailer: mailer,
		relay:  relay,
	}
}

func (e *testEnv) post(t *testing.T, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := e.client.Post(e.srv.URL+path, "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

func TestSubmitFlow(t *testing.T) {
	env := newTestEnv(t)

	resp := env.post(t, "/api/send-otp", map[string]string{"email": "a@x.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	require.Len(t, env.mailer.bodies, 1)
	code := codePattern.FindString(env.mailer.bodies[0])
	require.NotEmpty(t, code, "verification email must contain the code")

	resp = env.post(t, "/api/verify-otp", map[string]string{"email": "a@x.com", "otp": code})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	ticket := map[string]string{"email": "a@x.com", "title": "cannot log in", "message": "help"}
	resp = env.post(t, "/api/submit-support", ticket)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	require.Len(t, env.relay.tickets, 1)
	assert.Equal(t, "cannot log in", env.relay.tickets[0].Title)
	assert.NotEmpty(t, env.relay.tickets[0].ReferenceID)

	// Confirmation email carries the same reference.
	require.Len(t, env.mailer.bodies, 2)
	assert.Contains(t, env.mailer.bodies[1], env.relay.tickets[0].ReferenceID)

	// The verification grant is consumed by the first submission.
	resp = env.post(t, "/api/submit-support", ticket)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Third attempt inside the window hits the fixed-window limit.
	resp = env.post(t, "/api/submit-support", ticket)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["error"])
	assert.Greater(t, body["retryAfter"].(float64), float64(0))
}

func TestSubmitWithoutVerification(t *testing.T) {
	env := newTestEnv(t)

	resp := env.post(t, "/api/submit-support", map[string]string{
		"email": "a@x.com", "title": "t", "message": "m",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
	assert.Empty(t, env.relay.tickets)
}

func TestVerifyWrongCode(t *testing.T) {
	env := newTestEnv(t)

	resp := env.post(t, "/api/send-otp", map[string]string{"email": "a@x.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.post(t, "/api/verify-otp", map[string]string{"email": "a@x.com", "otp": "000000"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestSendOTPInvalidEmail(t *testing.T) {
	env := newTestEnv(t)

	resp := env.post(t, "/api/send-otp", map[string]string{"email": "not-an-address"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
	assert.Empty(t, env.mailer.bodies)
}

func TestChatEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp := env.post(t, "/api/chat", map[string]any{"message": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = env.post(t, "/api/chat", map[string]any{"message": "where is my ticket?"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "hello from support", body["response"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestBlockedPaths(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/.env", "/.git/config", "/admin"} {
		resp, err := env.client.Get(env.srv.URL + path)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		resp.Body.Close()
	}

	resp, err := env.client.Get(env.srv.URL + "/health-check")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
