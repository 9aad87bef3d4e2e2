package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synapsehub/support-portal/internal/domain"
)

func ticket(message string) *domain.SupportTicket {
	return &domain.SupportTicket{
		Email:       "a@x.com",
		Title:       "t",
		Message:     message,
		ReferenceID: "01REF",
	}
}

func TestRelayTicket_SendsEmbed(t *testing.T) {
	var got payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL)
	require.NoError(t, n.RelayTicket(context.Background(), ticket("help me")))

	require.Len(t, got.Embeds, 1)
	e := got.Embeds[0]
	assert.Equal(t, "New Support Request", e.Title)
	require.Len(t, e.Fields, 4)
	assert.Equal(t, "a@x.com", e.Fields[0].Value)
	assert.Equal(t, "01REF", e.Fields[2].Value)
	assert.Equal(t, "help me", e.Fields[3].Value)
}

func TestRelayTicket_TruncatesLongMessages(t *testing.T) {
	var got payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL)
	long := strings.Repeat("x", 2000)
	require.NoError(t, n.RelayTicket(context.Background(), ticket(long)))

	msg := got.Embeds[0].Fields[3].Value
	assert.Len(t, msg, maxFieldLen+3)
	assert.True(t, strings.HasSuffix(msg, "..."))
}

func TestRelayTicket_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL)
	err := n.RelayTicket(context.Background(), ticket("help"))

	assert.ErrorIs(t, err, domain.ErrUpstream)
}
