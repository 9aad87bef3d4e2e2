package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/synapsehub/support-portal/internal/domain"
)

// maxFieldLen is the Discord embed field value limit we truncate against.
const maxFieldLen = 1000

// Notifier relays accepted tickets to a Discord-compatible webhook as an
// embed message.
type Notifier struct {
	url    string
	client *http.Client
}

func NewNotifier(url string) *Notifier {
	return &Notifier{url: url, client: http.DefaultClient}
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embed struct {
	Title     string       `json:"title"`
	Color     int          `json:"color"`
	Fields    []embedField `json:"fields"`
	Timestamp string       `json:"timestamp"`
	Footer    struct {
		Text string `json:"text"`
	} `json:"footer"`
}

type payload struct {
	Embeds []embed `json:"embeds"`
}

func (n *Notifier) RelayTicket(ctx context.Context, t *domain.SupportTicket) error {
	msg := t.Message
	if len(msg) > maxFieldLen {
		msg = msg[:maxFieldLen] + "..."
	}

	e := embed{
		Title: "New Support Request",
		Color: 0x3498db,
		Fields: []embedField{
			{Name: "Email", Value: t.Email, Inline: true},
			{Name: "Title", Value: t.Title, Inline: true},
			{Name: "Reference", Value: t.ReferenceID, Inline: true},
			{Name: "Message", Value: msg, Inline: false},
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	e.Footer.Text = "SYNAPSE Support Portal"

	body, err := json.Marshal(payload{Embeds: []embed{e}})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %v: %w", err, domain.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded %d: %w", resp.StatusCode, domain.ErrUpstream)
	}
	return nil
}
