package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/synapsehub/support-portal/internal/domain"
	"github.com/synapsehub/support-portal/internal/infrastructure/chatapi"
)

// systemPrompt primes the completion API as the Synapse support assistant.
const systemPrompt = `You are an AI assistant for the Synapse platform support portal.

Personality:
- Professional but friendly
- Experienced in web technologies, software development and technical support
- Honest when you do not know a specific answer

Your role is to assist users with technical questions about the Synapse
platform, troubleshooting, feature explanations and general support.

Synapse is a multi-purpose platform offering web hosting, API keys, bots,
file storage, VPS and cloud services. Support is handled by the TrustUs team
(contact: supporto@synapsehub.eu). Additional products include the Synapse
Elite subscription (dedicated services, exclusive discounts, priority
support) and Synapse AntiScam (protection from dangerous sites and users,
with a personal security dashboard).

Always keep a professional and helpful tone.`

type Service interface {
	// Send proxies one user message, with optional prior turns, to the
	// completion API and returns the assistant reply.
	Send(ctx context.Context, message string, history []domain.ChatMessage) (string, error)
}

type service struct {
	completer chatapi.Client
}

func NewService(completer chatapi.Client) Service {
	return &service{completer: completer}
}

func (s *service) Send(ctx context.Context, message string, history []domain.ChatMessage) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("message must not be empty: %w", domain.ErrBadRequest)
	}

	msgs := make([]domain.ChatMessage, 0, len(history)+2)
	msgs = append(msgs, domain.ChatMessage{Role: "system", Content: systemPrompt})
	msgs = append(msgs, history...)
	msgs = append(msgs, domain.ChatMessage{Role: "user", Content: message})

	return s.completer.Complete(ctx, msgs)
}
