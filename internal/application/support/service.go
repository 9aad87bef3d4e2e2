package support

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/synapsehub/support-portal/internal/application/session"
	"github.com/synapsehub/support-portal/internal/domain"
	"github.com/synapsehub/support-portal/internal/infrastructure/smtp"
	"github.com/synapsehub/support-portal/internal/pkg/id"
	"github.com/synapsehub/support-portal/internal/pkg/validate"
)

// TeamRelay delivers accepted tickets to the team channel.
type TeamRelay interface {
	RelayTicket(ctx context.Context, t *domain.SupportTicket) error
}

type Service interface {
	// Submit accepts a ticket from a session whose verified email matches
	// the ticket's. On success the session's verification grant is spent.
	Submit(ctx context.Context, t domain.SupportTicket, sess *session.Session) error
}

type service struct {
	relay  TeamRelay
	mailer smtp.Mailer
}

func NewService(relay TeamRelay, mailer smtp.Mailer) Service {
	return &service{relay: relay, mailer: mailer}
}

func (s *service) Submit(ctx context.Context, t domain.SupportTicket, sess *session.Session) error {
	// Identity binding comes before content validation: an unverified
	// caller learns nothing about what else is wrong with the request.
	verified := sess.VerifiedEmail()
	if verified == "" || verified != t.Email {
		return fmt.Errorf("email is not verified for this session: %w", domain.ErrUnverified)
	}

	if err := validate.Struct(&t); err != nil {
		return fmt.Errorf("title and message are required: %w", domain.ErrBadRequest)
	}

	t.ReferenceID = id.New()

	if err := s.relay.RelayTicket(ctx, &t); err != nil {
		slog.Error("failed to relay ticket", "reference", t.ReferenceID, "err", err)
		return fmt.Errorf("could not deliver support request: %w", domain.ErrUpstream)
	}

	body, err := smtp.RenderTicketConfirmation(smtp.TicketConfirmation{
		Email:       t.Email,
		Title:       t.Title,
		ReferenceID: t.ReferenceID,
		SubmittedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if err := s.mailer.SendHTML(t.Email, "Support Request Received - SYNAPSE", body); err != nil {
		// The ticket already reached the team channel; there is no
		// compensating rollback and the grant is not cleared.
		slog.Error("failed to send confirmation email", "reference", t.ReferenceID, "err", err)
		return fmt.Errorf("could not send confirmation email: %w", domain.ErrUpstream)
	}

	// One ticket per verification.
	sess.ClearVerifiedEmail()
	return nil
}
