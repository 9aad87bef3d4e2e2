package http

import (
	"github.com/synapsehub/support-portal/internal/application/otp"
	"github.com/synapsehub/support-portal/internal/application/session"
	"github.com/synapsehub/support-portal/internal/application/support"
	"github.com/synapsehub/support-portal/internal/infrastructure/chatapi"
	jwtinfra "github.com/synapsehub/support-portal/internal/infrastructure/jwt"
	"github.com/synapsehub/support-portal/internal/infrastructure/smtp"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	Codes         otp.CodeStore
	Mailer        smtp.Mailer
	TeamRelay     support.TeamRelay
	ChatClient    chatapi.Client
	Sessions      *session.Manager
	TokenProvider *jwtinfra.Provider
}
