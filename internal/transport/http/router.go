package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/synapsehub/support-portal/internal/application/chat"
	"github.com/synapsehub/support-portal/internal/application/otp"
	"github.com/synapsehub/support-portal/internal/application/support"
	"github.com/synapsehub/support-portal/internal/config"
	"github.com/synapsehub/support-portal/internal/transport/http/handler"
	appmiddleware "github.com/synapsehub/support-portal/internal/transport/http/middleware"
	"github.com/synapsehub/support-portal/web"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(appmiddleware.BlockSensitivePaths)

	sessionMw := appmiddleware.Session(deps.Sessions, deps.TokenProvider, cfg.AppEnv == "production")
	// Fixed window: rejecting the 3rd attempt within 30 minutes by default.
	submitRL := appmiddleware.NewFixedWindowLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	// 1 request/second, burst of 5 — local protection for the completion API proxy.
	chatThrottle := appmiddleware.NewThrottle(rate.Limit(1), 5)

	otpSvc := otp.NewService(deps.Codes, deps.Mailer, cfg.OTPTTL)
	supportSvc := support.NewService(deps.TeamRelay, deps.Mailer)
	chatSvc := chat.NewService(deps.ChatClient)

	healthH := handler.NewHealthHandler()
	pagesH := handler.NewPagesHandler(web.Pages())
	otpH := handler.NewOTPHandler(otpSvc)
	supportH := handler.NewSupportHandler(supportSvc)
	chatH := handler.NewChatHandler(chatSvc)

	// ── Pages ────────────────────────────────────────────────────────────
	r.Get("/", pagesH.Root)
	r.Get("/lander", pagesH.Lander)
	r.Get("/supporto", pagesH.Supporto)
	r.Get("/health-check", healthH.Ping)

	// ── API ──────────────────────────────────────────────────────────────
	r.Route("/api", func(r chi.Router) {
		r.Use(sessionMw)

		r.Post("/send-otp", otpH.SendOTP)
		r.Post("/verify-otp", otpH.VerifyOTP)
		// Rate limit runs before the handler: a rejected or malformed
		// request still consumes a slot.
		r.With(submitRL.Limit).Post("/submit-support", supportH.Submit)
		r.With(chatThrottle.Limit).Post("/chat", chatH.Send)
	})

	return r
}
