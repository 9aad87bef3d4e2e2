package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/synapsehub/support-portal/internal/application/otp"
	"github.com/synapsehub/support-portal/internal/application/session"
	"github.com/synapsehub/support-portal/internal/application/support"
	"github.com/synapsehub/support-portal/internal/config"
	"github.com/synapsehub/support-portal/internal/infrastructure/chatapi"
	"github.com/synapsehub/support-portal/internal/infrastructure/dynamo"
	jwtinfra "github.com/synapsehub/support-portal/internal/infrastructure/jwt"
	"github.com/synapsehub/support-portal/internal/infrastructure/memstore"
	"github.com/synapsehub/support-portal/internal/infrastructure/smtp"
	snsinfra "github.com/synapsehub/support-portal/internal/infrastructure/sns"
	"github.com/synapsehub/support-portal/internal/infrastructure/webhook"
	"github.com/synapsehub/support-portal/internal/pkg/token"
	transporthttp "github.com/synapsehub/support-portal/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	if cfg.SessionSecret == "" {
		secret, err := token.NewSecret()
		if err != nil {
			log.Fatalf("generate fallback session secret: %v", err)
		}
		cfg.SessionSecret = secret
		log.Println("WARN: SESSION_SECRET not set, using a random secret; sessions will not survive restarts")
	}

	tokenProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("session token provider: %v", err)
	}

	// Pending-code store: in-memory by default, DynamoDB when configured.
	var codes otp.CodeStore
	switch cfg.CodeStore {
	case "dynamo":
		client := dynamo.NewClient(cfg)
		dynamo.Bootstrap(context.Background(), client, cfg.DynamoTablePendingCodes)
		codes = dynamo.NewPendingCodeRepo(client, cfg.DynamoTablePendingCodes)
	default:
		codes = memstore.NewCodeStore()
	}

	mailer := smtp.NewMailer(cfg)

	// Team-channel relay: Discord-compatible webhook by default, SNS topic
	// when configured.
	var relay support.TeamRelay
	switch cfg.TeamChannel {
	case "sns":
		publisher, err := snsinfra.NewTicketPublisher(cfg)
		if err != nil {
			log.Fatalf("SNS publisher: %v", err)
		}
		relay = publisher
	default:
		relay = webhook.NewNotifier(cfg.WebhookURL)
	}

	deps := &transporthttp.Deps{
		Codes:         codes,
		Mailer:        mailer,
		TeamRelay:     relay,
		ChatClient:    chatapi.NewClient(cfg),
		Sessions:      session.NewManager(cfg.SessionTTL),
		TokenProvider: tokenProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
