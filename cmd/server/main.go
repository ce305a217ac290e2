package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hoppon-server/internal/config"
	"hoppon-server/internal/httpserver"
	"hoppon-server/internal/mail"
	"hoppon-server/internal/security"
	"hoppon-server/internal/store/postgres"
	"hoppon-server/internal/store/sqlite"
	"hoppon-server/internal/ws"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database
	var db *sql.DB
	var stores httpserver.Stores

	switch cfg.DBDriver {
	case "postgres":
		db, err = postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		if err := postgres.Migrate(db); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		stores = httpserver.Stores{
			Users:         postgres.NewUserRepo(db),
			Conversations: postgres.NewConversationRepo(db),
			Messages:      postgres.NewMessageRepo(db),
			Participants:  postgres.NewParticipantRepo(db),
			Contacts:      postgres.NewContactRepo(db),
			Verifications: postgres.NewVerificationRepo(db),
		}
	case "sqlite":
		db, err = sqlite.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		if err := sqlite.Migrate(db); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		stores = httpserver.Stores{
			Users:         sqlite.NewUserRepo(db),
			Conversations: sqlite.NewConversationRepo(db),
			Messages:      sqlite.NewMessageRepo(db),
			Participants:  sqlite.NewParticipantRepo(db),
			Contacts:      sqlite.NewContactRepo(db),
			Verifications: sqlite.NewVerificationRepo(db),
		}
	default:
		log.Fatalf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
	defer db.Close()

	// Security components
	tokenSvc := security.NewTokenService(cfg.JWTSecret, time.Duration(cfg.AccessTokenMinutes)*time.Minute)
	passwordHasher := security.NewPasswordHasher(0)

	// Mail delivery: real SMTP when configured, log fallback otherwise
	var mailer mail.Mailer = mail.LogMailer{}
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	}

	// WebSocket hub and broadcaster
	hub := ws.NewHub()
	broadcaster := ws.NewBroadcaster(hub)

	// Build HTTP router
	router := httpserver.NewRouter(cfg, stores, hub, broadcaster, tokenSvc, passwordHasher, mailer)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		log.Printf("Starting %s on %s\n", cfg.AppName, cfg.HTTPAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
