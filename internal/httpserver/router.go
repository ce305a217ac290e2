package httpserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"hoppon-server/internal/config"
	"hoppon-server/internal/domain"
	"hoppon-server/internal/mail"
	"hoppon-server/internal/metrics"
	"hoppon-server/internal/security"
	"hoppon-server/internal/service"
	"hoppon-server/internal/ws"
)

// Stores bundles the repository implementations for one database backend.
type Stores struct {
	Users         domain.UserRepository
	Conversations domain.ConversationRepository
	Messages      domain.MessageRepository
	Participants  domain.ParticipantRepository
	Contacts      domain.ContactRepository
	Verifications domain.VerificationRepository
}

// NewRouter constructs the main HTTP router and wires routes, services, and middleware.
func NewRouter(
	cfg *config.Config,
	stores Stores,
	hub *ws.Hub,
	broadcaster *ws.Broadcaster,
	tokenSvc *security.TokenService,
	passwordHasher *security.PasswordHasher,
	mailer mail.Mailer,
) http.Handler {
	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Services
	authSvc := service.NewAuthService(stores.Users, stores.Verifications, tokenSvc, passwordHasher, mailer)
	userSvc := service.NewUserService(stores.Users, cfg.AvatarSize)
	contactSvc := service.NewContactService(stores.Contacts, stores.Users)
	convSvc := service.NewConversationService(stores.Conversations)
	msgSvc := service.NewMessageService(stores.Conversations, stores.Participants, stores.Messages, cfg.DefaultPageSize)

	// Request-scoped endpoints carry a deadline. The WebSocket endpoint below
	// must not: its connections live far longer than any request timeout.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"healthy"}`))
		})

		r.Handle("/metrics", metrics.Handler())

		registerAPIRoutes(r, stores, hub, broadcaster, tokenSvc, authSvc, userSvc, contactSvc, convSvc, msgSvc)
	})

	// WebSocket endpoint
	r.Get("/ws", ws.MakeHandler(hub, broadcaster, tokenSvc, stores.Users, msgSvc, cfg.CORSOrigins))

	return r
}

func registerAPIRoutes(
	r chi.Router,
	stores Stores,
	hub *ws.Hub,
	broadcaster *ws.Broadcaster,
	tokenSvc *security.TokenService,
	authSvc *service.AuthService,
	userSvc *service.UserService,
	contactSvc *service.ContactService,
	convSvc *service.ConversationService,
	msgSvc *service.MessageService,
) {
	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/login", handleLogin(authSvc))
		r.Post("/register", handleRegister(authSvc))
		r.Post("/verify", handleVerify(authSvc))
		r.Post("/guest/create", handleCreateGuest(authSvc))
		r.Get("/avatar/{userID}", handleGetAvatar(userSvc))

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(tokenSvc, stores.Users))

			r.Route("/contacts", func(r chi.Router) {
				r.Get("/", handleListContacts(contactSvc))
				r.Post("/request", handleContactRequest(contactSvc, broadcaster))
				r.Get("/requests", handleListContactRequests(contactSvc))
				r.Post("/accept", handleAcceptContact(contactSvc, broadcaster))
				r.Post("/reject", handleRejectContact(contactSvc))
			})

			r.Route("/conversations", func(r chi.Router) {
				r.Post("/", handleCreateConversation(convSvc))
				r.Get("/", handleListConversations(convSvc))
				r.Get("/{conversationID}/messages", handleListMessages(msgSvc))
			})

			r.Post("/messages", handleCreateMessage(msgSvc, hub))
			r.Post("/avatar", handleUpdateAvatar(userSvc, broadcaster))
		})
	})
}

// writeJSON is a small helper to send JSON responses.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// writeError maps domain sentinels to HTTP statuses. Internal failures are
// logged with full context; the client only sees a generic message.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
	case errors.Is(err, domain.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"message": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"message": err.Error()})
	default:
		log.Printf("http: internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal server error"})
	}
}
