package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"recall-backend/internal/handlers"
	"recall-backend/internal/middleware"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	deckHandler *handlers.DeckHandler,
	studyHandler *handlers.StudyHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Auth Routes (public) ────
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// ──── User Routes ────
		r.Route("/user", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/me", authHandler.Me)
		})

		// ──── Deck Routes ────
		r.Route("/decks", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/", deckHandler.CreateDeck)
			r.Get("/", deckHandler.ListDecks)

			r.Route("/{deckID}", func(r chi.Router) {
				r.Get("/", deckHandler.GetDeck)
				r.Delete("/", deckHandler.DeleteDeck)
				r.Get("/stats", deckHandler.DeckStats)

				r.Post("/cards", deckHandler.CreateCards)
				r.Delete("/cards/{cardID}", deckHandler.DeleteCard)

				// Scheduling surface
				r.Post("/review", studyHandler.RateCard)
				r.Get("/study-queue", studyHandler.StudyQueue)
				r.Get("/quiz-queue", studyHandler.QuizQueue)
				r.Get("/score", studyHandler.DeckScore)
			})
		})
	})

	return r
}
