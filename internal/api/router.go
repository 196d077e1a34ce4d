package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/itemboard/itemboard-be/internal/api/handlers"
	"github.com/itemboard/itemboard-be/internal/auth"
	"github.com/itemboard/itemboard-be/internal/services"
	"github.com/itemboard/itemboard-be/internal/session"
)

// RouterDeps carries everything the router wires into handlers.
type RouterDeps struct {
	AuthService services.AuthServiceProvider
	ItemService services.ItemServiceProvider
	Tokens      *auth.TokenService
	Sessions    *session.Store
	TokenTTL    time.Duration
	Production  bool
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.Sessions, deps.TokenTTL, deps.Production)
	itemHandler := handlers.NewItemHandler(deps.ItemService)

	// Protected routes verify the bearer token first, then the idle
	// timeout; an expired token reads as a token failure regardless of
	// session state.
	requireAuth := auth.RequireAuth(deps.Tokens)
	sessionGuard := session.Guard(deps.Sessions)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/login", authHandler.Login)
			r.Get("/logout", authHandler.Logout)
			r.Post("/validate", authHandler.ValidateField)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Use(sessionGuard)
				r.Get("/me", authHandler.Me)
			})
		})

		r.Route("/items", func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(sessionGuard)

			r.Get("/", itemHandler.GetAll)
			r.Post("/", itemHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", itemHandler.Get)
				r.Put("/", itemHandler.Update)
				r.Delete("/", itemHandler.Delete)
			})
		})
	})

	return r
}
