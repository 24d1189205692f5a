package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/fakturan-app/pricelist-api/internal/auth"
	"github.com/fakturan-app/pricelist-api/internal/http/handlers"
	"github.com/fakturan-app/pricelist-api/internal/http/ratelimit"
	"github.com/fakturan-app/pricelist-api/internal/lockout"
	"github.com/fakturan-app/pricelist-api/internal/repo"
)

// RouterConfig carries everything the routes depend on; main builds it once
// from configuration and injects it here.
type RouterConfig struct {
	Tokens         *auth.Service
	Users          repo.UserRepository
	Products       repo.ProductRepository
	Translations   repo.TranslationRepository
	Lockout        *lockout.Tracker
	AuthLimiter    *ratelimit.Limiter
	LoginFailDelay time.Duration
}

func NewRouter(c RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	authHandler := handlers.NewAuthHandler(c.Users, c.Tokens, c.Lockout, c.LoginFailDelay)
	productHandler := handlers.NewProductHandler(c.Products)
	translationHandler := handlers.NewTranslationHandler(c.Translations)

	requireAuth := AuthMiddleware(c.Tokens)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteJSON(w, http.StatusOK, handlers.Envelope{
			Success: true,
			Message: "Server is running",
			Data:    map[string]string{"timestamp": time.Now().UTC().Format(time.RFC3339)},
		})
	})

	r.Route("/api/auth", func(r chi.Router) {
		if c.AuthLimiter != nil {
			r.Use(RateLimitMiddleware(c.AuthLimiter))
		}
		r.Post("/login", authHandler.Login)
		r.Post("/register", authHandler.Register)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/verify", authHandler.Verify)
			r.Post("/logout", authHandler.Logout)
		})
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", productHandler.List)
		r.Post("/", productHandler.Create)
		r.Get("/{id}", productHandler.Get)
		r.Put("/{id}", productHandler.Update)
		r.Delete("/{id}", productHandler.Delete)
	})

	r.Route("/api/translations", func(r chi.Router) {
		r.Get("/", translationHandler.GetAll)
		r.Get("/{page}", translationHandler.GetByPage)
		r.Get("/{page}/{key}", translationHandler.GetByKey)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteError(w, http.StatusNotFound, "Route not found")
	})

	return r
}
