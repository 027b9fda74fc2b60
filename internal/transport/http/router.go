package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/social-verify-api/internal/config"
	"github.com/social-verify-api/internal/transport/http/handler"
	appmiddleware "github.com/social-verify-api/internal/transport/http/middleware"
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
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to the public verification endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	healthH := handler.NewHealthHandler()
	verifH := handler.NewVerificationHandler(deps.VerificationSvc)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)

		r.Route("/verifications", func(r chi.Router) {
			r.With(sensitiveRL.Limit).Post("/bio/initiate", verifH.InitiateBio)
			r.With(sensitiveRL.Limit).Post("/bio/complete", verifH.CompleteBio)
			r.With(sensitiveRL.Limit).Post("/tweet", verifH.VerifyTweet)
			r.With(sensitiveRL.Limit).Post("/oauth/initiate", verifH.InitiateOAuth)
			// The provider redirects the browser here; no rate limit so a
			// legitimate callback is never dropped mid-handshake.
			r.Get("/oauth/callback", verifH.OAuthCallback)

			// Admin-only ledger view, available only when JWT keys are configured.
			if deps.JWTProvider != nil {
				r.With(
					appmiddleware.Auth(deps.JWTProvider),
					appmiddleware.RequireRole(appmiddleware.RoleAdmin),
				).Get("/", verifH.List)
			}

			r.Get("/{wallet}", verifH.GetStatus)
		})
	})

	return r
}
