/*
Package handler provides the HTTP handlers and routing setup for the Geopolitik lobby server.

The router applies CORS, request ids, real-IP resolution, request logging and
panic recovery globally, extracts bearer identities on /api, and rate limits
the endpoints that are cheap to abuse per client IP.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"geopolitik/internal/pkg/auth/jwt"
	"geopolitik/internal/pkg/limiter"
	"geopolitik/internal/pkg/logx"
	"geopolitik/internal/pkg/resp"
)

const (
	AuthRate      = 0.2
	AuthBurst     = 10
	PopulateRate  = 0.05
	PopulateBurst = 3
	ChatRate      = 1
	ChatBurst     = 10
)

// Router builds the routing table. The returned stop func releases the rate limiters' sweepers.
func Router(deps *AppDeps) (http.Handler, func()) {
	authLimiter := limiter.NewIPRateLimiter("auth", rate.Limit(AuthRate), AuthBurst)
	populateLimiter := limiter.NewIPRateLimiter("populate", rate.Limit(PopulateRate), PopulateBurst)
	chatLimiter := limiter.NewIPRateLimiter("chat", rate.Limit(ChatRate), ChatBurst)

	stop := func() {
		authLimiter.Stop()
		populateLimiter.Stop()
		chatLimiter.Stop()
	}

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]string{
			"status":  "ok",
			"service": "Geopolitik Server",
		})
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Group(func(public chi.Router) {
			public.With(authLimiter.Middleware).Post("/auth/register", HandleRegister(deps))
			public.With(authLimiter.Middleware).Post("/auth/login", HandleLogin(deps))

			public.Get("/ready", HandleGetReadiness(deps))
			public.Get("/invite/accept", HandleAcceptInvite(deps))
		})

		api.Group(func(private chi.Router) {
			private.Use(jwt.RequireIdentity)

			private.Get("/profile", HandleGetProfile(deps))
			private.Put("/profile", HandleUpdateProfile(deps))
			private.Post("/profile/avatar/presign", HandlePresignAvatar(deps))

			private.Post("/server", HandleCreateServer(deps))
			private.Get("/server", HandleListServers(deps))
			private.Post("/server/start", HandleStartGame(deps))
			private.Get("/server/{id}", HandleGetServer(deps))

			private.Post("/nation", HandleCreateNation(deps))
			private.Get("/nation", HandleListNations(deps))

			private.Post("/ready", HandleToggleReady(deps))

			private.Post("/bot", HandleSpawnBot(deps))
			private.With(populateLimiter.Middleware).Post("/bots/populate", HandlePopulateBots(deps))

			private.Post("/invite", HandleCreateInvite(deps))

			private.With(chatLimiter.Middleware).Post("/chat", HandleSendMessage(deps))
			private.Get("/chat", HandleFetchMessages(deps))
		})
	})

	return r, stop
}
