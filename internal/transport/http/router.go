package http

import (
	"log/slog"
	"net/http"
	"time"

	"buglog/internal/observability/middleware"
	"buglog/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

type Options struct {
	Logger         *slog.Logger
	TrustProxy     bool
	CORSOrigins    []string
	EventRateLimit int // per minute per client IP, 0 disables
	MaxInFlight    int // 0 disables
}

func NewRouter(users service.UserService, events service.EventService, health service.HealthService, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	h := &handler{users: users, events: events, health: health, log: opts.Logger}

	r := chi.NewRouter()

	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.WithRequestAndTrace)
	r.Use(middleware.LogRequests(opts.Logger))
	r.Use(middleware.WithMetrics)
	r.Use(middleware.Recover)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.HeaderRequestID, middleware.HeaderTraceID},
		MaxAge:         300,
	}))
	if opts.MaxInFlight > 0 {
		r.Use(chimw.Throttle(opts.MaxInFlight))
	}

	r.NotFound(h.fallback)
	r.MethodNotAllowed(h.fallback)

	r.Get("/healthz", h.wrap(h.healthz))
	r.Get("/getAllUsers", h.wrap(h.getAllUsers))
	r.Get("/getBugs", h.wrap(h.getBugs))

	ingest := h.wrap(h.ingestEvent)
	if opts.EventRateLimit > 0 {
		r.With(httprate.Limit(opts.EventRateLimit, time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(h.rateLimited),
		)).Get("/event", ingest)
	} else {
		r.Get("/event", ingest)
	}

	return r
}
