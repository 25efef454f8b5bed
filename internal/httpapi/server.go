package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"leafd/pkg/types"
)

// PingGreeting is the fixed body of GET /ping.
const PingGreeting = "Hello ia api"

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Classify(ctx context.Context, data []byte) (types.Prediction, error)
	Ready() bool
	Status() types.StatusResponse
}

type api struct {
	svc  Service
	opts Options
	log  zerolog.Logger
}

func NewMux(svc Service, opts Options) http.Handler {
	opts = opts.withDefaults()
	a := &api{svc: svc, opts: opts, log: *opts.Logger}

	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if opts.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORS.AllowedOrigins,
			AllowedMethods: opts.CORS.AllowedMethods,
			AllowedHeaders: opts.CORS.AllowedHeaders,
			ExposedHeaders: []string{"X-Request-Id"},
			MaxAge:         300,
		}))
	}

	r.Get("/ping", a.ping)
	r.Post("/predict", a.predict)
	r.Get("/status", a.status)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("degraded"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

// ping godoc
// @Summary      Liveness greeting
// @Description  Returns a fixed greeting regardless of model state.
// @Tags         health
// @Produce      json
// @Success      200  {string}  string  "Hello ia api"
// @Router       /ping [get]
func (a *api) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PingGreeting)
}

// status godoc
// @Summary      Classifier status
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.StatusResponse
// @Router       /status [get]
func (a *api) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.svc.Status())
}
