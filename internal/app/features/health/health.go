// internal/app/features/health/health.go
package health

import (
	"context"
	"net/http"
	"sort"

	"github.com/dalemusser/studyhours/internal/app/system/jsonutil"
	"github.com/dalemusser/studyhours/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Check reports whether one backing service is reachable.
type Check func(ctx context.Context) error

// MongoCheck pings the primary of client.
func MongoCheck(client *mongo.Client) Check {
	return func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
}

// Handler provides health check endpoints. With the memory backend there
// are no checks and the service is always ready.
type Handler struct {
	checks map[string]Check
	logger *zap.Logger
}

// NewHandler creates a new health check Handler. checks maps a service name
// (e.g. "mongodb") to its probe; nil is allowed.
func NewHandler(checks map[string]Check, logger *zap.Logger) *Handler {
	return &Handler{
		checks: checks,
		logger: logger,
	}
}

// Response represents the health check response.
type Response struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

// Routes returns a chi.Router with health check routes mounted.
// Provides /health (full check), /health/ready, and /health/live.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Check)
	r.Get("/ready", h.Ready)
	r.Get("/live", h.Live)
	return r
}

// MountRootEndpoints adds /ready and /livez endpoints directly on the root router.
func MountRootEndpoints(r chi.Router, h *Handler) {
	r.Get("/ready", h.Ready)
	r.Get("/readyz", h.Ready)
	r.Get("/livez", h.Live)
}

// run executes every check and returns per-service status plus the first
// failing service name, if any.
func (h *Handler) run(ctx context.Context) (map[string]string, string) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	services := make(map[string]string, len(names))
	failed := ""
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			services[name] = "unavailable"
			if failed == "" {
				failed = name
			}
			h.logger.Warn("health check failed", zap.String("service", name), zap.Error(err))
			continue
		}
		services[name] = "ok"
	}
	return services, failed
}

// Check performs a full health check of every backing service.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	services, failed := h.run(r.Context())
	resp := Response{Status: "ok", Services: services}
	if failed != "" {
		resp.Status = "degraded"
	}

	code := http.StatusOK
	if resp.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	jsonutil.JSON(w, code, resp)
}

// Ready checks if the service is ready to accept requests.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if _, failed := h.run(r.Context()); failed != "" {
		jsonutil.Status(w, http.StatusServiceUnavailable, "not ready")
		return
	}
	jsonutil.Status(w, http.StatusOK, "ready")
}

// Live checks if the process is alive.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	jsonutil.Status(w, http.StatusOK, "alive")
}
