package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Banner is the body of the home route, kept for storefronts that
// probe the API root.
const Banner = "<h1>Plant Store API</h1>"

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler serves the banner and health endpoints.
type Handler struct {
	db      Pinger
	service string
	started time.Time
}

func NewHandler(db Pinger, service string) *Handler {
	return &Handler{db: db, service: service, started: time.Now()}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Get("/", h.home)
	r.Get("/healthz", h.healthz)
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(Banner))
}

// healthz reports ok while the store answers a bounded ping, and
// degrades to 503 when it does not.
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	body := map[string]interface{}{
		"status":     "ok",
		"service":    h.service,
		"uptime_sec": int64(time.Since(h.started).Seconds()),
	}
	if err := h.db.PingContext(ctx); err != nil {
		status = http.StatusServiceUnavailable
		body["status"] = "degraded"
		body["error"] = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
