package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/dropDatabas3/odic/internal/http/helpers"
	"github.com/dropDatabas3/odic/internal/observability/logger"
)

// Pinger es lo mínimo que el health check necesita del store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController maneja /healthz.
type HealthController struct {
	store Pinger
}

// NewHealthController crea el controller de health check.
func NewHealthController(store Pinger) *HealthController {
	return &HealthController{store: store}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Healthz maneja GET /healthz. Responde 200 si el store contesta el
// ping, 503 si no.
func (c *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok", Checks: map[string]string{"store": "ok"}}
	status := http.StatusOK

	if err := c.store.Ping(ctx); err != nil {
		logger.From(r.Context()).Warn("health check: store unreachable", logger.Err(err))
		resp.Status = "unavailable"
		resp.Checks["store"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	helpers.WriteJSON(w, status, resp)
}
