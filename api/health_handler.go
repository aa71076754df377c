package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// pinger is the part of database.Database the health check needs
type pinger interface {
	Ping(ctx context.Context) error
}

type healthHandler struct {
	responder   Responder
	db          pinger
	startupTime time.Time
}

type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
	Uptime   string `json:"uptime" example:"1h2m3s"`
}

func newHealthHandler(db pinger, startupTime time.Time) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()
	return healthHandler{
		responder:   NewResponder(logger),
		db:          db,
		startupTime: startupTime,
	}
}

func (h healthHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		response := HealthResponse{
			Status:   "ok",
			Database: "ok",
			Uptime:   time.Since(h.startupTime).Round(time.Second).String(),
		}
		if err := h.db.Ping(ctx); err != nil {
			response.Status = "degraded"
			response.Database = err.Error()
			h.responder.WriteJSONStatus(w, http.StatusServiceUnavailable, response)
			return
		}
		h.responder.WriteJSON(w, response)
	}
}
