package health

import (
	"context"
	"encoding/json"
	"net/http"
)

// Checker represents dependencies that can be probed for readiness.
type Checker interface {
	CheckStore(ctx context.Context) error
	CheckPricing(ctx context.Context) error
}

// Handler exposes HTTP handlers for health endpoints.
type Handler struct {
	Checker Checker
}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness based on dependency probes.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.Checker == nil {
		http.Error(w, "dependencies unavailable", http.StatusServiceUnavailable)
		return
	}
	ctx := r.Context()
	storeStatus := "ok"
	if err := h.Checker.CheckStore(ctx); err != nil {
		storeStatus = err.Error()
	}
	pricingStatus := "ok"
	if err := h.Checker.CheckPricing(ctx); err != nil {
		pricingStatus = err.Error()
	}
	status := map[string]string{
		"store":   storeStatus,
		"pricing": pricingStatus,
	}
	w.Header().Set("Content-Type", "application/json")
	if storeStatus != "ok" || pricingStatus != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(status)
}
