package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"

	"github.com/noah-isme/checkout-api/internal/catalog"
	"github.com/noah-isme/checkout-api/internal/common"
	"github.com/noah-isme/checkout-api/internal/order"
	"github.com/noah-isme/checkout-api/internal/pricing"
	"github.com/noah-isme/checkout-api/internal/store"
)

// Handler wires the checkout service to HTTP.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
	// DebugErrors attaches diagnostic detail to unanticipated failures.
	// Never enabled in production.
	DebugErrors bool
}

// NewHandler builds a handler with a ready validator.
func NewHandler(svc *Service, debugErrors bool) *Handler {
	return &Handler{Svc: svc, Validate: validator.New(), DebugErrors: debugErrors}
}

// Create handles POST /order.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	snap, err := h.Svc.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, snap)
}

// Add handles POST /orders/{orderID}/add.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	snap, err := h.Svc.Add(r.Context(), chi.URLParam(r, "orderID"), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, snap)
}

// Cancel handles POST /orders/{orderID}/cancel. Any order_time in the
// body is ignored; cancellation is quantity-based per kind.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	req.OrderTime = ""
	snap, err := h.Svc.Cancel(r.Context(), chi.URLParam(r, "orderID"), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, snap)
}

// Get handles GET /orders/{orderID}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Svc.Get(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, snap)
}

func (h *Handler) decode(r *http.Request, dst *OrderRequest) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.BadRequest("INVALID_REQUEST", "invalid JSON in request body", err)
	}
	// An empty items list is a valid no-op; a missing field is not.
	if dst.Items == nil {
		return common.BadRequest("INVALID_REQUEST", "missing required 'items' field", nil)
	}
	if err := h.Validate.Struct(dst); err != nil {
		return common.BadRequest("INVALID_REQUEST", "request body failed validation", err)
	}
	return nil
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if appErr, ok := common.AsAppError(err); ok {
		common.JSONAppError(w, appErr)
		return
	}
	var cancelErr *order.CancelError
	var missingPrice *pricing.MissingPriceError
	switch {
	case errors.Is(err, store.ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "ORDER_NOT_FOUND", "order not found", nil)
	case errors.Is(err, catalog.ErrUnknownKind):
		common.JSONError(w, http.StatusBadRequest, "INVALID_ITEM", err.Error(), nil)
	case errors.Is(err, order.ErrInvalidTimeFormat):
		common.JSONError(w, http.StatusBadRequest, "INVALID_TIME", err.Error(), nil)
	case errors.As(err, &cancelErr):
		common.JSONError(w, http.StatusBadRequest, "CANCEL_EXCEEDS_ORDERED", cancelErr.Error(), map[string]any{
			"item":      cancelErr.Kind.String(),
			"requested": cancelErr.Requested,
			"available": cancelErr.Available,
		})
	case errors.As(err, &missingPrice):
		common.JSONError(w, http.StatusInternalServerError, "MISSING_PRICE", missingPrice.Error(), nil)
	default:
		var details any
		if h.DebugErrors {
			details = err.Error()
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal server error", details)
	}
}
