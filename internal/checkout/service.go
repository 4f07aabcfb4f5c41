package checkout

import (
	"context"
	"encoding/json"

	"github.com/noah-isme/checkout-api/internal/catalog"
	"github.com/noah-isme/checkout-api/internal/events"
	"github.com/noah-isme/checkout-api/internal/obs"
	"github.com/noah-isme/checkout-api/internal/order"
	"github.com/noah-isme/checkout-api/internal/pricing"
	"github.com/noah-isme/checkout-api/internal/store"
)

// ItemInput is one requested item on the wire.
type ItemInput struct {
	Item     string `json:"item" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

// OrderRequest is the body of order creation and modification calls.
// OrderTime is optional; cancellation ignores it.
type OrderRequest struct {
	Items     []ItemInput `json:"items" validate:"dive"`
	OrderTime string      `json:"order_time" validate:"omitempty"`
}

// ItemView is one order line as serialized in responses.
type ItemView struct {
	Item      string  `json:"item"`
	Quantity  int     `json:"quantity"`
	OrderTime *string `json:"order_time"`
}

// Snapshot is the response shape shared by every order endpoint: the
// order id, its freshly recomputed total and the current lines.
type Snapshot struct {
	OrderID string      `json:"order_id"`
	Total   json.Number `json:"total"`
	Items   []ItemView  `json:"items"`
}

// Service maps wire requests onto the order core. Every mutation runs
// through the store's per-order lock so concurrent calls against one order
// serialize.
type Service struct {
	Store    *store.Memory
	Pricing  pricing.Config
	Strategy order.CancelStrategy
	Events   *events.Bus
}

// Create builds a new order from the request and registers it.
func (s *Service) Create(ctx context.Context, req OrderRequest) (Snapshot, error) {
	at, err := order.ParseOptionalTimeOfDay(req.OrderTime)
	if err != nil {
		return Snapshot{}, err
	}
	items, err := toItemRequests(req.Items)
	if err != nil {
		return Snapshot{}, err
	}
	o := order.New(items, at)
	snap, err := s.snapshot("", o)
	if err != nil {
		return Snapshot{}, err
	}
	snap.OrderID = s.Store.Create(o)

	if obs.OrdersCreatedTotal != nil {
		obs.OrdersCreatedTotal.Inc()
	}
	s.observeTotal(snap)
	s.emit(ctx, events.TopicOrderCreated, snap)
	return snap, nil
}

// Add appends a batch of items, carrying the batch's own order time, and
// returns the updated snapshot.
func (s *Service) Add(ctx context.Context, id string, req OrderRequest) (Snapshot, error) {
	at, err := order.ParseOptionalTimeOfDay(req.OrderTime)
	if err != nil {
		return Snapshot{}, s.countMutation("add", err)
	}
	items, err := toItemRequests(req.Items)
	if err != nil {
		return Snapshot{}, s.countMutation("add", err)
	}
	var snap Snapshot
	err = s.Store.Update(id, func(o *order.Order) error {
		o.Add(items, at)
		var snapErr error
		snap, snapErr = s.snapshot(id, o)
		return snapErr
	})
	if err != nil {
		return Snapshot{}, s.countMutation("add", err)
	}
	_ = s.countMutation("add", nil)
	s.observeTotal(snap)
	s.emit(ctx, events.TopicOrderItemsAdded, snap)
	return snap, nil
}

// Cancel reduces quantities per kind under the configured strategy and
// returns the updated snapshot.
func (s *Service) Cancel(ctx context.Context, id string, req OrderRequest) (Snapshot, error) {
	items, err := toItemRequests(req.Items)
	if err != nil {
		return Snapshot{}, s.countMutation("cancel", err)
	}
	var snap Snapshot
	err = s.Store.Update(id, func(o *order.Order) error {
		if err := o.Cancel(items, s.Strategy); err != nil {
			return err
		}
		var snapErr error
		snap, snapErr = s.snapshot(id, o)
		return snapErr
	})
	if err != nil {
		return Snapshot{}, s.countMutation("cancel", err)
	}
	_ = s.countMutation("cancel", nil)
	s.observeTotal(snap)
	s.emit(ctx, events.TopicOrderItemsCancelled, snap)
	return snap, nil
}

// Get returns the current snapshot of an order.
func (s *Service) Get(_ context.Context, id string) (Snapshot, error) {
	var snap Snapshot
	err := s.Store.View(id, func(o *order.Order) error {
		var snapErr error
		snap, snapErr = s.snapshot(id, o)
		return snapErr
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (s *Service) snapshot(id string, o *order.Order) (Snapshot, error) {
	total, err := pricing.Total(o.Lines, s.Pricing)
	if err != nil {
		return Snapshot{}, err
	}
	items := make([]ItemView, 0, len(o.Lines))
	for _, ln := range o.Lines {
		var at *string
		if ln.PlacedAt != nil {
			formatted := ln.PlacedAt.String()
			at = &formatted
		}
		items = append(items, ItemView{Item: ln.Kind.String(), Quantity: ln.Quantity, OrderTime: at})
	}
	return Snapshot{
		OrderID: id,
		Total:   json.Number(total.StringFixed(2)),
		Items:   items,
	}, nil
}

func (s *Service) emit(ctx context.Context, topic string, snap Snapshot) {
	if s.Events == nil {
		return
	}
	// Event delivery is best effort; failures never surface to clients.
	_, _ = s.Events.Emit(ctx, topic, snap.OrderID, map[string]any{
		"total": snap.Total,
		"lines": len(snap.Items),
	})
}

func (s *Service) countMutation(operation string, err error) error {
	if obs.OrderMutationsTotal != nil {
		result := "ok"
		if err != nil {
			result = "error"
		}
		obs.OrderMutationsTotal.WithLabelValues(operation, result).Inc()
	}
	return err
}

func (s *Service) observeTotal(snap Snapshot) {
	if obs.OrderTotalAmount == nil {
		return
	}
	if v, err := snap.Total.Float64(); err == nil {
		obs.OrderTotalAmount.Observe(v)
	}
}

func toItemRequests(items []ItemInput) ([]order.ItemRequest, error) {
	reqs := make([]order.ItemRequest, 0, len(items))
	for _, it := range items {
		kind, err := catalog.ParseKind(it.Item)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, order.ItemRequest{Kind: kind, Quantity: it.Quantity})
	}
	return reqs, nil
}
