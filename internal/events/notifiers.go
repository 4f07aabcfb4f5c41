package events

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// LogNotifier writes every emitted event to the structured log.
type LogNotifier struct {
	Logger zerolog.Logger
}

// Notify implements Notifier.
func (n LogNotifier) Notify(_ context.Context, event Event) error {
	n.Logger.Info().
		Str("topic", event.Topic).
		Str("order_id", event.OrderID).
		Str("event_id", event.ID.String()).
		RawJSON("payload", event.Payload).
		Msg("domain_event")
	return nil
}

// MetricsNotifier counts emitted events per topic.
type MetricsNotifier struct {
	Counter *prometheus.CounterVec
}

// Notify implements Notifier.
func (n MetricsNotifier) Notify(_ context.Context, event Event) error {
	if n.Counter == nil {
		return nil
	}
	n.Counter.WithLabelValues(event.Topic).Inc()
	return nil
}
