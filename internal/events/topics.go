package events

// Topic constants for domain events emitted by the service.
const (
	TopicOrderCreated        = "order.created"
	TopicOrderItemsAdded     = "order.items_added"
	TopicOrderItemsCancelled = "order.items_cancelled"
)

// DefaultTopics returns the canonical list of emitted topics.
func DefaultTopics() []string {
	return []string{
		TopicOrderCreated,
		TopicOrderItemsAdded,
		TopicOrderItemsCancelled,
	}
}
