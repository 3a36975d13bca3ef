package types

// Topics published on the in-process event bus
const (
	TopicOrderCreated       = "order.created"
	TopicOrderStatusUpdated = "order.status_updated"
)

const (
	// DefaultRecentlyViewedLimit caps the per-account recently viewed list
	DefaultRecentlyViewedLimit = 10
)
