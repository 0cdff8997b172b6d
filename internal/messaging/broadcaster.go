package messaging

import (
	"context"

	"github.com/echelon-room/marketplace/internal/domain"
)

// Broadcaster pushes marketplace feed events to live display clients
type Broadcaster interface {
	// Broadcast publishes a feed event. Delivery is asynchronous and
	// best-effort; the marketplace state of record lives in the database.
	Broadcast(ctx context.Context, event *domain.FeedEvent) error
	// Close flushes pending publishes and closes the connection
	Close()
}

// noopBroadcaster swallows events when no broker is configured
type noopBroadcaster struct{}

// NewNoopBroadcaster creates a broadcaster that discards all events
func NewNoopBroadcaster() Broadcaster {
	return noopBroadcaster{}
}

func (noopBroadcaster) Broadcast(_ context.Context, _ *domain.FeedEvent) error {
	return nil
}

func (noopBroadcaster) Close() {}
