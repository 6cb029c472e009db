// Package stream implements realtime message fan-out for group chat.
// A Broker distributes persisted message events to per-group
// subscriptions; MessageStream layers the history-then-live reading
// protocol on top of a subscription.
package stream

import (
	"context"

	"juntos_server/internal/dto/respond"
)

// Event is one persisted message on its way to live subscribers.
type Event struct {
	GroupID uint                     `json:"group_id"`
	Message respond.GroupMessageInfo `json:"message"`
}

// Subscription is a registered listener on one group. C delivers events
// in publish order; it is closed when the subscription is cancelled or
// the broker shuts down.
type Subscription struct {
	id      uint64
	GroupID uint
	C       chan Event
}

// Broker distributes message events to group subscribers.
// ChannelBroker keeps fan-out in process; KafkaBroker routes events
// through a topic so multiple instances stay in sync.
type Broker interface {
	// Publish hands one event to the fan-out pipeline.
	Publish(ctx context.Context, event Event) error
	// Subscribe registers a listener on a group.
	Subscribe(groupID uint) *Subscription
	// Unsubscribe cancels a subscription and closes its channel.
	Unsubscribe(sub *Subscription)
	// Start runs the consume loop until Close.
	Start()
	// Close releases broker resources.
	Close()
}
