package stream

import (
	"context"
	"sync"
	"sync/atomic"

	"juntos_server/pkg/constants"

	"go.uber.org/zap"
)

// ChannelBroker is the single-instance fan-out implementation. All
// registry mutations and deliveries happen inside the Start loop, so the
// per-group subscriber sets need no locking of their own.
type ChannelBroker struct {
	// Transmit carries published events into the fan-out loop.
	Transmit chan Event
	// Attach and Detach carry subscription lifecycle events.
	Attach chan *Subscription
	Detach chan *Subscription

	// groups indexes live subscriptions by group id, then by
	// subscription id.
	groups map[uint]map[uint64]*Subscription

	nextID    uint64
	closeOnce sync.Once
	done      chan struct{}
}

// NewChannelBroker creates the in-process broker.
func NewChannelBroker() *ChannelBroker {
	return &ChannelBroker{
		Transmit: make(chan Event, constants.CHANNEL_SIZE),
		Attach:   make(chan *Subscription, constants.CHANNEL_SIZE),
		Detach:   make(chan *Subscription, constants.CHANNEL_SIZE),
		groups:   make(map[uint]map[uint64]*Subscription),
		done:     make(chan struct{}),
	}
}

// Start runs the fan-out loop:
// 1. Attach events add the subscription to its group set.
// 2. Detach events remove it and close its channel.
// 3. Transmit events are delivered to every subscriber of the group.
func (b *ChannelBroker) Start() {
	for {
		select {
		case <-b.done:
			b.closeAll()
			return

		case sub := <-b.Attach:
			if sub == nil {
				continue
			}
			set, ok := b.groups[sub.GroupID]
			if !ok {
				set = make(map[uint64]*Subscription)
				b.groups[sub.GroupID] = set
			}
			set[sub.id] = sub
			zap.L().Debug("stream subscriber attached",
				zap.Uint("group_id", sub.GroupID), zap.Uint64("sub_id", sub.id))

		case sub := <-b.Detach:
			if sub == nil {
				continue
			}
			set, ok := b.groups[sub.GroupID]
			if !ok {
				continue
			}
			if _, ok := set[sub.id]; !ok {
				continue
			}
			delete(set, sub.id)
			if len(set) == 0 {
				delete(b.groups, sub.GroupID)
			}
			close(sub.C)

		case event := <-b.Transmit:
			for _, sub := range b.groups[event.GroupID] {
				select {
				case sub.C <- event:
				default:
					// A subscriber that cannot keep up loses the event;
					// its next history load restores consistency.
					zap.L().Warn("stream subscriber lagging, event dropped",
						zap.Uint("group_id", event.GroupID),
						zap.Uint64("sub_id", sub.id))
				}
			}
		}
	}
}

func (b *ChannelBroker) closeAll() {
	for _, set := range b.groups {
		for _, sub := range set {
			close(sub.C)
		}
	}
	b.groups = make(map[uint]map[uint64]*Subscription)
}

// Publish implements Broker.
func (b *ChannelBroker) Publish(ctx context.Context, event Event) error {
	select {
	case b.Transmit <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-b.done:
		return nil
	}
}

// Subscribe implements Broker.
func (b *ChannelBroker) Subscribe(groupID uint) *Subscription {
	sub := &Subscription{
		id:      atomic.AddUint64(&b.nextID, 1),
		GroupID: groupID,
		C:       make(chan Event, constants.SUBSCRIPTION_BUFFER),
	}
	b.Attach <- sub
	return sub
}

// Unsubscribe implements Broker.
func (b *ChannelBroker) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	select {
	case b.Detach <- sub:
	case <-b.done:
	}
}

// Close implements Broker.
func (b *ChannelBroker) Close() {
	b.closeOnce.Do(func() {
		close(b.done)
	})
}
