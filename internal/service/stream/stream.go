package stream

import (
	"sync"

	"juntos_server/internal/dto/respond"
	"juntos_server/pkg/errorx"

	"go.uber.org/zap"
)

// State of a MessageStream.
type State int32

const (
	// StateIdle means the stream has not started reading.
	StateIdle State = iota
	// StateLoadingHistory means the initial history load is in flight.
	StateLoadingHistory
	// StateLive means history is delivered and live events are flowing.
	StateLive
	// StateClosed is terminal.
	StateClosed
)

// HistoryLoader provides the initial message log of a group.
type HistoryLoader interface {
	History(groupID uint) ([]respond.GroupMessageInfo, error)
}

// MessageStream reads one group's chat as a history snapshot followed by
// live updates. The subscription is taken before the history load, so a
// message published during the load appears in both feeds; the uuid
// guard keeps it from being delivered twice.
type MessageStream struct {
	groupID uint
	broker  Broker
	loader  HistoryLoader

	mu    sync.Mutex
	state State
	sub   *Subscription
	seen  map[string]struct{}

	updates   chan respond.GroupMessageInfo
	done      chan struct{}
	closeOnce sync.Once
}

// NewMessageStream creates an idle stream. Nothing happens until Open.
func NewMessageStream(groupID uint, broker Broker, loader HistoryLoader) *MessageStream {
	return &MessageStream{
		groupID: groupID,
		broker:  broker,
		loader:  loader,
		state:   StateIdle,
		seen:    make(map[string]struct{}),
		updates: make(chan respond.GroupMessageInfo, 1),
		done:    make(chan struct{}),
	}
}

// Open subscribes, loads the history and starts forwarding live events.
// The returned slice is the history snapshot in non-decreasing sent-at
// order. A failed history load returns the stream to idle; Open may be
// retried.
func (s *MessageStream) Open() ([]respond.GroupMessageInfo, error) {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return nil, errorx.New(errorx.CodeInvalidParam, "message stream already opened")
	}
	s.state = StateLoadingHistory
	s.mu.Unlock()

	sub := s.broker.Subscribe(s.groupID)

	history, err := s.loader.History(s.groupID)
	if err != nil {
		s.broker.Unsubscribe(sub)
		s.mu.Lock()
		s.state = StateIdle
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	if s.state == StateClosed {
		// Closed during the load. Drop the subscription and report the
		// history anyway; the caller's Close already won.
		s.mu.Unlock()
		s.broker.Unsubscribe(sub)
		return history, nil
	}
	for _, msg := range history {
		s.seen[msg.Uuid] = struct{}{}
	}
	s.sub = sub
	s.state = StateLive
	s.mu.Unlock()

	go s.forward(sub)
	return history, nil
}

// forward pumps live events into the updates channel, skipping any
// message already delivered through the history snapshot. Events are
// appended in arrival order and never re-sorted.
func (s *MessageStream) forward(sub *Subscription) {
	defer close(s.updates)
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-sub.C:
			if !ok {
				return
			}
			if _, dup := s.seen[event.Message.Uuid]; dup {
				zap.L().Debug("duplicate live event suppressed",
					zap.Uint("group_id", s.groupID),
					zap.String("message_uuid", event.Message.Uuid))
				continue
			}
			s.seen[event.Message.Uuid] = struct{}{}
			select {
			case s.updates <- event.Message:
			case <-s.done:
				return
			}
		}
	}
}

// Updates delivers live messages after Open. The channel is closed when
// the stream closes.
func (s *MessageStream) Updates() <-chan respond.GroupMessageInfo {
	return s.updates
}

// State returns the current stream state.
func (s *MessageStream) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close tears the stream down. It is unconditional and idempotent: safe
// in any state, safe to call twice, safe concurrently with Open.
func (s *MessageStream) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		prev := s.state
		sub := s.sub
		s.state = StateClosed
		s.mu.Unlock()

		close(s.done)
		if sub != nil {
			s.broker.Unsubscribe(sub)
		}
		if prev != StateLive {
			// The forwarder never started, so the updates channel is
			// still ours to close.
			close(s.updates)
		}
	})
}
