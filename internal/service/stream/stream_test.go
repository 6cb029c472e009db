package stream

import (
	"context"
	"errors"
	"testing"
	"time"

	"juntos_server/internal/dto/respond"
)

type stubLoader struct {
	history []respond.GroupMessageInfo
	err     error
	calls   int
}

func (s *stubLoader) History(groupID uint) ([]respond.GroupMessageInfo, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.history, nil
}

func msg(uuid string) respond.GroupMessageInfo {
	return respond.GroupMessageInfo{Uuid: uuid, GroupID: 1, Conteudo: "olá"}
}

func startBroker(t *testing.T) *ChannelBroker {
	t.Helper()
	b := NewChannelBroker()
	go b.Start()
	t.Cleanup(b.Close)
	return b
}

func receive(t *testing.T, ch <-chan respond.GroupMessageInfo) respond.GroupMessageInfo {
	t.Helper()
	select {
	case m, ok := <-ch:
		if !ok {
			t.Fatal("updates channel closed unexpectedly")
		}
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for update")
	}
	return respond.GroupMessageInfo{}
}

func expectNone(t *testing.T, ch <-chan respond.GroupMessageInfo) {
	t.Helper()
	select {
	case m, ok := <-ch:
		if ok {
			t.Fatalf("unexpected update delivered: %+v", m)
		}
	case <-time.After(100 * time.Millisecond):
	}
}

func TestOpenDeliversHistoryThenLive(t *testing.T) {
	broker := startBroker(t)
	loader := &stubLoader{history: []respond.GroupMessageInfo{msg("1"), msg("2")}}

	st := NewMessageStream(1, broker, loader)
	defer st.Close()

	history, err := st.Open()
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if len(history) != 2 || history[0].Uuid != "1" || history[1].Uuid != "2" {
		t.Fatalf("history out of order: %+v", history)
	}
	if st.State() != StateLive {
		t.Fatalf("state = %v, want live", st.State())
	}

	if err := broker.Publish(context.Background(), Event{GroupID: 1, Message: msg("3")}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	got := receive(t, st.Updates())
	if got.Uuid != "3" {
		t.Errorf("live update uuid = %q, want 3", got.Uuid)
	}
}

func TestDuplicateLiveEventSuppressed(t *testing.T) {
	broker := startBroker(t)
	loader := &stubLoader{history: []respond.GroupMessageInfo{msg("1")}}

	st := NewMessageStream(1, broker, loader)
	defer st.Close()
	if _, err := st.Open(); err != nil {
		t.Fatal(err)
	}

	// "1" is already in the history snapshot; only "2" may come through.
	_ = broker.Publish(context.Background(), Event{GroupID: 1, Message: msg("1")})
	_ = broker.Publish(context.Background(), Event{GroupID: 1, Message: msg("2")})

	got := receive(t, st.Updates())
	if got.Uuid != "2" {
		t.Errorf("expected the duplicate suppressed, got uuid %q", got.Uuid)
	}
}

func TestDuplicatePublishDeliveredOnce(t *testing.T) {
	broker := startBroker(t)
	loader := &stubLoader{}

	st := NewMessageStream(1, broker, loader)
	defer st.Close()
	if _, err := st.Open(); err != nil {
		t.Fatal(err)
	}

	_ = broker.Publish(context.Background(), Event{GroupID: 1, Message: msg("7")})
	_ = broker.Publish(context.Background(), Event{GroupID: 1, Message: msg("7")})

	got := receive(t, st.Updates())
	if got.Uuid != "7" {
		t.Fatalf("uuid = %q, want 7", got.Uuid)
	}
	select {
	case m, ok := <-st.Updates():
		if ok {
			t.Fatalf("duplicate delivered twice: %+v", m)
		}
	case <-time.After(100 * time.Millisecond):
	}
}

func TestEarlierSentAtStillAppendsAtTail(t *testing.T) {
	broker := startBroker(t)
	latest := msg("2")
	latest.DataEnvio = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	loader := &stubLoader{history: []respond.GroupMessageInfo{latest}}

	st := NewMessageStream(1, broker, loader)
	defer st.Close()
	history, err := st.Open()
	if err != nil {
		t.Fatal(err)
	}

	// A live event carrying an earlier sent-at is still delivered after
	// the history snapshot; the reader appends, never re-sorts.
	backdated := msg("1")
	backdated.DataEnvio = latest.DataEnvio.Add(-time.Hour)
	_ = broker.Publish(context.Background(), Event{GroupID: 1, Message: backdated})

	rendered := append(history, receive(t, st.Updates()))
	if len(rendered) != 2 || rendered[0].Uuid != "2" || rendered[1].Uuid != "1" {
		t.Fatalf("backdated live event must sit at the tail, got %+v", rendered)
	}
}

func TestOtherGroupEventsNotDelivered(t *testing.T) {
	broker := startBroker(t)
	st := NewMessageStream(1, broker, &stubLoader{})
	defer st.Close()
	if _, err := st.Open(); err != nil {
		t.Fatal(err)
	}

	_ = broker.Publish(context.Background(), Event{GroupID: 2, Message: msg("9")})
	expectNone(t, st.Updates())
}

func TestFailedHistoryLoadReturnsToIdle(t *testing.T) {
	broker := startBroker(t)
	loader := &stubLoader{err: errors.New("history backend down")}

	st := NewMessageStream(1, broker, loader)
	if _, err := st.Open(); err == nil {
		t.Fatal("expected Open to fail")
	}
	if st.State() != StateIdle {
		t.Fatalf("state = %v, want idle after failed load", st.State())
	}

	// Retry succeeds once the loader recovers.
	loader.err = nil
	loader.history = []respond.GroupMessageInfo{msg("1")}
	history, err := st.Open()
	if err != nil {
		t.Fatalf("retry Open: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("retry history size = %d, want 1", len(history))
	}
	st.Close()
}

func TestCloseIsIdempotentInAnyState(t *testing.T) {
	broker := startBroker(t)

	// Never opened.
	idle := NewMessageStream(1, broker, &stubLoader{})
	idle.Close()
	idle.Close()
	if idle.State() != StateClosed {
		t.Fatalf("state = %v, want closed", idle.State())
	}

	// Opened and live.
	live := NewMessageStream(1, broker, &stubLoader{})
	if _, err := live.Open(); err != nil {
		t.Fatal(err)
	}
	live.Close()
	live.Close()

	select {
	case _, ok := <-live.Updates():
		if ok {
			t.Fatal("no update expected after close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("updates channel must close on Close")
	}
}

func TestOpenTwiceRejected(t *testing.T) {
	broker := startBroker(t)
	st := NewMessageStream(1, broker, &stubLoader{})
	defer st.Close()
	if _, err := st.Open(); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Open(); err == nil {
		t.Fatal("second Open must fail")
	}
}
