package event

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SimranChopra12/faster/internal/minter/entity"
)

type handlerFunc func(ctx context.Context, event entity.MintEvent) error

func (h handlerFunc) Handle(ctx context.Context, event entity.MintEvent) error {
	return h(ctx, event)
}

func TestAuditConsumerRetriesAndIdempotent(t *testing.T) {
	bus := NewBus(10)

	var attempts int32
	done := make(chan struct{})
	handler := handlerFunc(func(ctx context.Context, event entity.MintEvent) error {
		n := atomic.AddInt32(&attempts, 1)
		if n < 3 {
			return errors.New("temporary failure")
		}
		select {
		case <-done:
		default:
			close(done)
		}
		return nil
	})

	consumer := NewAuditConsumer(bus, handler, ConsumerConfig{
		Workers:     1,
		MaxRetries:  2,
		BaseBackoff: time.Millisecond,
	})
	consumer.Start()

	event := entity.MintEvent{EventID: "evt-1", Instance: 7, Count: 3}
	if err := bus.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish event: %v", err)
	}
	if err := bus.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish duplicate: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for handler")
	}

	if err := consumer.Stop(context.Background()); err != nil {
		t.Fatalf("stop consumer: %v", err)
	}

	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestBusClosedRejectsPublish(t *testing.T) {
	bus := NewBus(1)
	bus.Close()

	err := bus.Publish(context.Background(), entity.MintEvent{EventID: "evt-2"})
	if !errors.Is(err, ErrBusClosed) {
		t.Fatalf("Publish() err = %v, want ErrBusClosed", err)
	}
}

type recordCall struct {
	instance uint16
	count    int
	at       int64
}

type recordingStore struct {
	calls chan recordCall
}

func (s *recordingStore) RecordMint(ctx context.Context, instance uint16, count int, at int64) error {
	s.calls <- recordCall{instance: instance, count: count, at: at}
	return nil
}

func TestShardStatsRecordsToStore(t *testing.T) {
	store := &recordingStore{calls: make(chan recordCall, 1)}
	stats := ShardStats{Store: store}

	event := entity.MintEvent{EventID: "evt-3", Instance: 7, Count: 4, MintedAt: 1234}
	if err := stats.Handle(context.Background(), event); err != nil {
		t.Fatalf("Handle() err = %v", err)
	}

	call := <-store.calls
	if call.instance != 7 || call.count != 4 || call.at != 1234 {
		t.Fatalf("unexpected record call: %+v", call)
	}

	if err := stats.Handle(context.Background(), entity.MintEvent{}); err == nil {
		t.Fatal("Handle() expected error for missing event id")
	}
}
