package event

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/SimranChopra12/faster/internal/minter/entity"
)

type Handler interface {
	Handle(ctx context.Context, event entity.MintEvent) error
}

type ConsumerConfig struct {
	Workers     int
	MaxRetries  int
	BaseBackoff time.Duration
}

// AuditConsumer drains mint events off the bus and applies them to a
// handler with retries. Events are deduplicated by EventID so a retried
// publish never double-counts a batch.
type AuditConsumer struct {
	bus         *Bus
	handler     Handler
	workers     int
	maxRetries  int
	baseBackoff time.Duration
	seen        sync.Map
	wg          sync.WaitGroup
}

func NewAuditConsumer(bus *Bus, handler Handler, cfg ConsumerConfig) *AuditConsumer {
	workers := cfg.Workers
	if workers < 1 {
		workers = 4
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	baseBackoff := cfg.BaseBackoff
	if baseBackoff <= 0 {
		baseBackoff = 100 * time.Millisecond
	}

	return &AuditConsumer{
		bus:         bus,
		handler:     handler,
		workers:     workers,
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
	}
}

func (c *AuditConsumer) Start() {
	for i := 0; i < c.workers; i++ {
		c.wg.Add(1)
		go c.worker()
	}
}

func (c *AuditConsumer) Stop(ctx context.Context) error {
	if c.bus != nil {
		c.bus.Close()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *AuditConsumer) worker() {
	defer c.wg.Done()

	for event := range c.bus.Subscribe() {
		c.processEvent(event)
	}
}

func (c *AuditConsumer) processEvent(event entity.MintEvent) {
	if c.handler == nil {
		return
	}

	if event.EventID != "" {
		if _, loaded := c.seen.LoadOrStore(event.EventID, struct{}{}); loaded {
			slog.Info("skip duplicate mint event", "event_id", event.EventID, "instance", event.Instance)
			return
		}
	}

	backoff := c.baseBackoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		err := c.handler.Handle(context.Background(), event)
		if err == nil {
			return
		}

		if attempt == c.maxRetries {
			slog.Error("failed to record mint event after retries",
				"event_id", event.EventID, "instance", event.Instance, "error", err)
			return
		}

		if !sleepBackoff(backoff) {
			return
		}
		backoff *= 2
	}
}

func sleepBackoff(d time.Duration) bool {
	if d <= 0 {
		return false
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	<-timer.C
	return true
}

// ShardStats applies mint events to the store and emits the audit line.
type ShardStats struct {
	Store interface {
		RecordMint(ctx context.Context, instance uint16, count int, at int64) error
	}
}

func (s ShardStats) Handle(ctx context.Context, event entity.MintEvent) error {
	if event.EventID == "" {
		return errors.New("missing event id")
	}

	if s.Store != nil {
		if err := s.Store.RecordMint(ctx, event.Instance, event.Count, event.MintedAt); err != nil {
			return err
		}
	}

	slog.Info("recorded mint batch",
		"event_id", event.EventID,
		"instance", event.Instance,
		"count", event.Count,
		"minted_at", event.MintedAt,
	)
	return nil
}
