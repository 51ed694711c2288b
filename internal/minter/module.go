package minter

import (
	"context"
	"fmt"
	"time"

	"github.com/SimranChopra12/faster/internal/minter/event"
	"github.com/SimranChopra12/faster/internal/minter/inbound"
	"github.com/SimranChopra12/faster/internal/minter/store"
	"github.com/SimranChopra12/faster/internal/minter/usecase"
	"github.com/SimranChopra12/faster/internal/pkg/pkgconfig"
	"github.com/SimranChopra12/faster/internal/pkg/pkgrouter"
	"github.com/SimranChopra12/faster/internal/pkg/pkgroutine"
	"github.com/SimranChopra12/faster/internal/pkg/pkguid"
)

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Context   context.Context
	ID        pkguid.StringID
}

func New(dep Dependency) (func(context.Context) error, error) {
	instance := dep.Config.GetInt("modules.minter.instance")
	if instance < 0 || instance >= pkguid.MaxInstance {
		return nil, fmt.Errorf("modules.minter.instance %d out of range [0, %d)", instance, pkguid.MaxInstance)
	}

	storage := store.NewInMemoryStore()
	bus := event.NewBus(512)
	consumer := event.NewAuditConsumer(bus, event.ShardStats{Store: storage}, event.ConsumerConfig{
		Workers:     4,
		MaxRetries:  3,
		BaseBackoff: 200 * time.Millisecond,
	})
	consumer.Start()

	if dep.ID == nil {
		dep.ID = pkguid.NewUUID()
	}

	uc := usecase.New(usecase.Dependency{
		Store:           storage,
		Events:          bus,
		Runner:          dep.Goroutine,
		Clock:           pkguid.SystemClock,
		ID:              dep.ID,
		RootCtx:         dep.Context,
		DefaultInstance: uint16(instance),
		MaxBatch:        int(dep.Config.GetInt("modules.minter.max_batch")),
	})

	// The configured instance is the shard mint requests fall back to
	// when they name none.
	if _, err := uc.CreateShard(dep.Context, instance); err != nil {
		return nil, err
	}

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return consumer.Stop, nil
}
