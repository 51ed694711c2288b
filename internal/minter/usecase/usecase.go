package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SimranChopra12/faster/internal/minter/entity"
	"github.com/SimranChopra12/faster/internal/pkg/pkgerror"
	"github.com/SimranChopra12/faster/internal/pkg/pkguid"
)

// DefaultMaxBatch caps how many IDs a single mint request may ask for
// when no limit is configured.
const DefaultMaxBatch = 1000

type Store interface {
	CreateShard(ctx context.Context, shard entity.Shard) error
	GetShard(ctx context.Context, instance uint16) (entity.Shard, error)
	ListShards(ctx context.Context) ([]entity.Shard, error)
	RecordMint(ctx context.Context, instance uint16, count int, at int64) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event entity.MintEvent) error
}

type Runner interface {
	Go(ctx context.Context, f func(ctx context.Context) error)
}

type Dependency struct {
	Store           Store
	Events          EventPublisher
	Runner          Runner
	Clock           pkguid.Clock
	ID              pkguid.StringID
	RootCtx         context.Context
	DefaultInstance uint16
	MaxBatch        int
}

type Usecase struct {
	store           Store
	events          EventPublisher
	runner          Runner
	clock           pkguid.Clock
	id              pkguid.StringID
	rootCtx         context.Context
	defaultInstance uint16
	maxBatch        int

	mu         sync.RWMutex
	generators map[uint16]*pkguid.Snowflake
}

func New(dep Dependency) *Usecase {
	root := dep.RootCtx
	if root == nil {
		root = context.Background()
	}

	clock := dep.Clock
	if clock == nil {
		clock = pkguid.SystemClock
	}

	maxBatch := dep.MaxBatch
	if maxBatch < 1 {
		maxBatch = DefaultMaxBatch
	}

	return &Usecase{
		store:           dep.Store,
		events:          dep.Events,
		runner:          dep.Runner,
		clock:           clock,
		id:              dep.ID,
		rootCtx:         root,
		defaultInstance: dep.DefaultInstance,
		maxBatch:        maxBatch,
		generators:      make(map[uint16]*pkguid.Snowflake),
	}
}

// CreateShard registers a generator for the given instance number.
func (u *Usecase) CreateShard(ctx context.Context, instance int64) (ShardResult, error) {
	if u.store == nil {
		return ShardResult{}, pkgerror.NewServer(errors.New("missing dependency"))
	}

	if instance < 0 || instance >= pkguid.MaxInstance {
		return ShardResult{}, pkgerror.NewInvalidInput(
			fmt.Errorf("instance must be in [0, %d)", pkguid.MaxInstance))
	}

	gen, err := pkguid.NewSnowflake(uint16(instance), u.clock)
	if err != nil {
		if errors.Is(err, pkguid.ErrInvalidInstance) {
			return ShardResult{}, pkgerror.NewInvalidInput(err)
		}
		return ShardResult{}, pkgerror.NewServer(err)
	}

	u.mu.Lock()
	if _, exists := u.generators[gen.Instance()]; exists {
		u.mu.Unlock()
		return ShardResult{}, pkgerror.NewBusiness("shard already exists", pkgerror.CodeConflict)
	}
	u.generators[gen.Instance()] = gen
	u.mu.Unlock()

	shard := entity.Shard{
		Instance:  gen.Instance(),
		CreatedAt: u.clock(),
	}
	if err := u.store.CreateShard(ctx, shard); err != nil {
		u.mu.Lock()
		delete(u.generators, gen.Instance())
		u.mu.Unlock()
		return ShardResult{}, normalizeErr(err)
	}

	return ShardResult{Shard: shard}, nil
}

// Mint issues count identifiers from the given shard. A negative
// instance selects the configured default shard.
func (u *Usecase) Mint(ctx context.Context, instance int64, count int) (MintResult, error) {
	if count < 1 || count > u.maxBatch {
		return MintResult{}, pkgerror.NewInvalidInput(
			fmt.Errorf("count must be in [1, %d]", u.maxBatch))
	}

	resolved := u.defaultInstance
	if instance >= 0 {
		if instance >= pkguid.MaxInstance {
			return MintResult{}, pkgerror.NewInvalidInput(
				fmt.Errorf("instance must be in [0, %d)", pkguid.MaxInstance))
		}
		resolved = uint16(instance)
	}

	gen, err := u.generator(resolved)
	if err != nil {
		return MintResult{}, err
	}

	ids := make([]uint64, 0, count)
	for i := 0; i < count; i++ {
		id, err := gen.NextID()
		if err != nil {
			// Clock faults are environmental; the IDs minted so far are
			// still valid but the batch is reported as failed.
			return MintResult{}, pkgerror.NewServer(err)
		}
		ids = append(ids, id)
	}

	u.publishMint(resolved, ids)

	return MintResult{Instance: resolved, IDs: ids}, nil
}

// Inspect decomposes an identifier into its fields. When the instance
// field matches a shard registered in this process, its stats are
// attached as well.
func (u *Usecase) Inspect(ctx context.Context, id uint64) (InspectResult, error) {
	parts := pkguid.Decompose(id)

	result := InspectResult{
		ID:    id,
		Parts: parts,
		Time:  parts.Time(),
	}

	shard, err := u.store.GetShard(ctx, parts.Instance)
	switch {
	case err == nil:
		result.LocalShard = &shard
	case errors.Is(err, pkgerror.ErrNotFound):
		// IDs minted elsewhere decompose fine; there is just no local shard.
	default:
		return InspectResult{}, normalizeErr(err)
	}

	return result, nil
}

// Shards lists all registered shards with their mint stats.
func (u *Usecase) Shards(ctx context.Context) (ShardsResult, error) {
	shards, err := u.store.ListShards(ctx)
	if err != nil {
		return ShardsResult{}, normalizeErr(err)
	}

	return ShardsResult{Shards: shards}, nil
}

func (u *Usecase) generator(instance uint16) (*pkguid.Snowflake, error) {
	u.mu.RLock()
	gen, ok := u.generators[instance]
	u.mu.RUnlock()
	if !ok {
		return nil, pkgerror.NewBusiness("shard not registered", pkgerror.CodeNotFound)
	}
	return gen, nil
}

// publishMint hands the audit event to the runner so publishing never
// delays the mint path.
func (u *Usecase) publishMint(instance uint16, ids []uint64) {
	if u.events == nil || u.runner == nil || u.id == nil {
		return
	}

	event := entity.MintEvent{
		EventID:  u.id.Generate(),
		Instance: instance,
		Count:    len(ids),
		MintedAt: pkguid.Decompose(ids[len(ids)-1]).Timestamp,
	}

	u.runner.Go(u.rootCtx, func(ctx context.Context) error {
		if err := u.events.Publish(ctx, event); err != nil {
			slog.WarnContext(ctx, "failed to publish mint event",
				"event_id", event.EventID, "instance", event.Instance, "error", err)
			return err
		}
		return nil
	})
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}
	return pkgerror.NewServer(err)
}
