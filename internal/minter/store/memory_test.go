package store

import (
	"context"
	"errors"
	"testing"

	"github.com/SimranChopra12/faster/internal/minter/entity"
	"github.com/SimranChopra12/faster/internal/pkg/pkgerror"
)

func TestInMemoryStore_CreateShard_Duplicate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore()
	shard := entity.Shard{Instance: 7, CreatedAt: 100}

	if err := store.CreateShard(ctx, shard); err != nil {
		t.Fatalf("CreateShard() err = %v", err)
	}

	err := store.CreateShard(ctx, shard)
	if err == nil {
		t.Fatal("CreateShard() expected error, got nil")
	}

	var perr *pkgerror.Error
	if !errors.As(err, &perr) {
		t.Fatalf("CreateShard() expected pkgerror.Error, got %T", err)
	}
	if perr.Code() != pkgerror.CodeConflict {
		t.Fatalf("CreateShard() error code = %v, want %v", perr.Code(), pkgerror.CodeConflict)
	}
}

func TestInMemoryStore_GetShard_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore()

	if _, err := store.GetShard(ctx, 9); !errors.Is(err, pkgerror.ErrNotFound) {
		t.Fatalf("GetShard() err = %v, want ErrNotFound", err)
	}
}

func TestInMemoryStore_RecordMint(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore()
	if err := store.CreateShard(ctx, entity.Shard{Instance: 7, CreatedAt: 100}); err != nil {
		t.Fatalf("CreateShard() err = %v", err)
	}

	if err := store.RecordMint(ctx, 7, 5, 200); err != nil {
		t.Fatalf("RecordMint() err = %v", err)
	}
	if err := store.RecordMint(ctx, 7, 3, 150); err != nil {
		t.Fatalf("RecordMint() err = %v", err)
	}

	shard, err := store.GetShard(ctx, 7)
	if err != nil {
		t.Fatalf("GetShard() err = %v", err)
	}
	if shard.Minted != 8 {
		t.Fatalf("Minted = %d, want 8", shard.Minted)
	}
	// The second batch carried an earlier timestamp; the high-water mark
	// stays put.
	if shard.LastMintedAt != 200 {
		t.Fatalf("LastMintedAt = %d, want 200", shard.LastMintedAt)
	}

	if err := store.RecordMint(ctx, 8, 1, 300); !errors.Is(err, pkgerror.ErrNotFound) {
		t.Fatalf("RecordMint(unknown) err = %v, want ErrNotFound", err)
	}
}

func TestInMemoryStore_ListShards_Sorted(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewInMemoryStore()
	for _, instance := range []uint16{5, 1, 3} {
		if err := store.CreateShard(ctx, entity.Shard{Instance: instance}); err != nil {
			t.Fatalf("CreateShard(%d) err = %v", instance, err)
		}
	}

	shards, err := store.ListShards(ctx)
	if err != nil {
		t.Fatalf("ListShards() err = %v", err)
	}
	if len(shards) != 3 {
		t.Fatalf("ListShards() returned %d shards, want 3", len(shards))
	}
	for i, want := range []uint16{1, 3, 5} {
		if shards[i].Instance != want {
			t.Fatalf("ListShards()[%d].Instance = %d, want %d", i, shards[i].Instance, want)
		}
	}
}
