package store

import (
	"context"
	"sort"
	"sync"

	"github.com/SimranChopra12/faster/internal/minter/entity"
	"github.com/SimranChopra12/faster/internal/pkg/pkgerror"
)

// InMemoryStore keeps shard registrations and their mint stats for the
// lifetime of the process. Registrations are not persisted, matching the
// generator itself.
type InMemoryStore struct {
	mu     sync.RWMutex
	shards map[uint16]*shardRecord
}

type shardRecord struct {
	mu    sync.RWMutex
	shard entity.Shard
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		shards: make(map[uint16]*shardRecord),
	}
}

func (s *InMemoryStore) CreateShard(ctx context.Context, shard entity.Shard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.shards[shard.Instance]; exists {
		return pkgerror.NewBusiness("shard already exists", pkgerror.CodeConflict)
	}

	s.shards[shard.Instance] = &shardRecord{shard: shard}

	return nil
}

func (s *InMemoryStore) GetShard(ctx context.Context, instance uint16) (entity.Shard, error) {
	rec, err := s.get(instance)
	if err != nil {
		return entity.Shard{}, err
	}

	rec.mu.RLock()
	defer rec.mu.RUnlock()

	return rec.shard, nil
}

func (s *InMemoryStore) ListShards(ctx context.Context) ([]entity.Shard, error) {
	s.mu.RLock()
	records := make([]*shardRecord, 0, len(s.shards))
	for _, rec := range s.shards {
		records = append(records, rec)
	}
	s.mu.RUnlock()

	shards := make([]entity.Shard, 0, len(records))
	for _, rec := range records {
		rec.mu.RLock()
		shards = append(shards, rec.shard)
		rec.mu.RUnlock()
	}

	sort.Slice(shards, func(i, j int) bool {
		return shards[i].Instance < shards[j].Instance
	})

	return shards, nil
}

func (s *InMemoryStore) RecordMint(ctx context.Context, instance uint16, count int, at int64) error {
	rec, err := s.get(instance)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	rec.shard.Minted += int64(count)
	if at > rec.shard.LastMintedAt {
		rec.shard.LastMintedAt = at
	}

	return nil
}

func (s *InMemoryStore) get(instance uint16) (*shardRecord, error) {
	s.mu.RLock()
	rec, ok := s.shards[instance]
	s.mu.RUnlock()
	if !ok {
		return nil, pkgerror.ErrNotFound
	}

	return rec, nil
}
