package usecase

import (
	"time"

	"github.com/SimranChopra12/faster/internal/minter/entity"
	"github.com/SimranChopra12/faster/internal/pkg/pkguid"
)

type ShardResult struct {
	Shard entity.Shard
}

type MintResult struct {
	Instance uint16
	IDs      []uint64
}

type InspectResult struct {
	ID    uint64
	Parts pkguid.IDParts
	Time  time.Time

	// LocalShard is set when the decoded instance is registered in this
	// process.
	LocalShard *entity.Shard
}

type ShardsResult struct {
	Shards []entity.Shard
}
