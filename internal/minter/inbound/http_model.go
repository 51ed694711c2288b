package inbound

import (
	"net/http"
	"time"
)

const timeLayout = time.RFC3339Nano

type CreateShardRequest struct {
	Instance *int64 `json:"instance"`
}

type MintRequest struct {
	Instance int64 `json:"instance"`
	Count    int   `json:"count"`
}

type ShardResponse struct {
	Instance     uint16 `json:"instance"`
	CreatedAt    int64  `json:"created_at"`
	Minted       int64  `json:"minted"`
	LastMintedAt int64  `json:"last_minted_at"`
}

func (ShardResponse) StatusCode() int {
	return http.StatusCreated
}

func (ShardResponse) Message() string {
	return "shard registered"
}

type ShardsResponse struct {
	Shards []ShardResponse `json:"shards"`
}

type MintResponse struct {
	Instance uint16   `json:"instance"`
	IDs      []string `json:"ids"`
}

func (MintResponse) Message() string {
	return "ids minted"
}

type InspectResponse struct {
	ID         string         `json:"id"`
	Timestamp  int64          `json:"timestamp"`
	Time       string         `json:"time"`
	Instance   uint16         `json:"instance"`
	Counter    uint8          `json:"counter"`
	LocalShard *ShardResponse `json:"local_shard,omitempty"`
}
