package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/SimranChopra12/faster/internal/pkg/pkgerror"
	"github.com/SimranChopra12/faster/internal/pkg/pkgrouter"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) CreateShard(ctx context.Context, r *http.Request) (any, error) {
	var req CreateShardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, pkgerror.NewInvalidFormat()
	}
	if req.Instance == nil {
		return nil, pkgerror.NewInvalidInput(errors.New("instance is required"))
	}

	result, err := h.uc.CreateShard(ctx, *req.Instance)
	if err != nil {
		return nil, err
	}

	return ShardResponse{
		Instance:  result.Shard.Instance,
		CreatedAt: result.Shard.CreatedAt,
	}, nil
}

func (h *HTTPEndpoint) Shards(ctx context.Context, r *http.Request) (any, error) {
	result, err := h.uc.Shards(ctx)
	if err != nil {
		return nil, err
	}

	shards := make([]ShardResponse, 0, len(result.Shards))
	for _, shard := range result.Shards {
		shards = append(shards, ShardResponse{
			Instance:     shard.Instance,
			CreatedAt:    shard.CreatedAt,
			Minted:       shard.Minted,
			LastMintedAt: shard.LastMintedAt,
		})
	}

	return ShardsResponse{Shards: shards}, nil
}

func (h *HTTPEndpoint) Mint(ctx context.Context, r *http.Request) (any, error) {
	// Both fields are optional: no instance means the default shard, no
	// count means a single ID.
	req := MintRequest{Instance: -1, Count: 1}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, pkgerror.NewInvalidFormat()
		}
	}

	result, err := h.uc.Mint(ctx, req.Instance, req.Count)
	if err != nil {
		return nil, err
	}

	// IDs use 63 bits; emit them as strings so JSON consumers with
	// float64 numbers cannot mangle them.
	ids := make([]string, 0, len(result.IDs))
	for _, id := range result.IDs {
		ids = append(ids, strconv.FormatUint(id, 10))
	}

	return MintResponse{Instance: result.Instance, IDs: ids}, nil
}

func (h *HTTPEndpoint) Inspect(ctx context.Context, r *http.Request) (any, error) {
	raw := pkgrouter.GetParam(ctx, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, pkgerror.NewInvalidInput(errors.New("id must be an unsigned 64-bit integer"))
	}

	result, err := h.uc.Inspect(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := InspectResponse{
		ID:        strconv.FormatUint(result.ID, 10),
		Timestamp: result.Parts.Timestamp,
		Time:      result.Time.Format(timeLayout),
		Instance:  result.Parts.Instance,
		Counter:   result.Parts.Counter,
	}
	if result.LocalShard != nil {
		resp.LocalShard = &ShardResponse{
			Instance:     result.LocalShard.Instance,
			CreatedAt:    result.LocalShard.CreatedAt,
			Minted:       result.LocalShard.Minted,
			LastMintedAt: result.LocalShard.LastMintedAt,
		}
	}

	return resp, nil
}
