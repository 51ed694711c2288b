package inbound

import (
	"context"

	"github.com/SimranChopra12/faster/internal/minter/usecase"
	"github.com/SimranChopra12/faster/internal/pkg/pkgrouter"
)

type uc interface {
	CreateShard(ctx context.Context, instance int64) (usecase.ShardResult, error)
	Mint(ctx context.Context, instance int64, count int) (usecase.MintResult, error)
	Inspect(ctx context.Context, id uint64) (usecase.InspectResult, error)
	Shards(ctx context.Context) (usecase.ShardsResult, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/shards", end.CreateShard)
	r.GET("/shards", end.Shards)

	r.POST("/ids", end.Mint)
	r.GET("/ids/:id", end.Inspect)
}
