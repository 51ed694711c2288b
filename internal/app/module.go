package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/SimranChopra12/faster/internal/minter"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.minter.enabled") {
		closer, err := minter.New(minter.Dependency{
			Config:    a.config,
			Router:    a.router,
			Goroutine: a.goroutine,
			Context:   a.ctx,
			ID:        a.uuid,
		})
		if err != nil {
			slog.Error("failed to init module minter", "error", err)
			os.Exit(1)
		}
		if closer != nil {
			if a.closerFn == nil {
				a.closerFn = map[string]func(context.Context) error{}
			}
			a.closerFn["Minter"] = closer
		}
	}
}
