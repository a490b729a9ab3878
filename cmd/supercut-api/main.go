// @title         supercut API
// @version       0.1.0
// @description   Scene curation: plan reels from labelled scenes, store runs, export EDLs

package main

import (
	"context"
	"os/signal"
	"syscall"

	"supercut/internal/modkit/repokit"
	"supercut/internal/platform/config"
	"supercut/internal/platform/logger"
	phttp "supercut/internal/platform/net/http"
	"supercut/internal/platform/store"

	"supercut/internal/services/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	liteCfg := root.Prefix("SERVICE_SQLITE_")   // liteCfg lives under SERVICE_SQLITE_*

	l := logger.Get()

	// every backend is optional, the curation module degrades to stateless planning
	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "supercut-api",
			PG: store.PGConfig{
				Enabled:     pgCfg.Has("DBURL"),
				URL:         pgCfg.MayString("DBURL", ""),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
			CH: store.CHConfig{
				Enabled:    chCfg.Has("DBURL"),
				URL:        chCfg.MayString("DBURL", ""),
				ClientName: "supercut",
				ClientTag:  "api",
			},
			Lite: store.LiteConfig{
				Enabled: liteCfg.Has("PATH"),
				Path:    liteCfg.MayString("PATH", ""),
				LogSQL:  liteCfg.MayBool("LOG_SQL", false),
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	repokit.MustGuard(ctx, st)

	srv := phttp.NewServer(":" + apiCfg.MayString("PORT", "4000"))

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
