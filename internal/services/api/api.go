// Package api provides the HTTP API for the application
package api

import (
	"time"

	"supercut/internal/platform/config"
	"supercut/internal/platform/logger"
	phttp "supercut/internal/platform/net/http"
	"supercut/internal/platform/net/middleware"
	"supercut/internal/platform/store"

	"supercut/internal/modkit"
	"supercut/internal/modkit/httpkit"
	"supercut/internal/modkit/module"
	"supercut/internal/modkit/swaggerkit"

	curationmod "supercut/internal/services/api/curation/module"
	metamod "supercut/internal/services/api/meta/module"
)

// Options are the API options
// Config is the unprefixed root, modules pick their own prefixes
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	} else {
		deps.Log = *logger.Get()
	}
	deps = deps.FromStore(opt.Store)

	// curation owns the engine defaults, meta reads them through its port
	curation := curationmod.New(deps)
	svc := module.MustPortsOf[curationmod.Ports](curation).Curation

	mods := []module.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Defaults: svc.Defaults})),
		curation,
	}

	apiCfg := opt.Config.Prefix("CORE_API_")
	stack := httpkit.CommonStack(httpkit.StackOptions{
		SlowRequest: apiCfg.MayDuration("SLOW_REQUEST", 2*time.Second),
		CORS: middleware.CORSOptions{
			AllowedOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil),
		},
	})

	r.Use(httpkit.RootStack()...)
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
			deps.Log.Debug().Str("module", m.Name()).Msg("module mounted")
		}
	})
}
