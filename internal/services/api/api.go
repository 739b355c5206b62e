// Package api provides the HTTP API for the application
package api

import (
	"vesselq/internal/platform/config"
	"vesselq/internal/platform/logger"
	phttp "vesselq/internal/platform/net/http"
	"vesselq/internal/platform/store"

	"vesselq/internal/modkit"
	"vesselq/internal/modkit/httpkit"
	"vesselq/internal/modkit/module"
	"vesselq/internal/modkit/swaggerkit"

	metamod "vesselq/internal/services/api/meta/module"
	querymod "vesselq/internal/services/query/module"
	qsvc "vesselq/internal/services/query/service"
	tdomain "vesselq/internal/services/trajectory/domain"
	trajmod "vesselq/internal/services/trajectory/module"
	vdomain "vesselq/internal/services/vessels/domain"
	vesselsmod "vesselq/internal/services/vessels/module"
	vsvc "vesselq/internal/services/vessels/service"
)

// Options are the API options
type Options struct {
	// Config is the unprefixed root; modules read their own prefixes
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Modules is the wired module graph, shared by the API and the CLI
type Modules struct {
	Vessels    modkit.Module
	Trajectory modkit.Module
	Query      modkit.Module
	Meta       modkit.Module
}

// All lists the modules in mount order
func (m Modules) All() []module.Module {
	return []module.Module{m.Meta, m.Vessels, m.Trajectory, m.Query}
}

// VesselsService returns the concrete vessels service
func (m Modules) VesselsService() *vsvc.Service {
	return m.Vessels.(interface{ Service() *vsvc.Service }).Service()
}

// QueryService returns the concrete query service
func (m Modules) QueryService() *qsvc.Service {
	return m.Query.(interface{ Service() *qsvc.Service }).Service()
}

// Build constructs vessels first and hands its ports to trajectory, then both
// port sets to query
func Build(deps modkit.Deps) Modules {
	vessels := vesselsmod.New(deps)
	vp := module.MustPortsOf[vdomain.Ports](vessels)

	traj := trajmod.New(deps, modkit.WithPorts(vp))
	tp := module.MustPortsOf[tdomain.Ports](traj)

	query := querymod.New(deps, modkit.WithPorts(querymod.Ports{
		Resolver:   vp.Resolver,
		Catalog:    vp.Catalog,
		Tracks:     vp.Tracks,
		Forecaster: tp.Forecaster,
		Checker:    tp.Checker,
	}))

	return Modules{
		Vessels:    vessels,
		Trajectory: traj,
		Query:      query,
		Meta:       metamod.New(deps, modkit.WithPorts(vp)),
	}
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) Modules {
	deps := modkit.NewDeps(opt.Config, opt.Store)
	mods := Build(deps)

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(httpkit.StackFromConfig(opt.Config.Prefix("CORE_API_"))), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods.All() {
			// register each module's ports under its own name for cross module lookups
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})

	if opt.Logger != nil {
		opt.Logger.Info().Str("driver", string(deps.Driver)).Int("modules", len(mods.All())).Msg("api mounted")
	}
	return mods
}
