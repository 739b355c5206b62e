// Package module wires trajectory into the API using modkit
package module

import (
	"context"
	"errors"
	"net/http"

	"vesselq/internal/core/trajectory"
	modkit "vesselq/internal/modkit"
	"vesselq/internal/modkit/httpkit"
	"vesselq/internal/platform/logger"
	str "vesselq/internal/platform/strings"
	"vesselq/internal/services/trajectory/domain"
	thttp "vesselq/internal/services/trajectory/http"
	"vesselq/internal/services/trajectory/service"
	vdomain "vesselq/internal/services/vessels/domain"
)

// Module implements the trajectory module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	ports    domain.Ports
	register func(httpkit.Router)

	svc *service.Service
}

// loadPipeline is a seam for tests
var loadPipeline = trajectory.LoadPipeline

// New constructs the trajectory module. The vessels ports must be injected
// with modkit.WithPorts(vdomain.Ports{...})
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("trajectory"), modkit.WithPrefix("/trajectory")}, opts...)...)

	injected, _ := b.Ports.(vdomain.Ports)
	if injected.Resolver == nil || injected.Tracks == nil {
		panic("trajectory module requires vessels Resolver and Tracks ports")
	}

	o := FromConfig(deps.Cfg)
	svc := service.New(injected, pipeline(o.ArtifactsDir), o.Service)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
		ports:  domain.Ports{Forecaster: svc, Checker: svc},
	}
	external := b.Register
	m.register = func(r httpkit.Router) {
		thttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// pipeline loads artifacts from dir. Any failure leaves learned predictions
// on the fallback rather than failing boot
func pipeline(dir string) *trajectory.Pipeline {
	if dir == "" {
		return nil
	}
	p, err := loadPipeline(context.Background(), dir)
	if err != nil {
		if !errors.Is(err, trajectory.ErrArtifactsUnavailable) {
			logger.Named("trajectory").Error().Err(err).Str("dir", dir).Msg("model artifacts rejected; learned predictions use the fallback")
		}
		return nil
	}
	return p
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.Prefix(), m.mws, m.register)
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns domain.Ports
func (m *Module) Ports() any { return m.ports }
